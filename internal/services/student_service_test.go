package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/edusync-platform/school-service/internal/validator"
)

func TestStudentCreateIssuesCredentials(t *testing.T) {
	d := newTestDeps()
	actx := signupAdmin(t, d, "Springfield")

	course := createCourse(t, d, actx, "CS101")
	student := createStudent(t, d, actx, "Bart Simpson", "S001", &course.ID)

	user, err := d.repo.User().GetByID(context.Background(), student.UserID)
	if err != nil {
		t.Fatalf("linked user missing: %v", err)
	}
	if user.Username != "student_S001" {
		t.Errorf("username = %q, want student_S001", user.Username)
	}
	if !user.MustChangePassword {
		t.Error("MustChangePassword not set on initial credential")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("S001")) != nil {
		t.Error("initial password is not the student id")
	}
}

func TestStudentCreateDuplicateStudentID(t *testing.T) {
	d := newTestDeps()
	actx := signupAdmin(t, d, "Springfield")

	createStudent(t, d, actx, "Bart Simpson", "S001", nil)

	_, err := d.students().Create(context.Background(), actx, &validator.StudentCreateRequest{
		Name:      "Someone Else",
		StudentID: "S001",
	})
	if got := fieldOf(t, err); got != "student_id" {
		t.Errorf("field = %q, want student_id", got)
	}
}

func TestStudentCreateRejectsForeignCourse(t *testing.T) {
	d := newTestDeps()
	actx := signupAdmin(t, d, "Springfield")
	otherCtx := signupAdmin(t, d, "Shelbyville")

	foreign := createCourse(t, d, otherCtx, "CS101")

	_, err := d.students().Create(context.Background(), actx, &validator.StudentCreateRequest{
		Name:      "Bart Simpson",
		StudentID: "S001",
		CourseID:  &foreign.ID,
	})
	if got := fieldOf(t, err); got != "course_id" {
		t.Errorf("field = %q, want course_id", got)
	}
}

func TestStudentUpdateClearsCourse(t *testing.T) {
	d := newTestDeps()
	actx := signupAdmin(t, d, "Springfield")

	course := createCourse(t, d, actx, "CS101")
	student := createStudent(t, d, actx, "Bart Simpson", "S001", &course.ID)

	var zero uint
	updated, err := d.students().Update(context.Background(), actx, student.ID, &validator.StudentUpdateRequest{
		CourseID: &zero,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.CourseID != nil {
		t.Errorf("course link = %v, want nil", *updated.CourseID)
	}
}

func TestStudentDeleteRemovesAccountAndGrades(t *testing.T) {
	d := newTestDeps()
	actx := signupAdmin(t, d, "Springfield")

	course := createCourse(t, d, actx, "CS101")
	student := createStudent(t, d, actx, "Bart Simpson", "S001", &course.ID)

	if _, err := d.grades().Create(context.Background(), actx, &validator.GradeCreateRequest{
		StudentID: student.ID,
		CourseID:  course.ID,
		Grade:     "C",
		Marks:     71,
	}); err != nil {
		t.Fatalf("Create grade failed: %v", err)
	}

	if err := d.students().Delete(context.Background(), actx, student.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := d.repo.User().GetByID(context.Background(), student.UserID); err == nil {
		t.Error("login account survives student deletion")
	}
	grades, _ := d.repo.Grade().ListByStudent(context.Background(), student.ID)
	if len(grades) != 0 {
		t.Errorf("grades remain after student deletion: %v", grades)
	}
}

func TestStudentRecreateAfterDelete(t *testing.T) {
	d := newTestDeps()
	actx := signupAdmin(t, d, "Springfield")

	first := createStudent(t, d, actx, "Bart Simpson", "S001", nil)
	if err := d.students().Delete(context.Background(), actx, first.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// The student id and the derived username are free again after deletion.
	second := createStudent(t, d, actx, "Milhouse Van Houten", "S001", nil)
	user, err := d.repo.User().GetByID(context.Background(), second.UserID)
	if err != nil {
		t.Fatalf("linked user missing: %v", err)
	}
	if user.Username != "student_S001" {
		t.Errorf("username = %q, want student_S001", user.Username)
	}
}

func TestStudentDashboard(t *testing.T) {
	d := newTestDeps()
	actx := signupAdmin(t, d, "Springfield")

	course := createCourse(t, d, actx, "CS101")
	student := createStudent(t, d, actx, "Bart Simpson", "S001", &course.ID)
	other := createStudent(t, d, actx, "Lisa Simpson", "S002", &course.ID)

	for _, g := range []validator.GradeCreateRequest{
		{StudentID: student.ID, CourseID: course.ID, Grade: "C", Marks: 71},
		{StudentID: other.ID, CourseID: course.ID, Grade: "A", Marks: 98},
	} {
		if _, err := d.grades().Create(context.Background(), actx, &g); err != nil {
			t.Fatalf("Create grade failed: %v", err)
		}
	}

	dash, err := d.students().Dashboard(context.Background(), AuthContext{UserID: student.UserID})
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if dash.Student.ID != student.ID {
		t.Errorf("dashboard student = %d, want %d", dash.Student.ID, student.ID)
	}
	// Only the student's own grades are visible.
	if len(dash.Grades) != 1 || dash.Grades[0].StudentID != student.ID {
		t.Errorf("dashboard grades = %v, want only own", dash.Grades)
	}
}

func TestStudentTenantIsolation(t *testing.T) {
	d := newTestDeps()
	actx := signupAdmin(t, d, "Springfield")
	otherCtx := signupAdmin(t, d, "Shelbyville")

	student := createStudent(t, d, actx, "Bart Simpson", "S001", nil)

	if _, err := d.students().Get(context.Background(), otherCtx, student.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get across tenants error = %v, want %v", err, ErrNotFound)
	}
	if err := d.students().Delete(context.Background(), otherCtx, student.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete across tenants error = %v, want %v", err, ErrNotFound)
	}
}
