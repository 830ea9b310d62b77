package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/validator"
)

func TestCourseCreateDuplicateCode(t *testing.T) {
	d := newTestDeps()
	svc := d.courses()
	actx := signupAdmin(t, d, "Springfield")
	otherCtx := signupAdmin(t, d, "Shelbyville")

	createCourse(t, d, actx, "CS101")

	// Same code in the same institution is a field error.
	_, err := svc.Create(context.Background(), actx, &validator.CourseCreateRequest{
		Code: "CS101",
		Name: "Intro again",
	})
	if got := fieldOf(t, err); got != "code" {
		t.Errorf("field = %q, want code", got)
	}

	// Another institution can reuse the code.
	if _, err := svc.Create(context.Background(), otherCtx, &validator.CourseCreateRequest{
		Code: "CS101",
		Name: "Intro",
	}); err != nil {
		t.Fatalf("Create in other institution failed: %v", err)
	}
}

func TestCourseCreateRejectsForeignTeacher(t *testing.T) {
	d := newTestDeps()
	svc := d.courses()
	actx := signupAdmin(t, d, "Springfield")
	otherCtx := signupAdmin(t, d, "Shelbyville")

	foreign := createTeacher(t, d, otherCtx, "Edna K", "EMP500")

	_, err := svc.Create(context.Background(), actx, &validator.CourseCreateRequest{
		Code:       "CS101",
		Name:       "Intro",
		TeacherIDs: []uint{foreign.ID},
	})
	if got := fieldOf(t, err); got != "teacher_ids" {
		t.Errorf("field = %q, want teacher_ids", got)
	}
}

func TestCourseUpdateTeacherAssignments(t *testing.T) {
	d := newTestDeps()
	svc := d.courses()
	actx := signupAdmin(t, d, "Springfield")

	course := createCourse(t, d, actx, "CS101")
	t1 := createTeacher(t, d, actx, "Teacher 1", "EMP001")
	t2 := createTeacher(t, d, actx, "Teacher 2", "EMP002")
	t3 := createTeacher(t, d, actx, "Teacher 3", "EMP003")

	assign := func(ids []uint) {
		t.Helper()
		if _, err := svc.Update(context.Background(), actx, course.ID, &validator.CourseUpdateRequest{
			TeacherIDs: ids,
		}); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}

	assign([]uint{t1.ID, t2.ID})
	got, _ := d.repo.Course().AssignedTeacherIDs(context.Background(), course.ID)
	if len(got) != 2 {
		t.Fatalf("assigned = %v, want [%d %d]", got, t1.ID, t2.ID)
	}

	// Resubmitting a different set replaces membership, not appends.
	assign([]uint{t2.ID, t3.ID})
	got, _ = d.repo.Course().AssignedTeacherIDs(context.Background(), course.ID)
	if len(got) != 2 || got[0] != t2.ID || got[1] != t3.ID {
		t.Fatalf("assigned = %v, want [%d %d]", got, t2.ID, t3.ID)
	}
}

func TestCourseRecreateAfterDelete(t *testing.T) {
	d := newTestDeps()
	svc := d.courses()
	actx := signupAdmin(t, d, "Springfield")

	course := createCourse(t, d, actx, "CS101")
	if err := svc.Delete(context.Background(), actx, course.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// The code is free for the institution again after deletion.
	if _, err := svc.Create(context.Background(), actx, &validator.CourseCreateRequest{
		Code: "CS101",
		Name: "Intro, second run",
	}); err != nil {
		t.Fatalf("Create after delete failed: %v", err)
	}
}

func TestCourseDeleteCascades(t *testing.T) {
	d := newTestDeps()
	svc := d.courses()
	actx := signupAdmin(t, d, "Springfield")

	course := createCourse(t, d, actx, "CS101")
	student := createStudent(t, d, actx, "Student 1", "S001", &course.ID)

	if _, err := d.grades().Create(context.Background(), actx, &validator.GradeCreateRequest{
		StudentID: student.ID,
		CourseID:  course.ID,
		Grade:     "A",
		Marks:     95,
	}); err != nil {
		t.Fatalf("Create grade failed: %v", err)
	}

	if err := svc.Delete(context.Background(), actx, course.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	grades, _ := d.repo.Grade().ListByCourse(context.Background(), course.ID)
	if len(grades) != 0 {
		t.Errorf("grades remain after course deletion: %v", grades)
	}

	// The student survives with the course link cleared.
	got, err := d.repo.Student().GetByID(context.Background(), student.ID, actx.InstitutionID)
	if err != nil {
		t.Fatalf("student gone after course deletion: %v", err)
	}
	if got.CourseID != nil {
		t.Errorf("student course link = %v, want nil", *got.CourseID)
	}
}

func TestCourseTenantIsolation(t *testing.T) {
	d := newTestDeps()
	svc := d.courses()
	actx := signupAdmin(t, d, "Springfield")
	otherCtx := signupAdmin(t, d, "Shelbyville")

	course := createCourse(t, d, actx, "CS101")

	if _, err := svc.Get(context.Background(), otherCtx, course.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get across tenants error = %v, want %v", err, ErrNotFound)
	}
	if err := svc.Delete(context.Background(), otherCtx, course.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete across tenants error = %v, want %v", err, ErrNotFound)
	}

	name := "renamed"
	if _, err := svc.Update(context.Background(), otherCtx, course.ID, &validator.CourseUpdateRequest{
		Name: &name,
	}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update across tenants error = %v, want %v", err, ErrNotFound)
	}
}

func TestCourseRequiresAdmin(t *testing.T) {
	d := newTestDeps()
	svc := d.courses()
	actx := signupAdmin(t, d, "Springfield")

	asTeacher := AuthContext{UserID: 42, Role: models.RoleTeacher, InstitutionID: actx.InstitutionID}
	if _, err := svc.List(context.Background(), asTeacher); !errors.Is(err, ErrForbidden) {
		t.Errorf("List as teacher error = %v, want %v", err, ErrForbidden)
	}
	if _, err := svc.Create(context.Background(), asTeacher, &validator.CourseCreateRequest{
		Code: "CS101", Name: "Intro",
	}); !errors.Is(err, ErrForbidden) {
		t.Errorf("Create as teacher error = %v, want %v", err, ErrForbidden)
	}
}
