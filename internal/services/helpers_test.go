package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/edusync-platform/school-service/internal/events"
	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/validator"
)

type testDeps struct {
	repo      *fakeRepository
	publisher *events.MockEventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func newTestDeps() *testDeps {
	return &testDeps{
		repo:      newFakeRepository(),
		publisher: events.NewMockEventPublisher(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator: validator.New(),
	}
}

func (d *testDeps) auth() AuthService {
	return NewAuthService(d.repo, d.publisher, d.logger, d.validator)
}

func (d *testDeps) courses() CourseService {
	return NewCourseService(d.repo, d.publisher, d.logger, d.validator)
}

func (d *testDeps) teachers() TeacherService {
	return NewTeacherService(d.repo, d.publisher, d.logger, d.validator)
}

func (d *testDeps) students() StudentService {
	return NewStudentService(d.repo, d.publisher, d.logger, d.validator)
}

func (d *testDeps) grades() GradeService {
	return NewGradeService(d.repo, d.publisher, d.logger, d.validator)
}

func (d *testDeps) newsSvc() NewsService {
	return NewNewsService(d.repo, d.publisher, d.logger, d.validator)
}

// signupAdmin registers an institution and returns the admin's auth context.
func signupAdmin(t *testing.T, d *testDeps, institution string) AuthContext {
	t.Helper()
	res, err := d.auth().Signup(context.Background(), &validator.SignupRequest{
		InstitutionName: institution,
		Username:        "admin_" + institution,
		Email:           fmt.Sprintf("admin@%s.example.com", institution),
		Password:        "correct-horse-battery",
	})
	if err != nil {
		t.Fatalf("Signup(%q) failed: %v", institution, err)
	}
	return AuthContext{
		UserID:        res.User.ID,
		Role:          models.RoleInstitutionAdmin,
		InstitutionID: res.Institution.ID,
	}
}

func createCourse(t *testing.T, d *testDeps, actx AuthContext, code string) *models.Course {
	t.Helper()
	course, err := d.courses().Create(context.Background(), actx, &validator.CourseCreateRequest{
		Code: code,
		Name: "Course " + code,
	})
	if err != nil {
		t.Fatalf("Create course %q failed: %v", code, err)
	}
	return course
}

func createTeacher(t *testing.T, d *testDeps, actx AuthContext, name, employeeID string, courseIDs ...uint) *models.Teacher {
	t.Helper()
	teacher, err := d.teachers().Create(context.Background(), actx, &validator.TeacherCreateRequest{
		Name:       name,
		EmployeeID: employeeID,
		Department: "Science",
		CourseIDs:  courseIDs,
	})
	if err != nil {
		t.Fatalf("Create teacher %q failed: %v", employeeID, err)
	}
	return teacher
}

func createStudent(t *testing.T, d *testDeps, actx AuthContext, name, studentID string, courseID *uint) *models.Student {
	t.Helper()
	student, err := d.students().Create(context.Background(), actx, &validator.StudentCreateRequest{
		Name:      name,
		StudentID: studentID,
		CourseID:  courseID,
	})
	if err != nil {
		t.Fatalf("Create student %q failed: %v", studentID, err)
	}
	return student
}

// fieldOf extracts the field name when err is a single field-level error.
func fieldOf(t *testing.T, err error) string {
	t.Helper()
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		t.Fatalf("expected validation errors, got %T: %v", err, err)
	}
	if len(verrs) != 1 {
		t.Fatalf("expected a single field error, got %v", verrs)
	}
	return verrs[0].Field
}
