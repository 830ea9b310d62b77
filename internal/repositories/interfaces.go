package repositories

import (
	"context"
	"errors"

	"github.com/edusync-platform/school-service/internal/models"
)

// Sentinel errors every implementation maps its storage errors onto. Services
// branch on these instead of driver-specific failures.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	DeleteByUserID(ctx context.Context, userID uint) error
}

type InstitutionRepository interface {
	Create(ctx context.Context, inst *models.Institution) error
	GetByID(ctx context.Context, id uint) (*models.Institution, error)
	GetByAdminID(ctx context.Context, adminID uint) (*models.Institution, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	// GetByID is a scoped lookup: it only returns the course when it belongs
	// to the given institution.
	GetByID(ctx context.Context, id, institutionID uint) (*models.Course, error)
	ListByInstitution(ctx context.Context, institutionID uint) ([]*models.Course, error)
	ListByTeacher(ctx context.Context, teacherID uint) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error

	AssignedTeacherIDs(ctx context.Context, courseID uint) ([]uint, error)
	AssignTeachers(ctx context.Context, courseID uint, teacherIDs []uint) error
	UnassignTeachers(ctx context.Context, courseID uint, teacherIDs []uint) error
}

type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id, institutionID uint) (*models.Teacher, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Teacher, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*models.Teacher, error)
	ListByInstitution(ctx context.Context, institutionID uint) ([]*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id uint) error

	AssignedCourseIDs(ctx context.Context, teacherID uint) ([]uint, error)
	AssignCourses(ctx context.Context, teacherID uint, courseIDs []uint) error
	UnassignCourses(ctx context.Context, teacherID uint, courseIDs []uint) error
}

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id, institutionID uint) (*models.Student, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Student, error)
	GetByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	ListByInstitution(ctx context.Context, institutionID uint) ([]*models.Student, error)
	// ListByCourses returns the distinct students enrolled in any of the
	// given courses, for the teacher "my students" view.
	ListByCourses(ctx context.Context, courseIDs []uint) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uint) error
}

type GradeRepository interface {
	Create(ctx context.Context, grade *models.Grade) error
	ListByStudent(ctx context.Context, studentID uint) ([]*models.Grade, error)
	ListByCourse(ctx context.Context, courseID uint) ([]*models.Grade, error)
	ListByInstitution(ctx context.Context, institutionID uint) ([]*models.Grade, error)
	DeleteByCourse(ctx context.Context, courseID uint) error
	DeleteByStudent(ctx context.Context, studentID uint) error
}

type NewsRepository interface {
	Create(ctx context.Context, news *models.News) error
	GetByID(ctx context.Context, id, institutionID uint) (*models.News, error)
	// ListByInstitution returns announcements newest-first.
	ListByInstitution(ctx context.Context, institutionID uint) ([]*models.News, error)
	Update(ctx context.Context, news *models.News) error
	Delete(ctx context.Context, id uint) error
}
