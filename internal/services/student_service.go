package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/edusync-platform/school-service/internal/events"
	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/repositories"
	"github.com/edusync-platform/school-service/internal/validator"
)

// StudentDashboard is the student's own read-only view.
type StudentDashboard struct {
	Student *models.Student `json:"student"`
	Grades  []*models.Grade `json:"grades"`
}

type StudentService interface {
	List(ctx context.Context, actx AuthContext) ([]*models.Student, error)
	Get(ctx context.Context, actx AuthContext, id uint) (*models.Student, error)
	// Create issues the linked account with the initial credential: username
	// derived from the student id, password equal to it, rotation forced.
	Create(ctx context.Context, actx AuthContext, req *validator.StudentCreateRequest) (*models.Student, error)
	Update(ctx context.Context, actx AuthContext, id uint, req *validator.StudentUpdateRequest) (*models.Student, error)
	// Delete removes the student, its grades, profile and login account.
	Delete(ctx context.Context, actx AuthContext, id uint) error

	// Dashboard serves the student's own portal view.
	Dashboard(ctx context.Context, actx AuthContext) (*StudentDashboard, error)
}

type studentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStudentService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) StudentService {
	return &studentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *studentService) List(ctx context.Context, actx AuthContext) ([]*models.Student, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	return s.repo.Student().ListByInstitution(ctx, actx.InstitutionID)
}

func (s *studentService) Get(ctx context.Context, actx AuthContext, id uint) (*models.Student, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	student, err := s.repo.Student().GetByID(ctx, id, actx.InstitutionID)
	if err != nil {
		return nil, notFound(err)
	}
	return student, nil
}

func (s *studentService) Create(ctx context.Context, actx AuthContext, req *validator.StudentCreateRequest) (*models.Student, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}
	if err := s.checkCourseBelongs(ctx, actx, req.CourseID); err != nil {
		return nil, err
	}

	username, err := deriveUsername(ctx, s.repo.User(), "student", req.StudentID)
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(req.StudentID)
	if err != nil {
		return nil, err
	}

	first, last := splitFullName(req.Name)
	user := &models.User{
		Username:           username,
		PasswordHash:       hash,
		FirstName:          first,
		LastName:           last,
		MustChangePassword: true,
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		InstitutionID:  actx.InstitutionID,
		CourseID:       req.CourseID,
		StudentID:      req.StudentID,
		AcademicYear:   req.AcademicYear,
		Gender:         genderOrDefault(req.Gender),
		DateOfBirth:    dob,
		Address:        req.Address,
		ParentName:     req.ParentName,
		ParentPhone:    req.ParentPhone,
		BloodGroup:     req.BloodGroup,
		EnrollmentDate: datatypes.Date(time.Now()),
		GPA:            req.GPA,
		Status:         models.StudentActive,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().Create(ctx, user); err != nil {
			return err
		}
		student.UserID = user.ID
		if err := tx.Student().Create(ctx, student); err != nil {
			return err
		}
		return tx.Profile().Create(ctx, &models.Profile{
			UserID:        user.ID,
			Role:          models.RoleStudent,
			InstitutionID: actx.InstitutionID,
			Phone:         req.ParentPhone,
		})
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, validator.FieldError("student_id", "a student with this student id already exists")
		}
		return nil, err
	}

	student.User = user

	s.publish(ctx, events.Event{
		Type:          events.TypeStudentCreated,
		InstitutionID: actx.InstitutionID,
		Payload:       map[string]any{"student_id": student.ID, "natural_id": student.StudentID},
	})
	s.logger.Info("student created",
		"student_id", student.ID,
		"natural_id", student.StudentID,
		"institution_id", actx.InstitutionID)

	return student, nil
}

func (s *studentService) Update(ctx context.Context, actx AuthContext, id uint, req *validator.StudentUpdateRequest) (*models.Student, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	student, err := s.repo.Student().GetByID(ctx, id, actx.InstitutionID)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.checkCourseBelongs(ctx, actx, req.CourseID); err != nil {
		return nil, err
	}

	user := student.User
	if req.Name != nil && user != nil {
		user.FirstName, user.LastName = splitFullName(*req.Name)
	}

	if req.StudentID != nil {
		student.StudentID = *req.StudentID
	}
	if req.AcademicYear != nil {
		student.AcademicYear = *req.AcademicYear
	}
	if req.Gender != nil {
		student.Gender = models.Gender(*req.Gender)
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		student.DateOfBirth = dob
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.ParentName != nil {
		student.ParentName = *req.ParentName
	}
	if req.ParentPhone != nil {
		student.ParentPhone = *req.ParentPhone
	}
	if req.BloodGroup != nil {
		student.BloodGroup = *req.BloodGroup
	}
	if req.GPA != nil {
		student.GPA = *req.GPA
	}
	if req.Status != nil {
		student.Status = models.StudentStatus(*req.Status)
	}
	if req.CourseID != nil {
		// Zero clears the course link.
		if *req.CourseID == 0 {
			student.CourseID = nil
		} else {
			student.CourseID = req.CourseID
		}
	}
	student.User = nil
	student.Course = nil

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if user != nil {
			user.Profile = nil
			if err := tx.User().Update(ctx, user); err != nil {
				return err
			}
		}
		return tx.Student().Update(ctx, student)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, validator.FieldError("student_id", "a student with this student id already exists")
		}
		return nil, err
	}

	student.User = user
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, actx AuthContext, id uint) error {
	if err := requireAdmin(actx); err != nil {
		return err
	}

	student, err := s.repo.Student().GetByID(ctx, id, actx.InstitutionID)
	if err != nil {
		return notFound(err)
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Grade().DeleteByStudent(ctx, student.ID); err != nil {
			return err
		}
		if err := tx.Student().Delete(ctx, student.ID); err != nil {
			return err
		}
		if err := tx.Profile().DeleteByUserID(ctx, student.UserID); err != nil {
			return err
		}
		return tx.User().Delete(ctx, student.UserID)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:          events.TypeStudentDeleted,
		InstitutionID: actx.InstitutionID,
		Payload:       map[string]any{"student_id": student.ID, "natural_id": student.StudentID},
	})

	return nil
}

func (s *studentService) Dashboard(ctx context.Context, actx AuthContext) (*StudentDashboard, error) {
	student, err := s.repo.Student().GetByUserID(ctx, actx.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: student profile not found", ErrNotFound)
		}
		return nil, err
	}

	grades, err := s.repo.Grade().ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	return &StudentDashboard{Student: student, Grades: grades}, nil
}

func (s *studentService) checkCourseBelongs(ctx context.Context, actx AuthContext, courseID *uint) error {
	if courseID == nil || *courseID == 0 {
		return nil
	}
	if _, err := s.repo.Course().GetByID(ctx, *courseID, actx.InstitutionID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return validator.FieldError("course_id", fmt.Sprintf("course %d does not belong to your institution", *courseID))
		}
		return err
	}
	return nil
}

func (s *studentService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "type", event.Type, "error", err)
	}
}
