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

// TeacherDashboard is the teacher's own read-only view.
type TeacherDashboard struct {
	Teacher *models.Teacher  `json:"teacher"`
	Courses []*models.Course `json:"courses"`
}

type TeacherService interface {
	List(ctx context.Context, actx AuthContext) ([]*models.Teacher, error)
	Get(ctx context.Context, actx AuthContext, id uint) (*models.Teacher, error)
	// Create issues the linked account with the initial credential: username
	// derived from the employee id, password equal to it, rotation forced.
	Create(ctx context.Context, actx AuthContext, req *validator.TeacherCreateRequest) (*models.Teacher, error)
	Update(ctx context.Context, actx AuthContext, id uint, req *validator.TeacherUpdateRequest) (*models.Teacher, error)
	// Delete removes the teacher together with its profile and login account.
	Delete(ctx context.Context, actx AuthContext, id uint) error

	// Dashboard and Students serve the teacher's own portal views.
	Dashboard(ctx context.Context, actx AuthContext) (*TeacherDashboard, error)
	Students(ctx context.Context, actx AuthContext) ([]*models.Student, error)
}

type teacherService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewTeacherService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) TeacherService {
	return &teacherService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *teacherService) List(ctx context.Context, actx AuthContext) ([]*models.Teacher, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	return s.repo.Teacher().ListByInstitution(ctx, actx.InstitutionID)
}

func (s *teacherService) Get(ctx context.Context, actx AuthContext, id uint) (*models.Teacher, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	teacher, err := s.repo.Teacher().GetByID(ctx, id, actx.InstitutionID)
	if err != nil {
		return nil, notFound(err)
	}
	return teacher, nil
}

func (s *teacherService) Create(ctx context.Context, actx AuthContext, req *validator.TeacherCreateRequest) (*models.Teacher, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}
	if err := s.checkCoursesBelong(ctx, actx, req.CourseIDs); err != nil {
		return nil, err
	}

	username, err := deriveUsername(ctx, s.repo.User(), "teacher", req.EmployeeID)
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(req.EmployeeID)
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

	teacher := &models.Teacher{
		InstitutionID: actx.InstitutionID,
		EmployeeID:    req.EmployeeID,
		Department:    req.Department,
		Qualification: req.Qualification,
		Gender:        genderOrDefault(req.Gender),
		DateOfBirth:   dob,
		Address:       req.Address,
		HireDate:      datatypes.Date(time.Now()),
		Salary:        req.Salary,
		ContractType:  contractOrDefault(req.ContractType),
	}
	if req.PhotoURL != "" {
		teacher.PhotoURL = &req.PhotoURL
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().Create(ctx, user); err != nil {
			return err
		}
		teacher.UserID = user.ID
		if err := tx.Teacher().Create(ctx, teacher); err != nil {
			return err
		}
		if err := tx.Profile().Create(ctx, &models.Profile{
			UserID:        user.ID,
			Role:          models.RoleTeacher,
			InstitutionID: actx.InstitutionID,
			Phone:         req.Phone,
		}); err != nil {
			return err
		}
		return tx.Teacher().AssignCourses(ctx, teacher.ID, req.CourseIDs)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, validator.FieldError("employee_id", "a teacher with this employee id already exists")
		}
		return nil, err
	}

	teacher.User = user

	s.publish(ctx, events.Event{
		Type:          events.TypeTeacherCreated,
		InstitutionID: actx.InstitutionID,
		Payload:       map[string]any{"teacher_id": teacher.ID, "employee_id": teacher.EmployeeID},
	})
	s.logger.Info("teacher created",
		"teacher_id", teacher.ID,
		"employee_id", teacher.EmployeeID,
		"institution_id", actx.InstitutionID)

	return teacher, nil
}

func (s *teacherService) Update(ctx context.Context, actx AuthContext, id uint, req *validator.TeacherUpdateRequest) (*models.Teacher, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	teacher, err := s.repo.Teacher().GetByID(ctx, id, actx.InstitutionID)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.checkCoursesBelong(ctx, actx, req.CourseIDs); err != nil {
		return nil, err
	}

	user := teacher.User
	if req.Name != nil && user != nil {
		user.FirstName, user.LastName = splitFullName(*req.Name)
	}

	if req.EmployeeID != nil {
		teacher.EmployeeID = *req.EmployeeID
	}
	if req.Department != nil {
		teacher.Department = *req.Department
	}
	if req.Qualification != nil {
		teacher.Qualification = *req.Qualification
	}
	if req.Gender != nil {
		teacher.Gender = models.Gender(*req.Gender)
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		teacher.DateOfBirth = dob
	}
	if req.Address != nil {
		teacher.Address = *req.Address
	}
	if req.Salary != nil {
		teacher.Salary = *req.Salary
	}
	if req.ContractType != nil {
		teacher.ContractType = models.ContractType(*req.ContractType)
	}
	if req.PhotoURL != nil && *req.PhotoURL != "" {
		teacher.PhotoURL = req.PhotoURL
	}
	teacher.User = nil
	teacher.Courses = nil // associations are updated incrementally below

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if user != nil {
			user.Profile = nil
			if err := tx.User().Update(ctx, user); err != nil {
				return err
			}
		}
		if err := tx.Teacher().Update(ctx, teacher); err != nil {
			return err
		}
		if req.CourseIDs == nil {
			return nil
		}
		current, err := tx.Teacher().AssignedCourseIDs(ctx, teacher.ID)
		if err != nil {
			return err
		}
		toAdd, toRemove := diffIDs(current, req.CourseIDs)
		if err := tx.Teacher().AssignCourses(ctx, teacher.ID, toAdd); err != nil {
			return err
		}
		return tx.Teacher().UnassignCourses(ctx, teacher.ID, toRemove)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, validator.FieldError("employee_id", "a teacher with this employee id already exists")
		}
		return nil, err
	}

	teacher.User = user
	return teacher, nil
}

func (s *teacherService) Delete(ctx context.Context, actx AuthContext, id uint) error {
	if err := requireAdmin(actx); err != nil {
		return err
	}

	teacher, err := s.repo.Teacher().GetByID(ctx, id, actx.InstitutionID)
	if err != nil {
		return notFound(err)
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Teacher().Delete(ctx, teacher.ID); err != nil {
			return err
		}
		if err := tx.Profile().DeleteByUserID(ctx, teacher.UserID); err != nil {
			return err
		}
		return tx.User().Delete(ctx, teacher.UserID)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:          events.TypeTeacherDeleted,
		InstitutionID: actx.InstitutionID,
		Payload:       map[string]any{"teacher_id": teacher.ID, "employee_id": teacher.EmployeeID},
	})

	return nil
}

func (s *teacherService) Dashboard(ctx context.Context, actx AuthContext) (*TeacherDashboard, error) {
	teacher, err := s.repo.Teacher().GetByUserID(ctx, actx.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: teacher profile not found", ErrNotFound)
		}
		return nil, err
	}

	courses, err := s.repo.Course().ListByTeacher(ctx, teacher.ID)
	if err != nil {
		return nil, err
	}

	return &TeacherDashboard{Teacher: teacher, Courses: courses}, nil
}

func (s *teacherService) Students(ctx context.Context, actx AuthContext) ([]*models.Student, error) {
	teacher, err := s.repo.Teacher().GetByUserID(ctx, actx.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: teacher profile not found", ErrNotFound)
		}
		return nil, err
	}

	courseIDs, err := s.repo.Teacher().AssignedCourseIDs(ctx, teacher.ID)
	if err != nil {
		return nil, err
	}

	return s.repo.Student().ListByCourses(ctx, courseIDs)
}

func (s *teacherService) checkCoursesBelong(ctx context.Context, actx AuthContext, courseIDs []uint) error {
	for _, cid := range courseIDs {
		if _, err := s.repo.Course().GetByID(ctx, cid, actx.InstitutionID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return validator.FieldError("course_ids", fmt.Sprintf("course %d does not belong to your institution", cid))
			}
			return err
		}
	}
	return nil
}

func (s *teacherService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "type", event.Type, "error", err)
	}
}

func parseDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, validator.FieldError("date_of_birth", "must be a date in YYYY-MM-DD format")
	}
	d := datatypes.Date(t)
	return &d, nil
}

func genderOrDefault(s string) models.Gender {
	if s == "" {
		return models.GenderMale
	}
	return models.Gender(s)
}

func contractOrDefault(s string) models.ContractType {
	if s == "" {
		return models.ContractFullTime
	}
	return models.ContractType(s)
}
