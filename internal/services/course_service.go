package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/edusync-platform/school-service/internal/events"
	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/repositories"
	"github.com/edusync-platform/school-service/internal/validator"
)

type CourseDetail struct {
	Course *models.Course  `json:"course"`
	Grades []*models.Grade `json:"grades"`
}

type CourseService interface {
	List(ctx context.Context, actx AuthContext) ([]*models.Course, error)
	Get(ctx context.Context, actx AuthContext, id uint) (*CourseDetail, error)
	Create(ctx context.Context, actx AuthContext, req *validator.CourseCreateRequest) (*models.Course, error)
	Update(ctx context.Context, actx AuthContext, id uint, req *validator.CourseUpdateRequest) (*models.Course, error)
	Delete(ctx context.Context, actx AuthContext, id uint) error
}

type courseService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCourseService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) CourseService {
	return &courseService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *courseService) List(ctx context.Context, actx AuthContext) ([]*models.Course, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	return s.repo.Course().ListByInstitution(ctx, actx.InstitutionID)
}

func (s *courseService) Get(ctx context.Context, actx AuthContext, id uint) (*CourseDetail, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}

	course, err := s.repo.Course().GetByID(ctx, id, actx.InstitutionID)
	if err != nil {
		return nil, notFound(err)
	}

	grades, err := s.repo.Grade().ListByCourse(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	return &CourseDetail{Course: course, Grades: grades}, nil
}

func (s *courseService) Create(ctx context.Context, actx AuthContext, req *validator.CourseCreateRequest) (*models.Course, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	if err := s.checkTeachersBelong(ctx, actx, req.TeacherIDs); err != nil {
		return nil, err
	}

	course := &models.Course{
		InstitutionID:  actx.InstitutionID,
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		Credits:        req.Credits,
		DurationMonths: req.DurationMonths,
		Department:     req.Department,
		TuitionFee:     req.TuitionFee,
	}
	if course.Credits == 0 {
		course.Credits = 3
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Course().Create(ctx, course); err != nil {
			return err
		}
		return tx.Course().AssignTeachers(ctx, course.ID, req.TeacherIDs)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, validator.FieldError("code", "a course with this code already exists for your institution")
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:          events.TypeCourseCreated,
		InstitutionID: actx.InstitutionID,
		Payload:       map[string]any{"course_id": course.ID, "code": course.Code},
	})

	return course, nil
}

func (s *courseService) Update(ctx context.Context, actx AuthContext, id uint, req *validator.CourseUpdateRequest) (*models.Course, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	course, err := s.repo.Course().GetByID(ctx, id, actx.InstitutionID)
	if err != nil {
		return nil, notFound(err)
	}

	if req.Code != nil {
		course.Code = *req.Code
	}
	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.DurationMonths != nil {
		course.DurationMonths = *req.DurationMonths
	}
	if req.Department != nil {
		course.Department = *req.Department
	}
	if req.TuitionFee != nil {
		course.TuitionFee = *req.TuitionFee
	}
	course.Teachers = nil // associations are updated incrementally below

	if err := s.checkTeachersBelong(ctx, actx, req.TeacherIDs); err != nil {
		return nil, err
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Course().Update(ctx, course); err != nil {
			return err
		}
		if req.TeacherIDs == nil {
			return nil
		}
		current, err := tx.Course().AssignedTeacherIDs(ctx, course.ID)
		if err != nil {
			return err
		}
		toAdd, toRemove := diffIDs(current, req.TeacherIDs)
		if err := tx.Course().AssignTeachers(ctx, course.ID, toAdd); err != nil {
			return err
		}
		return tx.Course().UnassignTeachers(ctx, course.ID, toRemove)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, validator.FieldError("code", "a course with this code already exists for your institution")
		}
		return nil, err
	}

	return course, nil
}

func (s *courseService) Delete(ctx context.Context, actx AuthContext, id uint) error {
	if err := requireAdmin(actx); err != nil {
		return err
	}

	course, err := s.repo.Course().GetByID(ctx, id, actx.InstitutionID)
	if err != nil {
		return notFound(err)
	}

	// Grades cascade with the course.
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Grade().DeleteByCourse(ctx, course.ID); err != nil {
			return err
		}
		return tx.Course().Delete(ctx, course.ID)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:          events.TypeCourseDeleted,
		InstitutionID: actx.InstitutionID,
		Payload:       map[string]any{"course_id": course.ID, "code": course.Code},
	})

	return nil
}

// checkTeachersBelong rejects assignment of teachers from another tenant.
func (s *courseService) checkTeachersBelong(ctx context.Context, actx AuthContext, teacherIDs []uint) error {
	for _, tid := range teacherIDs {
		if _, err := s.repo.Teacher().GetByID(ctx, tid, actx.InstitutionID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return validator.FieldError("teacher_ids", fmt.Sprintf("teacher %d does not belong to your institution", tid))
			}
			return err
		}
	}
	return nil
}

func (s *courseService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "type", event.Type, "error", err)
	}
}

// diffIDs computes the incremental membership change between the currently
// assigned set and the submitted set.
func diffIDs(current, desired []uint) (toAdd, toRemove []uint) {
	currentSet := make(map[uint]bool, len(current))
	for _, id := range current {
		currentSet[id] = true
	}
	desiredSet := make(map[uint]bool, len(desired))
	for _, id := range desired {
		desiredSet[id] = true
		if !currentSet[id] {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if !desiredSet[id] {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}
