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

type GradeService interface {
	List(ctx context.Context, actx AuthContext) ([]*models.Grade, error)
	// Create records one grade per (student, course) pair; both sides must
	// belong to the caller's institution.
	Create(ctx context.Context, actx AuthContext, req *validator.GradeCreateRequest) (*models.Grade, error)
}

type gradeService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewGradeService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) GradeService {
	return &gradeService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *gradeService) List(ctx context.Context, actx AuthContext) ([]*models.Grade, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	return s.repo.Grade().ListByInstitution(ctx, actx.InstitutionID)
}

func (s *gradeService) Create(ctx context.Context, actx AuthContext, req *validator.GradeCreateRequest) (*models.Grade, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	if _, err := s.repo.Student().GetByID(ctx, req.StudentID, actx.InstitutionID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, validator.FieldError("student_id", fmt.Sprintf("student %d does not belong to your institution", req.StudentID))
		}
		return nil, err
	}
	if _, err := s.repo.Course().GetByID(ctx, req.CourseID, actx.InstitutionID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, validator.FieldError("course_id", fmt.Sprintf("course %d does not belong to your institution", req.CourseID))
		}
		return nil, err
	}

	grade := &models.Grade{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Grade:     models.GradeLetter(req.Grade),
		Marks:     req.Marks,
	}

	if err := s.repo.Grade().Create(ctx, grade); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, validator.FieldError("student_id", "a grade for this student and course already exists")
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:          events.TypeGradeRecorded,
		InstitutionID: actx.InstitutionID,
		Payload: map[string]any{
			"grade_id":   grade.ID,
			"student_id": grade.StudentID,
			"course_id":  grade.CourseID,
			"grade":      grade.Grade,
		},
	})

	return grade, nil
}

func (s *gradeService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "type", event.Type, "error", err)
	}
}
