package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/repositories"
)

// AdminDashboard is the landing view for an institution admin: the tenant
// record plus everything it manages.
type AdminDashboard struct {
	Institution  *models.Institution `json:"institution"`
	Courses      []*models.Course    `json:"courses"`
	Teachers     []*models.Teacher   `json:"teachers"`
	Students     []*models.Student   `json:"students"`
	News         []*models.News      `json:"news"`
	TeacherCount int                 `json:"teacher_count"`
	StudentCount int                 `json:"student_count"`
	CourseCount  int                 `json:"course_count"`
}

type DashboardService interface {
	Admin(ctx context.Context, actx AuthContext) (*AdminDashboard, error)
}

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, logger *slog.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

func (s *dashboardService) Admin(ctx context.Context, actx AuthContext) (*AdminDashboard, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}

	inst, err := s.repo.Institution().GetByID(ctx, actx.InstitutionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMissingProfile
		}
		return nil, err
	}

	courses, err := s.repo.Course().ListByInstitution(ctx, actx.InstitutionID)
	if err != nil {
		return nil, err
	}
	teachers, err := s.repo.Teacher().ListByInstitution(ctx, actx.InstitutionID)
	if err != nil {
		return nil, err
	}
	students, err := s.repo.Student().ListByInstitution(ctx, actx.InstitutionID)
	if err != nil {
		return nil, err
	}
	news, err := s.repo.News().ListByInstitution(ctx, actx.InstitutionID)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		Institution:  inst,
		Courses:      courses,
		Teachers:     teachers,
		Students:     students,
		News:         news,
		TeacherCount: len(teachers),
		StudentCount: len(students),
		CourseCount:  len(courses),
	}, nil
}
