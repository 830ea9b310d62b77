package services

import (
	"context"
	"log/slog"

	"github.com/edusync-platform/school-service/internal/events"
	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/repositories"
	"github.com/edusync-platform/school-service/internal/validator"
)

type NewsService interface {
	// List returns the institution's announcements, newest first.
	List(ctx context.Context, actx AuthContext) ([]*models.News, error)
	Create(ctx context.Context, actx AuthContext, req *validator.NewsCreateRequest) (*models.News, error)
	Update(ctx context.Context, actx AuthContext, id uint, req *validator.NewsUpdateRequest) (*models.News, error)
	Delete(ctx context.Context, actx AuthContext, id uint) error
}

type newsService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewNewsService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) NewsService {
	return &newsService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *newsService) List(ctx context.Context, actx AuthContext) ([]*models.News, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	return s.repo.News().ListByInstitution(ctx, actx.InstitutionID)
}

func (s *newsService) Create(ctx context.Context, actx AuthContext, req *validator.NewsCreateRequest) (*models.News, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	news := &models.News{
		InstitutionID: actx.InstitutionID,
		Content:       req.Content,
	}
	if err := s.repo.News().Create(ctx, news); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:          events.TypeNewsPosted,
		InstitutionID: actx.InstitutionID,
		Payload:       map[string]any{"news_id": news.ID},
	})

	return news, nil
}

func (s *newsService) Update(ctx context.Context, actx AuthContext, id uint, req *validator.NewsUpdateRequest) (*models.News, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	// Lookup is scoped so one tenant can never touch another's post.
	news, err := s.repo.News().GetByID(ctx, id, actx.InstitutionID)
	if err != nil {
		return nil, notFound(err)
	}

	news.Content = req.Content
	if err := s.repo.News().Update(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *newsService) Delete(ctx context.Context, actx AuthContext, id uint) error {
	if err := requireAdmin(actx); err != nil {
		return err
	}

	news, err := s.repo.News().GetByID(ctx, id, actx.InstitutionID)
	if err != nil {
		return notFound(err)
	}
	return s.repo.News().Delete(ctx, news.ID)
}

func (s *newsService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "type", event.Type, "error", err)
	}
}
