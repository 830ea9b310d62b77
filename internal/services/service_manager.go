package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/edusync-platform/school-service/internal/events"
	"github.com/edusync-platform/school-service/internal/repositories"
	"github.com/edusync-platform/school-service/internal/validator"
)

// serviceManager implements ServiceManager
type serviceManager struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator

	authService      AuthService
	courseService    CourseService
	teacherService   TeacherService
	studentService   StudentService
	gradeService     GradeService
	newsService      NewsService
	dashboardService DashboardService
	exportService    ExportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies wired.
func NewServiceManager(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) ServiceManager {
	return &serviceManager{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

// Initialize constructs every service. Must be called before the getters.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.shutdown {
		return fmt.Errorf("service manager has been shut down")
	}

	sm.logger.Info("Initializing service manager")

	sm.authService = NewAuthService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.courseService = NewCourseService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.teacherService = NewTeacherService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.studentService = NewStudentService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.gradeService = NewGradeService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.newsService = NewNewsService(sm.repo, sm.publisher, sm.logger, sm.validator)
	sm.dashboardService = NewDashboardService(sm.repo, sm.logger)
	sm.exportService = NewExportService(sm.repo, sm.logger)

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.publisher.Close(); err != nil {
		sm.logger.Error("failed to close event publisher", "error", err)
	}

	sm.shutdown = true
	sm.initialized = false
	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.authService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.courseService
}

func (sm *serviceManager) Teacher() TeacherService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.teacherService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.studentService
}

func (sm *serviceManager) Grade() GradeService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.gradeService
}

func (sm *serviceManager) News() NewsService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.newsService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.dashboardService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.exportService
}

func (sm *serviceManager) mustBeInitialized() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}
