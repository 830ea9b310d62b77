package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/edusync-platform/school-service/internal/repositories"
)

// PostgreSQLRepository implements the aggregate Repository interface over one
// GORM handle.
type PostgreSQLRepository struct {
	db *gorm.DB

	user        repositories.UserRepository
	profile     repositories.ProfileRepository
	institution repositories.InstitutionRepository
	course      repositories.CourseRepository
	teacher     repositories.TeacherRepository
	student     repositories.StudentRepository
	grade       repositories.GradeRepository
	news        repositories.NewsRepository
}

func NewPostgreSQLRepository(db *gorm.DB) repositories.Repository {
	return &PostgreSQLRepository{
		db:          db,
		user:        NewUserPostgreSQL(db),
		profile:     NewProfilePostgreSQL(db),
		institution: NewInstitutionPostgreSQL(db),
		course:      NewCoursePostgreSQL(db),
		teacher:     NewTeacherPostgreSQL(db),
		student:     NewStudentPostgreSQL(db),
		grade:       NewGradePostgreSQL(db),
		news:        NewNewsPostgreSQL(db),
	}
}

func (r *PostgreSQLRepository) User() repositories.UserRepository               { return r.user }
func (r *PostgreSQLRepository) Profile() repositories.ProfileRepository         { return r.profile }
func (r *PostgreSQLRepository) Institution() repositories.InstitutionRepository { return r.institution }
func (r *PostgreSQLRepository) Course() repositories.CourseRepository           { return r.course }
func (r *PostgreSQLRepository) Teacher() repositories.TeacherRepository         { return r.teacher }
func (r *PostgreSQLRepository) Student() repositories.StudentRepository         { return r.student }
func (r *PostgreSQLRepository) Grade() repositories.GradeRepository             { return r.grade }
func (r *PostgreSQLRepository) News() repositories.NewsRepository               { return r.news }

// WithTransaction runs fn against a repository bound to one transaction, so a
// signup or a teacher create either lands completely or not at all.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewPostgreSQLRepository(tx))
	})
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// translate maps GORM errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicate
	default:
		return err
	}
}

// RepositoryManager implements the RepositoryManager interface.
type RepositoryManager struct {
	db   *gorm.DB
	repo repositories.Repository
}

func NewRepositoryManager(db *gorm.DB) repositories.RepositoryManager {
	return &RepositoryManager{db: db}
}

func (rm *RepositoryManager) Initialize() error {
	if rm.db == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := rm.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	rm.repo = NewPostgreSQLRepository(rm.db)
	return nil
}

func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return rm.repo.Ping(ctx)
}

func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}
	return rm.repo.Close()
}
