package repositories

import "context"

// Repository aggregates all entity repositories behind one handle, the same
// shape the services receive. WithTransaction runs fn against a repository
// bound to a single database transaction.
type Repository interface {
	User() UserRepository
	Profile() ProfileRepository
	Institution() InstitutionRepository
	Course() CourseRepository
	Teacher() TeacherRepository
	Student() StudentRepository
	Grade() GradeRepository
	News() NewsRepository

	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns the Repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
