package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/repositories"
)

// Sentinel errors the handlers map onto HTTP statuses. Field-level problems
// travel as validator.ValidationErrors instead.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Portal login failures, each surfaced as a distinct message.
	ErrUnknownAccount = errors.New("no account matches that code")
	ErrNameMismatch   = errors.New("name does not match the account")
	ErrBadCode        = errors.New("code is not valid for that account")
	ErrMissingProfile = errors.New("account has no profile")
)

// AuthContext is the typed authorization capability resolved once per request
// from the session: handlers pass it into every service call instead of
// re-deriving role and tenant ad hoc.
type AuthContext struct {
	UserID        uint
	Role          models.UserRole
	InstitutionID uint
}

// IsAdmin reports whether the context can act on tenant-admin resources.
func (a AuthContext) IsAdmin() bool {
	return a.Role == models.RoleInstitutionAdmin
}

// requireAdmin is the scoped-lookup precondition shared by every admin-facing
// operation: deny, don't widen.
func requireAdmin(actx AuthContext) error {
	if !actx.IsAdmin() {
		return fmt.Errorf("%w: only institution admins can access this resource", ErrForbidden)
	}
	if actx.InstitutionID == 0 {
		return fmt.Errorf("%w: no institution is linked to this account", ErrForbidden)
	}
	return nil
}

// ServiceManager aggregates all services behind one handle, mirroring the
// Repository aggregate.
type ServiceManager interface {
	Auth() AuthService
	Course() CourseService
	Teacher() TeacherService
	Student() StudentService
	Grade() GradeService
	News() NewsService
	Dashboard() DashboardService
	Export() ExportService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// notFound converts a repository not-found into the service sentinel, keeping
// everything else intact.
func notFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
