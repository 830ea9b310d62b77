package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/edusync-platform/school-service/internal/events"
	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/repositories"
	"github.com/edusync-platform/school-service/internal/validator"
)

// Dashboard locations by role; login responses carry these so the client
// lands on the right page.
const (
	LocationAdminDashboard   = "/dashboard/"
	LocationTeacherDashboard = "/teacher/dashboard/"
	LocationStudentDashboard = "/student/dashboard/"
)

type LoginResult struct {
	User     *models.User    `json:"user"`
	Profile  *models.Profile `json:"profile"`
	Location string          `json:"location"`
}

type SignupResult struct {
	User        *models.User        `json:"user"`
	Institution *models.Institution `json:"institution"`
	Location    string              `json:"location"`
}

type AuthService interface {
	// Signup registers a tenant: admin account, profile and institution are
	// created atomically.
	Signup(ctx context.Context, req *validator.SignupRequest) (*SignupResult, error)

	// Login is the single unified authentication path; the response dispatches
	// by role.
	Login(ctx context.Context, req *validator.LoginRequest) (*LoginResult, error)

	// PortalLogin switches an institution-admin session into one of its
	// teacher or student accounts using display name + id-derived code.
	PortalLogin(ctx context.Context, actx AuthContext, role models.UserRole, req *validator.PortalLoginRequest) (*LoginResult, error)

	// ChangePassword rotates a credential and clears the initial-credential
	// flag.
	ChangePassword(ctx context.Context, userID uint, req *validator.ChangePasswordRequest) error
}

type authService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: v,
	}
}

func (s *authService) Signup(ctx context.Context, req *validator.SignupRequest) (*SignupResult, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	if exists, err := s.repo.Institution().ExistsByName(ctx, req.InstitutionName); err != nil {
		return nil, err
	} else if exists {
		return nil, validator.FieldError("institution_name", "an institution with this name already exists")
	}
	if exists, err := s.repo.User().ExistsByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, validator.FieldError("username", "username already exists, please choose a different one")
	}
	if exists, err := s.repo.User().ExistsByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, validator.FieldError("email", "email already registered, please use a different one")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	email := req.Email
	user := &models.User{
		Username:     req.Username,
		Email:        &email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	inst := &models.Institution{
		Name:            req.InstitutionName,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		EstablishedYear: req.EstablishedYear,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().Create(ctx, user); err != nil {
			return err
		}
		inst.AdminID = user.ID
		if err := tx.Institution().Create(ctx, inst); err != nil {
			return err
		}
		return tx.Profile().Create(ctx, &models.Profile{
			UserID:        user.ID,
			Role:          models.RoleInstitutionAdmin,
			InstitutionID: inst.ID,
			Phone:         req.Phone,
		})
	})
	if err != nil {
		// Concurrent signups can still lose the race after the pre-checks;
		// report the constraint hit as a field error like any other conflict.
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, validator.FieldError("institution_name", "an institution with this name already exists")
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.publish(ctx, events.Event{
		Type:          events.TypeInstitutionRegistered,
		InstitutionID: inst.ID,
		Payload:       map[string]any{"name": inst.Name},
	})

	s.logger.Info("institution registered", "institution_id", inst.ID, "name", inst.Name)

	return &SignupResult{User: user, Institution: inst, Location: LocationAdminDashboard}, nil
}

func (s *authService) Login(ctx context.Context, req *validator.LoginRequest) (*LoginResult, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	user, err := s.repo.User().GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.repo.Profile().GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMissingProfile
		}
		return nil, err
	}

	return &LoginResult{
		User:     user,
		Profile:  profile,
		Location: dashboardLocation(profile.Role),
	}, nil
}

func (s *authService) PortalLogin(ctx context.Context, actx AuthContext, role models.UserRole, req *validator.PortalLoginRequest) (*LoginResult, error) {
	if err := requireAdmin(actx); err != nil {
		return nil, err
	}
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	var userID, institutionID uint
	switch role {
	case models.RoleTeacher:
		teacher, err := s.repo.Teacher().GetByEmployeeID(ctx, req.Code)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrUnknownAccount
			}
			return nil, err
		}
		userID, institutionID = teacher.UserID, teacher.InstitutionID
	case models.RoleStudent:
		student, err := s.repo.Student().GetByStudentID(ctx, req.Code)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrUnknownAccount
			}
			return nil, err
		}
		userID, institutionID = student.UserID, student.InstitutionID
	default:
		return nil, fmt.Errorf("%w: portal login is only available for teachers and students", ErrForbidden)
	}

	// The admin can only switch into accounts of their own institution.
	if institutionID != actx.InstitutionID {
		return nil, ErrUnknownAccount
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}

	name := normalizeName(req.Name)
	if name != normalizeName(user.FullName()) && name != normalizeName(user.Username) {
		return nil, ErrNameMismatch
	}

	// The code doubles as the password until the user rotates it.
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Code)) != nil {
		return nil, ErrBadCode
	}

	profile, err := s.repo.Profile().GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMissingProfile
		}
		return nil, err
	}

	return &LoginResult{
		User:     user,
		Profile:  profile,
		Location: dashboardLocation(profile.Role),
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uint, req *validator.ChangePasswordRequest) error {
	if errs := s.validator.Validate(req); errs != nil {
		return errs
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		return notFound(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.MustChangePassword = false
	return s.repo.User().Update(ctx, user)
}

func (s *authService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "type", event.Type, "error", err)
	}
}

func dashboardLocation(role models.UserRole) string {
	switch role {
	case models.RoleTeacher:
		return LocationTeacherDashboard
	case models.RoleStudent:
		return LocationStudentDashboard
	default:
		return LocationAdminDashboard
	}
}

// normalizeName lowercases and collapses whitespace so "  Teacher  3 "
// matches "teacher 3".
func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// deriveUsername builds the deterministic initial username, appending a
// numeric suffix until it is free.
func deriveUsername(ctx context.Context, users repositories.UserRepository, prefix, naturalID string) (string, error) {
	base := prefix + "_" + naturalID
	username := base
	for suffix := 1; ; suffix++ {
		exists, err := users.ExistsByUsername(ctx, username)
		if err != nil {
			return "", err
		}
		if !exists {
			return username, nil
		}
		username = fmt.Sprintf("%s%d", base, suffix)
	}
}

// splitFullName splits a display name into first and last the way account
// records store them.
func splitFullName(full string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(full))
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
