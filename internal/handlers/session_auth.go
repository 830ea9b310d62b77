package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/repositories"
	"github.com/edusync-platform/school-service/internal/services"
	"github.com/edusync-platform/school-service/internal/sessions"
	"github.com/edusync-platform/school-service/internal/utils"
)

const (
	// ContextAuthKey holds the resolved services.AuthContext in the gin context.
	ContextAuthKey = "auth_context"
	// ContextSessionKey holds the raw session, for logout.
	ContextSessionKey = "session"
)

// SessionAuthMiddleware resolves the session cookie into a typed AuthContext
// once per request. Everything downstream trusts that context, never the raw
// cookie.
type SessionAuthMiddleware struct {
	store      sessions.Store
	users      repositories.UserRepository
	cookieName string
	logger     utils.Logger
}

func NewSessionAuthMiddleware(store sessions.Store, users repositories.UserRepository, cookieName string, logger utils.Logger) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		store:      store,
		users:      users,
		cookieName: cookieName,
		logger:     logger,
	}
}

// AuthMiddleware rejects requests without a valid session and stores the
// AuthContext for the handlers.
func (m *SessionAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			m.unauthorized(c, "Authentication required")
			return
		}

		sess, err := m.store.Get(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, sessions.ErrNotFound) {
				m.logger.Error("session lookup failed", "error", err)
			}
			m.unauthorized(c, "Session is invalid or expired")
			return
		}

		c.Set(ContextAuthKey, services.AuthContext{
			UserID:        sess.UserID,
			Role:          sess.Role,
			InstitutionID: sess.InstitutionID,
		})
		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

// RequireRoleMiddleware allows only the given roles past.
func (m *SessionAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ContextAuthKey)
		if !exists {
			m.forbidden(c, "No session context")
			return
		}
		actx := v.(services.AuthContext)
		for _, role := range roles {
			if actx.Role == role {
				c.Next()
				return
			}
		}
		m.forbidden(c, "Insufficient role for this resource")
	}
}

// RequireRotatedPassword blocks accounts still on their initial credential,
// pointing them at the change-password operation.
func (m *SessionAuthMiddleware) RequireRotatedPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ContextAuthKey)
		if !exists {
			m.forbidden(c, "No session context")
			return
		}
		actx := v.(services.AuthContext)

		user, err := m.users.GetByID(c.Request.Context(), actx.UserID)
		if err != nil {
			m.unauthorized(c, "Account no longer exists")
			return
		}
		if user.MustChangePassword {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Error:     "password_rotation_required",
				Message:   "Change your initial password before continuing",
				Details:   gin.H{"location": "/change-password/"},
				Timestamp: time.Now(),
			})
			return
		}
		c.Next()
	}
}

func (m *SessionAuthMiddleware) unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:     "unauthorized",
		Message:   msg,
		Timestamp: time.Now(),
	})
}

func (m *SessionAuthMiddleware) forbidden(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
		Error:     "forbidden",
		Message:   msg,
		Timestamp: time.Now(),
	})
}
