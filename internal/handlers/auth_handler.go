package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/services"
	"github.com/edusync-platform/school-service/internal/sessions"
	"github.com/edusync-platform/school-service/internal/utils"
	"github.com/edusync-platform/school-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	authService  services.AuthService
	sessionStore sessions.Store
	cookieName   string
	cookieMaxAge int
	cookieSecure bool
}

func NewAuthHandler(
	authService services.AuthService,
	sessionStore sessions.Store,
	cookieName string,
	cookieMaxAge int,
	cookieSecure bool,
	logger utils.Logger,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  NewBaseHandler(logger),
		authService:  authService,
		sessionStore: sessionStore,
		cookieName:   cookieName,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
	}
}

// Signup registers an institution and logs the admin straight in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req validator.SignupRequest
	if !h.bindRequest(c, &req) {
		return
	}

	res, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if err := h.startSession(c, res.User.ID, models.RoleInstitutionAdmin, res.Institution.ID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Institution signed up", "institution_id", res.Institution.ID)
	h.respondCreated(c, "Account created", res)
}

// Login is the single unified login; the response carries the role-specific
// dashboard location.
func (h *AuthHandler) Login(c *gin.Context) {
	var req validator.LoginRequest
	if !h.bindRequest(c, &req) {
		return
	}

	res, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if err := h.startSession(c, res.User.ID, res.Profile.Role, res.Profile.InstitutionID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "Logged in", res)
}

// Logout destroys the session record and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if v, exists := c.Get(ContextSessionKey); exists {
		sess := v.(*sessions.Session)
		if err := h.sessionStore.Delete(c.Request.Context(), sess.Token); err != nil {
			h.LogError(c, "failed to delete session", err)
		}
	}
	h.clearCookie(c)
	h.respondOK(c, "Logged out", gin.H{"location": "/login/"})
}

// TeacherPortalLogin switches an admin session into one of its teacher
// accounts.
func (h *AuthHandler) TeacherPortalLogin(c *gin.Context) {
	h.portalLogin(c, models.RoleTeacher)
}

// StudentPortalLogin switches an admin session into one of its student
// accounts.
func (h *AuthHandler) StudentPortalLogin(c *gin.Context) {
	h.portalLogin(c, models.RoleStudent)
}

func (h *AuthHandler) portalLogin(c *gin.Context, role models.UserRole) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	var req validator.PortalLoginRequest
	if !h.bindRequest(c, &req) {
		return
	}

	res, err := h.authService.PortalLogin(c.Request.Context(), actx, role, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	// The admin session is replaced by the target user's session.
	if v, exists := c.Get(ContextSessionKey); exists {
		sess := v.(*sessions.Session)
		if err := h.sessionStore.Delete(c.Request.Context(), sess.Token); err != nil {
			h.LogError(c, "failed to delete admin session", err)
		}
	}
	if err := h.startSession(c, res.User.ID, res.Profile.Role, res.Profile.InstitutionID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Portal login", "target_user_id", res.User.ID, "role", role)
	h.respondOK(c, "Logged in", res)
}

// ChangePassword rotates the caller's credential.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	var req validator.ChangePasswordRequest
	if !h.bindRequest(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), actx.UserID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.respondOK(c, "Password changed", nil)
}

func (h *AuthHandler) startSession(c *gin.Context, userID uint, role models.UserRole, institutionID uint) error {
	sess, err := h.sessionStore.Create(c.Request.Context(), userID, role, institutionID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, sess.Token, h.cookieMaxAge, "/", "", h.cookieSecure, true)
	return nil
}

func (h *AuthHandler) clearCookie(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
}
