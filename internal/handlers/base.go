package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edusync-platform/school-service/internal/models"
	"github.com/edusync-platform/school-service/internal/services"
	"github.com/edusync-platform/school-service/internal/utils"
	"github.com/edusync-platform/school-service/internal/validator"
)

// BaseHandler carries the cross-cutting helpers every handler embeds.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, msg string, err error, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Error(msg, append(args, "error", err)...)
}

// parseIDParam parses a numeric path parameter; on failure it writes the 400
// itself and returns 0.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) uint {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "bad_request",
			Message:   "Invalid " + name + " parameter",
			Timestamp: time.Now(),
		})
		return 0
	}
	return uint(id)
}

// bindRequest binds a form-encoded or JSON body into req, writing the 400 on
// failure.
func (h *BaseHandler) bindRequest(c *gin.Context, req any) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "bad_request",
			Message:   "Invalid request payload",
			Details:   err.Error(),
			Timestamp: time.Now(),
		})
		return false
	}
	return true
}

// authContext returns the AuthContext the session middleware resolved.
// Missing context is a 403, never a widened query.
func (h *BaseHandler) authContext(c *gin.Context) (services.AuthContext, bool) {
	v, exists := c.Get(ContextAuthKey)
	if !exists {
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:     "forbidden",
			Message:   "No institution is linked to this session",
			Timestamp: time.Now(),
		})
		return services.AuthContext{}, false
	}
	return v.(services.AuthContext), true
}

// handleServiceError maps service errors onto HTTP statuses: field-level
// validation problems become 400 payloads, sentinels their natural status.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]models.ValidationErrorResponse, 0, len(verrs))
		for _, ve := range verrs {
			out = append(out, models.ValidationErrorResponse{Field: ve.Field, Message: ve.Message})
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:            "validation_failed",
			Message:          "Validation failed",
			ValidationErrors: out,
			Timestamp:        time.Now(),
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:     "not_found",
			Message:   "Resource not found",
			Timestamp: time.Now(),
		})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse{
			Error:     "forbidden",
			Message:   err.Error(),
			Timestamp: time.Now(),
		})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUnknownAccount),
		errors.Is(err, services.ErrNameMismatch),
		errors.Is(err, services.ErrBadCode),
		errors.Is(err, services.ErrMissingProfile):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:     "unauthorized",
			Message:   err.Error(),
			Timestamp: time.Now(),
		})
	default:
		h.LogError(c, "internal error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "internal_error",
			Message:   "Something went wrong, please try again",
			Timestamp: time.Now(),
		})
	}
}

func (h *BaseHandler) respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, models.SuccessResponse{
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func (h *BaseHandler) respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}
