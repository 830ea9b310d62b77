package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edusync-platform/school-service/internal/repositories"
	"github.com/edusync-platform/school-service/internal/utils"
)

type HealthHandler struct {
	BaseHandler
	repo repositories.Repository
}

func NewHealthHandler(repo repositories.Repository, logger utils.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: NewBaseHandler(logger),
		repo:        repo,
	}
}

// Health reports liveness plus database reachability.
func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	code := http.StatusOK
	if err := h.repo.Ping(c.Request.Context()); err != nil {
		h.LogError(c, "health check failed", err)
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now(),
	})
}
