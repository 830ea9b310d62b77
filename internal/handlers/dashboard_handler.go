package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edusync-platform/school-service/internal/services"
	"github.com/edusync-platform/school-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
	}
}

// AdminDashboard is the institution admin landing view.
func (h *DashboardHandler) AdminDashboard(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}

	dash, err := h.dashboardService.Admin(c.Request.Context(), actx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Dashboard", dash)
}
