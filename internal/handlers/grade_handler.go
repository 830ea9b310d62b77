package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edusync-platform/school-service/internal/services"
	"github.com/edusync-platform/school-service/internal/utils"
	"github.com/edusync-platform/school-service/internal/validator"
)

type GradeHandler struct {
	BaseHandler
	gradeService services.GradeService
}

func NewGradeHandler(gradeService services.GradeService, logger utils.Logger) *GradeHandler {
	return &GradeHandler{
		BaseHandler:  NewBaseHandler(logger),
		gradeService: gradeService,
	}
}

func (h *GradeHandler) ListGrades(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}

	grades, err := h.gradeService.List(c.Request.Context(), actx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Grades", grades)
}

func (h *GradeHandler) AddGrade(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	var req validator.GradeCreateRequest
	if !h.bindRequest(c, &req) {
		return
	}

	grade, err := h.gradeService.Create(c.Request.Context(), actx, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondCreated(c, "Grade recorded", gin.H{"grade": grade, "location": "/grades/"})
}
