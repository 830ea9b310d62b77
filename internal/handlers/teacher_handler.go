package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edusync-platform/school-service/internal/services"
	"github.com/edusync-platform/school-service/internal/utils"
	"github.com/edusync-platform/school-service/internal/validator"
)

type TeacherHandler struct {
	BaseHandler
	teacherService services.TeacherService
}

func NewTeacherHandler(teacherService services.TeacherService, logger utils.Logger) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler:    NewBaseHandler(logger),
		teacherService: teacherService,
	}
}

func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}

	teachers, err := h.teacherService.List(c.Request.Context(), actx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Teachers", teachers)
}

func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	teacher, err := h.teacherService.Get(c.Request.Context(), actx, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Teacher", teacher)
}

func (h *TeacherHandler) AddTeacher(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	var req validator.TeacherCreateRequest
	if !h.bindRequest(c, &req) {
		return
	}

	teacher, err := h.teacherService.Create(c.Request.Context(), actx, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondCreated(c, "Teacher added", gin.H{"teacher": teacher, "location": "/teachers/"})
}

func (h *TeacherHandler) EditTeacher(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	var req validator.TeacherUpdateRequest
	if !h.bindRequest(c, &req) {
		return
	}

	teacher, err := h.teacherService.Update(c.Request.Context(), actx, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Teacher updated", gin.H{"teacher": teacher, "location": "/teachers/"})
}

func (h *TeacherHandler) DeleteTeacher(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.teacherService.Delete(c.Request.Context(), actx, id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Teacher deleted", gin.H{"location": "/teachers/"})
}

// TeacherDashboard serves the teacher's own view: profile plus assigned
// courses.
func (h *TeacherHandler) TeacherDashboard(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}

	dash, err := h.teacherService.Dashboard(c.Request.Context(), actx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Teacher dashboard", dash)
}

// TeacherStudents lists the distinct students enrolled in the teacher's
// courses.
func (h *TeacherHandler) TeacherStudents(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}

	students, err := h.teacherService.Students(c.Request.Context(), actx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Students", students)
}
