package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edusync-platform/school-service/internal/services"
	"github.com/edusync-platform/school-service/internal/utils"
	"github.com/edusync-platform/school-service/internal/validator"
)

type StudentHandler struct {
	BaseHandler
	studentService services.StudentService
}

func NewStudentHandler(studentService services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    NewBaseHandler(logger),
		studentService: studentService,
	}
}

func (h *StudentHandler) ListStudents(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}

	students, err := h.studentService.List(c.Request.Context(), actx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Students", students)
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	student, err := h.studentService.Get(c.Request.Context(), actx, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Student", student)
}

func (h *StudentHandler) AddStudent(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	var req validator.StudentCreateRequest
	if !h.bindRequest(c, &req) {
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), actx, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondCreated(c, "Student added", gin.H{"student": student, "location": "/students/"})
}

func (h *StudentHandler) EditStudent(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	var req validator.StudentUpdateRequest
	if !h.bindRequest(c, &req) {
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), actx, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Student updated", gin.H{"student": student, "location": "/students/"})
}

func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), actx, id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Student deleted", gin.H{"location": "/students/"})
}

// StudentDashboard serves the student's own view: enrollment plus grades.
func (h *StudentHandler) StudentDashboard(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}

	dash, err := h.studentService.Dashboard(c.Request.Context(), actx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Student dashboard", dash)
}
