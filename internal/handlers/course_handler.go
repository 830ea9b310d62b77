package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edusync-platform/school-service/internal/services"
	"github.com/edusync-platform/school-service/internal/utils"
	"github.com/edusync-platform/school-service/internal/validator"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseService: courseService,
	}
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}

	courses, err := h.courseService.List(c.Request.Context(), actx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Courses", courses)
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	detail, err := h.courseService.Get(c.Request.Context(), actx, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Course", detail)
}

func (h *CourseHandler) AddCourse(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	var req validator.CourseCreateRequest
	if !h.bindRequest(c, &req) {
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), actx, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Course added", "course_id", course.ID, "code", course.Code)
	h.respondCreated(c, "Course added", gin.H{"course": course, "location": "/courses/"})
}

func (h *CourseHandler) EditCourse(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	var req validator.CourseUpdateRequest
	if !h.bindRequest(c, &req) {
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), actx, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Course updated", gin.H{"course": course, "location": "/courses/"})
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), actx, id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "Course deleted", gin.H{"location": "/courses/"})
}
