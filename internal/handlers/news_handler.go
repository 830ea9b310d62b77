package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edusync-platform/school-service/internal/services"
	"github.com/edusync-platform/school-service/internal/utils"
	"github.com/edusync-platform/school-service/internal/validator"
)

type NewsHandler struct {
	BaseHandler
	newsService services.NewsService
}

func NewNewsHandler(newsService services.NewsService, logger utils.Logger) *NewsHandler {
	return &NewsHandler{
		BaseHandler: NewBaseHandler(logger),
		newsService: newsService,
	}
}

func (h *NewsHandler) ListNews(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}

	news, err := h.newsService.List(c.Request.Context(), actx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "News", news)
}

func (h *NewsHandler) AddNews(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	var req validator.NewsCreateRequest
	if !h.bindRequest(c, &req) {
		return
	}

	news, err := h.newsService.Create(c.Request.Context(), actx, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondCreated(c, "News posted", gin.H{"news": news, "location": "/dashboard/"})
}

func (h *NewsHandler) EditNews(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	var req validator.NewsUpdateRequest
	if !h.bindRequest(c, &req) {
		return
	}

	news, err := h.newsService.Update(c.Request.Context(), actx, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "News updated", gin.H{"news": news, "location": "/dashboard/"})
}

func (h *NewsHandler) DeleteNews(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.newsService.Delete(c.Request.Context(), actx, id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondOK(c, "News deleted", gin.H{"location": "/dashboard/"})
}
