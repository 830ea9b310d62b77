package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/edusync-platform/school-service/internal/services"
	"github.com/edusync-platform/school-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	BaseHandler
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler:   NewBaseHandler(logger),
		exportService: exportService,
	}
}

// ExportStudents streams the institution's student roster as a workbook.
func (h *ExportHandler) ExportStudents(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}

	f, err := h.exportService.StudentRoster(c.Request.Context(), actx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.stream(c, f, "students.xlsx")
}

// ExportGrades streams the institution's grade sheet as a workbook.
func (h *ExportHandler) ExportGrades(c *gin.Context) {
	actx, ok := h.authContext(c)
	if !ok {
		return
	}

	f, err := h.exportService.GradeSheet(c.Request.Context(), actx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.stream(c, f, "grades.xlsx")
}

func (h *ExportHandler) stream(c *gin.Context, f *excelize.File, filename string) {
	defer f.Close()

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		h.LogError(c, "failed to stream workbook", err, "filename", filename)
	}
}
