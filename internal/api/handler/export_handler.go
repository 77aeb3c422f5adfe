package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"work-diary/backend/config"
	"work-diary/backend/internal/service"
	"work-diary/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler streams admin report downloads.
type ExportHandler struct {
	cfg       *config.Config
	exportSvc service.ExportService
}

// NewExportHandler creates the ExportHandler.
func NewExportHandler(cfg *config.Config, exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{cfg: cfg, exportSvc: exportSvc}
}

// ExportReports downloads all entries as an Excel workbook, one sheet
// per department.
// GET /api/v1/admin/reports/export
func (h *ExportHandler) ExportReports(c *gin.Context) {
	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportReports(c.Request.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoEntries):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrExportGenerateFail):
			response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		default:
			response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
