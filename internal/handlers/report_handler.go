package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KSRM-F-2025/feedback-service/internal/services"
	"github.com/KSRM-F-2025/feedback-service/internal/utils"
)

type ReportHandler struct {
	BaseHandler
	service services.ReportService
}

func NewReportHandler(service services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== REPORT ENDPOINTS =====

// ExportReport streams a generated report as a download
// @Summary Export report
// @Description Generate a report (complete, faculty, summary or departments) as json, csv or xlsx
// @Tags reports
// @Produce json
// @Param type query string false "Report type: complete, faculty, summary or departments (default: complete)"
// @Param format query string false "Report format: json, csv or xlsx (default: json)"
// @Success 200 {file} file "Report file"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /reports/export [get]
func (h *ReportHandler) ExportReport(c *gin.Context) {
	reportType := services.ReportType(c.DefaultQuery("type", string(services.ReportComplete)))
	format := services.ReportFormat(c.DefaultQuery("format", string(services.FormatJSON)))

	h.LogRequest(c, "Exporting report", "type", reportType, "format", format)

	file, err := h.service.Export(c.Request.Context(), reportType, format)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
