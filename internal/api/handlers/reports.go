package handlers

import (
	"errors"
	"fmt"

	"emsys/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler() *ReportHandler {
	return &ReportHandler{reportService: services.NewReportService()}
}

// GenerateReport renders the requested report and serves it as an attachment
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	var req services.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	report, err := h.reportService.Generate(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedReportType):
			c.JSON(400, gin.H{"error": "Unsupported report type"})
		case errors.Is(err, services.ErrUnsupportedFormat):
			c.JSON(400, gin.H{"error": "Unsupported report format"})
		default:
			c.JSON(500, gin.H{"error": "Failed to generate report"})
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.Filename))
	c.Data(200, report.ContentType, report.Data)
}

// GetReportTemplates returns the report catalogue and the filter options
// the frontend can offer
func (h *ReportHandler) GetReportTemplates(c *gin.Context) {
	templates, err := h.reportService.Templates()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get report templates"})
		return
	}
	c.JSON(200, templates)
}
