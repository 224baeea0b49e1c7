package handler

import (
	"fmt"

	"interview-assistant/internal/logger"
	"interview-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReportHandler serves session report downloads
type ReportHandler struct {
	service service.ReportService
}

// NewReportHandler creates a new ReportHandler instance
func NewReportHandler(service service.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// ExportReport godoc
// @Summary Download a session report
// @Description HTML is always available. PDF failures return PDF_UNAVAILABLE or PDF_EXPORT_FAILED so clients can fall back to HTML.
// @Tags reports
// @Produce html
// @Produce application/pdf
// @Param id path string true "Session ID (ULID)"
// @Param format query string false "html (default) or pdf"
// @Param candidate query string false "Candidate name for the header and filename"
// @Success 200 {file} file
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /sessions/{id}/report [get]
func (h *ReportHandler) ExportReport(c *fiber.Ctx) error {
	doc, err := h.service.ExportReport(c.UserContext(), c.Params("id"), c.Query("format"), c.Query("candidate"))
	if err != nil {
		logger.Get().Warn("Report export failed",
			zap.String("session_id", c.Params("id")),
			zap.String("format", c.Query("format")),
			zap.Error(err))
		return err
	}
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	return c.Send(doc.Body)
}
