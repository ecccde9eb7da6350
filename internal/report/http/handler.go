package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ukk/facility-booking-backend/internal/pkg/response"
	"github.com/ukk/facility-booking-backend/internal/report"
)

type ReportHandler struct {
	service report.Service
}

func NewHandler(service report.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// Generate builds a visitor or reservation report as JSON or a CSV download.
// Access Control: Admin only.
func (h *ReportHandler) Generate(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	rep, err := h.service.Generate(c.Request.Context(), report.Request{
		Type:  report.Type(req.Type),
		From:  req.StartDate,
		To:    req.EndDate,
		Range: req.Range,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if req.Format != "csv" {
		c.JSON(http.StatusOK, NewReportResponse(rep))
		return
	}

	// Render into a buffer first so a write error can still produce a JSON error.
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, rep); err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.Filename(rep)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
