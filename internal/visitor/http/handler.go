package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ukk/facility-booking-backend/internal/pkg/response"
	"github.com/ukk/facility-booking-backend/internal/visitor"
)

type VisitorHandler struct {
	service visitor.Service
}

func NewHandler(service visitor.Service) *VisitorHandler {
	return &VisitorHandler{service: service}
}

// Pulse records one sensor event.
func (h *VisitorHandler) Pulse(c *gin.Context) {
	var req PulseRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	l, err := h.service.Record(c.Request.Context(), req.Direction)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, PulseResponse{
		ID:        l.ID,
		Direction: string(l.Direction),
		Timestamp: l.Timestamp,
	})
}

// Today returns today's visitor counts.
func (h *VisitorHandler) Today(c *gin.Context) {
	today, err := h.service.Today(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewDailyCountResponse(*today))
}

// Historical returns one entry per day for the last ?days= days.
func (h *VisitorHandler) Historical(c *gin.Context) {
	var req HistoricalRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	days, err := h.service.History(c.Request.Context(), req.Days)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewHistoricalResponse(days))
}
