package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ukk/facility-booking-backend/internal/auth"
	"github.com/ukk/facility-booking-backend/internal/dashboard"
	"github.com/ukk/facility-booking-backend/internal/pkg/response"
	"github.com/ukk/facility-booking-backend/internal/reservation"
)

type DashboardHandler struct {
	service dashboard.Service
}

func NewHandler(service dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	actor := reservation.Actor{UserID: auth.GetUserID(c), Role: auth.GetRole(c)}

	summary, err := h.service.Summary(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSummaryResponse(summary))
}
