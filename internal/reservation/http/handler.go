package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ukk/facility-booking-backend/internal/auth"
	"github.com/ukk/facility-booking-backend/internal/pkg/request"
	"github.com/ukk/facility-booking-backend/internal/pkg/response"
	"github.com/ukk/facility-booking-backend/internal/reservation"
)

type ReservationHandler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func actorFrom(c *gin.Context) reservation.Actor {
	return reservation.Actor{UserID: auth.GetUserID(c), Role: auth.GetRole(c)}
}

// List returns reservations after refreshing time-derived statuses.
// Non-admins only ever see their own reservations.
func (h *ReservationHandler) List(c *gin.Context) {
	var req ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	actor := actorFrom(c)
	filter := reservation.Filter{
		Status:    reservation.Status(req.Status),
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if req.Mine || !actor.IsAdmin() {
		filter.UserID = actor.UserID
	}

	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(NewReservationResponses(list), filter.Page, filter.PageSize, total))
}

func (h *ReservationHandler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	res, err := h.service.Get(c.Request.Context(), actorFrom(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

func (h *ReservationHandler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	res, err := h.service.Submit(c.Request.Context(), actorFrom(c), reservation.SubmitRequest{
		PICName:     req.PICName,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReservationResponse(res))
}

// Approve moves a pending reservation to its time-derived status.
// Access Control: Admin only.
func (h *ReservationHandler) Approve(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	res, err := h.service.Approve(c.Request.Context(), actorFrom(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

// Reject stores the rejection with an optional reason.
// Access Control: Admin only.
func (h *ReservationHandler) Reject(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body RejectReservationRequest
	// An empty body means "use the default reason".
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			response.BadRequest(c, "invalid body", err)
			return
		}
	}

	res, err := h.service.Reject(c.Request.Context(), actorFrom(c), uri.ID, body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

// Delete removes a reservation permanently.
// Access Control: Admin only.
func (h *ReservationHandler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), actorFrom(c), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Refresh runs the status sweep on demand.
// Access Control: Admin only.
func (h *ReservationHandler) Refresh(c *gin.Context) {
	n, err := h.service.RefreshAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{Updated: n})
}
