package http

import (
	"time"

	"github.com/ukk/facility-booking-backend/internal/pkg/request"
	"github.com/ukk/facility-booking-backend/internal/reservation"
)

type CreateReservationRequest struct {
	PICName     string `json:"pic_name" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Date        string `json:"date" binding:"required,calendar_date"`
	StartTime   string `json:"start_time" binding:"required,clock_time"`
	EndTime     string `json:"end_time" binding:"required,clock_time"`
}

type RejectReservationRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type ListReservationsRequest struct {
	request.ListParams
	Mine     bool   `form:"mine"`
	Status   string `form:"status" binding:"omitempty,oneof=pending rejected scheduled active completed"`
	DateFrom string `form:"date_from" binding:"omitempty,calendar_date"`
	DateTo   string `form:"date_to" binding:"omitempty,calendar_date"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=date created_at status"`
}

type ReservationResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name"`
	PICName         string    `json:"pic_name"`
	Description     string    `json:"description"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type RefreshResponse struct {
	Updated int `json:"updated"`
}

func NewReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		UserName:        r.UserName,
		PICName:         r.PICName,
		Description:     r.Description,
		Date:            r.Date,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Status:          string(r.Status),
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func NewReservationResponses(list []*reservation.Reservation) []ReservationResponse {
	items := make([]ReservationResponse, 0, len(list))
	for _, r := range list {
		items = append(items, NewReservationResponse(r))
	}
	return items
}
