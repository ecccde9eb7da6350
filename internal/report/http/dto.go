package http

import (
	"time"

	"github.com/ukk/facility-booking-backend/internal/report"
	reservationHttp "github.com/ukk/facility-booking-backend/internal/reservation/http"
	visitorHttp "github.com/ukk/facility-booking-backend/internal/visitor/http"
)

type GenerateReportRequest struct {
	Type      string `form:"type" binding:"required,oneof=visitor reservation"`
	StartDate string `form:"start_date" binding:"omitempty,calendar_date"`
	EndDate   string `form:"end_date" binding:"omitempty,calendar_date"`
	Range     string `form:"range" binding:"omitempty,oneof=today yesterday thisweek lastweek thismonth lastmonth"`
	Format    string `form:"format" binding:"omitempty,oneof=json csv"`
}

type ReportResponse struct {
	Type         string                                `json:"type"`
	StartDate    string                                `json:"start_date"`
	EndDate      string                                `json:"end_date"`
	GeneratedAt  time.Time                             `json:"generated_at"`
	Visitors     []visitorHttp.DailyCountResponse      `json:"visitors,omitempty"`
	Reservations []reservationHttp.ReservationResponse `json:"reservations,omitempty"`
	Totals       *VisitorTotals                        `json:"totals,omitempty"`
}

// VisitorTotals sums a visitor report over the whole range.
type VisitorTotals struct {
	In    int `json:"in"`
	Out   int `json:"out"`
	Total int `json:"total"`
}

func NewReportResponse(rep *report.Report) ReportResponse {
	resp := ReportResponse{
		Type:        string(rep.Type),
		StartDate:   rep.From,
		EndDate:     rep.To,
		GeneratedAt: rep.GeneratedAt,
	}

	switch rep.Type {
	case report.TypeVisitor:
		totals := &VisitorTotals{}
		resp.Visitors = make([]visitorHttp.DailyCountResponse, 0, len(rep.Visitors))
		for _, d := range rep.Visitors {
			resp.Visitors = append(resp.Visitors, visitorHttp.NewDailyCountResponse(d))
			totals.In += d.In
			totals.Out += d.Out
			totals.Total += d.Total
		}
		resp.Totals = totals
	case report.TypeReservation:
		resp.Reservations = reservationHttp.NewReservationResponses(rep.Reservations)
	}
	return resp
}
