package http

import (
	"github.com/ukk/facility-booking-backend/internal/dashboard"
	"github.com/ukk/facility-booking-backend/internal/reservation"
	reservationHttp "github.com/ukk/facility-booking-backend/internal/reservation/http"
	visitorHttp "github.com/ukk/facility-booking-backend/internal/visitor/http"
)

type SummaryResponse struct {
	Date              string                                `json:"date"`
	StatusCounts      map[string]int                        `json:"status_counts"`
	Visitors          visitorHttp.DailyCountResponse        `json:"visitors"`
	TodayReservations []reservationHttp.ReservationResponse `json:"today_reservations"`
}

func NewSummaryResponse(s *dashboard.Summary) SummaryResponse {
	counts := make(map[string]int, len(reservation.AllStatuses))
	for _, st := range reservation.AllStatuses {
		counts[string(st)] = s.StatusCounts[st]
	}
	return SummaryResponse{
		Date:              s.Date,
		StatusCounts:      counts,
		Visitors:          visitorHttp.NewDailyCountResponse(s.Visitors),
		TodayReservations: reservationHttp.NewReservationResponses(s.TodayReservations),
	}
}
