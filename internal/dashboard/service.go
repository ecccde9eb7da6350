package dashboard

import (
	"context"

	"github.com/ukk/facility-booking-backend/internal/pkg/clock"
	"github.com/ukk/facility-booking-backend/internal/pkg/request"
	"github.com/ukk/facility-booking-backend/internal/reservation"
	"github.com/ukk/facility-booking-backend/internal/visitor"
)

// Summary is the dashboard read model.
type Summary struct {
	Date              string
	StatusCounts      map[reservation.Status]int
	Visitors          visitor.DailyCount
	TodayReservations []*reservation.Reservation
}

type Service interface {
	Summary(ctx context.Context, actor reservation.Actor) (*Summary, error)
}

type service struct {
	reservations reservation.Service
	visitors     visitor.Service
	clock        clock.Clock
}

func NewService(reservations reservation.Service, visitors visitor.Service, clk clock.Clock) Service {
	if clk == nil {
		clk = clock.System()
	}
	return &service{reservations: reservations, visitors: visitors, clock: clk}
}

// Summary reports status counts across all reservations. Today's reservation
// list is limited to the actor's own unless the actor is an admin.
func (s *service) Summary(ctx context.Context, actor reservation.Actor) (*Summary, error) {
	today := s.clock.Now().Format(request.DateLayout)

	counts, err := s.reservations.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	filter := reservation.Filter{DateFrom: today, DateTo: today, SortOrder: "ASC"}
	if !actor.IsAdmin() {
		filter.UserID = actor.UserID
	}
	list, _, err := s.reservations.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	visitors, err := s.visitors.Today(ctx)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Date:              today,
		StatusCounts:      counts,
		Visitors:          *visitors,
		TodayReservations: list,
	}, nil
}
