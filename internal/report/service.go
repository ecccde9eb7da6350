package report

import (
	"context"
	"time"

	"github.com/ukk/facility-booking-backend/internal/logger"
	"github.com/ukk/facility-booking-backend/internal/pkg/clock"
	"github.com/ukk/facility-booking-backend/internal/pkg/request"
	"github.com/ukk/facility-booking-backend/internal/reservation"
	"github.com/ukk/facility-booking-backend/internal/visitor"
)

type Service interface {
	Generate(ctx context.Context, req Request) (*Report, error)
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

func (s *service) Generate(ctx context.Context, req Request) (*Report, error) {
	if req.Type != TypeVisitor && req.Type != TypeReservation {
		return nil, ErrInvalidType
	}
	now := s.clock.Now()

	from, to := req.From, req.To
	if req.Range != "" {
		var err error
		from, to, err = ResolveRange(req.Range, now)
		if err != nil {
			return nil, err
		}
	}
	if from == "" || to == "" {
		return nil, ErrMissingDates
	}
	if !request.IsDate(from) || !request.IsDate(to) {
		return nil, ErrDateFormat
	}
	// Lexical order equals chronological order for YYYY-MM-DD.
	if from > to {
		return nil, ErrInvalidDates
	}

	rep := &Report{Type: req.Type, From: from, To: to, GeneratedAt: now}

	switch req.Type {
	case TypeVisitor:
		days, err := s.visitors.Range(ctx, from, to)
		if err != nil {
			return nil, err
		}
		rep.Visitors = days
	case TypeReservation:
		list, _, err := s.reservations.List(ctx, reservation.Filter{
			DateFrom:  from,
			DateTo:    to,
			SortOrder: "ASC",
		})
		if err != nil {
			return nil, err
		}
		rep.Reservations = list
	default:
		return nil, ErrInvalidType
	}

	logger.InfoContext(ctx, "report generated", "type", rep.Type, "from", from, "to", to)
	return rep, nil
}

// ResolveRange turns a quick range name into inclusive dates relative to now.
// Weeks start on Monday.
func ResolveRange(name string, now time.Time) (string, string, error) {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	sinceMonday := (int(today.Weekday()) + 6) % 7

	var from, to time.Time
	switch name {
	case RangeToday:
		from, to = today, today
	case RangeYesterday:
		from = today.AddDate(0, 0, -1)
		to = from
	case RangeThisWeek:
		from, to = today.AddDate(0, 0, -sinceMonday), today
	case RangeLastWeek:
		// Monday through Sunday, not the Sunday-anchored week the old web client used.
		from = today.AddDate(0, 0, -sinceMonday-7)
		to = from.AddDate(0, 0, 6)
	case RangeThisMonth:
		from, to = time.Date(y, m, 1, 0, 0, 0, 0, now.Location()), today
	case RangeLastMonth:
		firstOfMonth := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
		from, to = firstOfMonth.AddDate(0, -1, 0), firstOfMonth.AddDate(0, 0, -1)
	default:
		return "", "", ErrInvalidRange
	}
	return from.Format(request.DateLayout), to.Format(request.DateLayout), nil
}
