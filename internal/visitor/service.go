package visitor

import (
	"context"
	"time"

	"github.com/ukk/facility-booking-backend/internal/logger"
	"github.com/ukk/facility-booking-backend/internal/pkg/clock"
	"github.com/ukk/facility-booking-backend/internal/pkg/request"
)

type Service interface {
	Record(ctx context.Context, direction string) (*Log, error)
	Today(ctx context.Context) (*DailyCount, error)

	// History returns the last days days ending today, oldest first. Zero means DefaultHistoryDays.
	History(ctx context.Context, days int) ([]DailyCount, error)

	// Range returns one entry per day between from and to inclusive (YYYY-MM-DD).
	Range(ctx context.Context, from, to string) ([]DailyCount, error)
}

type service struct {
	repo  Repository
	clock clock.Clock
}

func NewService(repo Repository, clk clock.Clock) Service {
	if clk == nil {
		clk = clock.System()
	}
	return &service{repo: repo, clock: clk}
}

func (s *service) Record(ctx context.Context, direction string) (*Log, error) {
	dir, err := ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	l, err := s.repo.Insert(ctx, dir, s.clock.Now())
	if err != nil {
		return nil, err
	}
	logger.Debug("visitor pulse recorded", "id", l.ID, "direction", l.Direction)
	return l, nil
}

func (s *service) Today(ctx context.Context) (*DailyCount, error) {
	counts, err := s.History(ctx, 1)
	if err != nil {
		return nil, err
	}
	return &counts[0], nil
}

func (s *service) History(ctx context.Context, days int) ([]DailyCount, error) {
	if days == 0 {
		days = DefaultHistoryDays
	}
	if days < 1 || days > MaxHistoryDays {
		return nil, ErrInvalidDays
	}

	today := startOfDay(s.clock.Now())
	return s.countDays(ctx, today.AddDate(0, 0, -(days-1)), days)
}

func (s *service) Range(ctx context.Context, from, to string) ([]DailyCount, error) {
	loc := s.clock.Now().Location()

	start, err := time.ParseInLocation(request.DateLayout, from, loc)
	if err != nil {
		return nil, ErrInvalidRange
	}
	end, err := time.ParseInLocation(request.DateLayout, to, loc)
	if err != nil {
		return nil, ErrInvalidRange
	}
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	days := daysBetween(start, end) + 1
	if days > MaxRangeDays {
		return nil, ErrRangeTooLong
	}
	return s.countDays(ctx, start, days)
}

func (s *service) countDays(ctx context.Context, first time.Time, days int) ([]DailyCount, error) {
	windows := make([]Window, days)
	for i := range windows {
		// AddDate keeps midnight aligned across DST changes.
		dayStart := first.AddDate(0, 0, i)
		windows[i] = Window{Start: dayStart, End: dayStart.AddDate(0, 0, 1)}
	}

	tallies, err := s.repo.CountByWindows(ctx, windows)
	if err != nil {
		return nil, err
	}

	out := make([]DailyCount, days)
	for i, w := range windows {
		out[i] = newDailyCount(w.Start.Format(request.DateLayout), tallies[i].In, tallies[i].Out)
	}
	return out, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, both at local midnight.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
