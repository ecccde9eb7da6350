package visitor

import (
	"net/http"
	"strings"
	"time"

	"github.com/ukk/facility-booking-backend/internal/pkg/apperror"
)

const (
	DefaultHistoryDays = 7
	MaxHistoryDays     = 90
	MaxRangeDays       = 366
)

var (
	ErrInvalidDirection = apperror.New(http.StatusBadRequest, "direction must be in or out")
	ErrInvalidDays      = apperror.New(http.StatusBadRequest, "days must be between 1 and 90")
	ErrInvalidRange     = apperror.New(http.StatusBadRequest, "invalid date range")
	ErrRangeTooLong     = apperror.New(http.StatusBadRequest, "date range is too long")
)

type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// ParseDirection accepts in/out and the sensor firmware's masuk/keluar, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "masuk":
		return DirectionIn, nil
	case "out", "keluar":
		return DirectionOut, nil
	default:
		return "", ErrInvalidDirection
	}
}

// Log is one recorded sensor pulse.
type Log struct {
	ID        int64
	Direction Direction
	Timestamp time.Time
}

// DailyCount aggregates the pulses of one local calendar day.
type DailyCount struct {
	Date   string // YYYY-MM-DD
	In     int
	Out    int
	Total  int // In + Out
	Inside int // In - Out, may be negative when sensors miss entries
}

func newDailyCount(date string, in, out int) DailyCount {
	return DailyCount{
		Date:   date,
		In:     in,
		Out:    out,
		Total:  in + out,
		Inside: in - out,
	}
}

// Window is a half-open [Start, End) time interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// Tally holds the pulse counts of one Window.
type Tally struct {
	In  int
	Out int
}
