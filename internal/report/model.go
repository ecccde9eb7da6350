package report

import (
	"net/http"
	"time"

	"github.com/ukk/facility-booking-backend/internal/pkg/apperror"
	"github.com/ukk/facility-booking-backend/internal/reservation"
	"github.com/ukk/facility-booking-backend/internal/visitor"
)

var (
	ErrInvalidType  = apperror.New(http.StatusBadRequest, "type must be visitor or reservation")
	ErrInvalidRange = apperror.New(http.StatusBadRequest, "unknown quick range")
	ErrMissingDates = apperror.New(http.StatusBadRequest, "start_date and end_date are required unless range is given")
	ErrInvalidDates = apperror.New(http.StatusBadRequest, "start_date must not be after end_date")
	ErrDateFormat   = apperror.New(http.StatusBadRequest, "dates must be formatted as YYYY-MM-DD")
)

type Type string

const (
	TypeVisitor     Type = "visitor"
	TypeReservation Type = "reservation"
)

// Quick range names accepted by ResolveRange.
const (
	RangeToday     = "today"
	RangeYesterday = "yesterday"
	RangeThisWeek  = "thisweek"
	RangeLastWeek  = "lastweek"
	RangeThisMonth = "thismonth"
	RangeLastMonth = "lastmonth"
)

type Request struct {
	Type  Type
	From  string // YYYY-MM-DD, inclusive
	To    string // YYYY-MM-DD, inclusive
	Range string // overrides From/To when set
}

type Report struct {
	Type        Type
	From        string
	To          string
	GeneratedAt time.Time

	// Exactly one of these is populated, matching Type.
	Visitors     []visitor.DailyCount
	Reservations []*reservation.Reservation
}
