package reservation

import (
	"strings"
	"time"

	"github.com/ukk/facility-booking-backend/internal/pkg/request"
)

// DeriveStatus computes the time-derived status of a reservation window at now.
//
// The window is inclusive at both ends and is read in now's location. When the
// date or either time cannot be parsed the reservation is reported as scheduled.
// A window whose end precedes its start is not corrected.
func DeriveStatus(date, start, end string, now time.Time) Status {
	loc := now.Location()

	startAt, ok := combine(date, start, loc)
	if !ok {
		return StatusScheduled
	}
	endAt, ok := combine(date, end, loc)
	if !ok {
		return StatusScheduled
	}

	switch {
	case now.Before(startAt):
		return StatusScheduled
	case now.After(endAt):
		return StatusCompleted
	default:
		return StatusActive
	}
}

func combine(date, clock string, loc *time.Location) (time.Time, bool) {
	d, err := time.ParseInLocation(request.DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, false
	}
	t, ok := parseClock(clock)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), true
}

// parseClock accepts HH:MM and HH:MM:SS.
func parseClock(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{request.ClockLayout, request.ClockLayoutSecs} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
