package reservation

import (
	"net/http"
	"time"

	"github.com/ukk/facility-booking-backend/internal/auth"
	"github.com/ukk/facility-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "reservation not found")
	ErrRequesterNotFound = apperror.New(http.StatusNotFound, "requesting user not found")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "reservation is not in a state that allows this action")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
	ErrUnauthenticated   = apperror.New(http.StatusUnauthorized, "unauthorized")
	ErrDescriptionEmpty  = apperror.New(http.StatusBadRequest, "description is required")
	ErrPICNameEmpty      = apperror.New(http.StatusBadRequest, "pic_name is required")
	ErrInvalidDate       = apperror.New(http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
	ErrInvalidTime       = apperror.New(http.StatusBadRequest, "times must be formatted as HH:MM")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, "start_time must be before end_time")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid reservation status")
)

// Status is the lifecycle state of a reservation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRejected  Status = "rejected"
	StatusScheduled Status = "scheduled"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []Status{StatusPending, StatusRejected, StatusScheduled, StatusActive, StatusCompleted}

// TimeDerivedStatuses are the statuses the refresh sweep recomputes from the clock.
var TimeDerivedStatuses = []Status{StatusScheduled, StatusActive, StatusCompleted}

// ParseStatus converts a stored or user supplied string into a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	for _, known := range AllStatuses {
		if st == known {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// IsTimeDerived reports whether the status is computed from the reservation window.
func (s Status) IsTimeDerived() bool {
	return s == StatusScheduled || s == StatusActive || s == StatusCompleted
}

// IsManual reports whether only an administrator decision can move the reservation out of s.
func (s Status) IsManual() bool {
	return s == StatusPending || s == StatusRejected
}

type Reservation struct {
	ID              string
	UserID          string
	UserName        string
	PICName         string
	Description     string
	Date            string // YYYY-MM-DD
	StartTime       string // HH:MM
	EndTime         string // HH:MM
	Status          Status
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Actor identifies who is calling a lifecycle operation.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == auth.RoleAdmin
}

type Filter struct {
	UserID   string
	Status   Status
	DateFrom string // inclusive, YYYY-MM-DD
	DateTo   string // inclusive, YYYY-MM-DD

	// PageSize 0 returns every matching row.
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
