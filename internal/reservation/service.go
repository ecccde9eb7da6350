package reservation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ukk/facility-booking-backend/internal/logger"
	"github.com/ukk/facility-booking-backend/internal/pkg/clock"
	"github.com/ukk/facility-booking-backend/internal/pkg/request"
)

const (
	// PolicyPending stores new reservations as pending until an administrator decides.
	PolicyPending = "pending"
	// PolicyImmediate stores new reservations with their time-derived status.
	PolicyImmediate = "immediate"

	DefaultRejectionReason = "Schedule conflict"
)

type SubmitRequest struct {
	PICName     string
	Description string
	Date        string
	StartTime   string
	EndTime     string
}

// Options configures the lifecycle service.
type Options struct {
	SubmissionPolicy       string
	DefaultRejectionReason string
}

type Service interface {
	Submit(ctx context.Context, actor Actor, req SubmitRequest) (*Reservation, error)
	Approve(ctx context.Context, actor Actor, id string) (*Reservation, error)
	Reject(ctx context.Context, actor Actor, id, reason string) (*Reservation, error)
	Delete(ctx context.Context, actor Actor, id string) error

	// RefreshAll recomputes every time-derived reservation and returns how many rows changed.
	RefreshAll(ctx context.Context) (int, error)

	Get(ctx context.Context, actor Actor, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type service struct {
	repo  Repository
	clock clock.Clock
	opts  Options
}

func NewService(repo Repository, clk clock.Clock, opts Options) Service {
	if clk == nil {
		clk = clock.System()
	}
	if opts.SubmissionPolicy != PolicyImmediate {
		opts.SubmissionPolicy = PolicyPending
	}
	if strings.TrimSpace(opts.DefaultRejectionReason) == "" {
		opts.DefaultRejectionReason = DefaultRejectionReason
	}
	return &service{repo: repo, clock: clk, opts: opts}
}

func (s *service) Submit(ctx context.Context, actor Actor, req SubmitRequest) (*Reservation, error) {
	if actor.UserID == "" {
		return nil, ErrUnauthenticated
	}

	res, err := validateSubmission(req)
	if err != nil {
		return nil, err
	}
	res.UserID = actor.UserID
	res.Status = StatusPending
	if s.opts.SubmissionPolicy == PolicyImmediate {
		res.Status = DeriveStatus(res.Date, res.StartTime, res.EndTime, s.clock.Now())
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "reservation submitted",
		"reservation_id", res.ID,
		"user_id", res.UserID,
		"status", res.Status,
	)

	// Re-read so the requester name is populated.
	return s.repo.GetByID(ctx, res.ID)
}

func (s *service) Approve(ctx context.Context, actor Actor, id string) (*Reservation, error) {
	if !actor.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != StatusPending {
		return nil, ErrInvalidTransition
	}

	next := DeriveStatus(res.Date, res.StartTime, res.EndTime, s.clock.Now())
	if err := s.transition(ctx, res.ID, StatusPending, next, ""); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "reservation approved",
		"reservation_id", res.ID,
		"admin_id", actor.UserID,
		"status", next,
	)
	return s.repo.GetByID(ctx, res.ID)
}

func (s *service) Reject(ctx context.Context, actor Actor, id, reason string) (*Reservation, error) {
	if !actor.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current := res.Status
	if current.IsTimeDerived() {
		// The stored value may lag the clock until the next sweep.
		current = DeriveStatus(res.Date, res.StartTime, res.EndTime, s.clock.Now())
	}
	if current != StatusPending && current != StatusScheduled {
		return nil, ErrInvalidTransition
	}

	if strings.TrimSpace(reason) == "" {
		reason = s.opts.DefaultRejectionReason
	}
	if err := s.transition(ctx, res.ID, res.Status, StatusRejected, reason); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "reservation rejected",
		"reservation_id", res.ID,
		"admin_id", actor.UserID,
		"previous_status", res.Status,
	)
	return s.repo.GetByID(ctx, res.ID)
}

// transition applies a compare-and-set status change and classifies a lost race.
func (s *service) transition(ctx context.Context, id string, from, to Status, reason string) error {
	ok, err := s.repo.UpdateStatus(ctx, id, from, to, reason)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	// The row changed between read and write: either it is gone or someone else moved it.
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrInvalidTransition
}

func (s *service) Delete(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return ErrPermissionDenied
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.InfoContext(ctx, "reservation deleted", "reservation_id", id, "admin_id", actor.UserID)
	return nil
}

func (s *service) RefreshAll(ctx context.Context) (int, error) {
	now := s.clock.Now()

	list, err := s.repo.ListByStatuses(ctx, TimeDerivedStatuses)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, res := range list {
		next := DeriveStatus(res.Date, res.StartTime, res.EndTime, now)
		if next == res.Status {
			continue
		}
		ok, err := s.repo.UpdateStatus(ctx, res.ID, res.Status, next, "")
		if err != nil {
			return changed, fmt.Errorf("refresh reservation %s: %w", res.ID, err)
		}
		if ok {
			changed++
		}
	}

	if changed > 0 {
		logger.InfoContext(ctx, "reservation statuses refreshed", "changed", changed, "scanned", len(list))
	}
	return changed, nil
}

func (s *service) Get(ctx context.Context, actor Actor, id string) (*Reservation, error) {
	if _, err := s.RefreshAll(ctx); err != nil {
		return nil, err
	}

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && res.UserID != actor.UserID {
		return nil, ErrPermissionDenied
	}
	return res, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	if _, err := s.RefreshAll(ctx); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter)
}

func (s *service) CountByStatus(ctx context.Context) (map[Status]int, error) {
	if _, err := s.RefreshAll(ctx); err != nil {
		return nil, err
	}
	return s.repo.CountByStatus(ctx)
}

// validateSubmission checks the submitted fields and returns a reservation with
// trimmed text and times normalized to HH:MM.
func validateSubmission(req SubmitRequest) (*Reservation, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrDescriptionEmpty
	}
	pic := strings.TrimSpace(req.PICName)
	if pic == "" {
		return nil, ErrPICNameEmpty
	}

	date := strings.TrimSpace(req.Date)
	if !request.IsDate(date) {
		return nil, ErrInvalidDate
	}

	start, ok := parseClock(req.StartTime)
	if !ok {
		return nil, ErrInvalidTime
	}
	end, ok := parseClock(req.EndTime)
	if !ok {
		return nil, ErrInvalidTime
	}

	// Stored windows have minute precision.
	if minuteOfDay(start) >= minuteOfDay(end) {
		return nil, ErrInvalidTimeRange
	}

	return &Reservation{
		PICName:     pic,
		Description: description,
		Date:        date,
		StartTime:   start.Format(request.ClockLayout),
		EndTime:     end.Format(request.ClockLayout),
	}, nil
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
