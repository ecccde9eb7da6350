package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ukk/facility-booking-backend/internal/logger"
)

// Refresher is the reservation sweep the scheduler drives.
type Refresher interface {
	RefreshAll(ctx context.Context) (int, error)
}

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	timeout   time.Duration
	log       *slog.Logger
}

// New registers the refresh sweep on the given cron spec (standard five fields
// or descriptors such as "@every 1m"). An empty spec returns a nil Scheduler,
// whose Start and Stop are no-ops.
func New(spec string, refresher Refresher) (*Scheduler, error) {
	if spec == "" {
		logger.Info("refresh schedule disabled")
		return nil, nil
	}

	s := &Scheduler{
		// Overlapping sweeps are skipped.
		cron:      cron.New(cron.WithLocation(time.Local), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		refresher: refresher,
		timeout:   time.Minute,
		log:       logger.WithComponent("scheduler"),
	}

	if _, err := s.cron.AddFunc(spec, s.RefreshReservations); err != nil {
		return nil, fmt.Errorf("register refresh job %q: %w", spec, err)
	}
	s.log.Info("cron jobs registered", "refresh_schedule", spec)
	return s, nil
}

// RefreshReservations runs one sweep. It is the registered cron job body.
func (s *Scheduler) RefreshReservations() {
	s.runWithRecovery("RefreshReservations", func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		n, err := s.refresher.RefreshAll(ctx)
		if err != nil {
			s.log.Error("failed to refresh reservation statuses", "error", err)
			return
		}
		s.log.Debug("reservation refresh completed", "changed", n)
	})
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	if s == nil {
		return
	}
	s.cron.Start()
	s.log.Info("cron scheduler started")
}

// Stop waits for a running job to finish and stops the scheduler.
func (s *Scheduler) Stop() {
	if s == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.log.Info("cron scheduler stopped")
}

func (s *Scheduler) runWithRecovery(name string, fn func()) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("job panicked", "job", name, "panic", r)
		}
		s.log.Debug("job finished", "job", name, "duration", time.Since(start))
	}()
	fn()
}
