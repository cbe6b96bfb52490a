package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DigestDispatcher sends the daily digest for a given day.
type DigestDispatcher interface {
	DispatchDailyDigests(ctx context.Context, day time.Time) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron       *cron.Cron
	schedule   string
	loc        *time.Location
	dispatcher DigestDispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewScheduler creates a scheduler that fires on a standard 5-field cron
// expression evaluated in loc.
func NewScheduler(schedule string, loc *time.Location, dispatcher DigestDispatcher, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		schedule:   schedule,
		loc:        loc,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Start registers the daily digest job and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sendDailyDigest); err != nil {
		return fmt.Errorf("schedule daily digest %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("timezone", s.loc.String()))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendDailyDigest() {
	s.logger.Info("generating daily digest")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.dispatcher.DispatchDailyDigests(ctx, s.now().In(s.loc)); err != nil {
		s.logger.Error("failed to dispatch daily digest", zap.Error(err))
		return
	}
	s.logger.Info("daily digest dispatched")
}
