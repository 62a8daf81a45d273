package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Monitor is the slice of the application service the scheduler drives.
type Monitor interface {
	RunCycle(ctx context.Context)
}

// cycleTimeout bounds a single poll cycle; a hung API call must not
// overlap the next tick.
const cycleTimeout = 1 * time.Minute

type PollScheduler struct {
	cronEngine *cron.Cron
	monitor    Monitor
	logger     *logrus.Entry
	cronSpec   string
}

func NewPollScheduler(
	monitor Monitor,
	logger *logrus.Entry,
	cronSpec string, // e.g., "@every 10m"
) *PollScheduler {
	return &PollScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		monitor:    monitor,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

func (s *PollScheduler) Start() {
	s.logger.Info("Starting poll scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Debug("Cron job triggered for homework status poll.")
		s.runOnce()
	})
	if err != nil {
		s.logger.WithError(err).Fatalf("FATAL: Could not add poll cron job for spec %q", s.cronSpec)
	}

	// Cron fires only after the first interval elapses; poll right away so
	// the monitor has state from the start.
	s.runOnce()

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Poll scheduler started.")
}

func (s *PollScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	defer cancel()
	s.monitor.RunCycle(ctx)
}

func (s *PollScheduler) Stop() {
	s.logger.Info("Stopping poll scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Poll scheduler gracefully stopped.")
}
