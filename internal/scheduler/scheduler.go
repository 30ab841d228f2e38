// Package scheduler runs the forecast refresh job on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Job is the unit of work the scheduler triggers.
type Job interface {
	RefreshAll(ctx context.Context) error
}

// Scheduler wraps a cron runner around the refresh job. Overlapping runs are
// skipped rather than queued.
type Scheduler struct {
	cron   *cron.Cron
	job    Job
	logger *slog.Logger

	mu      sync.Mutex
	running bool
}

// New creates a scheduler for the given cron expression. Standard 5-field
// expressions and descriptors like "@every 1h" are accepted.
func New(schedule string, job Job, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		job:    job,
		logger: logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.runOnce); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start triggers an immediate first run, then hands over to cron. The first
// run is synchronous so the service comes up with forecasts already loaded.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("refresh scheduler starting")
	if err := s.job.RefreshAll(ctx); err != nil {
		s.logger.Error("initial refresh failed", "error", err)
	}
	s.cron.Start()
}

// Stop halts the cron runner and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("refresh scheduler stopped")
}

func (s *Scheduler) runOnce() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("previous refresh still running, skipping this tick")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	if err := s.job.RefreshAll(context.Background()); err != nil {
		s.logger.Error("scheduled refresh failed", "error", err)
	}
}
