// Package schedule wraps gocron for the periodic jobs of the watch command.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docsidebar/internal/logfields"
)

// Scheduler wraps gocron scheduler for managing periodic tasks.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a new scheduler instance.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
	}, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start(_ context.Context) {
	slog.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop(_ context.Context) error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// ScheduleEvery runs task every interval, never overlapping itself.
// Returns the job ID for later management.
func (s *Scheduler) ScheduleEvery(name string, interval time.Duration, task func()) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("invalid interval for %s: %s", name, interval)
	}

	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			slog.Debug("Running scheduled job", slog.String("name", name))
			task()
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create %s job: %w", name, err)
	}

	id := job.ID().String()
	slog.Info("Scheduled periodic job",
		logfields.JobID(id),
		slog.String("name", name),
		slog.Duration("interval", interval))
	return id, nil
}
