package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const enqueueTimeout = 10 * time.Second

// SyncEnqueuer schedules lessons count reconciliation tasks
type SyncEnqueuer interface {
	EnqueueLessonsCountSync(ctx context.Context, courseID string) error
}

// Scheduler periodically enqueues a full lessons count reconciliation
type Scheduler struct {
	cron     *cron.Cron
	enqueuer SyncEnqueuer
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance.
//
// "spec" is a standard five-field cron expression.
func NewScheduler(spec string, enqueuer SyncEnqueuer, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		enqueuer: enqueuer,
		logger:   logger,
	}

	if _, err := s.cron.AddFunc(spec, s.enqueueFullSync); err != nil {
		return nil, fmt.Errorf("invalid lessons sync schedule %q: %w", spec, err)
	}

	return s, nil
}

// Start starts the scheduler and runs one sync immediately
func (s *Scheduler) Start() {
	s.enqueueFullSync()
	s.cron.Start()

	for _, entry := range s.cron.Entries() {
		s.logger.Info("Scheduler started", zap.Time("next_run", entry.Next))
	}
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}

// enqueueFullSync enqueues a lessons count sync of every course
func (s *Scheduler) enqueueFullSync() {
	ctx, cancel := context.WithTimeout(context.Background(), enqueueTimeout)
	defer cancel()

	if err := s.enqueuer.EnqueueLessonsCountSync(ctx, ""); err != nil {
		s.logger.Error("Failed to enqueue lessons count sync", zap.Error(err))
		return
	}
	s.logger.Info("Lessons count sync enqueued")
}
