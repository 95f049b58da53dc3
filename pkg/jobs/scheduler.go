package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is the unit of work a scheduler runs.
type Task func(context.Context) error

// Scheduler runs a task once at start and then on a fixed interval.
type Scheduler struct {
	name     string
	task     Task
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewScheduler builds a scheduler for the given task.
func NewScheduler(name string, task Task, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		name:     name,
		task:     task,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the run loop. Safe to call once.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.started = true

	go s.loop(runCtx)
	s.logger.Sugar().Infow("scheduler started", "scheduler", s.name, "interval", s.interval)
}

// Stop cancels the loop and waits for the in-flight run to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	done := s.done
	s.mu.Unlock()
	<-done
	s.logger.Sugar().Infow("scheduler stopped", "scheduler", s.name)
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	s.run(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Scheduler) run(ctx context.Context) {
	if err := s.task(ctx); err != nil {
		s.logger.Sugar().Errorw("scheduled task failed", "scheduler", s.name, "error", err)
	}
}
