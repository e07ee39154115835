package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is a housekeeping function run on a fixed interval.
type Task struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs registered tasks until the context given to Start is cancelled.
type Scheduler struct {
	mu      sync.Mutex
	tasks   []Task
	wg      sync.WaitGroup
	started bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Add registers a task. Tasks added after Start are ignored.
func (s *Scheduler) Add(task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		slog.Warn("cron task added after start, ignoring", "name", task.Name)
		return
	}
	if task.Timeout <= 0 {
		task.Timeout = task.Interval
	}
	s.tasks = append(s.tasks, task)
	slog.Info("cron task registered", "name", task.Name, "interval", task.Interval)
}

// Start launches every task in its own goroutine. Each task runs once immediately.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.started = true
	for _, task := range s.tasks {
		s.wg.Add(1)
		go s.loop(ctx, task)
	}
	slog.Info("cron scheduler started", "task_count", len(s.tasks))
}

// Wait blocks until every task loop has returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
	slog.Info("cron scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, task Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	runTask(ctx, task)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runTask(ctx, task)
		}
	}
}

func runTask(ctx context.Context, task Task) {
	start := time.Now()
	runCtx, cancel := context.WithTimeout(ctx, task.Timeout)
	defer cancel()

	if err := task.Run(runCtx); err != nil {
		slog.Error("cron task failed", "name", task.Name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("cron task completed", "name", task.Name, "duration", time.Since(start))
}
