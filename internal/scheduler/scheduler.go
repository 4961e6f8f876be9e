package scheduler

import (
	"context"
	"homefinder/internal/config"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ReindexFunc rebuilds the search index and returns the number of listings indexed
type ReindexFunc func(ctx context.Context) (int, error)

// Scheduler runs the periodic search reindex
type Scheduler struct {
	cron    *cron.Cron
	config  config.SchedulerConfig
	reindex ReindexFunc
	timeout time.Duration

	mu        sync.Mutex
	isRunning bool
	lastRun   *RunResult
}

// RunResult describes the latest reindex
type RunResult struct {
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
	Indexed   int       `json:"indexed"`
	Error     string    `json:"error,omitempty"`
}

// NewScheduler creates a new scheduler
func NewScheduler(cfg config.SchedulerConfig, reindex ReindexFunc) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		config:  cfg,
		reindex: reindex,
		timeout: 10 * time.Minute,
	}
}

// Start registers the reindex job and starts the cron loop
func (s *Scheduler) Start() error {
	if !s.config.ReindexEnabled {
		slog.Info("scheduler: reindex is disabled in configuration")
		return nil
	}

	_, err := s.cron.AddFunc(s.config.ReindexCron, func() {
		slog.Info("scheduler: starting search reindex")
		if err := s.RunNow(context.Background()); err != nil {
			slog.Error("scheduler: search reindex failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.mu.Lock()
	s.isRunning = true
	s.mu.Unlock()
	slog.Info("scheduler: started", "cron", s.config.ReindexCron)

	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	running := s.isRunning
	s.isRunning = false
	s.mu.Unlock()

	if running {
		<-s.cron.Stop().Done()
		slog.Info("scheduler: stopped")
	}
}

// RunNow immediately executes the reindex job
func (s *Scheduler) RunNow(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	n, err := s.reindex(ctx)

	result := &RunResult{
		StartedAt: started.UTC(),
		Duration:  time.Since(started).Round(time.Millisecond).String(),
		Indexed:   n,
	}
	if err != nil {
		result.Error = err.Error()
	}

	s.mu.Lock()
	s.lastRun = result
	s.mu.Unlock()

	if err != nil {
		return err
	}
	slog.Info("scheduler: search reindex completed", "indexed", n, "duration", result.Duration)
	return nil
}

// LastRun returns the latest reindex result, or nil when none ran yet
func (s *Scheduler) LastRun() *RunResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}
