package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job represents a scheduled job
type Job struct {
	Name string
	Spec string
	Fn   func(ctx context.Context) error
}

// Scheduler runs jobs on cron expressions evaluated in a fixed timezone.
// Every run takes a named lock first, so a run that overlaps another one,
// in this process or another replica, is skipped.
type Scheduler struct {
	cron    *cron.Cron
	jobs    []Job
	locker  Locker
	lockTTL time.Duration
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
}

// NewScheduler creates a new cron scheduler
func NewScheduler(loc *time.Location, locker Locker, lockTTL time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	if locker == nil {
		locker = NewLocalLocker()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(slogLogger{}))),
		jobs:    make([]Job, 0),
		locker:  locker,
		lockTTL: lockTTL,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// AddJob registers fn under name. spec is a standard five-field cron expression.
func (s *Scheduler) AddJob(name, spec string, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := Job{Name: name, Spec: spec, Fn: fn}
	if _, err := s.cron.AddFunc(spec, func() { s.executeJob(s.ctx, job) }); err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}

	s.jobs = append(s.jobs, job)
	slog.Info("Cron job registered", "name", name, "spec", spec)
	return nil
}

// Jobs returns the registered jobs in registration order.
func (s *Scheduler) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Job(nil), s.jobs...)
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Cron scheduler started", "job_count", len(s.Jobs()), "timezone", s.cron.Location().String())
}

// Stop cancels in-flight runs and waits for them to return.
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	<-s.cron.Stop().Done()
	slog.Info("Cron scheduler stopped")
}

// RunOnce runs all jobs once (useful for testing)
func (s *Scheduler) RunOnce(ctx context.Context) {
	for _, job := range s.Jobs() {
		s.executeJob(ctx, job)
	}
}

// executeJob executes a job under its lock and logs results
func (s *Scheduler) executeJob(ctx context.Context, job Job) {
	unlock, ok, err := s.locker.TryLock(ctx, lockKey(job.Name), s.lockTTL)
	if err != nil {
		slog.Error("Cron job lock failed", "name", job.Name, "error", err)
		return
	}
	if !ok {
		slog.Warn("Cron job skipped, previous run still holds the lock", "name", job.Name)
		return
	}
	defer func() {
		if err := unlock(context.Background()); err != nil {
			slog.Error("Cron job unlock failed", "name", job.Name, "error", err)
		}
	}()

	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	if err := job.Fn(ctx); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	} else {
		slog.Info("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}
}

func lockKey(name string) string {
	return "cron:lock:" + name
}

// slogLogger adapts slog to cron.Logger for the recover wrapper.
type slogLogger struct{}

func (slogLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug(msg, keysAndValues...)
}

func (slogLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error(msg, append(keysAndValues, "error", err)...)
}
