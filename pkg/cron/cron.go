package cron

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

// Scheduler is a cron-like job scheduler.
type Scheduler struct {
	*cron.Cron
	ctx    context.Context
	logger *log.Logger
}

// cronLogger is a wrapper around the logger to make it compatible with the
// cron logger.
type cronLogger struct {
	logger *log.Logger
}

// Info logs routine messages about cron's operation.
func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

// Error logs an error condition.
func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "err", err)...)
}

// NewScheduler returns a new Scheduler. Jobs run with ctx.
func NewScheduler(ctx context.Context) *Scheduler {
	logger := log.FromContext(ctx).WithPrefix("cron")
	return &Scheduler{
		Cron:   cron.New(cron.WithLogger(cronLogger{logger})),
		ctx:    ctx,
		logger: logger,
	}
}

// Shutdown stops the Scheduler and waits for running jobs to finish.
func (s *Scheduler) Shutdown() {
	ctx, cancel := context.WithTimeout(s.Cron.Stop(), 30*time.Second)
	defer func() { cancel() }()
	<-ctx.Done()
}

// Start starts the Scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
}

// AddFunc schedules fn under name. Runs and failures are logged.
func (s *Scheduler) AddFunc(name, spec string, fn func(context.Context) error) (int, error) {
	id, err := s.Cron.AddFunc(spec, s.wrap(name, fn))
	return int(id), err
}

func (s *Scheduler) wrap(name string, fn func(context.Context) error) func() {
	return func() {
		start := time.Now()
		if err := fn(s.ctx); err != nil {
			s.logger.Error("job failed", "job", name, "err", err)
			return
		}
		s.logger.Debug("job done", "job", name, "took", time.Since(start))
	}
}

// Remove removes a job from the Scheduler.
func (s *Scheduler) Remove(id int) {
	s.Cron.Remove(cron.EntryID(id))
}
