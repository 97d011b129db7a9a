package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/osse101/InstaSync_Go/internal/logger"
	"github.com/osse101/InstaSync_Go/internal/worker"
)

// Enqueuer accepts jobs for execution without blocking
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Scheduler hands jobs to the worker pool on fixed intervals or cron expressions.
// A tick that finds the queue full is dropped; the next tick tries again.
type Scheduler struct {
	workerPool Enqueuer
	cron       *cron.Cron
	quit       chan struct{}
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		cron:       cron.New(),
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. The ticker starts immediately.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.enqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// ScheduleCron registers a job using a standard five-field cron expression or a
// descriptor such as "@every 10m" or "@hourly". Entries fire once Start is called.
func (s *Scheduler) ScheduleCron(expr string, job worker.Job) error {
	if _, err := s.cron.AddFunc(expr, func() { s.enqueue(job) }); err != nil {
		return fmt.Errorf("%s %q: %w", ErrMsgInvalidCronExpression, expr, err)
	}
	return nil
}

// Start begins firing cron entries
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops all scheduled jobs. Jobs already handed to the pool are not affected.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		<-s.cron.Stop().Done()
	})
	s.wg.Wait()
}

func (s *Scheduler) enqueue(job worker.Job) {
	select {
	case <-s.quit:
		return
	default:
	}

	if !s.workerPool.TryEnqueue(job) {
		logger.FromContext(context.Background()).Debug(LogMsgEnqueueRejected)
	}
}
