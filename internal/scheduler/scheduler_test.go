package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/InstaSync_Go/internal/testing/leaktest"
	"github.com/osse101/InstaSync_Go/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount int32
	Done     chan struct{}
}

func (m *MockJob) Process(ctx context.Context) error {
	atomic.AddInt32(&m.RunCount, 1)
	// Signal that job ran
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10, 0)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &MockJob{
		Done: make(chan struct{}, 10),
	}

	sched.Schedule(10*time.Millisecond, job)

	// Wait for at least 2 runs
	timeout := time.After(time.Second)
	runCount := 0

	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, atomic.LoadInt32(&job.RunCount), int32(2))
}

func TestScheduleCron_InvalidExpression(t *testing.T) {
	sched := New(worker.NewPool(1, 1, 0))
	defer sched.Stop()

	err := sched.ScheduleCron("every now and then", &MockJob{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgInvalidCronExpression)
}

func TestScheduleCron_AcceptsDescriptors(t *testing.T) {
	sched := New(worker.NewPool(1, 1, 0))
	defer sched.Stop()

	assert.NoError(t, sched.ScheduleCron("@every 10m", &MockJob{}))
	assert.NoError(t, sched.ScheduleCron("*/5 * * * *", &MockJob{}))
	assert.NoError(t, sched.ScheduleCron("@hourly", &MockJob{}))
}

func TestScheduleCron_FiresAfterStart(t *testing.T) {
	pool := worker.NewPool(1, 10, 0)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &MockJob{Done: make(chan struct{}, 10)}
	require.NoError(t, sched.ScheduleCron("@every 1s", job))
	sched.Start()

	select {
	case <-job.Done:
	case <-time.After(3 * time.Second):
		t.Fatal("cron entry never fired")
	}
}

func TestScheduler_StopReleasesGoroutines(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	pool := worker.NewPool(1, 10, 0)
	pool.Start()

	sched := New(pool)
	sched.Schedule(5*time.Millisecond, &MockJob{Done: make(chan struct{}, 1)})
	sched.Schedule(5*time.Millisecond, &MockJob{Done: make(chan struct{}, 1)})
	sched.Start()
	time.Sleep(20 * time.Millisecond)

	sched.Stop()
	sched.Stop()
	pool.Stop()

	checker.Check(0)
}
