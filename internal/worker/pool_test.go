package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/InstaSync_Go/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
	err      error
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return j.err
}

func (j *testJob) Name() string { return "test" }

type deadlineJob struct {
	hasDeadline chan bool
}

func (j *deadlineJob) Process(ctx context.Context) error {
	_, ok := ctx.Deadline()
	j.hasDeadline <- ok
	return nil
}

type blockingJob struct {
	release chan struct{}
}

func (j *blockingJob) Process(ctx context.Context) error {
	<-j.release
	return nil
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize, 0)
	pool.Start()

	job := &testJob{executed: &executed}
	assert.True(t, pool.Enqueue(job))
	assert.True(t, pool.Enqueue(job))

	// Wait a bit for workers to process
	time.Sleep(TestWorkerProcessWaitTime * time.Millisecond)

	pool.Stop()

	assert.Equal(t, int32(TestExpectedJobCount), atomic.LoadInt32(&executed))
}

func TestPool_FailingJobDoesNotKillWorker(t *testing.T) {
	var executed int32
	pool := NewPool(1, TestQueueSize, 0)
	pool.Start()
	defer pool.Stop()

	pool.Enqueue(&testJob{executed: &executed, err: errors.New("boom")})
	pool.Enqueue(&testJob{executed: &executed})

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&executed) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestPool_JobTimeoutSetsDeadline(t *testing.T) {
	pool := NewPool(1, 1, time.Minute)
	pool.Start()
	defer pool.Stop()

	job := &deadlineJob{hasDeadline: make(chan bool, 1)}
	pool.Enqueue(job)

	select {
	case ok := <-job.hasDeadline:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("job never ran")
	}
}

func TestPool_TryEnqueueRejectsWhenFull(t *testing.T) {
	pool := NewPool(1, 1, 0)
	pool.Start()

	blocker := &blockingJob{release: make(chan struct{})}
	assert.True(t, pool.Enqueue(blocker))

	// Give the worker time to pick up the blocker, so the queue is empty again
	assert.Eventually(t, func() bool { return len(pool.jobQueue) == 0 }, time.Second, 5*time.Millisecond)

	var executed int32
	assert.True(t, pool.TryEnqueue(&testJob{executed: &executed}))
	assert.False(t, pool.TryEnqueue(&testJob{executed: &executed}), "queue of size 1 is full")

	close(blocker.release)
	pool.Stop()
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	pool := NewPool(TestWorkerCount, 0, 0)
	pool.Start()
	pool.Stop()
	pool.Stop()

	var executed int32
	assert.False(t, pool.Enqueue(&testJob{executed: &executed}))
	assert.False(t, pool.TryEnqueue(&testJob{executed: &executed}))

	checker.Check(0)
}
