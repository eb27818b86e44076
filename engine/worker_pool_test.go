package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// collector gathers results delivered by a pool.
type collector struct {
	mu      sync.Mutex
	results []*Result
	wg      sync.WaitGroup
}

func (c *collector) add(r *Result) {
	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()
	c.wg.Done()
}

func (c *collector) waitTimeout(t *testing.T, d time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatal("Timeout waiting for results")
	}
}

func TestNewWorkerPool(t *testing.T) {
	pool := NewWorkerPool("test", 4, 0, nil)
	defer pool.Shutdown()

	stats := pool.GetStats()
	if stats.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", stats.Workers)
	}
	if stats.Name != "test" {
		t.Errorf("Expected name 'test', got %s", stats.Name)
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running")
	}
}

func TestWorkerPoolSubmit(t *testing.T) {
	c := &collector{}
	pool := NewWorkerPool("test", 2, 0, c.add)
	defer pool.Shutdown()

	var processed int64
	c.wg.Add(1)
	err := pool.Submit(NewJob("job-1", func(ctx context.Context) error {
		atomic.AddInt64(&processed, 1)
		return nil
	}))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	c.waitTimeout(t, time.Second)

	if atomic.LoadInt64(&processed) != 1 {
		t.Error("Job was not processed")
	}
	if !c.results[0].Success() {
		t.Error("Job should succeed")
	}
	if c.results[0].JobID != "job-1" {
		t.Errorf("Expected job ID 'job-1', got %s", c.results[0].JobID)
	}
}

func TestWorkerPoolJobError(t *testing.T) {
	c := &collector{}
	pool := NewWorkerPool("test", 2, 0, c.add)
	defer pool.Shutdown()

	expectedErr := errors.New("job failed")
	c.wg.Add(1)
	_ = pool.Submit(NewJob("job-error", func(ctx context.Context) error {
		return expectedErr
	}))

	c.waitTimeout(t, time.Second)

	if !errors.Is(c.results[0].Err, expectedErr) {
		t.Errorf("Expected %v, got %v", expectedErr, c.results[0].Err)
	}
	if stats := pool.GetStats(); stats.Failed != 1 {
		t.Errorf("Expected 1 failed, got %d", stats.Failed)
	}
}

func TestWorkerPoolRecoversPanic(t *testing.T) {
	c := &collector{}
	pool := NewWorkerPool("test", 1, 0, c.add)
	defer pool.Shutdown()

	c.wg.Add(2)
	_ = pool.Submit(NewJob("boom", func(ctx context.Context) error {
		panic("boom")
	}))
	_ = pool.Submit(NewJob("after", func(ctx context.Context) error {
		return nil
	}))

	c.waitTimeout(t, time.Second)

	stats := pool.GetStats()
	if stats.Failed != 1 || stats.Completed != 1 {
		t.Errorf("Expected 1 failed and 1 completed, got %+v", stats)
	}
}

func TestWorkerPoolMissingRunFunc(t *testing.T) {
	c := &collector{}
	pool := NewWorkerPool("test", 1, 0, c.add)
	defer pool.Shutdown()

	c.wg.Add(1)
	_ = pool.Submit(&Job{ID: "empty", CreatedAt: time.Now()})
	c.waitTimeout(t, time.Second)

	if !errors.Is(c.results[0].Err, ErrNoRunFunc) {
		t.Errorf("Expected ErrNoRunFunc, got %v", c.results[0].Err)
	}
}

func TestWorkerPoolConcurrency(t *testing.T) {
	c := &collector{}
	pool := NewWorkerPool("test", 8, 0, c.add)
	defer pool.Shutdown()

	numJobs := 100
	for i := 0; i < numJobs; i++ {
		c.wg.Add(1)
		err := pool.Submit(NewJob(fmt.Sprintf("job-%d", i), func(ctx context.Context) error {
			time.Sleep(time.Millisecond)
			return nil
		}))
		if err != nil {
			t.Fatalf("Submit %d failed: %v", i, err)
		}
	}

	c.waitTimeout(t, 10*time.Second)

	if got := pool.GetStats().Completed; got != int64(numJobs) {
		t.Errorf("Expected %d completed, got %d", numJobs, got)
	}
}

func TestWorkerPoolQueueFull(t *testing.T) {
	release := make(chan struct{})
	pool := NewWorkerPool("test", 1, 1, nil)
	defer pool.Shutdown()

	started := make(chan struct{})
	_ = pool.Submit(NewJob("blocker", func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	if err := pool.Submit(NewJob("queued", func(ctx context.Context) error { return nil })); err != nil {
		t.Fatalf("Second submit should be queued: %v", err)
	}
	err := pool.Submit(NewJob("rejected", func(ctx context.Context) error { return nil }))
	if !errors.Is(err, ErrQueueFull) {
		t.Errorf("Expected ErrQueueFull, got %v", err)
	}
	if stats := pool.GetStats(); stats.Rejected != 1 {
		t.Errorf("Expected 1 rejected, got %d", stats.Rejected)
	}

	close(release)
}

func TestWorkerPoolShutdown(t *testing.T) {
	pool := NewWorkerPool("test", 4, 0, nil)

	var ran int64
	_ = pool.Submit(NewJob("job-1", func(ctx context.Context) error {
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt64(&ran, 1)
		return nil
	}))

	pool.Shutdown()

	if pool.IsRunning() {
		t.Error("Pool should not be running after shutdown")
	}
	if atomic.LoadInt64(&ran) != 1 {
		t.Error("Queued job should be drained before shutdown returns")
	}
	if err := pool.Submit(NewJob("late", nil)); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Expected ErrPoolClosed, got %v", err)
	}
	if pool.Context().Err() == nil {
		t.Error("Pool context should be cancelled after shutdown")
	}

	// Second shutdown is a no-op
	pool.Shutdown()
}

func TestWorkerPoolShutdownWithTimeout(t *testing.T) {
	pool := NewWorkerPool("test", 1, 0, nil)

	release := make(chan struct{})
	started := make(chan struct{})
	_ = pool.Submit(NewJob("slow", func(ctx context.Context) error {
		close(started)
		select {
		case <-release:
		case <-ctx.Done():
		}
		return ctx.Err()
	}))
	<-started

	err := pool.ShutdownWithTimeout(20 * time.Millisecond)
	if !errors.Is(err, ErrShutdownTimeout) {
		t.Errorf("Expected ErrShutdownTimeout, got %v", err)
	}
	close(release)

	if err := pool.ShutdownWithTimeout(time.Second); err != nil {
		t.Errorf("Repeated shutdown should be a no-op, got %v", err)
	}
}

func BenchmarkWorkerPoolThroughput(b *testing.B) {
	var wg sync.WaitGroup
	pool := NewWorkerPool("throughput", 16, b.N+1, func(*Result) { wg.Done() })
	defer pool.Shutdown()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		wg.Add(1)
		if err := pool.Submit(NewJob(fmt.Sprintf("job-%d", i), func(ctx context.Context) error {
			return nil
		})); err != nil {
			wg.Done()
		}
	}

	wg.Wait()
}
