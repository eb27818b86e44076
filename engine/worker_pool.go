// Package engine provides the bounded worker pool used to serve inbound
// handshakes.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Common errors for pool operations
var (
	ErrPoolClosed      = errors.New("worker pool is shut down")
	ErrQueueFull       = errors.New("job queue is full")
	ErrNoRunFunc       = errors.New("no run function defined")
	ErrShutdownTimeout = errors.New("shutdown timeout")
)

// Job represents a unit of work for the worker pool.
type Job struct {
	ID        string
	Run       func(ctx context.Context) error
	CreatedAt time.Time
	Ctx       context.Context
}

// NewJob creates a new job bound to the pool's context.
func NewJob(id string, run func(ctx context.Context) error) *Job {
	return &Job{
		ID:        id,
		Run:       run,
		CreatedAt: time.Now(),
	}
}

// Result represents the outcome of one job.
type Result struct {
	JobID    string
	Err      error
	Duration time.Duration
	Waited   time.Duration
	WorkerID int
}

// Success reports whether the job finished without error.
func (r *Result) Success() bool {
	return r.Err == nil
}

// PoolStats contains worker pool statistics.
type PoolStats struct {
	Name        string  `json:"name"`
	Workers     int     `json:"workers"`
	Active      int64   `json:"active"`
	Completed   int64   `json:"completed"`
	Failed      int64   `json:"failed"`
	Rejected    int64   `json:"rejected"`
	Pending     int     `json:"pending"`
	SuccessRate float64 `json:"success_rate"`
}

// WorkerPool runs jobs on a fixed number of goroutines.
type WorkerPool struct {
	name     string
	workers  int
	jobs     chan *Job
	onResult func(*Result)
	wg       sync.WaitGroup

	// Atomic counters for thread-safe statistics
	active    int64
	completed int64
	failed    int64
	rejected  int64

	// Control
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	mu      sync.RWMutex
}

// NewWorkerPool creates a pool with the given number of workers and queue
// capacity. onResult, if non-nil, is called from the worker goroutine after
// every job.
func NewWorkerPool(name string, workers, queueSize int, onResult func(*Result)) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers * 100
	}

	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		name:     name,
		workers:  workers,
		jobs:     make(chan *Job, queueSize),
		onResult: onResult,
		ctx:      ctx,
		cancel:   cancel,
		running:  true,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// worker processes jobs until the queue is closed.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for job := range p.jobs {
		p.runJob(id, job)
	}
}

// runJob executes a single job and reports its result.
func (p *WorkerPool) runJob(workerID int, job *Job) {
	atomic.AddInt64(&p.active, 1)
	defer atomic.AddInt64(&p.active, -1)

	start := time.Now()
	result := &Result{
		JobID:    job.ID,
		WorkerID: workerID,
		Waited:   start.Sub(job.CreatedAt),
	}

	// Panic recovery to prevent one job from crashing the entire pool
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("panic in job %s: %v", job.ID, r)
		}
		result.Duration = time.Since(start)

		if result.Err == nil {
			atomic.AddInt64(&p.completed, 1)
		} else {
			atomic.AddInt64(&p.failed, 1)
		}
		if p.onResult != nil {
			p.onResult(result)
		}
	}()

	ctx := job.Ctx
	if ctx == nil {
		ctx = p.ctx
	}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return
	}

	if job.Run == nil {
		result.Err = ErrNoRunFunc
		return
	}
	result.Err = job.Run(ctx)
}

// Submit queues a job without blocking.
func (p *WorkerPool) Submit(job *Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.running {
		return ErrPoolClosed
	}

	select {
	case p.jobs <- job:
		return nil
	default:
		atomic.AddInt64(&p.rejected, 1)
		return ErrQueueFull
	}
}

// Context returns the pool context, cancelled on shutdown.
func (p *WorkerPool) Context() context.Context {
	return p.ctx
}

// GetStats returns current worker pool statistics.
func (p *WorkerPool) GetStats() PoolStats {
	completed := atomic.LoadInt64(&p.completed)
	failed := atomic.LoadInt64(&p.failed)
	total := completed + failed

	var successRate float64
	if total > 0 {
		successRate = float64(completed) / float64(total) * 100
	}

	return PoolStats{
		Name:        p.name,
		Workers:     p.workers,
		Active:      atomic.LoadInt64(&p.active),
		Completed:   completed,
		Failed:      failed,
		Rejected:    atomic.LoadInt64(&p.rejected),
		Pending:     len(p.jobs),
		SuccessRate: successRate,
	}
}

// stopAccepting flips the pool to closed and closes the queue. It returns
// false if the pool was already closed.
func (p *WorkerPool) stopAccepting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return false
	}
	p.running = false
	close(p.jobs)
	return true
}

// Shutdown stops accepting jobs, drains the queue and waits for workers.
func (p *WorkerPool) Shutdown() {
	if !p.stopAccepting() {
		return
	}
	p.wg.Wait()
	p.cancel()
}

// ShutdownWithTimeout is Shutdown bounded by timeout. Jobs still queued when
// the timeout expires see a cancelled context.
func (p *WorkerPool) ShutdownWithTimeout(timeout time.Duration) error {
	if !p.stopAccepting() {
		return nil
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-time.After(timeout):
		p.cancel()
		return ErrShutdownTimeout
	}
}

// IsRunning returns true if the pool is still accepting jobs.
func (p *WorkerPool) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}
