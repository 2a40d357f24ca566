package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

type lifecycleState int

const (
	stateActive lifecycleState = iota
	stateShuttingDown
	stateClosed
)

// Executor is a rate-limited, bounded worker pool. It owns its worker
// slots and rate limiter exclusively; both die with the executor.
//
// Type parameters:
//   - T: The input item type processed by tasks
//   - R: The result type produced by processing items
type Executor[T any, R any] struct {
	conf   *config
	logger *slog.Logger

	sem     *semaphore.Weighted
	limiter Waiter

	mu    sync.Mutex
	state lifecycleState
	wg    sync.WaitGroup

	// pending is cancelled by ShutdownNow to fail tasks that have not
	// yet acquired a worker slot. Running tasks are unaffected.
	pending       context.Context
	cancelPending context.CancelFunc
}

// New creates an Executor with the given options. The zero-option
// executor runs up to GOMAXPROCS tasks concurrently with no rate limit
// and no progress reporting.
//
// Example:
//
//	ex := executor.New[string, []byte](
//	    executor.WithMaxWorkers(10),
//	    executor.WithMaxPerSecond(5),
//	)
//	defer ex.Close()
func New[T any, R any](opts ...Option) *Executor[T, R] {
	cfg := newConfig(opts...)
	pending, cancel := context.WithCancel(context.Background())

	return &Executor[T, R]{
		conf:          cfg,
		logger:        cfg.logger,
		sem:           semaphore.NewWeighted(int64(cfg.maxWorkers)),
		limiter:       cfg.waiter,
		pending:       pending,
		cancelPending: cancel,
	}
}

// Submit hands one task to the pool and returns a Future resolved when
// it finishes. The rate limiter is enforced synchronously on the
// calling goroutine before the task is dispatched; that wait, not pool
// capacity, is the blocking point of Submit.
//
// Returns ErrClosed once shutdown has begun, or the context's error if
// ctx is cancelled while waiting on the rate limiter. Task failures
// never surface here; they resolve the Future with an error.
func (e *Executor[T, R]) Submit(ctx context.Context, fn ProcessFunc[T, R], item T) (*Future[R], error) {
	if err := e.begin(ctx); err != nil {
		return nil, err
	}

	future := newFuture[R]()
	e.dispatch(ctx, fn, item, future.resolve)
	return future, nil
}

// Execute runs every request through the pool and returns one response
// per request, in input order, regardless of completion order. It
// blocks until the whole batch has finished.
//
// Per-task failures (errors, panics, cancellation before start) are
// captured into the matching Response and never abort, skip, or delay
// the other tasks. The returned error is non-nil only for lifecycle
// misuse: calling Execute after shutdown.
func (e *Executor[T, R]) Execute(ctx context.Context, fn ProcessFunc[T, R], requests []Request[T]) ([]Response[T, R], error) {
	e.mu.Lock()
	active := e.state == stateActive
	e.mu.Unlock()
	if !active {
		return nil, ErrClosed
	}

	total := len(requests)
	if total == 0 {
		return []Response[T, R]{}, nil
	}

	// Each completion writes its own pre-allocated slot; the indexes
	// are disjoint, so no lock is needed beyond the WaitGroup.
	responses := make([]Response[T, R], total)
	reporter, finishReporter := e.newReporter(total)

	var completed atomic.Int64
	var wg sync.WaitGroup

	e.logger.Debug("starting batch",
		"tasks", total,
		"workers", e.conf.maxWorkers)
	start := time.Now()

	for i, req := range requests {
		i, req := i, req
		wg.Add(1)
		deliver := func(result R, err error) {
			responses[i] = Response[T, R]{Result: result, Request: req, Err: err}
			done := int(completed.Add(1))
			if reporter != nil {
				reporter.Report(done, total, e.conf.desc, e.conf.unit)
			}
			wg.Done()
		}

		if err := e.begin(ctx); err != nil {
			var zero R
			deliver(zero, fmt.Errorf("task not submitted: %w", err))
			continue
		}
		e.dispatch(ctx, fn, req.Item, deliver)
	}

	wg.Wait()
	finishReporter()

	e.logger.Debug("batch completed",
		"total", total,
		"successful", CountSuccessful(responses),
		"failed", CountFailed(responses),
		"duration", time.Since(start))

	return responses, nil
}

// ExecuteItems is the positional convenience around Execute: it wraps
// each item in a Request whose ID is the item's index.
//
// Example:
//
//	responses, err := ex.ExecuteItems(ctx, double, []int{0, 1, 2})
//	// responses[1].Result == 2, responses[1].Request.ID == 1
func (e *Executor[T, R]) ExecuteItems(ctx context.Context, fn ProcessFunc[T, R], items []T) ([]Response[T, R], error) {
	requests := make([]Request[T], len(items))
	for i, item := range items {
		requests[i] = Request[T]{Item: item, ID: i}
	}
	return e.Execute(ctx, fn, requests)
}

// Shutdown stops accepting new submissions and waits for in-flight and
// queued tasks to finish. A timeout of 0 waits forever; a bounded wait
// that expires returns ErrShutdownTimeout while the remaining tasks run
// to completion in the background. Calling Shutdown again returns
// ErrClosed.
func (e *Executor[T, R]) Shutdown(timeout time.Duration) error {
	return e.shutdown(timeout, false)
}

// ShutdownNow is Shutdown plus cancellation of tasks that have not yet
// acquired a worker slot: their handles resolve with a cancellation
// error. Tasks already running are never preempted.
func (e *Executor[T, R]) ShutdownNow(timeout time.Duration) error {
	return e.shutdown(timeout, true)
}

// Close shuts the executor down, waiting for all tasks, and is safe to
// call more than once. It exists for the defer idiom:
//
//	ex := executor.New[int, int]()
//	defer ex.Close()
func (e *Executor[T, R]) Close() error {
	err := e.Shutdown(0)
	if errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}

func (e *Executor[T, R]) shutdown(timeout time.Duration, cancelPending bool) error {
	e.mu.Lock()
	if e.state != stateActive {
		e.mu.Unlock()
		return ErrClosed
	}
	e.state = stateShuttingDown
	e.mu.Unlock()

	if cancelPending {
		e.cancelPending()
	}

	e.logger.Debug("shutting down", "cancel_pending", cancelPending)

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		// Released only after the drain: a bounded Shutdown that times
		// out must leave queued tasks free to run to completion.
		e.cancelPending()
		close(done)
	}()

	err := waitUntil(done, timeout)

	e.mu.Lock()
	e.state = stateClosed
	e.mu.Unlock()

	if err != nil {
		return err
	}
	e.logger.Debug("shut down complete")
	return nil
}

// begin registers one unit of work and enforces the rate limit on the
// calling goroutine. It fails fast with ErrClosed once shutdown has
// begun. A successful begin must be paired with exactly one dispatch.
func (e *Executor[T, R]) begin(ctx context.Context) error {
	e.mu.Lock()
	if e.state != stateActive {
		e.mu.Unlock()
		return ErrClosed
	}
	// Registered while still active, so Shutdown's wait covers it.
	e.wg.Add(1)
	e.mu.Unlock()

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			e.wg.Done()
			return err
		}
	}
	return nil
}

// dispatch runs the task on its own goroutine once a worker slot is
// free, delivering the outcome exactly once. Cancellation (caller ctx
// or ShutdownNow) only affects the slot wait; a task that has started
// always runs to completion.
func (e *Executor[T, R]) dispatch(ctx context.Context, fn ProcessFunc[T, R], item T, deliver func(R, error)) {
	go func() {
		defer e.wg.Done()

		acquireCtx, cancel := context.WithCancel(ctx)
		stop := context.AfterFunc(e.pending, cancel)
		err := e.sem.Acquire(acquireCtx, 1)
		stop()
		cancel()

		if err != nil {
			if e.pending.Err() != nil {
				err = e.pending.Err()
			}
			var zero R
			deliver(zero, fmt.Errorf("task cancelled before start: %w", err))
			return
		}
		defer e.sem.Release(1)

		deliver(invoke(ctx, fn, item))
	}()
}

// invoke executes a task with panic recovery. A panic becomes that
// task's error, stack trace included, instead of crashing the pool.
func invoke[T, R any](ctx context.Context, fn ProcessFunc[T, R], item T) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("task panic: %v\nstack trace:\n%s", r, buf[:n])
		}
	}()

	return fn(ctx, item)
}

// newReporter picks the progress sink for one batch: a caller-supplied
// reporter, a fresh terminal bar, or none. The returned func releases
// per-batch resources.
func (e *Executor[T, R]) newReporter(total int) (ProgressReporter, func()) {
	switch {
	case e.conf.reporter != nil:
		return e.conf.reporter, func() {}
	case e.conf.showProgress:
		bar := newProgressBar(total, e.conf.desc, e.conf.unit)
		return bar, bar.finish
	default:
		return nil, func() {}
	}
}

// waitUntil blocks until d is closed or the timeout is reached.
// A timeout of 0 waits forever.
func waitUntil(d <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		<-d
		return nil
	}

	select {
	case <-d:
		return nil
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}
