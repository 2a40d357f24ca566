package executor

import (
	"context"
	"time"
)

// Future represents the eventual completion of a single submitted task.
// It is resolved exactly once, with either a value or an error, and is
// safe for concurrent use; every Get observes the same outcome.
type Future[R any] struct {
	done  chan struct{}
	value R
	err   error
}

func newFuture[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

// resolve records the outcome and releases all waiters. Called exactly
// once per future, by the goroutine that ran (or cancelled) the task.
func (f *Future[R]) resolve(value R, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Get blocks until the task completes and returns its outcome.
// Repeated calls return the same result.
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.value, f.err
}

// GetWithContext blocks until the task completes or ctx is done,
// whichever comes first. A context error does not cancel the task; the
// future can still be read later.
func (f *Future[R]) GetWithContext(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// GetWithTimeout blocks until the task completes or the timeout
// elapses. A timeout of 0 waits forever.
func (f *Future[R]) GetWithTimeout(timeout time.Duration) (R, error) {
	if timeout <= 0 {
		return f.Get()
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C:
		var zero R
		return zero, context.DeadlineExceeded
	}
}

// IsReady reports whether the task has completed, without blocking.
func (f *Future[R]) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
