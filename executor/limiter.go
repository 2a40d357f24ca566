package executor

import (
	"context"
	"sync"
	"time"
)

// admissionSlack is added to every computed sleep so a woken waiter
// lands just past the oldest stamp's expiry instead of exactly on it.
const admissionSlack = time.Millisecond

// Waiter admits one dispatch start per call, blocking as long as
// necessary. It only ever delays; the sole error it may return is the
// context's, when the caller gives up waiting.
//
// *rate.Limiter from golang.org/x/time/rate satisfies this interface,
// so a token bucket can be plugged in directly (see WithTokenBucket).
type Waiter interface {
	Wait(ctx context.Context) error
}

// slidingWindow bounds dispatch starts per rolling one-second window by
// bookkeeping the timestamps of recent admissions under a single lock.
// It is conservative: it may admit slightly under the limit, never over.
type slidingWindow struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	stamps []time.Time
}

func newSlidingWindow(limit int) *slidingWindow {
	return &slidingWindow{
		limit:  limit,
		window: time.Second,
	}
}

// Wait blocks until an admission slot is free in the rolling window,
// then records the admission and returns. The lock is released during
// the sleep so concurrent callers can keep pruning; time passes while
// asleep, so the window is re-derived from scratch after waking.
func (w *slidingWindow) Wait(ctx context.Context) error {
	for {
		w.mu.Lock()
		now := time.Now()
		w.prune(now)

		if len(w.stamps) < w.limit {
			w.stamps = append(w.stamps, now)
			w.mu.Unlock()
			return nil
		}

		// Window full: sleep until the oldest stamp falls out of it.
		wait := w.window - now.Sub(w.stamps[0]) + admissionSlack
		w.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// prune drops stamps older than the rolling window. The caller holds mu.
func (w *slidingWindow) prune(now time.Time) {
	cutoff := now.Add(-w.window)
	i := 0
	for i < len(w.stamps) && !w.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[i:]...)
	}
}
