package executor

import (
	"log/slog"
	"math"
	"runtime"

	"golang.org/x/time/rate"
)

// Option is a functional option for configuring an Executor.
type Option func(*config)

type config struct {
	maxWorkers   int
	waiter       Waiter
	showProgress bool
	reporter     ProgressReporter
	desc         string
	unit         string
	logger       *slog.Logger
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		maxWorkers: runtime.GOMAXPROCS(0),
		desc:       "Processing",
		unit:       "item",
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithMaxWorkers sets the number of tasks allowed to run concurrently.
// If not specified, defaults to runtime.GOMAXPROCS(0).
func WithMaxWorkers(count int) Option {
	return func(cfg *config) {
		if count > 0 {
			cfg.maxWorkers = count
		}
	}
}

// WithMaxPerSecond bounds dispatch starts per rolling one-second window
// across all concurrent callers, using a sliding-window limiter owned
// exclusively by this executor. Useful for staying inside vendor API
// quotas.
//
// The window counts whole dispatch starts, so fractional rates are
// floored (minimum 1 per second); use WithTokenBucket for fractional
// sustained rates. Non-positive or infinite rates leave the executor
// unlimited.
//
// Example:
//
//	WithMaxPerSecond(5) // at most 5 dispatch starts in any rolling second
func WithMaxPerSecond(perSecond float64) Option {
	return func(cfg *config) {
		if perSecond <= 0 || math.IsInf(perSecond, 1) {
			return
		}
		limit := int(perSecond)
		if limit < 1 {
			limit = 1
		}
		cfg.waiter = newSlidingWindow(limit)
	}
}

// WithTokenBucket throttles dispatch starts with a token bucket instead
// of the sliding window. perSecond is the sustained rate, burst the
// number of starts that may be admitted back to back. Equivalent to the
// sliding window for steady traffic, but allows controlled bursts.
// Invalid parameters leave the executor unlimited.
//
// Example:
//
//	WithTokenBucket(10, 5) // 10 starts/sec sustained, bursts of 5
func WithTokenBucket(perSecond float64, burst int) Option {
	return func(cfg *config) {
		if perSecond > 0 && burst > 0 {
			cfg.waiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithLimiter installs a custom admission Waiter. The executor assumes
// exclusive ownership; sharing one Waiter between executors also shares
// its budget.
func WithLimiter(w Waiter) Option {
	return func(cfg *config) {
		cfg.waiter = w
	}
}

// WithProgress enables a terminal progress bar on stderr for batch
// calls. One bar is drawn per Execute/ExecuteItems call and cleared
// when the batch returns.
func WithProgress() Option {
	return func(cfg *config) {
		cfg.showProgress = true
	}
}

// WithReporter installs a custom progress sink, called once per task
// completion with (completed, total, desc, unit). The sink is a pure
// observer: it cannot affect scheduling, and a slow sink delays only
// the completion callback that invoked it. Takes precedence over
// WithProgress.
func WithReporter(r ProgressReporter) Option {
	return func(cfg *config) {
		cfg.reporter = r
	}
}

// WithLabels sets the description and unit reported to the progress
// sink. Defaults are "Processing" and "item".
func WithLabels(desc, unit string) Option {
	return func(cfg *config) {
		if desc != "" {
			cfg.desc = desc
		}
		if unit != "" {
			cfg.unit = unit
		}
	}
}

// WithLogger sets the structured logger used for lifecycle and batch
// events. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
