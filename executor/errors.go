package executor

import "errors"

var (
	// ErrClosed is returned by Submit and Execute once shutdown has
	// begun. It signals programmer misuse of the lifecycle, never a
	// task failure.
	ErrClosed = errors.New("executor is shut down")

	// ErrShutdownTimeout is returned when a bounded Shutdown wait
	// expired before all in-flight tasks finished. The tasks keep
	// running; only the wait gave up.
	ErrShutdownTimeout = errors.New("error in shutting down: timeout reached")
)
