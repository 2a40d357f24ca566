package executor

import "context"

// ProcessFunc processes a single task item and returns its result.
// The context is the one passed to Submit or Execute; implementations
// that can hang should honor its cancellation. A returned error is
// captured into the task's Response and never stops sibling tasks.
//
// Type parameters:
//   - T: The input item type
//   - R: The result type produced by processing an item
type ProcessFunc[T any, R any] func(ctx context.Context, item T) (R, error)

// Request is a unit of input work plus a correlation ID. It is treated
// as immutable once submitted.
//
// ID is caller-supplied and opaque to the executor: positional indexes,
// strings, or composite keys all work. ExecuteItems fills it with the
// item's position in the input slice.
type Request[T any] struct {
	Item T
	ID   any
}

// Response is the outcome for exactly one Request. It is created once,
// when the task finishes (successfully or not), and pairs the result or
// captured error back with the request that produced it.
type Response[T any, R any] struct {
	// Result holds the value produced by the task function. Only
	// meaningful when Err is nil.
	Result R

	// Request is the request this response answers.
	Request Request[T]

	// Err is the error captured from the task function (or from a
	// recovered panic, or from cancellation before the task started).
	// Nil on success.
	Err error
}

// Success reports whether the task completed without an error.
func (r Response[T, R]) Success() bool {
	return r.Err == nil
}

// CountSuccessful returns the number of responses without an error.
func CountSuccessful[T, R any](responses []Response[T, R]) int {
	count := 0
	for _, r := range responses {
		if r.Success() {
			count++
		}
	}
	return count
}

// CountFailed returns the number of responses carrying an error.
func CountFailed[T, R any](responses []Response[T, R]) int {
	return len(responses) - CountSuccessful(responses)
}

// FilterSuccessful returns only the successful responses, in order.
func FilterSuccessful[T, R any](responses []Response[T, R]) []Response[T, R] {
	filtered := make([]Response[T, R], 0, len(responses))
	for _, r := range responses {
		if r.Success() {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// FilterFailed returns only the failed responses, in order.
func FilterFailed[T, R any](responses []Response[T, R]) []Response[T, R] {
	filtered := make([]Response[T, R], 0, len(responses))
	for _, r := range responses {
		if !r.Success() {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
