// Package executor provides a rate-limited, bounded worker pool for
// fanning a batch of tasks out across goroutines while respecting an
// external throughput cap, such as a vendor API quota.
//
// The primary type is Executor[T, R], which runs tasks of type T that
// produce results of type R. Concurrency is bounded by a worker-slot
// semaphore, dispatch starts are throttled by a sliding-window rate
// limiter, and batch results always come back in input order with each
// task's failure isolated from its siblings.
//
// # Basic Usage
//
//	ctx := context.Background()
//	ex := executor.New[int, int](executor.WithMaxWorkers(5))
//	defer ex.Close()
//
//	responses, err := ex.ExecuteItems(ctx, func(ctx context.Context, n int) (int, error) {
//	    return n * 2, nil
//	}, []int{0, 1, 2, 3})
//
// Each Response pairs the outcome with the Request that produced it.
// A failing task never aborts the batch; check Response.Success per item:
//
//	for _, r := range responses {
//	    if !r.Success() {
//	        log.Printf("item %v failed: %v", r.Request.Item, r.Err)
//	    }
//	}
//
// # Rate Limiting
//
// WithMaxPerSecond bounds dispatch starts per rolling one-second window
// across all concurrent callers:
//
//	ex := executor.New[string, APIResponse](
//	    executor.WithMaxWorkers(10),
//	    executor.WithMaxPerSecond(5), // at most 5 dispatch starts per rolling second
//	)
//
// The limiter only ever delays submissions, it never fails them. A
// token-bucket alternative is available via WithTokenBucket when burst
// capacity matters more than strict rolling-window packing.
//
// # Correlation IDs
//
// Execute accepts explicit requests whose IDs survive into the responses,
// so results of pivoted or keyed workloads can be reassembled without
// relying on position:
//
//	requests := []executor.Request[int]{
//	    {Item: 5, ID: "row-5"},
//	    {Item: 9, ID: "row-9"},
//	}
//	responses, err := ex.Execute(ctx, process, requests)
//
// ExecuteItems is the positional convenience: it assigns each item its
// index as the ID.
//
// # Single Submissions
//
// Submit hands one task to the pool and returns a Future resolved when
// the task finishes:
//
//	future, err := ex.Submit(ctx, process, item)
//	if err != nil {
//	    // lifecycle misuse only: the executor was already shut down
//	}
//	result, err := future.Get()
//
// # Lifecycle
//
// An executor moves from active through shutting-down to closed.
// Shutdown stops new submissions and waits for in-flight work;
// ShutdownNow additionally cancels tasks that have not yet started
// running. Running tasks are never preempted, so a hung task function
// stalls the batch it belongs to; wrap the task context with a deadline
// if that matters. After shutdown every Submit or Execute fails fast
// with ErrClosed.
package executor
