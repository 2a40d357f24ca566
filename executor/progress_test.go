package executor

import (
	"context"
	"sync"
	"testing"
)

// recordingReporter captures every progress callback for assertions.
type recordingReporter struct {
	mu    sync.Mutex
	calls []progressCall
}

type progressCall struct {
	completed int
	total     int
	desc      string
	unit      string
}

func (r *recordingReporter) Report(completed, total int, desc, unit string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, progressCall{completed, total, desc, unit})
}

func TestExecutor_Progress_ReporterObservesEveryCompletion(t *testing.T) {
	const numItems = 10

	reporter := &recordingReporter{}
	ex := New[int, int](
		WithMaxWorkers(4),
		WithReporter(reporter),
		WithLabels("Scoring", "row"),
	)
	defer ex.Close()

	items := make([]int, numItems)
	for i := range items {
		items[i] = i
	}

	responses, err := ex.ExecuteItems(context.Background(), func(ctx context.Context, n int) (int, error) {
		return n, nil
	}, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := CountSuccessful(responses); got != numItems {
		t.Fatalf("expected %d successes, got %d", numItems, got)
	}

	reporter.mu.Lock()
	defer reporter.mu.Unlock()

	if len(reporter.calls) != numItems {
		t.Fatalf("expected %d progress calls, got %d", numItems, len(reporter.calls))
	}

	// Completed counts arrive in arbitrary order but must cover 1..N
	// exactly once each.
	seen := make(map[int]bool, numItems)
	for _, c := range reporter.calls {
		if c.total != numItems {
			t.Errorf("expected total %d, got %d", numItems, c.total)
		}
		if c.desc != "Scoring" || c.unit != "row" {
			t.Errorf("expected labels (Scoring, row), got (%s, %s)", c.desc, c.unit)
		}
		if c.completed < 1 || c.completed > numItems || seen[c.completed] {
			t.Errorf("unexpected or duplicate completed count %d", c.completed)
		}
		seen[c.completed] = true
	}
}

func TestExecutor_Progress_ReporterSeesFailures(t *testing.T) {
	reporter := &recordingReporter{}
	ex := New[int, int](WithMaxWorkers(2), WithReporter(reporter))
	defer ex.Close()

	responses, err := ex.ExecuteItems(context.Background(), func(ctx context.Context, n int) (int, error) {
		if n == 1 {
			panic("boom")
		}
		return n, nil
	}, []int{0, 1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := CountFailed(responses); got != 1 {
		t.Fatalf("expected 1 failure, got %d", got)
	}

	reporter.mu.Lock()
	defer reporter.mu.Unlock()

	// Failed completions still advance progress.
	if len(reporter.calls) != 3 {
		t.Fatalf("expected 3 progress calls, got %d", len(reporter.calls))
	}
}

func TestConfig_DefaultLabels(t *testing.T) {
	cfg := newConfig()
	if cfg.desc != "Processing" || cfg.unit != "item" {
		t.Fatalf("expected default labels (Processing, item), got (%s, %s)", cfg.desc, cfg.unit)
	}

	cfg = newConfig(WithLabels("", ""))
	if cfg.desc != "Processing" || cfg.unit != "item" {
		t.Fatalf("empty labels must keep defaults, got (%s, %s)", cfg.desc, cfg.unit)
	}
}
