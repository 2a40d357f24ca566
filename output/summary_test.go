package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mvarga/ratepool/executor"
)

func sampleResponses() []executor.Response[int, int] {
	return []executor.Response[int, int]{
		{Result: 0, Request: executor.Request[int]{Item: 0, ID: 0}},
		{Result: 2, Request: executor.Request[int]{Item: 1, ID: 1}},
		{Request: executor.Request[int]{Item: 2, ID: 2}, Err: errors.New("quota exceeded")},
	}
}

func TestWriteSummary_RendersAllRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, sampleResponses(), &Options{NoColor: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"OK", "FAILED", "quota exceeded", "2 succeeded, 1 failed, 3 total"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummary_FailedOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, sampleResponses(), &Options{NoColor: true, FailedOnly: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "OK") {
		t.Errorf("failed-only summary should omit successful rows:\n%s", out)
	}
	if !strings.Contains(out, "FAILED") {
		t.Errorf("failed-only summary missing failed row:\n%s", out)
	}
	// The tally still covers the whole batch.
	if !strings.Contains(out, "2 succeeded, 1 failed, 3 total") {
		t.Errorf("summary missing full tally:\n%s", out)
	}
}

func TestWriteSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary[int, int](&buf, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No results") {
		t.Errorf("expected 'No results', got:\n%s", buf.String())
	}
}

func TestNewColorScheme_DisabledForNonTTY(t *testing.T) {
	var buf bytes.Buffer
	scheme := NewColorScheme(&buf, false)
	if !scheme.Disabled {
		t.Error("colors must be disabled for non-TTY writers")
	}
	if got := scheme.Error("plain %d", 7); got != "plain 7" {
		t.Errorf("disabled scheme should not decorate output, got %q", got)
	}
}
