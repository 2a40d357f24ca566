// Package output renders executor batch results for terminals: a
// per-task table plus a success/failure tally, colorized when the
// destination is a TTY.
package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/mvarga/ratepool/executor"
)

// Options configures summary rendering.
type Options struct {
	// NoColor disables colored output even on a TTY.
	NoColor bool

	// FailedOnly omits successful tasks from the table, keeping the
	// tally over the whole batch.
	FailedOnly bool
}

// WriteSummary renders one row per response (correlation ID, status,
// and result or error) followed by a tally line. Rows keep the batch's
// input order.
func WriteSummary[T, R any](w io.Writer, responses []executor.Response[T, R], opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}

	if len(responses) == 0 {
		fmt.Fprintln(w, "No results")
		return nil
	}

	colors := NewColorScheme(w, opts.NoColor)

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Status", "Result")

	for _, r := range responses {
		if opts.FailedOnly && r.Success() {
			continue
		}

		status := colors.Success("OK")
		detail := fmt.Sprintf("%v", r.Result)
		if !r.Success() {
			status = colors.Error("FAILED")
			detail = colors.Error("%v", r.Err)
		}

		if err := table.Append(fmt.Sprintf("%v", r.Request.ID), status, detail); err != nil {
			return fmt.Errorf("appending summary row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering summary table: %w", err)
	}

	succeeded := executor.CountSuccessful(responses)
	failed := executor.CountFailed(responses)
	fmt.Fprintln(w, colors.Header("%d succeeded, %d failed, %d total",
		succeeded, failed, len(responses)))

	return nil
}
