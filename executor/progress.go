package executor

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter observes batch completions. Report is called once
// per finished task with the number completed so far, the batch total,
// and the configured description and unit. Calls may come from any
// completion goroutine, so implementations must be safe for concurrent
// use.
type ProgressReporter interface {
	Report(completed, total int, desc, unit string)
}

// progressBar renders batch progress to stderr. One instance per batch.
type progressBar struct {
	bar *progressbar.ProgressBar
}

func newProgressBar(total int, desc, unit string) *progressBar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetItsString(unit),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	return &progressBar{bar: bar}
}

func (p *progressBar) Report(completed, total int, desc, unit string) {
	_ = p.bar.Set(completed)
}

func (p *progressBar) finish() {
	_ = p.bar.Finish()
}
