package output

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorScheme provides color functions for summary elements. Colors
// are disabled automatically for non-TTY writers so piped output stays
// clean.
type ColorScheme struct {
	// Success colors the status of successful tasks.
	Success func(format string, a ...any) string

	// Error colors the status and message of failed tasks.
	Error func(format string, a ...any) string

	// Header colors the tally line.
	Header func(format string, a ...any) string

	// Disabled indicates if colors are disabled.
	Disabled bool
}

// NewColorScheme creates a color scheme for the given writer.
// Colors are disabled when noColor is true or w is not a terminal.
func NewColorScheme(w io.Writer, noColor bool) *ColorScheme {
	if noColor || !isTTY(w) {
		plain := color.New().Sprintf
		return &ColorScheme{
			Success:  plain,
			Error:    plain,
			Header:   plain,
			Disabled: true,
		}
	}

	return &ColorScheme{
		Success: color.New(color.FgGreen).Sprintf,
		Error:   color.New(color.FgRed, color.Bold).Sprintf,
		Header:  color.New(color.FgWhite, color.Bold).Sprintf,
	}
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
