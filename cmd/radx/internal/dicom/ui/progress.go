package ui

import (
	"fmt"
	"os"
)

// Style wraps text in an ANSI SGR sequence. The zero value renders text
// unchanged.
type Style struct {
	sgr string
}

// Render applies the style to s.
func (st Style) Render(s string) string {
	if st.sgr == "" {
		return s
	}
	return "\x1b[" + st.sgr + "m" + s + "\x1b[0m"
}

// Shared styles used by the command summaries.
var (
	SuccessStyle = Style{sgr: "32"} // green
	WarnStyle    = Style{sgr: "33"} // yellow
	ErrorStyle   = Style{sgr: "31"} // red
	InfoStyle    = Style{sgr: "36"} // cyan
	SubtleStyle  = Style{sgr: "2"}  // dim
)

// Spinner is a single-line activity indicator for operations without a
// known item count (connecting, negotiating).
type Spinner struct {
	label string
}

// NewSpinner creates a spinner with the given label.
func NewSpinner(label string) *Spinner {
	return &Spinner{label: label}
}

// Tick updates the spinner's status line.
func (s *Spinner) Tick(status string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", s.label, status)
}

// Stop finishes the spinner.
func (s *Spinner) Stop() {}

// ProgressBar is a coarse counter-based progress reporter. It prints one
// line per increment rather than redrawing, which keeps logs readable when
// stderr is redirected to a file.
type ProgressBar struct {
	total   int
	current int
	label   string
}

// NewProgressBar creates a progress reporter for total items.
func NewProgressBar(total int, label string) *ProgressBar {
	return &ProgressBar{total: total, label: label}
}

// Increment advances the counter and reports the current item.
func (p *ProgressBar) Increment(status string) {
	p.current++
	fmt.Fprintf(os.Stderr, "%s [%d/%d] %s\n", p.label, p.current, p.total, status)
}

// Complete finishes the progress report.
func (p *ProgressBar) Complete(status string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", p.label, status)
}
