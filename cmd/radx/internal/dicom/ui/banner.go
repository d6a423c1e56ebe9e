// Package ui provides the minimal terminal affordances the radx commands
// share: a startup banner, coarse progress reporting, and ANSI styles for
// run summaries.
package ui

import (
	"fmt"
	"os"

	"github.com/dcmkit/radx/cmd/radx/internal/build"
)

// PrintBanner prints the radx banner with build information to stderr, so
// piped stdout output (tables, JSON, CSV) stays machine-readable.
func PrintBanner() {
	info := build.Get()
	fmt.Fprintf(os.Stderr, "radx %s (%s, %s)\n\n", info.Version, info.Commit, info.BuildDate)
}
