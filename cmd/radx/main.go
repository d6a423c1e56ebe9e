// Command radx is the DICOM utility CLI for the dcmkit/radx toolkit.
package main

import (
	"fmt"
	"os"

	"github.com/dcmkit/radx/cmd/radx/internal/cli"
)

// Build-time variables injected via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := cli.Run(version, commit, date); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
