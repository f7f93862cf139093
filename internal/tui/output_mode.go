package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results are presented.
type OutputMode int

const (
	// OutputModePlain prints plain text, for pipes and redirects.
	OutputModePlain OutputMode = iota
	// OutputModeInteractive runs the full-screen browser.
	OutputModeInteractive
)

// DetectOutputMode returns the interactive mode when both stdin and stdout
// are terminals and plain was not forced.
func DetectOutputMode(forcePlain bool) OutputMode {
	if forcePlain {
		return OutputModePlain
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return OutputModePlain
	}
	return OutputModeInteractive
}
