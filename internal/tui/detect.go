package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode says whether liribatch may drive an interactive UI.
type Mode int

const (
	// ModeNonInteractive covers CI pipelines, scripts, and piped I/O.
	ModeNonInteractive Mode = iota
	// ModeInteractive means a human is at the terminal.
	ModeInteractive
)

// DetectMode decides the interaction mode. Environment overrides win:
// LIRIBATCH_NON_INTERACTIVE=1, CI, or NO_COLOR force non-interactive
// operation. Otherwise both stdin and stdout must be terminals, since
// the selector reads keys and redraws in place.
func DetectMode() Mode {
	switch {
	case os.Getenv("LIRIBATCH_NON_INTERACTIVE") == "1":
		return ModeNonInteractive
	case os.Getenv("CI") != "":
		return ModeNonInteractive
	case os.Getenv("NO_COLOR") != "":
		return ModeNonInteractive
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive reports whether interactive mode is active.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
