// Package output creates termenv outputs that honor NO_COLOR and the
// terminal capabilities of the destination.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorProfile returns Ascii when NO_COLOR is set and the detected profile otherwise.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// New creates a termenv.Output writing to w. Non-terminal writers get the
// Ascii profile so logs and pipes stay free of escape sequences.
func New(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	profile := termenv.Ascii
	if IsTerminal(w) {
		profile = ColorProfile()
	}
	return termenv.NewOutput(w, termenv.WithProfile(profile), termenv.WithTTY(true))
}
