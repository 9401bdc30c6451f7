package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether w is a terminal. Any writer with an Fd method,
// such as *os.File, is checked.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI colors should be written to w.
//
// NO_COLOR (https://no-color.org) always disables color and a non-empty
// CLICOLOR_FORCE other than "0" forces it. Otherwise w must be a terminal
// whose TERM is not "dumb".
func SupportsColor(w io.Writer) bool {
	return supportsColor(os.LookupEnv, IsTTY(w))
}

func supportsColor(lookup func(string) (string, bool), isTTY bool) bool {
	if _, ok := lookup("NO_COLOR"); ok {
		return false
	}
	if v, ok := lookup("CLICOLOR_FORCE"); ok && v != "" && v != "0" {
		return true
	}
	if v, _ := lookup("TERM"); v == "dumb" {
		return false
	}
	return isTTY
}
