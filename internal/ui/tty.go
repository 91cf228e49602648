package ui

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 80

// IsTerminalFunc checks whether the given file descriptor is a terminal.
// It is a variable so tests can override it.
var IsTerminalFunc = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsInteractive reports whether stdin is connected to a terminal.
func IsInteractive() bool {
	return IsTerminalFunc(os.Stdin.Fd())
}

// IsStdoutTerminal reports whether stdout is connected to a terminal, so
// output can be redrawn in place.
func IsStdoutTerminal() bool {
	return IsTerminalFunc(os.Stdout.Fd())
}

// ErrNotInteractive is returned when an interactive prompt is attempted
// without a terminal attached to stdin.
var ErrNotInteractive = errors.New("interactive selection requires a terminal")

// TerminalWidth returns the column count of stdout, or 80 when unknown.
func TerminalWidth() int {
	fd := os.Stdout.Fd()
	if !IsTerminalFunc(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(fd))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
