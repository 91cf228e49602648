package ui

import (
	"os"
	"testing"
)

func TestIsInteractive_WhenTerminal(t *testing.T) {
	original := IsTerminalFunc
	defer func() { IsTerminalFunc = original }()

	IsTerminalFunc = func(fd uintptr) bool { return true }

	if !IsInteractive() {
		t.Error("IsInteractive() = false, want true when terminal")
	}
}

func TestIsInteractive_WhenNotTerminal(t *testing.T) {
	original := IsTerminalFunc
	defer func() { IsTerminalFunc = original }()

	IsTerminalFunc = func(fd uintptr) bool { return false }

	if IsInteractive() {
		t.Error("IsInteractive() = true, want false when not terminal")
	}
}

func TestTerminalWidth_NotTerminal(t *testing.T) {
	original := IsTerminalFunc
	defer func() { IsTerminalFunc = original }()

	IsTerminalFunc = func(fd uintptr) bool { return false }

	if got := TerminalWidth(); got != defaultWidth {
		t.Errorf("TerminalWidth() = %d, want %d", got, defaultWidth)
	}
}

func TestIsStdoutTerminal_ChecksStdout(t *testing.T) {
	original := IsTerminalFunc
	defer func() { IsTerminalFunc = original }()

	IsTerminalFunc = func(fd uintptr) bool { return fd == os.Stdout.Fd() }

	if !IsStdoutTerminal() {
		t.Error("IsStdoutTerminal() = false, want true when stdout is a terminal")
	}
	if IsInteractive() {
		t.Error("IsInteractive() = true, want false when only stdout is a terminal")
	}
}
