// Package logging provides the printf-style, slog-backed logger used by
// the otpz commands.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options controls logger output.
type Options struct {
	// Verbose enables debug and info records; otherwise only errors are written.
	Verbose bool
	// Format is FormatText or FormatJSON. Anything else falls back to text.
	Format string
}

// Logger formats messages with fmt.Sprintf and hands them to slog.
type Logger struct {
	l *slog.Logger
}

// New creates a Logger writing to w.
func New(w io.Writer, opts Options) *Logger {
	lg := &Logger{}
	lg.Configure(w, opts)
	return lg
}

// Configure replaces the output and options. Commands call it once the
// --verbose flag and config file are known.
func (lg *Logger) Configure(w io.Writer, opts Options) {
	level := slog.LevelError
	if opts.Verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if opts.Format == FormatJSON {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	lg.l = slog.New(h).With(slog.String("app", "otpz"))
}

func (lg *Logger) Debug(msg string, v ...interface{}) { lg.log(slog.LevelDebug, msg, v...) }

func (lg *Logger) Info(msg string, v ...interface{}) { lg.log(slog.LevelInfo, msg, v...) }

func (lg *Logger) Error(msg string, v ...interface{}) { lg.log(slog.LevelError, msg, v...) }

// Slog exposes the underlying structured logger.
func (lg *Logger) Slog() *slog.Logger { return lg.l }

func (lg *Logger) log(level slog.Level, msg string, v ...interface{}) {
	ctx := context.Background()
	if !lg.l.Enabled(ctx, level) {
		return
	}
	if len(v) > 0 {
		msg = fmt.Sprintf(msg, v...)
	}
	lg.l.Log(ctx, level, msg)
}
