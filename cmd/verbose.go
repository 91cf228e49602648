package cmd

import (
	"os"

	"github.com/aaearon/otpz/internal/config"
	"github.com/aaearon/otpz/internal/logging"
	"github.com/spf13/cobra"
)

// cmdLogger is the verbose logging interface for command-level output.
// Satisfied by *logging.Logger.
type cmdLogger interface {
	Debug(msg string, v ...interface{})
	Info(msg string, v ...interface{})
	Error(msg string, v ...interface{})
}

// appLogger is reconfigured by PersistentPreRunE once --verbose is known.
var appLogger = logging.New(os.Stderr, logging.Options{})

// log is the package-level logger used by commands for verbose output.
// Tests can swap this with a spy. Secrets must never be passed to it.
var log cmdLogger = appLogger

// configureLogging applies --verbose and, once loaded, the configured log format.
func configureLogging(cmd *cobra.Command, cfg *config.Config) {
	opts := logging.Options{Verbose: verbose}
	if cfg != nil {
		opts.Format = cfg.LogFormat
	}
	appLogger.Configure(cmd.ErrOrStderr(), opts)
}
