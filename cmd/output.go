package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aaearon/otpz/internal/config"
)

// outputFormat holds the global --output flag value. Empty defers to the config file.
var outputFormat string

// validateOutputFormat rejects unknown --output values.
func validateOutputFormat() error {
	switch outputFormat {
	case "", config.OutputText, config.OutputJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format %q, must be %q or %q", outputFormat, config.OutputText, config.OutputJSON)
	}
}

// isJSONOutput returns true when the user has requested JSON output,
// by flag or, failing that, in the config file.
func isJSONOutput(cfg *config.Config) bool {
	if outputFormat != "" {
		return outputFormat == config.OutputJSON
	}
	return cfg != nil && cfg.Output == config.OutputJSON
}

// writeJSON encodes data as indented JSON to the given writer.
func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// writeJSONLine encodes data as a single line of JSON, for streamed output.
func writeJSONLine(w io.Writer, data any) error {
	return json.NewEncoder(w).Encode(data)
}
