package ui

import (
	"fmt"

	"github.com/Iilun/survey/v2"
	"github.com/aaearon/otpz/internal/credential"
)

// FormatCredentialOption formats a credential into a display string.
func FormatCredentialOption(c *credential.Credential) string {
	if c.Notes != "" {
		return fmt.Sprintf("%s - %s", c.Label(), firstLine(c.Notes))
	}
	return c.Label()
}

// BuildOptions builds display options in the order of creds.
func BuildOptions(creds []*credential.Credential) []string {
	options := make([]string, len(creds))
	for i, c := range creds {
		options[i] = FormatCredentialOption(c)
	}
	return options
}

// SelectCredential presents an interactive selector for choosing a credential.
func SelectCredential(creds []*credential.Credential) (*credential.Credential, error) {
	if len(creds) == 0 {
		return nil, fmt.Errorf("no accounts available")
	}
	if !IsInteractive() {
		return nil, ErrNotInteractive
	}

	// Answer by index: two accounts may share a label.
	var idx int
	prompt := &survey.Select{
		Message: "Select an account:",
		Options: BuildOptions(creds),
	}
	if err := survey.AskOne(prompt, &idx); err != nil {
		return nil, fmt.Errorf("account selection failed: %w", err)
	}
	if idx < 0 || idx >= len(creds) {
		return nil, fmt.Errorf("account selection out of range: %d", idx)
	}

	return creds[idx], nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' || r == '\r' {
			return s[:i]
		}
	}
	return s
}
