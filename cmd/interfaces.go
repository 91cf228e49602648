package cmd

import (
	"github.com/aaearon/otpz/internal/config"
	"github.com/aaearon/otpz/internal/credential"
	"github.com/aaearon/otpz/internal/ui"
)

// accountLoader interface for reading the accounts file
type accountLoader interface {
	LoadAccounts() ([]*credential.Credential, error)
	Path() string
}

// credentialSelector interface for interactive account selection
type credentialSelector interface {
	SelectCredential(creds []*credential.Credential) (*credential.Credential, error)
}

// entryPrompter interface for the interactive manual entry form
type entryPrompter interface {
	PromptManualEntry(prefill ui.ManualEntry) (ui.ManualEntry, error)
}

// configPrompter interface for the interactive configure form
type configPrompter interface {
	PromptConfig(cfg *config.Config) error
}
