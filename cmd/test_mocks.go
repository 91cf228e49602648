package cmd

import (
	"github.com/aaearon/otpz/internal/config"
	"github.com/aaearon/otpz/internal/credential"
	"github.com/aaearon/otpz/internal/ui"
)

// mockAccountLoader implements the accountLoader interface for testing
type mockAccountLoader struct {
	loadFunc func() ([]*credential.Credential, error)
	accounts []*credential.Credential
	loadErr  error
	path     string
	calls    int
}

func (m *mockAccountLoader) LoadAccounts() ([]*credential.Credential, error) {
	m.calls++
	if m.loadFunc != nil {
		return m.loadFunc()
	}
	return m.accounts, m.loadErr
}

func (m *mockAccountLoader) Path() string {
	if m.path == "" {
		return "/home/test/.otpz/accounts"
	}
	return m.path
}

// mockCredentialSelector implements the credentialSelector interface for testing
type mockCredentialSelector struct {
	selectFunc func(creds []*credential.Credential) (*credential.Credential, error)
	cred       *credential.Credential
	selectErr  error
	offered    []*credential.Credential
}

func (m *mockCredentialSelector) SelectCredential(creds []*credential.Credential) (*credential.Credential, error) {
	m.offered = creds
	if m.selectFunc != nil {
		return m.selectFunc(creds)
	}
	return m.cred, m.selectErr
}

// mockEntryPrompter implements the entryPrompter interface for testing
type mockEntryPrompter struct {
	promptFunc func(prefill ui.ManualEntry) (ui.ManualEntry, error)
	entry      ui.ManualEntry
	promptErr  error
	prefill    *ui.ManualEntry
}

func (m *mockEntryPrompter) PromptManualEntry(prefill ui.ManualEntry) (ui.ManualEntry, error) {
	m.prefill = &prefill
	if m.promptFunc != nil {
		return m.promptFunc(prefill)
	}
	return m.entry, m.promptErr
}

// mockConfigPrompter implements the configPrompter interface for testing
type mockConfigPrompter struct {
	promptFunc func(cfg *config.Config) error
	called     bool
}

func (m *mockConfigPrompter) PromptConfig(cfg *config.Config) error {
	m.called = true
	if m.promptFunc != nil {
		return m.promptFunc(cfg)
	}
	return nil
}
