package cmd

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aaearon/otpz/internal/otpauth"
	"github.com/aaearon/otpz/internal/ui"
)

func TestAddCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		interactive bool
		prompter    *mockEntryPrompter
		wantStdout  string
		wantStderr  string
		wantErr     string
	}{
		{
			name:       "all flags",
			args:       []string{"--name", "alice", "--issuer", "Example", "--secret", testSecret},
			wantStdout: "otpauth://totp/alice?issuer=Example&secret=" + testSecret + "\n",
			wantStderr: "Append the URL to /home/test/.otpz/accounts",
		},
		{
			name:       "secret normalised to upper case",
			args:       []string{"--name", "alice", "--secret", strings.ToLower(testSecret)},
			wantStdout: "otpauth://totp/alice?secret=" + testSecret + "\n",
		},
		{
			name:    "missing flags without terminal",
			args:    []string{"--name", "alice"},
			wantErr: "--name and --secret are required",
		},
		{
			name:        "prompted",
			args:        []string{"--issuer", "Example"},
			interactive: true,
			prompter: &mockEntryPrompter{entry: ui.ManualEntry{
				Name: "bob", Issuer: "Example", Secret: testSecret,
			}},
			wantStdout: "otpauth://totp/bob?issuer=Example&secret=" + testSecret + "\n",
		},
		{
			name:        "prompt cancelled",
			interactive: true,
			prompter:    &mockEntryPrompter{promptErr: errors.New("interrupt")},
			wantErr:     "interrupt",
		},
		{
			name:    "blank name",
			args:    []string{"--name", "  ", "--secret", testSecret},
			wantErr: "an account name is required",
		},
		{
			name:    "invalid secret",
			args:    []string{"--name", "alice", "--secret", "ABC1"},
			wantErr: "invalid secret",
		},
		{
			name:    "dangling trailing symbol",
			args:    []string{"--name", "alice", "--secret", "A"},
			wantErr: "invalid secret",
		},
		{
			name:        "prompt returned no secret",
			interactive: true,
			prompter:    &mockEntryPrompter{entry: ui.ManualEntry{Name: "bob"}},
			wantErr:     "a secret is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps()
			d.interactive = func() bool { return tt.interactive }
			if tt.prompter != nil {
				d.prompter = tt.prompter
			}

			stdout, stderr, err := executeCommandSplit(newTestRootCommand(NewAddCommandWithDeps(d)), append([]string{"add"}, tt.args...)...)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if stdout != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantStdout)
			}
			if !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr missing %q\ngot:\n%s", tt.wantStderr, stderr)
			}
		})
	}
}

func TestAddCommand_PromptReceivesFlags(t *testing.T) {
	prompter := &mockEntryPrompter{entry: ui.ManualEntry{Name: "alice", Secret: testSecret}}
	d := newTestDeps()
	d.interactive = func() bool { return true }
	d.prompter = prompter

	_, err := executeCommand(newTestRootCommand(NewAddCommandWithDeps(d)), "add", "--issuer", "Example", "--notes", "work")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prompter.prefill == nil {
		t.Fatal("expected prompter to be called")
	}
	if prompter.prefill.Issuer != "Example" || prompter.prefill.Notes != "work" {
		t.Errorf("prefill = %+v, want issuer and notes from flags", *prompter.prefill)
	}
}

func TestAddCommand_OutputRoundTrips(t *testing.T) {
	d := newTestDeps()
	stdout, _, err := executeCommandSplit(newTestRootCommand(NewAddCommandWithDeps(d)),
		"add", "--name", "Alice Smith", "--issuer", "Example & Co", "--secret", otherSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := otpauth.Parse(strings.TrimSpace(stdout))
	if err != nil {
		t.Fatalf("printed URL does not parse: %v", err)
	}
	if c.Name != "Alice Smith" || c.Issuer != "Example & Co" {
		t.Errorf("round trip got name=%q issuer=%q", c.Name, c.Issuer)
	}
	if got := c.Code(testTime); got != 996554 {
		t.Errorf("round trip code = %d, want 996554", got)
	}
}

func TestAddCommand_QRFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alice.png")
	d := newTestDeps()

	output, err := executeCommand(newTestRootCommand(NewAddCommandWithDeps(d)),
		"add", "--name", "alice", "--secret", testSecret, "--qr", path, "--output", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got credentialOutput
	if err := json.Unmarshal([]byte(output), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\ngot: %s", err, output)
	}
	if got.QRFile != path {
		t.Errorf("qrFile = %q, want %q", got.QRFile, path)
	}
	if !strings.HasPrefix(got.URI, "otpauth://totp/alice?") {
		t.Errorf("unexpected uri %q", got.URI)
	}
	if got.Secret != "" {
		t.Error("JSON output must not contain the secret")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("QR file not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") {
		t.Error("QR file is not a PNG")
	}
}
