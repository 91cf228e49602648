package cmd

import (
	"bytes"
	"strings"
	"time"

	"github.com/aaearon/otpz/internal/config"
	"github.com/aaearon/otpz/internal/credential"
	"github.com/spf13/cobra"
)

// testSecret is the RFC 4226 / RFC 6238 SHA1 test key "12345678901234567890".
const testSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

// testTime is 59 seconds past the epoch: counter 1, code 287082, 1s left.
var testTime = time.Unix(59, 0).UTC()

// newTestRootCommand creates a root command with no-op RunE and the given subcommands.
func newTestRootCommand(subs ...*cobra.Command) *cobra.Command {
	root := newRootCommand(func(cmd *cobra.Command, args []string) error { return nil })
	root.AddCommand(subs...)
	return root
}

// newTestDeps returns deps backed by mocks, a fixed clock and no terminal.
func newTestDeps(accounts ...*credential.Credential) *deps {
	return &deps{
		cfg:         config.DefaultConfig(),
		accounts:    &mockAccountLoader{accounts: accounts},
		selector:    &mockCredentialSelector{},
		prompter:    &mockEntryPrompter{},
		now:         func() time.Time { return testTime },
		stdin:       strings.NewReader(""),
		interactive: func() bool { return false },
		stdoutTTY:   func() bool { return false },
		interval:    time.Millisecond,
	}
}

// mustCredential builds a credential over the test secret or panics.
func mustCredential(name, issuer string) *credential.Credential {
	c, err := credential.FromBase32(name, issuer, testSecret, "")
	if err != nil {
		panic(err)
	}
	return c
}

// executeCommand executes a command and returns its output
func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// executeCommandSplit executes a command and returns stdout and stderr separately
func executeCommandSplit(cmd *cobra.Command, args ...string) (string, string, error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
