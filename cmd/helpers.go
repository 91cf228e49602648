package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aaearon/otpz/internal/config"
	"github.com/aaearon/otpz/internal/credential"
	"github.com/aaearon/otpz/internal/otp"
	"github.com/aaearon/otpz/internal/otpauth"
	"github.com/aaearon/otpz/internal/qrcode"
	"github.com/aaearon/otpz/internal/ui"
	"github.com/spf13/cobra"
)

// stdinArg selects reading an otpauth URL from standard input, e.g. piped
// from a QR decoder.
const stdinArg = "-"

// deps bundles what commands need from the outside world.
type deps struct {
	cfg         *config.Config
	accounts    accountLoader
	selector    credentialSelector
	prompter    entryPrompter
	parser      otpauth.Parser
	now         func() time.Time
	stdin       io.Reader
	interactive func() bool
	stdoutTTY   func() bool
	interval    time.Duration
}

// productionDeps loads the config file and wires the real implementations.
func productionDeps(cmd *cobra.Command) (*deps, error) {
	cfg, cfgPath, err := config.LoadDefaultWithPath()
	if err != nil {
		return nil, err
	}
	configureLogging(cmd, cfg)
	log.Debug("loaded config from %s", cfgPath)

	accountsPath, err := config.AccountsPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to determine accounts path: %w", err)
	}

	parser := otpauth.Parser{Logger: log}
	return &deps{
		cfg:         cfg,
		accounts:    &fileAccountLoader{path: accountsPath, parser: parser},
		selector:    &uiSelector{},
		prompter:    &uiPrompter{},
		parser:      parser,
		now:         time.Now,
		stdin:       cmd.InOrStdin(),
		interactive: ui.IsInteractive,
		stdoutTTY:   ui.IsStdoutTerminal,
		interval:    time.Second,
	}, nil
}

// fileAccountLoader reads the accounts file on demand.
type fileAccountLoader struct {
	path   string
	parser otpauth.Parser
}

func (l *fileAccountLoader) LoadAccounts() ([]*credential.Credential, error) {
	accounts, err := config.LoadAccounts(l.path, l.parser)
	if err != nil {
		return nil, err
	}
	log.Info("loaded %d accounts from %s", len(accounts), l.path)
	return accounts, nil
}

func (l *fileAccountLoader) Path() string { return l.path }

// uiSelector wraps ui.SelectCredential to implement the credentialSelector interface
type uiSelector struct{}

func (s *uiSelector) SelectCredential(creds []*credential.Credential) (*credential.Credential, error) {
	return ui.SelectCredential(creds)
}

// uiPrompter wraps ui.PromptManualEntry to implement the entryPrompter interface
type uiPrompter struct{}

func (p *uiPrompter) PromptManualEntry(prefill ui.ManualEntry) (ui.ManualEntry, error) {
	return ui.PromptManualEntry(prefill)
}

// addSourceFlags registers the flags that pick a credential without the accounts file.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("url", "u", "", "otpauth:// URL to use instead of an account")
	cmd.Flags().StringP("secret", "s", "", "Base32 secret to use instead of an account")
	cmd.MarkFlagsMutuallyExclusive("url", "secret")
}

// resolveCredential picks the credential a command operates on, in order:
// --url, --secret, "-" (URL on stdin), an account name, the only account,
// or an interactive selection.
func resolveCredential(cmd *cobra.Command, args []string, d *deps) (*credential.Credential, error) {
	rawURL, _ := cmd.Flags().GetString("url")
	secretText, _ := cmd.Flags().GetString("secret")

	if (rawURL != "" || secretText != "") && len(args) > 0 {
		return nil, errors.New("an account name cannot be combined with --url or --secret")
	}

	switch {
	case rawURL != "":
		return parseURL(d, rawURL)
	case secretText != "":
		secret, err := otp.DecodeBase32(secretText)
		if err != nil {
			return nil, fmt.Errorf("invalid secret: %w", err)
		}
		return credential.New("", "", secret, "")
	case len(args) > 0 && args[0] == stdinArg:
		line, err := readLine(d.stdin)
		if err != nil {
			return nil, err
		}
		return parseURL(d, line)
	}

	accounts, err := d.accounts.LoadAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	if len(args) > 0 {
		c, ok := credential.FindByName(accounts, args[0])
		if !ok {
			return nil, fmt.Errorf("account %q not found in %s", args[0], d.accounts.Path())
		}
		return c, nil
	}

	switch len(accounts) {
	case 0:
		return nil, noAccountsError(d)
	case 1:
		return accounts[0], nil
	}

	c, err := d.selector.SelectCredential(accounts)
	if err != nil {
		if errors.Is(err, ui.ErrNotInteractive) {
			return nil, errors.New("several accounts configured, name one or run in a terminal to choose")
		}
		return nil, err
	}
	return c, nil
}

func parseURL(d *deps, raw string) (*credential.Credential, error) {
	c, err := d.parser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid otpauth URL: %w", err)
	}
	log.Info("parsed otpauth URL for %s", c.Label())
	return c, nil
}

// readLine returns the first non-blank line of r.
func readLine(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return "", errors.New("no otpauth URL on stdin")
}

func noAccountsError(d *deps) error {
	return fmt.Errorf("no accounts found in %s, add otpauth URLs to it (see 'otpz add')", d.accounts.Path())
}

// addTimeFlag registers --at for computing codes at a fixed instant.
func addTimeFlag(cmd *cobra.Command) {
	cmd.Flags().String("at", "", "Compute codes at this RFC 3339 time instead of now")
}

// displayLabel is c.Label(), or a placeholder for credentials without name or issuer.
func displayLabel(c *credential.Credential) string {
	if l := c.Label(); l != "" {
		return l
	}
	return "(unnamed)"
}

// resolveTime returns the --at time, or the current time.
func resolveTime(cmd *cobra.Command, d *deps) (time.Time, error) {
	at, _ := cmd.Flags().GetString("at")
	if at == "" {
		return d.now(), nil
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at time: %w", err)
	}
	return t, nil
}

// newCodeOutput computes the code for c at t.
func newCodeOutput(c *credential.Credential, t time.Time) codeOutput {
	ms := otp.UnixMillis(t)
	return codeOutput{
		Name:              c.Name,
		Issuer:            c.Issuer,
		Code:              otp.FormatCode(c.Code(t), ""),
		RemainingSeconds:  otp.RemainingSeconds(ms),
		RemainingFraction: otp.RemainingFraction(ms),
	}
}

// writeQR writes the QR code for uri as a PNG file, or as text to w when
// path is "-".
func writeQR(w io.Writer, path, uri string) error {
	if path == stdinArg {
		text, err := qrcode.Text(uri)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, text)
		return err
	}

	png, err := qrcode.PNG(uri, 0)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o600); err != nil {
		return fmt.Errorf("failed to write QR code: %w", err)
	}
	log.Info("wrote QR code to %s", path)
	return nil
}
