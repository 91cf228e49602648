package cmd

import (
	"fmt"

	"github.com/aaearon/otpz/internal/credential"
	"github.com/aaearon/otpz/internal/otp"
	"github.com/spf13/cobra"
)

// newParseCommand creates the parse cobra command with the given RunE function.
func newParseCommand(runFn func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <url | ->",
		Short: "Validate an otpauth:// URL",
		Long: `Validate an otpauth:// URL and print the credential it describes.

The secret is only shown with --show-secret. Pass "-" to read the URL
from stdin.

Examples:
  otpz parse 'otpauth://totp/alice?secret=JBSWY3DPEHPK3PXP&issuer=Example'
  otpz parse - < url.txt`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runFn,
	}

	cmd.Flags().Bool("show-secret", false, "Print the Base32 secret")

	return cmd
}

// NewParseCommand creates the production parse command.
func NewParseCommand() *cobra.Command {
	return newParseCommand(func(cmd *cobra.Command, args []string) error {
		d, err := productionDeps(cmd)
		if err != nil {
			return err
		}
		return runParse(cmd, args, d)
	})
}

// NewParseCommandWithDeps creates a parse command with injected dependencies for testing.
func NewParseCommandWithDeps(d *deps) *cobra.Command {
	return newParseCommand(func(cmd *cobra.Command, args []string) error {
		return runParse(cmd, args, d)
	})
}

func runParse(cmd *cobra.Command, args []string, d *deps) error {
	raw := args[0]
	if raw == stdinArg {
		line, err := readLine(d.stdin)
		if err != nil {
			return err
		}
		raw = line
	}

	c, err := parseURL(d, raw)
	if err != nil {
		return err
	}

	showSecret, _ := cmd.Flags().GetBool("show-secret")
	out := newCredentialOutput(c, showSecret)

	if isJSONOutput(d.cfg) {
		return writeJSON(cmd.OutOrStdout(), out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Name:    %s\n", c.Name)
	fmt.Fprintf(w, "Issuer:  %s\n", c.Issuer)
	if showSecret {
		fmt.Fprintf(w, "Secret:  %s\n", out.Secret)
	} else {
		fmt.Fprintf(w, "Secret:  %d bytes\n", out.SecretBytes)
	}
	return nil
}

// newCredentialOutput describes c. The secret is included only when asked for.
func newCredentialOutput(c *credential.Credential, showSecret bool) credentialOutput {
	secret := c.Secret()
	out := credentialOutput{
		ID:          c.ID.String(),
		Name:        c.Name,
		Issuer:      c.Issuer,
		Notes:       c.Notes,
		SecretBytes: len(secret),
	}
	if showSecret {
		out.Secret = otp.EncodeBase32(secret)
	}
	return out
}
