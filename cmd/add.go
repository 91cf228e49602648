package cmd

import (
	"errors"
	"fmt"

	"github.com/aaearon/otpz/internal/credential"
	"github.com/aaearon/otpz/internal/otpauth"
	"github.com/aaearon/otpz/internal/ui"
	"github.com/spf13/cobra"
)

// newAddCommand creates the add cobra command with the given RunE function.
func newAddCommand(runFn func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Enter an account by hand",
		Long: `Enter an account by hand and print its otpauth:// URL.

Missing fields are prompted for when running in a terminal. otpz does not
store accounts: append the printed URL to your accounts file to keep it.

Examples:
  # Prompt for everything
  otpz add

  # Non-interactive, also writing a QR code for another authenticator
  otpz add --name alice --issuer Example --secret JBSWY3DPEHPK3PXP --qr alice.png

  # Keep the account
  otpz add --name alice --secret JBSWY3DPEHPK3PXP >> ~/.otpz/accounts`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runFn,
	}

	cmd.Flags().String("name", "", "Account name")
	cmd.Flags().String("issuer", "", "Service the account belongs to")
	cmd.Flags().StringP("secret", "s", "", "Base32 secret")
	cmd.Flags().String("notes", "", "Free-form notes")
	cmd.Flags().String("qr", "", `Also write a QR code PNG to this file ("-" prints it to the terminal)`)

	return cmd
}

// NewAddCommand creates the production add command.
func NewAddCommand() *cobra.Command {
	return newAddCommand(func(cmd *cobra.Command, args []string) error {
		d, err := productionDeps(cmd)
		if err != nil {
			return err
		}
		return runAdd(cmd, d)
	})
}

// NewAddCommandWithDeps creates an add command with injected dependencies for testing.
func NewAddCommandWithDeps(d *deps) *cobra.Command {
	return newAddCommand(func(cmd *cobra.Command, args []string) error {
		return runAdd(cmd, d)
	})
}

func runAdd(cmd *cobra.Command, d *deps) error {
	var entry ui.ManualEntry
	entry.Name, _ = cmd.Flags().GetString("name")
	entry.Issuer, _ = cmd.Flags().GetString("issuer")
	entry.Secret, _ = cmd.Flags().GetString("secret")
	entry.Notes, _ = cmd.Flags().GetString("notes")

	if entry.Name == "" || entry.Secret == "" {
		if !d.interactive() {
			return errors.New("--name and --secret are required when not running in a terminal")
		}
		var err error
		entry, err = d.prompter.PromptManualEntry(entry)
		if err != nil {
			return err
		}
	}

	c, err := credential.FromBase32(entry.Name, entry.Issuer, entry.Secret, entry.Notes)
	if err != nil {
		switch {
		case errors.Is(err, credential.ErrMissingName):
			return errors.New("an account name is required")
		case errors.Is(err, credential.ErrEmptySecret):
			return errors.New("a secret is required")
		}
		return fmt.Errorf("invalid secret: %w", err)
	}
	log.Info("created %s", displayLabel(c))

	uri := otpauth.Format(c)
	qrPath, _ := cmd.Flags().GetString("qr")

	if isJSONOutput(d.cfg) {
		out := newCredentialOutput(c, false)
		out.URI = uri
		if qrPath != "" && qrPath != stdinArg {
			if err := writeQR(cmd.OutOrStdout(), qrPath, uri); err != nil {
				return err
			}
			out.QRFile = qrPath
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	fmt.Fprintln(cmd.OutOrStdout(), uri)
	if qrPath != "" {
		if err := writeQR(cmd.OutOrStdout(), qrPath, uri); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Append the URL to %s to keep this account.\n", d.accounts.Path())
	return nil
}
