package cmd

import (
	"fmt"

	"github.com/aaearon/otpz/internal/otp"
	"github.com/spf13/cobra"
)

// newCodeCommand creates the code cobra command with the given RunE function.
func newCodeCommand(runFn func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "code [name | -]",
		Short: "Print the current code of one account",
		Long: `Print the current TOTP code of one account.

The account is taken from --url, --secret, an otpauth:// URL on stdin
("-"), or by name from the accounts file. With no argument a single
configured account is used directly; with several you choose one
interactively.

Examples:
  # Pick an account
  otpz code

  # By name (case-insensitive)
  otpz code github

  # From a URL decoded out of a QR code
  zbarimg -q --raw qr.png | otpz code -

  # Ad hoc secret, ungrouped for scripts
  otpz code --secret JBSWY3DPEHPK3PXP --raw`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runFn,
	}

	addSourceFlags(cmd)
	addTimeFlag(cmd)
	cmd.Flags().Bool("raw", false, "Print the code without digit grouping")

	return cmd
}

// NewCodeCommand creates the production code command.
func NewCodeCommand() *cobra.Command {
	return newCodeCommand(func(cmd *cobra.Command, args []string) error {
		d, err := productionDeps(cmd)
		if err != nil {
			return err
		}
		return runCode(cmd, args, d)
	})
}

// NewCodeCommandWithDeps creates a code command with injected dependencies for testing.
func NewCodeCommandWithDeps(d *deps) *cobra.Command {
	return newCodeCommand(func(cmd *cobra.Command, args []string) error {
		return runCode(cmd, args, d)
	})
}

func runCode(cmd *cobra.Command, args []string, d *deps) error {
	t, err := resolveTime(cmd, d)
	if err != nil {
		return err
	}

	c, err := resolveCredential(cmd, args, d)
	if err != nil {
		return err
	}

	if isJSONOutput(d.cfg) {
		return writeJSON(cmd.OutOrStdout(), newCodeOutput(c, t))
	}

	ms := otp.UnixMillis(t)
	log.Debug("counter %d, %ds remaining", otp.Counter(ms), otp.RemainingSeconds(ms))

	code := groupedCode(c, t, d.cfg)
	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		code = otp.FormatCode(c.Code(t), "")
	}
	fmt.Fprintln(cmd.OutOrStdout(), code)
	return nil
}
