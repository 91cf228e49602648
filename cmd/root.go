package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/aaearon/otpz/internal/config"
	"github.com/aaearon/otpz/internal/credential"
	"github.com/aaearon/otpz/internal/otp"
	"github.com/spf13/cobra"
)

var verbose bool

// newRootCommand creates the root cobra command with the given RunE function.
// All persistent flag registration and PersistentPreRunE setup is centralized here.
func newRootCommand(runFn func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "otpz",
		Short: "Show time-based one-time passwords",
		Long: `Show TOTP codes for the otpauth:// URLs in your accounts file.

Running otpz with no subcommand prints the current code of every account,
sorted by name, with the seconds left before it changes.

Accounts are read from ~/.otpz/accounts (one otpauth:// URL per line,
# starts a comment). otpz never writes to this file.

Examples:
  # Codes for all accounts
  otpz

  # One code, selected interactively or by name
  otpz code
  otpz code GitHub

  # Codes as JSON
  otpz --output json`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(".env"); err != nil {
				return err
			}
			if err := validateOutputFormat(); err != nil {
				return err
			}
			configureLogging(cmd, nil)
			return nil
		},
		RunE: runFn,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format: text, json (default from config)")
	addTimeFlag(cmd)

	return cmd
}

var rootCmd = newRootCommand(runListProduction)

// runListProduction is the production RunE for the root command
func runListProduction(cmd *cobra.Command, args []string) error {
	d, err := productionDeps(cmd)
	if err != nil {
		return err
	}
	return runList(cmd, d)
}

// NewRootCommandWithDeps creates a root command with injected dependencies for testing
func NewRootCommandWithDeps(d *deps) *cobra.Command {
	return newRootCommand(func(cmd *cobra.Command, args []string) error {
		return runList(cmd, d)
	})
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if !verbose {
			fmt.Fprintln(os.Stderr, "Hint: re-run with --verbose for more details")
		}
		os.Exit(1)
	}
}

func runList(cmd *cobra.Command, d *deps) error {
	t, err := resolveTime(cmd, d)
	if err != nil {
		return err
	}

	accounts, err := d.accounts.LoadAccounts()
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}
	if len(accounts) == 0 {
		return noAccountsError(d)
	}

	if isJSONOutput(d.cfg) {
		out := listOutput{Time: t.UTC(), Accounts: make([]codeOutput, 0, len(accounts))}
		for _, c := range accounts {
			out.Accounts = append(out.Accounts, newCodeOutput(c, t))
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	width := 0
	for _, c := range accounts {
		width = max(width, len(displayLabel(c)))
	}

	secs := otp.RemainingSeconds(otp.UnixMillis(t))
	for _, c := range accounts {
		fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s  %2ds\n", width, displayLabel(c), groupedCode(c, t, d.cfg), secs)
	}
	return nil
}

// groupedCode formats the code of c at t with the configured separator.
func groupedCode(c *credential.Credential, t time.Time, cfg *config.Config) string {
	sep := config.DefaultGroupSeparator
	if cfg != nil {
		sep = cfg.GroupSeparator
	}
	return otp.FormatCode(c.Code(t), sep)
}
