package cmd

import (
	"errors"
	"fmt"

	survey "github.com/Iilun/survey/v2"
	"github.com/aaearon/otpz/internal/config"
	"github.com/aaearon/otpz/internal/ui"
	"github.com/spf13/cobra"
)

// newConfigureCommand creates the configure cobra command with the given RunE function.
func newConfigureCommand(runFn func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Configure otpz",
		Long: `Write the otpz config file (~/.otpz/config.yaml, or $OTPZ_CONFIG).

Settings given as flags are written directly. With no flags, and when
running in a terminal, you are prompted for each setting with the current
value as the default.

Every setting can also be overridden per invocation with an environment
variable (OTPZ_ACCOUNTS_FILE, OTPZ_GROUP_SEPARATOR, OTPZ_OUTPUT,
OTPZ_LOG_FORMAT), including from a .env file in the working directory.

Examples:
  otpz configure
  otpz configure --accounts-file ~/secrets/otp-accounts --default-output json`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runFn,
	}

	cmd.Flags().String("accounts-file", "", "Accounts file path (default ~/.otpz/accounts)")
	cmd.Flags().String("group-separator", config.DefaultGroupSeparator, "Separator between the two halves of a code")
	cmd.Flags().String("default-output", config.OutputText, "Default output format: text, json")
	cmd.Flags().String("log-format", config.OutputText, "Verbose log format: text, json")

	return cmd
}

// NewConfigureCommand creates the production configure command
func NewConfigureCommand() *cobra.Command {
	return newConfigureCommand(func(cmd *cobra.Command, args []string) error {
		cfgPath, err := config.ConfigPath()
		if err != nil {
			return err
		}
		return runConfigure(cmd, cfgPath, ui.IsInteractive, &surveyConfigPrompter{})
	})
}

// NewConfigureCommandWithDeps creates a configure command with injected dependencies for testing
func NewConfigureCommandWithDeps(cfgPath string, interactive func() bool, prompter configPrompter) *cobra.Command {
	return newConfigureCommand(func(cmd *cobra.Command, args []string) error {
		return runConfigure(cmd, cfgPath, interactive, prompter)
	})
}

func runConfigure(cmd *cobra.Command, cfgPath string, interactive func() bool, prompter configPrompter) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	changed := false
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"accounts-file", &cfg.AccountsFile},
		{"group-separator", &cfg.GroupSeparator},
		{"default-output", &cfg.Output},
		{"log-format", &cfg.LogFormat},
	} {
		if flags.Changed(f.name) {
			*f.dst, _ = flags.GetString(f.name)
			changed = true
		}
	}

	if !changed {
		if !interactive() {
			return errors.New("no settings given, pass flags or run in a terminal to be prompted")
		}
		if err := prompter.PromptConfig(cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log.Info("Saving config...")
	if err := config.Save(cfg, cfgPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", cfgPath)
	return nil
}

// surveyConfigPrompter asks for each setting in turn
type surveyConfigPrompter struct{}

func (p *surveyConfigPrompter) PromptConfig(cfg *config.Config) error {
	questions := []*survey.Question{
		{
			Name: "accounts",
			Prompt: &survey.Input{
				Message: "Accounts file:",
				Help:    "One otpauth:// URL per line. Leave blank for ~/.otpz/accounts",
				Default: cfg.AccountsFile,
			},
		},
		{
			Name: "separator",
			Prompt: &survey.Input{
				Message: "Code group separator:",
				Help:    "Printed between the two halves of a code, e.g. a space or a dash",
				Default: cfg.GroupSeparator,
			},
		},
		{
			Name: "output",
			Prompt: &survey.Select{
				Message: "Default output format:",
				Options: []string{config.OutputText, config.OutputJSON},
				Default: cfg.Output,
			},
		},
		{
			Name: "logFormat",
			Prompt: &survey.Select{
				Message: "Verbose log format:",
				Options: []string{config.OutputText, config.OutputJSON},
				Default: cfg.LogFormat,
			},
		},
	}

	answers := struct {
		Accounts  string `survey:"accounts"`
		Separator string `survey:"separator"`
		Output    string `survey:"output"`
		LogFormat string `survey:"logFormat"`
	}{}

	if err := survey.Ask(questions, &answers); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	cfg.AccountsFile = answers.Accounts
	cfg.GroupSeparator = answers.Separator
	cfg.Output = answers.Output
	cfg.LogFormat = answers.LogFormat
	return nil
}
