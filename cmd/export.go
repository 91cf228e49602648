package cmd

import (
	"fmt"

	"github.com/aaearon/otpz/internal/otpauth"
	"github.com/spf13/cobra"
)

// newExportCommand creates the export cobra command with the given RunE function.
func newExportCommand(runFn func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [name | -]",
		Short: "Print an account as an otpauth:// URL or QR code",
		Long: `Print an account as an otpauth:// URL, optionally as a QR code too.

The QR code can be scanned by another authenticator app. Use --qr - to
draw it in the terminal instead of writing a PNG file.

Examples:
  otpz export github
  otpz export github --qr github.png
  otpz export --secret JBSWY3DPEHPK3PXP --qr -`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runFn,
	}

	addSourceFlags(cmd)
	cmd.Flags().String("qr", "", `Write a QR code PNG to this file ("-" prints it to the terminal)`)

	return cmd
}

// NewExportCommand creates the production export command.
func NewExportCommand() *cobra.Command {
	return newExportCommand(func(cmd *cobra.Command, args []string) error {
		d, err := productionDeps(cmd)
		if err != nil {
			return err
		}
		return runExport(cmd, args, d)
	})
}

// NewExportCommandWithDeps creates an export command with injected dependencies for testing.
func NewExportCommandWithDeps(d *deps) *cobra.Command {
	return newExportCommand(func(cmd *cobra.Command, args []string) error {
		return runExport(cmd, args, d)
	})
}

func runExport(cmd *cobra.Command, args []string, d *deps) error {
	c, err := resolveCredential(cmd, args, d)
	if err != nil {
		return err
	}

	uri := otpauth.Format(c)
	qrPath, _ := cmd.Flags().GetString("qr")

	if isJSONOutput(d.cfg) {
		out := exportOutput{URI: uri}
		if qrPath != "" && qrPath != stdinArg {
			if err := writeQR(cmd.OutOrStdout(), qrPath, uri); err != nil {
				return err
			}
			out.QRFile = qrPath
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	fmt.Fprintln(cmd.OutOrStdout(), uri)
	if qrPath == "" {
		return nil
	}
	if err := writeQR(cmd.OutOrStdout(), qrPath, uri); err != nil {
		return err
	}
	if qrPath != stdinArg {
		fmt.Fprintf(cmd.OutOrStdout(), "QR code written to %s\n", qrPath)
	}
	return nil
}
