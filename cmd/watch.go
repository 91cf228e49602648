package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaearon/otpz/internal/credential"
	"github.com/aaearon/otpz/internal/otp"
	"github.com/aaearon/otpz/internal/ui"
	"github.com/spf13/cobra"
)

// newWatchCommand creates the watch cobra command with the given RunE function.
func newWatchCommand(runFn func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [name | -]",
		Short: "Show a code with a live countdown",
		Long: `Show the code of one account, refreshed every second with a bar
showing how much of the 30 second window is left.

Runs until interrupted with Ctrl-C, or for --count refreshes. When stdout
is not a terminal each refresh is written on its own line; with
--output json each refresh is one JSON object per line.

Examples:
  otpz watch github
  otpz watch --count 5 --output json github`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runFn,
	}

	addSourceFlags(cmd)
	cmd.Flags().IntP("count", "n", 0, "Stop after this many refreshes (0 runs until interrupted)")

	return cmd
}

// NewWatchCommand creates the production watch command.
func NewWatchCommand() *cobra.Command {
	return newWatchCommand(func(cmd *cobra.Command, args []string) error {
		d, err := productionDeps(cmd)
		if err != nil {
			return err
		}
		return runWatch(cmd, args, d)
	})
}

// NewWatchCommandWithDeps creates a watch command with injected dependencies for testing.
func NewWatchCommandWithDeps(d *deps) *cobra.Command {
	return newWatchCommand(func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd, args, d)
	})
}

func runWatch(cmd *cobra.Command, args []string, d *deps) error {
	count, _ := cmd.Flags().GetInt("count")
	if count < 0 {
		return fmt.Errorf("--count must not be negative, got %d", count)
	}

	c, err := resolveCredential(cmd, args, d)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := cmd.OutOrStdout()
	jsonOut := isJSONOutput(d.cfg)
	inPlace := !jsonOut && d.stdoutTTY()
	barWidth := ui.BarWidth(ui.TerminalWidth())

	interval := d.interval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for n := 1; ; n++ {
		t := d.now()
		if jsonOut {
			if err := writeJSONLine(w, newCodeOutput(c, t)); err != nil {
				return err
			}
		} else {
			renderWatchLine(w, c, t, d, barWidth, inPlace)
		}

		if count > 0 && n >= count {
			break
		}
		if !waitTick(ctx, ticker) {
			log.Debug("watch interrupted after %d refreshes", n)
			break
		}
	}

	if inPlace {
		fmt.Fprintln(w)
	}
	return nil
}

// renderWatchLine writes one refresh. In place, the line is redrawn over
// the previous one.
func renderWatchLine(w io.Writer, c *credential.Credential, t time.Time, d *deps, barWidth int, inPlace bool) {
	ms := otp.UnixMillis(t)
	line := fmt.Sprintf("%s  %s  %s %2ds",
		displayLabel(c),
		groupedCode(c, t, d.cfg),
		ui.ProgressBar(otp.RemainingFraction(ms), barWidth),
		otp.RemainingSeconds(ms))

	if inPlace {
		fmt.Fprintf(w, "\r%s", line)
		return
	}
	fmt.Fprintln(w, line)
}

// waitTick blocks until the next tick. It returns false once ctx is done.
func waitTick(ctx context.Context, ticker *time.Ticker) bool {
	select {
	case <-ctx.Done():
		return false
	case <-ticker.C:
		return true
	}
}
