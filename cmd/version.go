package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/aaearon/otpz/cmd.version=...".
var (
	version   = ""
	commit    = ""
	buildDate = ""
)

// buildInfo is the version command output.
type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the otpz version, commit, build date, Go version and platform.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentBuildInfo()
			log.Debug("version %s built from %s", info.Version, info.Commit)
			if isJSONOutput(nil) {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			printBuildInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}
}

func currentBuildInfo() buildInfo {
	return buildInfo{
		Version:   orDefault(version, "dev"),
		Commit:    orDefault(commit, "unknown"),
		BuildDate: orDefault(buildDate, "unknown"),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func printBuildInfo(w io.Writer, info buildInfo) {
	fmt.Fprintf(w, "otpz %s\n", info.Version)
	fmt.Fprintf(w, "  commit:   %s\n", info.Commit)
	fmt.Fprintf(w, "  built:    %s\n", info.BuildDate)
	fmt.Fprintf(w, "  go:       %s\n", info.GoVersion)
	fmt.Fprintf(w, "  platform: %s\n", info.Platform)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
