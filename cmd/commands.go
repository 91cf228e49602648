package cmd

func init() {
	rootCmd.AddCommand(
		NewCodeCommand(),
		NewParseCommand(),
		NewAddCommand(),
		NewExportCommand(),
		NewWatchCommand(),
		NewConfigureCommand(),
		NewVersionCommand(),
	)
}
