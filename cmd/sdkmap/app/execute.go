package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdkmap/sdkmap/internal/cmd/output"
)

// Execute runs the sdkmap CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command. Resolution is the
// tool's single job, so the root command runs it directly.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "sdkmap",
		Short:   "Map Xcode versions to their bundled iOS SDK versions",
		Version: a.version,
		Long: `sdkmap resolves which iOS SDK ships inside each Xcode release by
querying several independent sources (local xcodebuild, Apple's own
documentation and support pages, xcodereleases.com, archived release
notes, Wikipedia) and cross-referencing their answers.

Default output: flat {xcode_version: ios_sdk} JSON and CSV files.
Use --detailed for the full per-source breakdown.

Exit codes: 0 = no changes; 1 = the mapping was updated; 2 = fatal error.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runResolve(cmd.Context())
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Format, "format", "o", "", "stdout format: table, json, yaml, csv (default: table on a terminal, json otherwise)")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	// Resolution flags
	rootCmd.Flags().StringVar(&a.config.JSONPath, "json", a.config.JSONPath, "JSON output path")
	rootCmd.Flags().StringVar(&a.config.CSVPath, "csv", a.config.CSVPath, "CSV output path")
	rootCmd.Flags().BoolVar(&a.config.Detailed, "detailed", a.config.Detailed, "include per-source breakdown in output")
	rootCmd.Flags().BoolVar(&a.config.Table, "table", a.config.Table, "print human-readable table to stderr")
	rootCmd.Flags().BoolVar(&a.config.ConflictsOnly, "conflicts-only", a.config.ConflictsOnly, "restrict output to conflicting/missing rows only")
	rootCmd.Flags().BoolVar(&a.config.SkipXcodes, "skip-xcodes", a.config.SkipXcodes, "skip the xcodes CLI version enumeration")

	rootCmd.SetVersionTemplate("sdkmap {{.Version}}\n")

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)
	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// ExitOnError prints an error and exits with status 2, the fatal exit code.
// Statuses 0 and 1 are reserved for the change verdict.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't
// exist. Only for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't
// exist. Only for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
