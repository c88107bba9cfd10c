package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd is the base command for codemap.
var rootCmd = &cobra.Command{
	Use:   "codemap",
	Short: "Build and query a persistent code graph for a project",
	Long: `codemap scans a project's source files into a persistent, content-addressed
code graph: functions, classes, imports and exports per file, and module-level
dependency edges. Subsequent runs re-scan only changed files and merge the
result in place.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(impactCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(sliceCmd)
	rootCmd.AddCommand(watchCmd)
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
