package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "monitor",
	Short: "台股異常監控服務 - TAIEX / ETF anomaly monitor",
	Long: `twmonitor watches the TAIEX benchmark and a small ETF basket
against four anomaly rules and pushes deduplicated LINE alerts,
at most once per instrument and condition per trading day.

Usage:
  go run ./cmd/monitor [command]

Examples:
  go run ./cmd/monitor serve
  go run ./cmd/monitor serve --with-scheduler
  go run ./cmd/monitor run
  go run ./cmd/monitor status
  go run ./cmd/monitor test-notify`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
