package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "執行一次監控",
	Long: `Runs one monitor invocation and exits.

Outside trading hours this only performs the daily dedup reset and
reports that the monitor is paused.

Example:
  go run ./cmd/monitor run`,
	RunE: runOnce,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	application, err := buildApp()
	if err != nil {
		return err
	}
	defer application.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := application.runner.Run(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("monitor run failed: %w", err)
	}

	if result.Skipped {
		fmt.Println("Not trading hours. Monitor paused.")
		return nil
	}

	fmt.Printf("Monitor run completed, alerts sent: %d\n", result.AlertsSent)
	return nil
}
