package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var testNotifyCmd = &cobra.Command{
	Use:   "test-notify",
	Short: "發送測試通知",
	Long: `Sends a test push message over the configured LINE channel to
verify the credentials before relying on alerts.

Example:
  go run ./cmd/monitor test-notify`,
	RunE: runTestNotify,
}

func init() {
	rootCmd.AddCommand(testNotifyCmd)
}

func runTestNotify(cmd *cobra.Command, args []string) error {
	application, err := buildApp()
	if err != nil {
		return err
	}
	defer application.Close()

	if !application.cfg.HasLineCredentials() {
		return fmt.Errorf("CHANNEL_ACCESS_TOKEN and USER_ID must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	message := fmt.Sprintf("twmonitor 測試通知 (%s)", time.Now().Format(time.RFC3339))
	if err := application.notifier.Push(ctx, message); err != nil {
		return fmt.Errorf("send test notification: %w", err)
	}

	fmt.Println("Test notification sent.")
	return nil
}
