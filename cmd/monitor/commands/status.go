package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/linyc/twmonitor/internal/tradingcal"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "顯示持久化狀態",
	Long: `Prints the persisted monitor state: the cumulative benchmark
loss counter, the day-boundary guard dates and today's dedup set.

Example:
  go run ./cmd/monitor status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	application, err := buildApp()
	if err != nil {
		return err
	}
	defer application.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	st := application.store

	fmt.Println("=== twmonitor state ===")
	fmt.Printf("trading day:          %s\n", tradingcal.TradingDate(now))
	fmt.Printf("in session:           %t\n", tradingcal.InSession(now))
	fmt.Printf("cumulative drop:      %.2f\n", st.CumulativeDrop(ctx))
	fmt.Printf("last bleed day:       %s\n", orNone(st.LastBleedDay(ctx)))
	fmt.Printf("last reset day:       %s\n", orNone(st.LastResetDay(ctx)))

	notified := st.NotifiedToday(ctx)
	keys := make([]string, 0, len(notified))
	for k := range notified {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("notified today (%d):\n", len(keys))
	for _, k := range keys {
		fmt.Printf("  - %s\n", k)
	}

	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
