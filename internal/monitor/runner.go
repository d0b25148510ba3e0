package monitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/linyc/twmonitor/internal/market"
	"github.com/linyc/twmonitor/internal/tradingcal"
	"github.com/linyc/twmonitor/pkg/config"
	"github.com/linyc/twmonitor/pkg/logger"
)

// notificationHeader tops every batched alert message.
const notificationHeader = "===== 股市監控警報 ====="

// SnapshotSource assembles the snapshot set for one invocation.
type SnapshotSource interface {
	FetchAll(ctx context.Context, instruments []market.Instrument) []market.Snapshot
}

// Notifier delivers one text block per invocation.
type Notifier interface {
	Push(ctx context.Context, message string) error
}

// Result summarizes one invocation.
type Result struct {
	// AlertsSent is the number of newly triggered alerts.
	AlertsSent int `json:"alertsSent"`
	// Skipped is true when the invocation fell outside trading hours.
	Skipped bool `json:"skipped"`
}

// Runner executes one full monitor invocation: gate, assembly,
// evaluation, dispatch. Each invocation is independent; all continuity
// flows through the state store.
type Runner struct {
	cfg       *config.Config
	watchlist *config.Watchlist
	gate      *Gate
	source    SnapshotSource
	evaluator *Evaluator
	notifier  Notifier
	logger    *logger.Logger
}

// NewRunner wires a runner from its collaborators.
func NewRunner(
	cfg *config.Config,
	watchlist *config.Watchlist,
	gate *Gate,
	source SnapshotSource,
	evaluator *Evaluator,
	notifier Notifier,
	log *logger.Logger,
) *Runner {
	return &Runner{
		cfg:       cfg,
		watchlist: watchlist,
		gate:      gate,
		source:    source,
		evaluator: evaluator,
		notifier:  notifier,
		logger:    log.WithField("module", "runner"),
	}
}

// Run performs one invocation at the given wall-clock time.
//
// Missing transport credentials abort before any state is touched: an
// alert that cannot be delivered must not consume its dedup slot. An
// unexpected evaluation panic is caught here, reported through a
// best-effort failure notice, and returned as an error.
func (r *Runner) Run(ctx context.Context, now time.Time) (result Result, err error) {
	if !r.cfg.HasLineCredentials() {
		return Result{}, fmt.Errorf("messaging credentials are not configured")
	}

	today := tradingcal.TradingDate(now)

	if !tradingcal.InSession(now) {
		r.gate.ResetIfNewDay(ctx, today)
		r.logger.WithField("day", today).Debug("Outside trading hours, monitor paused")
		return Result{Skipped: true}, nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("monitor run panicked: %v", rec)
			r.logger.WithField("panic", rec).Error("Monitor run failed")
			r.sendFailureNotice(ctx, err)
			result = Result{}
		}
	}()

	snapshots := r.source.FetchAll(ctx, market.Instruments(r.watchlist))

	alerts := r.evaluator.Evaluate(ctx, snapshots, today)

	if len(alerts) > 0 {
		r.dispatch(ctx, alerts)
	}

	r.logger.WithFields(map[string]interface{}{
		"day":         today,
		"snapshots":   len(snapshots),
		"alerts_sent": len(alerts),
	}).Info("Monitor run completed")

	return Result{AlertsSent: len(alerts)}, nil
}

// dispatch batches all alerts of one invocation into a single push.
// Per-alert messages would exhaust the transport's rate limit; one block
// per run cannot. Delivery failure is logged, never retried, and does
// not fail the invocation.
func (r *Runner) dispatch(ctx context.Context, alerts []Alert) {
	lines := make([]string, 0, len(alerts)+1)
	lines = append(lines, notificationHeader)
	for _, a := range alerts {
		lines = append(lines, a.Message)
	}

	if err := r.notifier.Push(ctx, "\n"+strings.Join(lines, "\n")); err != nil {
		r.logger.WithError(err).Error("Failed to send alert notification")
	}
}

// sendFailureNotice reports a failed run over the notification channel.
// Best effort: its own failure is swallowed.
func (r *Runner) sendFailureNotice(ctx context.Context, runErr error) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.Push(ctx, fmt.Sprintf("監控腳本執行失敗: %v", runErr)); err != nil {
		r.logger.WithError(err).Warn("Failed to send failure notice")
	}
}
