package monitor

import (
	"context"

	"github.com/linyc/twmonitor/pkg/logger"
)

// Gate clears the daily dedup set exactly once per calendar day, during
// the quiet period outside trading hours. Clearing off-session means the
// first alert-worthy invocation of a new session starts from a clean
// slate without racing the evaluator.
type Gate struct {
	store  StateStore
	logger *logger.Logger
}

// NewGate creates a day-boundary gate.
func NewGate(store StateStore, log *logger.Logger) *Gate {
	return &Gate{
		store:  store,
		logger: log.WithField("module", "gate"),
	}
}

// ResetIfNewDay clears the dedup set when today differs from the last
// reset day. Idempotent within a day: the guard date advances only after
// a successful clear, so a failed clear is retried on the next idle
// invocation.
func (g *Gate) ResetIfNewDay(ctx context.Context, today string) {
	lastReset := g.store.LastResetDay(ctx)
	if lastReset == today {
		return
	}

	if err := g.store.ClearNotifiedToday(ctx); err != nil {
		g.logger.WithError(err).Error("Failed to clear dedup set")
		return
	}
	if err := g.store.SetLastResetDay(ctx, today); err != nil {
		g.logger.WithError(err).Error("Failed to persist reset day")
		return
	}

	g.logger.WithFields(map[string]interface{}{
		"day":        today,
		"last_reset": lastReset,
	}).Info("Dedup set cleared for new day")
}
