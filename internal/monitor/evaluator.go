package monitor

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/linyc/twmonitor/internal/indicator"
	"github.com/linyc/twmonitor/internal/market"
	"github.com/linyc/twmonitor/pkg/config"
	"github.com/linyc/twmonitor/pkg/logger"
)

// Evaluator applies the four alert conditions to the assembled snapshots.
// It is the sole writer of the persisted counters and the dedup set.
//
// Benchmark rules (A, B) and fund rules (C, D) are disjoint; every
// triggered condition not already in today's dedup set produces one
// alert, and conditions never suppress each other.
type Evaluator struct {
	store      StateStore
	thresholds config.Thresholds
	logger     *logger.Logger
}

// NewEvaluator creates an evaluator with the given rule thresholds.
func NewEvaluator(store StateStore, thresholds config.Thresholds, log *logger.Logger) *Evaluator {
	return &Evaluator{
		store:      store,
		thresholds: thresholds,
		logger:     log.WithField("module", "evaluator"),
	}
}

// Evaluate runs all conditions for one invocation. today is the venue
// trading date used for the once-per-day guards. The returned alerts are
// the newly triggered ones; anything already in the dedup set stays
// silent. State writes for the bleed accumulation step happen
// immediately; the counter and the dedup set are written back at the end.
func (e *Evaluator) Evaluate(ctx context.Context, snapshots []market.Snapshot, today string) []Alert {
	cumulativeDrop := e.store.CumulativeDrop(ctx)
	lastBleedDay := e.store.LastBleedDay(ctx)
	notified := e.store.NotifiedToday(ctx)

	var alerts []Alert
	now := time.Now()

	addAlert := func(symbol string, cond Condition, message string) {
		key := DedupKey(symbol, cond)
		if _, seen := notified[key]; seen {
			return
		}
		alerts = append(alerts, Alert{
			ID:        fmt.Sprintf("%d-%s", now.UnixNano(), key),
			Timestamp: now,
			Symbol:    symbol,
			Condition: cond,
			Message:   fmt.Sprintf("[%s] %s", cond.Label(), message),
		})
		notified[key] = struct{}{}
	}

	for _, snap := range snapshots {
		switch snap.Kind {
		case market.KindBenchmark:
			cumulativeDrop = e.evaluateBenchmark(ctx, snap, today, lastBleedDay, cumulativeDrop, addAlert)
		case market.KindFund:
			e.evaluateFund(snap, addAlert)
		}
	}

	if err := e.store.SetCumulativeDrop(ctx, cumulativeDrop); err != nil {
		e.logger.WithError(err).Error("Failed to persist cumulative drop")
	}
	if err := e.store.SetNotifiedToday(ctx, notified); err != nil {
		e.logger.WithError(err).Error("Failed to persist dedup set")
	}

	e.logger.WithFields(map[string]interface{}{
		"snapshots":  len(snapshots),
		"new_alerts": len(alerts),
	}).Debug("Evaluation completed")

	return alerts
}

// evaluateBenchmark applies conditions A and B and returns the updated
// cumulative drop counter.
func (e *Evaluator) evaluateBenchmark(
	ctx context.Context,
	snap market.Snapshot,
	today, lastBleedDay string,
	cumulativeDrop float64,
	addAlert func(string, Condition, string),
) float64 {
	// Price 0 means the quote never loaded; two closes are needed for
	// the close-to-close bleed step.
	if snap.Price <= 0 || len(snap.History) < 2 {
		return cumulativeDrop
	}

	// Daily accumulation step, at most once per calendar day. A red
	// close adds to the counter, a green close resets it. Persisted
	// immediately so an aborted run cannot re-apply the increment.
	if today != lastBleedDay {
		yesterdayClose := snap.History[len(snap.History)-1]
		dayBeforeClose := snap.History[len(snap.History)-2]
		yesterdayChange := yesterdayClose - dayBeforeClose

		if yesterdayChange < 0 {
			cumulativeDrop += math.Abs(yesterdayChange)
		} else {
			cumulativeDrop = 0
		}

		if err := e.store.SetCumulativeDrop(ctx, cumulativeDrop); err != nil {
			e.logger.WithError(err).Error("Failed to persist cumulative drop")
		}
		if err := e.store.SetLastBleedDay(ctx, today); err != nil {
			e.logger.WithError(err).Error("Failed to persist bleed day")
		}

		e.logger.WithFields(map[string]interface{}{
			"yesterday_change": yesterdayChange,
			"cumulative_drop":  cumulativeDrop,
		}).Info("Applied daily bleed step")
	}

	// Condition A: panic sell on a steep intraday point drop.
	singleDayDrop := snap.Open - snap.Price
	if singleDayDrop > e.thresholds.PanicDropPoints {
		addAlert(snap.Symbol, CondPanicSell, fmt.Sprintf(
			"%s 今日盤中跌幅超過 %.0f 點。目前跌點: %.2f",
			snap.Name, e.thresholds.PanicDropPoints, singleDayDrop))
	}

	// Condition B: chronic bleed. Today's live drop counts on top of the
	// accrued closed-day losses, but is never folded into the counter;
	// tomorrow's accumulation step picks it up as a close-to-close move.
	intradayDrop := math.Max(0, singleDayDrop)
	if cumulativeDrop+intradayDrop > e.thresholds.BleedTotalPoints {
		addAlert(snap.Symbol, CondChronicBleed, fmt.Sprintf(
			"%s 連續累積跌幅超過 %.0f 點。目前累計: %.2f 點",
			snap.Name, e.thresholds.BleedTotalPoints, cumulativeDrop+intradayDrop))
		// Release valve: restart accumulation after alerting so the
		// alert does not re-fire every invocation at a growing total.
		cumulativeDrop = 0
	}

	return cumulativeDrop
}

// evaluateFund applies conditions C and D to one tradable fund.
func (e *Evaluator) evaluateFund(snap market.Snapshot, addAlert func(string, Condition, string)) {
	if len(snap.History) <= indicator.RSIPeriod || snap.Price <= 0 || snap.Open <= 0 {
		return
	}

	// Condition C: oversold. The live price is appended so the RSI
	// reacts to the current session, not just yesterday's close.
	series := make([]float64, 0, len(snap.History)+1)
	series = append(series, snap.History...)
	series = append(series, snap.Price)

	rsi := indicator.RSI14(series)
	if rsi < e.thresholds.OversoldRSI {
		addAlert(snap.Symbol, CondOversold, fmt.Sprintf(
			"%s (%s) 進入超賣區。RSI: %.2f", snap.Name, snap.Symbol, rsi))
	}

	// Condition D: deviation below MA20. The average is over history
	// only; the live price enters through the bias numerator.
	if len(snap.History) >= 20 {
		ma20 := indicator.SMA(snap.History, 20)
		bias := indicator.Bias(snap.Price, ma20)
		if bias < e.thresholds.DeviationBiasPct {
			addAlert(snap.Symbol, CondDeviation, fmt.Sprintf(
				"%s (%s) 股價低於 20 日線超過 %.0f%%。乖離率: %.2f%%",
				snap.Name, snap.Symbol, math.Abs(e.thresholds.DeviationBiasPct), bias))
		}
	}
}
