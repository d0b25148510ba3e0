// Package monitor is the stateful alert-evaluation core. One invocation
// runs the day-boundary gate, assembles snapshots, applies the four alert
// conditions against the persisted state and dispatches a single batched
// notification.
package monitor

import (
	"fmt"
	"time"
)

// Condition tags one alert rule.
type Condition string

const (
	// CondPanicSell fires on a steep intraday benchmark drop.
	CondPanicSell Condition = "panic_sell"
	// CondChronicBleed fires when losses accumulate across days.
	CondChronicBleed Condition = "chronic_bleed"
	// CondOversold fires when a fund's RSI enters the oversold zone.
	CondOversold Condition = "oversold"
	// CondDeviation fires when a fund trades far below its MA20.
	CondDeviation Condition = "deviation"
)

// Label returns the human-readable tag prefixed to alert messages.
func (c Condition) Label() string {
	switch c {
	case CondPanicSell:
		return "A: 恐慌性拋售"
	case CondChronicBleed:
		return "B: 慢性失血"
	case CondOversold:
		return "C: ETF 超賣 (RSI)"
	case CondDeviation:
		return "D: ETF 乖離過大 (MA20)"
	default:
		return string(c)
	}
}

// Alert is one triggered rule for one instrument. Alerts are ephemeral:
// they live for the duration of one invocation's notification batch and
// only their dedup key survives the day.
type Alert struct {
	ID        string
	Timestamp time.Time
	Symbol    string
	Condition Condition
	Message   string
}

// DedupKey identifies one alert-worthiness slot per calendar day.
func DedupKey(symbol string, cond Condition) string {
	return fmt.Sprintf("%s|%s", symbol, cond)
}
