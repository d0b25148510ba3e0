// Package market assembles per-instrument snapshots from the quote source.
package market

import "github.com/linyc/twmonitor/pkg/config"

// Kind tags a snapshot by instrument category. The benchmark index and
// tradable funds are evaluated against different rule sets.
type Kind string

const (
	KindBenchmark Kind = "benchmark"
	KindFund      Kind = "fund"
)

// Instrument identifies one monitored instrument.
type Instrument struct {
	Symbol string
	Name   string
	Kind   Kind
}

// Snapshot is the assembled market view of one instrument for a single
// invocation. History holds daily closes oldest to newest. Price == 0 is
// the "not yet loaded" sentinel and suppresses all rule evaluation.
type Snapshot struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Kind          Kind      `json:"kind"`
	Price         float64   `json:"price"`
	Open          float64   `json:"open"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	History       []float64 `json:"history"`
}

// Instruments expands a watchlist into tagged instruments, benchmark first.
func Instruments(wl *config.Watchlist) []Instrument {
	out := []Instrument{{
		Symbol: wl.Benchmark.Symbol,
		Name:   wl.Benchmark.Name,
		Kind:   KindBenchmark,
	}}
	for _, f := range wl.Funds {
		out = append(out, Instrument{Symbol: f.Symbol, Name: f.Name, Kind: KindFund})
	}
	return out
}
