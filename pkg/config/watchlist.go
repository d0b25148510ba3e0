package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Watchlist defines the monitored instrument basket and rule thresholds.
type Watchlist struct {
	Benchmark  WatchEntry   `yaml:"benchmark"`
	Funds      []WatchEntry `yaml:"funds"`
	Thresholds Thresholds   `yaml:"thresholds"`
}

// WatchEntry identifies one monitored instrument.
type WatchEntry struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

// Thresholds holds the alert rule trigger levels.
type Thresholds struct {
	// PanicDropPoints is the intraday benchmark drop (index points)
	// that triggers a panic-sell alert.
	PanicDropPoints float64 `yaml:"panic_drop_points"`
	// BleedTotalPoints is the cumulative multi-day benchmark loss
	// (index points) that triggers a chronic-bleed alert.
	BleedTotalPoints float64 `yaml:"bleed_total_points"`
	// OversoldRSI is the RSI level below which a fund is oversold.
	OversoldRSI float64 `yaml:"oversold_rsi"`
	// DeviationBiasPct is the MA20 bias (percent, negative) below
	// which a fund has deviated too far.
	DeviationBiasPct float64 `yaml:"deviation_bias_pct"`
}

// DefaultWatchlist returns the built-in TAIEX + ETF basket.
func DefaultWatchlist() *Watchlist {
	return &Watchlist{
		Benchmark: WatchEntry{Symbol: "^TWII", Name: "台灣加權指數"},
		Funds: []WatchEntry{
			{Symbol: "0050.TW", Name: "元大台灣50"},
			{Symbol: "00646.TW", Name: "元大S&P500"},
			{Symbol: "00878.TW", Name: "國泰永續高股息"},
			{Symbol: "00933B.TW", Name: "國泰10Y+金融債"},
		},
		Thresholds: DefaultThresholds(),
	}
}

// DefaultThresholds returns the standard trigger levels.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PanicDropPoints:  200,
		BleedTotalPoints: 300,
		OversoldRSI:      30,
		DeviationBiasPct: -5,
	}
}

// LoadWatchlist reads the watchlist YAML at path. An empty path returns
// the built-in default basket. Missing threshold fields fall back to the
// defaults so a watchlist file can list instruments only.
func LoadWatchlist(path string) (*Watchlist, error) {
	if path == "" {
		return DefaultWatchlist(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist file: %w", err)
	}

	wl := &Watchlist{Thresholds: DefaultThresholds()}
	if err := yaml.Unmarshal(data, wl); err != nil {
		return nil, fmt.Errorf("parse watchlist file: %w", err)
	}

	if err := wl.validate(); err != nil {
		return nil, fmt.Errorf("invalid watchlist: %w", err)
	}

	return wl, nil
}

func (w *Watchlist) validate() error {
	if w.Benchmark.Symbol == "" {
		return fmt.Errorf("benchmark symbol is required")
	}
	seen := map[string]bool{w.Benchmark.Symbol: true}
	for _, f := range w.Funds {
		if f.Symbol == "" {
			return fmt.Errorf("fund symbol is required")
		}
		if seen[f.Symbol] {
			return fmt.Errorf("duplicate symbol %s", f.Symbol)
		}
		seen[f.Symbol] = true
	}
	if w.Thresholds.PanicDropPoints <= 0 {
		return fmt.Errorf("panic_drop_points must be positive")
	}
	if w.Thresholds.BleedTotalPoints <= 0 {
		return fmt.Errorf("bleed_total_points must be positive")
	}
	return nil
}

// Symbols returns all monitored symbols, benchmark first.
func (w *Watchlist) Symbols() []string {
	out := []string{w.Benchmark.Symbol}
	for _, f := range w.Funds {
		out = append(out, f.Symbol)
	}
	return out
}
