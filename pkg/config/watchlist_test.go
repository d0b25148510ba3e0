package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultWatchlist(t *testing.T) {
	wl := DefaultWatchlist()

	if wl.Benchmark.Symbol != "^TWII" {
		t.Errorf("Benchmark = %s, want ^TWII", wl.Benchmark.Symbol)
	}
	if len(wl.Funds) != 4 {
		t.Errorf("Expected 4 funds, got %d", len(wl.Funds))
	}
	if wl.Thresholds.PanicDropPoints != 200 {
		t.Errorf("PanicDropPoints = %v, want 200", wl.Thresholds.PanicDropPoints)
	}
	if wl.Thresholds.BleedTotalPoints != 300 {
		t.Errorf("BleedTotalPoints = %v, want 300", wl.Thresholds.BleedTotalPoints)
	}

	symbols := wl.Symbols()
	if len(symbols) != 5 || symbols[0] != "^TWII" {
		t.Errorf("Symbols() = %v", symbols)
	}
}

func TestLoadWatchlist_EmptyPathUsesDefault(t *testing.T) {
	wl, err := LoadWatchlist("")
	if err != nil {
		t.Fatalf("LoadWatchlist() failed: %v", err)
	}
	if wl.Benchmark.Symbol != "^TWII" {
		t.Errorf("Expected default watchlist, got benchmark %s", wl.Benchmark.Symbol)
	}
}

func TestLoadWatchlist_FromFile(t *testing.T) {
	content := `
benchmark:
  symbol: "^TWII"
  name: "台灣加權指數"
funds:
  - symbol: "0056.TW"
    name: "元大高股息"
thresholds:
  panic_drop_points: 150
  bleed_total_points: 250
  oversold_rsi: 25
  deviation_bias_pct: -7
`
	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	wl, err := LoadWatchlist(path)
	if err != nil {
		t.Fatalf("LoadWatchlist() failed: %v", err)
	}

	if len(wl.Funds) != 1 || wl.Funds[0].Symbol != "0056.TW" {
		t.Errorf("Funds = %+v", wl.Funds)
	}
	if wl.Thresholds.PanicDropPoints != 150 {
		t.Errorf("PanicDropPoints = %v, want 150", wl.Thresholds.PanicDropPoints)
	}
	if wl.Thresholds.DeviationBiasPct != -7 {
		t.Errorf("DeviationBiasPct = %v, want -7", wl.Thresholds.DeviationBiasPct)
	}
}

func TestLoadWatchlist_PartialThresholdsKeepDefaults(t *testing.T) {
	content := `
benchmark:
  symbol: "^TWII"
  name: "台灣加權指數"
funds:
  - symbol: "0050.TW"
    name: "元大台灣50"
`
	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	wl, err := LoadWatchlist(path)
	if err != nil {
		t.Fatalf("LoadWatchlist() failed: %v", err)
	}

	if wl.Thresholds != DefaultThresholds() {
		t.Errorf("Thresholds = %+v, want defaults", wl.Thresholds)
	}
}

func TestLoadWatchlist_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing benchmark",
			content: `
funds:
  - symbol: "0050.TW"
    name: "元大台灣50"
`,
		},
		{
			name: "duplicate symbol",
			content: `
benchmark:
  symbol: "0050.TW"
  name: "dup"
funds:
  - symbol: "0050.TW"
    name: "元大台灣50"
`,
		},
		{
			name:    "malformed yaml",
			content: "benchmark: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "watchlist.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			if _, err := LoadWatchlist(path); err == nil {
				t.Error("Expected LoadWatchlist() to fail")
			}
		})
	}
}

func TestLoadWatchlist_MissingFile(t *testing.T) {
	if _, err := LoadWatchlist(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
