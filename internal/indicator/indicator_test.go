package indicator

import (
	"math"
	"testing"
)

func TestSMA(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		period int
		want   float64
	}{
		{
			name:   "mean of last period elements",
			series: []float64{1, 2, 3, 4, 5},
			period: 3,
			want:   4,
		},
		{
			name:   "series exactly period long",
			series: []float64{10, 20, 30},
			period: 3,
			want:   20,
		},
		{
			name:   "series shorter than period returns zero",
			series: []float64{1, 2},
			period: 3,
			want:   0,
		},
		{
			name:   "empty series returns zero",
			series: nil,
			period: 20,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SMA(tt.series, tt.period)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SMA() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRSI_NeutralWhenShort(t *testing.T) {
	// length <= period must yield the neutral value, not a partial RSI
	series := make([]float64, RSIPeriod)
	for i := range series {
		series[i] = float64(100 + i)
	}

	if got := RSI14(series); got != 50 {
		t.Errorf("RSI14() = %v, want 50 for short series", got)
	}
}

func TestRSI_PureUptrend(t *testing.T) {
	// strictly rising closes: average loss is zero
	series := make([]float64, 20)
	for i := range series {
		series[i] = 100 + float64(i)
	}

	if got := RSI14(series); got != 100 {
		t.Errorf("RSI14() = %v, want 100 for zero average loss", got)
	}
}

func TestRSI_PureDowntrend(t *testing.T) {
	// 15 strictly falling closes: every delta is a loss
	series := make([]float64, 15)
	for i := range series {
		series[i] = 100 - float64(i)
	}

	got := RSI14(series)
	if got >= 1 {
		t.Errorf("RSI14() = %v, want near 0 for monotonic decline", got)
	}
	if got < 0 {
		t.Errorf("RSI14() = %v, RSI must not be negative", got)
	}
}

func TestRSI_Bounded(t *testing.T) {
	series := []float64{100, 98, 101, 99, 103, 102, 104, 101, 105, 103, 106, 104, 107, 105, 108, 106}

	got := RSI14(series)
	if got <= 0 || got >= 100 {
		t.Errorf("RSI14() = %v, want strictly inside (0, 100) for mixed series", got)
	}
}

func TestBias(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		sma   float64
		want  float64
	}{
		{name: "below average", price: 90, sma: 100, want: -10},
		{name: "above average", price: 105, sma: 100, want: 5},
		{name: "undefined average", price: 90, sma: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bias(tt.price, tt.sma)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Bias() = %v, want %v", got, tt.want)
			}
		})
	}
}
