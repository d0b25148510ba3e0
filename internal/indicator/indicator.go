// Package indicator provides the technical indicator math used by the
// alert rules. All functions are pure and recompute from the series tail
// on every call; nothing is cached between invocations.
package indicator

// RSIPeriod is the standard Wilder RSI lookback.
const RSIPeriod = 14

// SMA returns the arithmetic mean of the last period elements.
// Returns 0 when the series is shorter than period; callers must treat
// 0 as "undefined", never as a real average.
func SMA(series []float64, period int) float64 {
	if period <= 0 || len(series) < period {
		return 0
	}

	var sum float64
	for _, v := range series[len(series)-period:] {
		sum += v
	}
	return sum / float64(period)
}

// RSI computes the relative strength index over the most recent period
// deltas of the series. Edge cases are load-bearing for the alert rules:
// a series with length <= period yields the neutral value 50, and a zero
// average loss yields 100.
func RSI(series []float64, period int) float64 {
	if len(series) <= period {
		return 50
	}

	var gains, losses float64
	for i := len(series) - period; i < len(series); i++ {
		diff := series[i] - series[i-1]
		if diff >= 0 {
			gains += diff
		} else {
			losses -= diff
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// RSI14 computes the RSI with the standard 14-period lookback.
func RSI14(series []float64) float64 {
	return RSI(series, RSIPeriod)
}

// Bias returns the percent deviation of price from the given moving
// average. Returns 0 when the average is undefined.
func Bias(price, sma float64) float64 {
	if sma == 0 {
		return 0
	}
	return (price - sma) / sma * 100
}
