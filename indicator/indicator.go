// Package indicator provides the pure technical-indicator math feeding the
// conviction scorer. Every function operates on a chronological price slice
// (oldest first) and reports ok=false instead of erroring when the window
// requirement is not met.
package indicator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// SMA returns the arithmetic mean of the last window prices.
func SMA(prices []float64, window int) (float64, bool) {
	if window <= 0 || len(prices) < window {
		return 0, false
	}
	return stat.Mean(prices[len(prices)-window:], nil), true
}

// EMA returns an exponential moving average with smoothing factor
// k = 2/(period+1), seeded with the oldest price of the window rather than
// a plain mean of the first period values.
func EMA(prices []float64, period int) (float64, bool) {
	if period <= 0 || len(prices) < period {
		return 0, false
	}
	k := 2 / float64(period+1)
	window := prices[len(prices)-period:]
	ema := window[0]
	for _, p := range window[1:] {
		ema = p*k + ema*(1-k)
	}
	return ema, true
}

// RSI returns the Relative Strength Index over the last period deltas,
// in [0, 100]. When the average loss is zero the division is skipped:
// all-gain windows score 100 and all-flat windows score 50.
func RSI(prices []float64, period int) (float64, bool) {
	if period <= 0 || len(prices) < period+1 {
		return 0, false
	}
	var avgGain, avgLoss float64
	for i := len(prices) - period; i < len(prices); i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	if avgLoss == 0 {
		if avgGain > 0 {
			return 100, true
		}
		return 50, true
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs)), true
}

// Bands holds a Bollinger Band triple.
type Bands struct {
	Middle float64
	Upper  float64
	Lower  float64
}

// Bollinger returns bands around SMA(period) at k population standard
// deviations of the last period prices.
func Bollinger(prices []float64, period int, k float64) (Bands, bool) {
	middle, ok := SMA(prices, period)
	if !ok {
		return Bands{}, false
	}
	std := stat.PopStdDev(prices[len(prices)-period:], nil)
	return Bands{
		Middle: middle,
		Upper:  middle + k*std,
		Lower:  middle - k*std,
	}, true
}

// MACDResult holds the MACD line, its signal line and the histogram.
type MACDResult struct {
	Line      float64
	Signal    float64
	Histogram float64
}

// MACD computes fastEMA-slowEMA and a signal line smoothed over signal
// periods. The signal smoother is fed signal copies of the single current
// MACD value, faithfully matching the reference behaviour: the signal line
// collapses onto the MACD line and the histogram is always zero.
func MACD(prices []float64, fast, slow, signal int) (MACDResult, bool) {
	if len(prices) < slow+signal {
		return MACDResult{}, false
	}
	fastEMA, okF := EMA(prices, fast)
	slowEMA, okS := EMA(prices, slow)
	if !okF || !okS {
		return MACDResult{}, false
	}
	line := fastEMA - slowEMA

	repeated := make([]float64, signal)
	for i := range repeated {
		repeated[i] = line
	}
	signalLine, ok := EMA(repeated, signal)
	if !ok {
		return MACDResult{}, false
	}
	return MACDResult{
		Line:      line,
		Signal:    signalLine,
		Histogram: line - signalLine,
	}, true
}

// Volatility returns the population standard deviation of simple returns
// over the last window prices. Fewer than two computable returns yield 0.
func Volatility(prices []float64, window int) (float64, bool) {
	if window <= 0 || len(prices) < window {
		return 0, false
	}
	windowPrices := prices[len(prices)-window:]
	returns := make([]float64, 0, len(windowPrices)-1)
	for i := 1; i < len(windowPrices); i++ {
		if windowPrices[i-1] > 0 {
			returns = append(returns, (windowPrices[i]-windowPrices[i-1])/windowPrices[i-1])
		}
	}
	if len(returns) < 2 {
		return 0, true
	}
	std := stat.PopStdDev(returns, nil)
	if math.IsNaN(std) {
		return 0, true
	}
	return std, true
}
