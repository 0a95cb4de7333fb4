// Package risk holds the pure sizing and drawdown arithmetic used by the
// decision orchestrator.
package risk

import "github.com/evdnx/gohc/config"

// minPositionPct is the floor applied to the final size fraction.
const minPositionPct = 0.05

// SizeFraction maps conviction, recent win rate and realized volatility to
// a fraction of available cash. volOK reports whether the volatility input
// could be computed at all; without it the volatility leg is neutral.
func SizeFraction(score float64, winLoss []bool, vol float64, volOK bool, cfg config.StrategyConfig) float64 {
	base := cfg.BasePositionPct

	convictionFactor := 1.0
	switch {
	case score >= 0.9:
		convictionFactor = cfg.ConvictionPositionMultiplier
	case score >= 0.8:
		convictionFactor = 1.5
	}

	performanceFactor := 1.0
	if len(winLoss) >= 5 {
		wins := 0
		for _, w := range winLoss[len(winLoss)-5:] {
			if w {
				wins++
			}
		}
		if float64(wins)/5 < 0.8 {
			performanceFactor = 0.7
		}
	}

	volFactor := 1.0
	if volOK {
		switch {
		case vol > 0.03:
			volFactor = 0.8
		case vol < 0.01:
			volFactor = 1.2
		}
	}

	// Cap first, floor second: the floor wins if the two ever conflict.
	size := base * convictionFactor * performanceFactor * volFactor
	if size > cfg.MaxPositionPct {
		size = cfg.MaxPositionPct
	}
	if size < minPositionPct {
		size = minPositionPct
	}
	return size
}

// Drawdown returns the fractional decline of value from peak, or 0 when no
// peak has been recorded yet.
func Drawdown(peak, value float64) float64 {
	if peak <= 0 {
		return 0
	}
	return (peak - value) / peak
}
