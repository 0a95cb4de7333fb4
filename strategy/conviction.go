package strategy

import (
	"fmt"
	"math"
	"strings"

	"github.com/evdnx/gohc/indicator"
	"github.com/evdnx/gohc/types"
)

// scoreConviction combines RSI, Bollinger and MACD readings into a signed
// conviction score plus a pipe-joined diagnostic of every contributor.
// Positive scores favour buying, negative favour selling. Each leg only
// contributes when its indicator could be computed from the history given.
func (s *HighConviction) scoreConviction(market types.MarketSnapshot) (float64, string) {
	if len(market.Prices) < s.minHistory() {
		return 0, "insufficient_data"
	}

	price := market.CurrentPrice
	score := 0.0
	var reasons []string

	if rsi, ok := indicator.RSI(market.Prices, s.cfg.RSIPeriod); ok {
		if rsi < s.cfg.RSIOversold {
			sub := (s.cfg.RSIOversold - rsi) / s.cfg.RSIOversold
			score += sub * 0.4
			reasons = append(reasons, fmt.Sprintf("rsi_oversold:%.2f", rsi))
		} else if rsi > s.cfg.RSIOverbought {
			sub := (rsi - s.cfg.RSIOverbought) / (100 - s.cfg.RSIOverbought)
			score -= sub * 0.4
			reasons = append(reasons, fmt.Sprintf("rsi_overbought:%.2f", rsi))
		}
	}

	if bb, ok := indicator.Bollinger(market.Prices, s.cfg.BBPeriod, s.cfg.BBStd); ok {
		if price < bb.Lower {
			sub := math.Min(1, (bb.Lower-price)/bb.Lower*2)
			score += sub * 0.3
			reasons = append(reasons, fmt.Sprintf("bb_oversold:%.3f", sub))
		} else if price > bb.Upper {
			sub := math.Min(1, (price-bb.Upper)/bb.Upper*2)
			score -= sub * 0.3
			reasons = append(reasons, fmt.Sprintf("bb_overbought:%.3f", sub))
		}
	}

	if macd, ok := indicator.MACD(market.Prices, s.cfg.MACDFast, s.cfg.MACDSlow, s.cfg.MACDSignal); ok {
		if macd.Histogram > 0 && macd.Line > macd.Signal {
			sub := math.Min(1, macd.Histogram*10)
			score += sub * 0.3
			reasons = append(reasons, fmt.Sprintf("macd_bullish:%.3f", sub))
		} else if macd.Histogram < 0 && macd.Line < macd.Signal {
			sub := math.Min(1, math.Abs(macd.Histogram)*10)
			score -= sub * 0.3
			reasons = append(reasons, fmt.Sprintf("macd_bearish:%.3f", sub))
		}
	}

	if len(reasons) == 0 {
		return score, "no_conviction"
	}
	return score, strings.Join(reasons, "|")
}

// minHistory is the shortest price series the scorer accepts.
func (s *HighConviction) minHistory() int {
	n := s.cfg.RSIPeriod
	if s.cfg.BBPeriod > n {
		n = s.cfg.BBPeriod
	}
	if s.cfg.MACDSlow > n {
		n = s.cfg.MACDSlow
	}
	return n
}
