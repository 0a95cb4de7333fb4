package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/evdnx/gohc/config"
	"github.com/evdnx/gohc/testutils"
	"github.com/evdnx/gohc/types"
)

// baseTime anchors every synthetic snapshot so the tests stay deterministic.
var baseTime = time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// buildStrategy wires a HighConviction instance to a recording logger.
func buildStrategy(t *testing.T, cfg config.StrategyConfig) (*HighConviction, *testutils.MockLogger) {
	t.Helper()
	log := testutils.NewMockLogger()
	s, err := NewHighConviction("BTC-USD", cfg, log)
	if err != nil {
		t.Fatalf("NewHighConviction failed: %v", err)
	}
	return s, log
}

// permissiveConfig lowers the conviction bar so tests can steer decisions
// purely through the shape of the price series.
func permissiveConfig() config.StrategyConfig {
	cfg := config.DefaultConfig()
	cfg.ConvictionThreshold = 0.05
	cfg.MinTimeBetweenTrades = 0
	return cfg
}

func snapshot(prices []float64, ts time.Time) types.MarketSnapshot {
	return types.MarketSnapshot{
		Symbol:       "BTC-USD",
		CurrentPrice: prices[len(prices)-1],
		Prices:       prices,
		Timestamp:    ts,
	}
}

// flatThenDrop produces flat flatN prices followed by drops of dropStep,
// which drives RSI to 0 and the close below the lower Bollinger band.
func flatThenDrop(flatN, dropN int, level, dropStep float64) []float64 {
	out := make([]float64, 0, flatN+dropN)
	for i := 0; i < flatN; i++ {
		out = append(out, level)
	}
	for i := 1; i <= dropN; i++ {
		out = append(out, level-float64(i)*dropStep)
	}
	return out
}

// risingTo produces n strictly rising prices ending at end, which drives
// RSI to exactly 100.
func risingTo(n int, end, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = end - float64(n-1-i)*step
	}
	return out
}

// fallingTo produces n strictly falling prices ending at end.
func fallingTo(n int, end, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = end + float64(n-1-i)*step
	}
	return out
}

// longState fabricates the persisted state of an open long position.
func longState(entry, trailingHigh float64, entryTime, lastTrade time.Time) State {
	return State{
		"last_signal":          "buy",
		"entry_price":          entry,
		"entry_time":           entryTime.UTC().Format(isoLayout),
		"trailing_high":        trailingHigh,
		"trailing_low":         entry,
		"consecutive_losses":   0,
		"peak_portfolio_value": 0.0,
		"trade_count":          1,
		"last_trade_time":      lastTrade.UTC().Format(isoLayout),
	}
}
