// Package strategy contains the high-conviction decision engine: a
// per-asset state machine that turns market and portfolio snapshots into
// buy/sell/hold decisions gated by risk limits.
package strategy

import (
	"time"

	"github.com/evdnx/gohc/config"
	"github.com/evdnx/gohc/logger"
	"github.com/evdnx/gohc/types"
)

// Strategy is the surface a bot host drives. Decide evaluates one snapshot
// pair; OnTrade feeds back actual executions so win/loss bookkeeping stays
// honest; Export/RestoreState round-trip the per-asset lifecycle state.
type Strategy interface {
	Decide(market types.MarketSnapshot, portfolio types.PortfolioSnapshot) types.Decision
	OnTrade(decision types.Decision, execPrice, execSize float64, timestamp time.Time)
	ExportState() State
	RestoreState(state State)
}

// Factory constructs a strategy instance. Hosts compose strategies through
// factories passed in explicitly; there is no process-wide registry.
type Factory func(symbol string, cfg config.StrategyConfig, log logger.Logger) (Strategy, error)

// HighConvictionFactory adapts NewHighConviction to the Factory signature.
var HighConvictionFactory Factory = func(symbol string, cfg config.StrategyConfig, log logger.Logger) (Strategy, error) {
	return NewHighConviction(symbol, cfg, log)
}
