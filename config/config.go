package config

import (
	"errors"
	"fmt"
)

// StrategyConfig holds all tunable parameters for the high-conviction
// strategy. Zero values are not usable; start from DefaultConfig.
type StrategyConfig struct {
	// Signal generation
	ConvictionThreshold float64 `yaml:"conviction_threshold"` // default 0.9
	RSIPeriod           int     `yaml:"rsi_period"`           // default 14
	RSIOverbought       float64 `yaml:"rsi_overbought"`       // default 80
	RSIOversold         float64 `yaml:"rsi_oversold"`         // default 20
	BBPeriod            int     `yaml:"bb_period"`            // default 20
	BBStd               float64 `yaml:"bb_std"`               // default 2.0
	MACDFast            int     `yaml:"macd_fast"`            // default 12
	MACDSlow            int     `yaml:"macd_slow"`            // default 26
	MACDSignal          int     `yaml:"macd_signal"`          // default 9

	// Position sizing
	BasePositionPct              float64 `yaml:"base_position_pct"`              // fraction of cash, default 0.15
	MaxPositionPct               float64 `yaml:"max_position_pct"`               // default 0.4
	ConvictionPositionMultiplier float64 `yaml:"conviction_position_multiplier"` // default 2.0

	// Exits
	StopLossPct     float64 `yaml:"stop_loss_pct"`     // default 0.03
	TakeProfitPct   float64 `yaml:"take_profit_pct"`   // default 0.15
	TrailingStopPct float64 `yaml:"trailing_stop_pct"` // default 0.05

	// Risk limits
	MaxDrawdownPct       float64 `yaml:"max_drawdown_pct"`       // default 0.2
	ConsecutiveLossLimit int     `yaml:"consecutive_loss_limit"` // default 2

	// Trade management
	MaxTrades            int `yaml:"max_trades"`             // lifetime cap, default 30
	MinTimeBetweenTrades int `yaml:"min_time_between_trades"` // hours, default 6

	// LocalLogs toggles strategy-local decision logging.
	LocalLogs bool `yaml:"strategy_local_logs"`
}

// DefaultConfig returns the documented default parameter set.
func DefaultConfig() StrategyConfig {
	return StrategyConfig{
		ConvictionThreshold:          0.9,
		RSIPeriod:                    14,
		RSIOverbought:                80,
		RSIOversold:                  20,
		BBPeriod:                     20,
		BBStd:                        2.0,
		MACDFast:                     12,
		MACDSlow:                     26,
		MACDSignal:                   9,
		BasePositionPct:              0.15,
		MaxPositionPct:               0.4,
		ConvictionPositionMultiplier: 2.0,
		StopLossPct:                  0.03,
		TakeProfitPct:                0.15,
		TrailingStopPct:              0.05,
		MaxDrawdownPct:               0.2,
		ConsecutiveLossLimit:         2,
		MaxTrades:                    30,
		MinTimeBetweenTrades:         6,
		LocalLogs:                    true,
	}
}

// Validate checks that all numeric fields are within sensible bounds.
// It returns the first encountered error, allowing the caller to surface a
// clear configuration problem before any trading starts.
func (c *StrategyConfig) Validate() error {
	if c.ConvictionThreshold <= 0 {
		return errors.New("ConvictionThreshold must be positive")
	}
	if c.RSIPeriod <= 0 {
		return errors.New("RSIPeriod must be positive")
	}
	// The overbought threshold also feeds a (100 - overbought) divisor in
	// the scorer, so 100 is excluded.
	if c.RSIOverbought <= c.RSIOversold {
		return fmt.Errorf("RSIOverbought (%f) must exceed RSIOversold (%f)", c.RSIOverbought, c.RSIOversold)
	}
	if c.RSIOversold <= 0 || c.RSIOverbought >= 100 {
		return errors.New("RSI thresholds must lie strictly inside (0, 100)")
	}
	if c.BBPeriod <= 0 {
		return errors.New("BBPeriod must be positive")
	}
	if c.BBStd <= 0 {
		return errors.New("BBStd must be positive")
	}
	if c.MACDFast <= 0 || c.MACDSlow <= 0 || c.MACDSignal <= 0 {
		return errors.New("MACD periods must be positive")
	}
	if c.MACDFast >= c.MACDSlow {
		return fmt.Errorf("MACDFast (%d) must be shorter than MACDSlow (%d)", c.MACDFast, c.MACDSlow)
	}
	if c.BasePositionPct <= 0 || c.BasePositionPct > 1 {
		return fmt.Errorf("BasePositionPct (%f) must be >0 and <=1", c.BasePositionPct)
	}
	if c.MaxPositionPct < c.BasePositionPct || c.MaxPositionPct > 1 {
		return fmt.Errorf("MaxPositionPct (%f) must be >=BasePositionPct and <=1", c.MaxPositionPct)
	}
	if c.ConvictionPositionMultiplier < 1 {
		return errors.New("ConvictionPositionMultiplier must be >=1")
	}
	if c.StopLossPct <= 0 || c.StopLossPct > 0.2 {
		return fmt.Errorf("StopLossPct (%f) must be >0 and <=0.2", c.StopLossPct)
	}
	if c.TakeProfitPct <= 0 || c.TakeProfitPct > 5 {
		return fmt.Errorf("TakeProfitPct (%f) out of realistic range", c.TakeProfitPct)
	}
	if c.TrailingStopPct <= 0 || c.TrailingStopPct > 1 {
		return fmt.Errorf("TrailingStopPct (%f) must be between 0 and 1", c.TrailingStopPct)
	}
	if c.MaxDrawdownPct <= 0 || c.MaxDrawdownPct > 1 {
		return fmt.Errorf("MaxDrawdownPct (%f) must be between 0 and 1", c.MaxDrawdownPct)
	}
	if c.ConsecutiveLossLimit <= 0 {
		return errors.New("ConsecutiveLossLimit must be positive")
	}
	if c.MaxTrades <= 0 {
		return errors.New("MaxTrades must be positive")
	}
	if c.MinTimeBetweenTrades < 0 {
		return errors.New("MinTimeBetweenTrades cannot be negative")
	}
	return nil
}
