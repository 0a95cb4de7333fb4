package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML parameter file on top of the defaults and validates
// the result. Keys absent from the file keep their default values.
func LoadFile(path string) (StrategyConfig, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FromEnv builds a config from GOHC_* environment variables on top of the
// defaults. A .env file in the working directory is honoured when present.
// Unset or malformed variables keep their default values.
func FromEnv() (StrategyConfig, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	envFloat("GOHC_CONVICTION_THRESHOLD", &cfg.ConvictionThreshold)
	envInt("GOHC_RSI_PERIOD", &cfg.RSIPeriod)
	envFloat("GOHC_RSI_OVERBOUGHT", &cfg.RSIOverbought)
	envFloat("GOHC_RSI_OVERSOLD", &cfg.RSIOversold)
	envInt("GOHC_BB_PERIOD", &cfg.BBPeriod)
	envFloat("GOHC_BB_STD", &cfg.BBStd)
	envInt("GOHC_MACD_FAST", &cfg.MACDFast)
	envInt("GOHC_MACD_SLOW", &cfg.MACDSlow)
	envInt("GOHC_MACD_SIGNAL", &cfg.MACDSignal)
	envFloat("GOHC_BASE_POSITION_PCT", &cfg.BasePositionPct)
	envFloat("GOHC_MAX_POSITION_PCT", &cfg.MaxPositionPct)
	envFloat("GOHC_CONVICTION_POSITION_MULTIPLIER", &cfg.ConvictionPositionMultiplier)
	envFloat("GOHC_STOP_LOSS_PCT", &cfg.StopLossPct)
	envFloat("GOHC_TAKE_PROFIT_PCT", &cfg.TakeProfitPct)
	envFloat("GOHC_TRAILING_STOP_PCT", &cfg.TrailingStopPct)
	envFloat("GOHC_MAX_DRAWDOWN_PCT", &cfg.MaxDrawdownPct)
	envInt("GOHC_CONSECUTIVE_LOSS_LIMIT", &cfg.ConsecutiveLossLimit)
	envInt("GOHC_MAX_TRADES", &cfg.MaxTrades)
	envInt("GOHC_MIN_TIME_BETWEEN_TRADES", &cfg.MinTimeBetweenTrades)
	if v, ok := os.LookupEnv("STRATEGY_LOCAL_LOGS"); ok {
		cfg.LocalLogs = ParseBool(v, cfg.LocalLogs)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseBool treats "1", "true", "yes" and "on" (any case) as true and
// everything else as false; empty input yields the default.
func ParseBool(s string, def bool) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return def
	}
	switch s {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func envFloat(key string, dst *float64) {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			*dst = f
		}
	}
}

func envInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*dst = n
		}
	}
}
