package strategy

import "time"

// State is the flat key-value snapshot used for persistence. Values are
// plain scalars and []bool so the map survives JSON or YAML round-trips.
type State map[string]any

// isoLayout renders timestamps with an explicit UTC offset at seconds
// precision, e.g. "2026-08-28T10:00:00+00:00".
const isoLayout = "2006-01-02T15:04:05-07:00"

// exportHistoryCap truncates the win/loss history on export.
const exportHistoryCap = 50

// ExportState snapshots every lifecycle field. Unset optionals are exported
// as nil.
func (s *HighConviction) ExportState() State {
	st := State{
		"last_signal":              nil,
		"entry_price":              nil,
		"entry_time":               nil,
		"trailing_high":            nil,
		"trailing_low":             nil,
		"consecutive_losses":       s.consecutiveLosses,
		"peak_portfolio_value":     s.peakValue,
		"trade_count":              s.tradeCount,
		"last_trade_time":          nil,
		"recent_performance_score": s.perfScore,
	}
	if s.lastSignal != signalNone {
		st["last_signal"] = s.lastSignal
	}
	if s.hasEntry {
		st["entry_price"] = s.entryPrice
		st["entry_time"] = s.entryTime.UTC().Format(isoLayout)
		st["trailing_high"] = s.trailingHigh
		st["trailing_low"] = s.trailingLow
	}
	if !s.lastTradeTime.IsZero() {
		st["last_trade_time"] = s.lastTradeTime.UTC().Format(isoLayout)
	}
	hist := s.winLoss
	if len(hist) > exportHistoryCap {
		hist = hist[len(hist)-exportHistoryCap:]
	}
	st["win_loss_history"] = append([]bool(nil), hist...)
	return st
}

// RestoreState loads a previously exported snapshot. Missing or malformed
// fields fall back to their documented defaults, so snapshots from older
// versions restore cleanly.
func (s *HighConviction) RestoreState(st State) {
	s.lastSignal = stateString(st, "last_signal", signalNone)
	s.entryPrice = stateFloat(st, "entry_price", 0)
	s.entryTime = stateTime(st, "entry_time")
	s.hasEntry = s.entryPrice > 0
	s.trailingHigh = stateFloat(st, "trailing_high", 0)
	s.trailingLow = stateFloat(st, "trailing_low", 0)
	s.consecutiveLosses = stateInt(st, "consecutive_losses", 0)
	s.peakValue = stateFloat(st, "peak_portfolio_value", 0)
	s.tradeCount = stateInt(st, "trade_count", 0)
	s.lastTradeTime = stateTime(st, "last_trade_time")
	s.winLoss = stateBools(st, "win_loss_history")
	s.perfScore = stateFloat(st, "recent_performance_score", 1.0)
}

func stateString(st State, key, def string) string {
	if v, ok := st[key].(string); ok {
		return v
	}
	return def
}

// stateFloat accepts float64 and the integer types a JSON or YAML decoder
// may produce.
func stateFloat(st State, key string, def float64) float64 {
	switch v := st[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

func stateInt(st State, key string, def int) int {
	switch v := st[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

func stateTime(st State, key string) time.Time {
	raw, ok := st[key].(string)
	if !ok || raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(isoLayout, raw)
	if err != nil {
		// Accept "Z"-suffixed stamps from other writers.
		if t, err = time.Parse(time.RFC3339, raw); err != nil {
			return time.Time{}
		}
	}
	return t
}

func stateBools(st State, key string) []bool {
	switch v := st[key].(type) {
	case []bool:
		return append([]bool(nil), v...)
	case []any:
		out := make([]bool, 0, len(v))
		for _, e := range v {
			if b, ok := e.(bool); ok {
				out = append(out, b)
			}
		}
		return out
	}
	return nil
}
