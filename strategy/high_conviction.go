package strategy

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/evdnx/gohc/config"
	"github.com/evdnx/gohc/indicator"
	"github.com/evdnx/gohc/logger"
	"github.com/evdnx/gohc/metrics"
	"github.com/evdnx/gohc/risk"
	"github.com/evdnx/gohc/types"
)

// Lifecycle signals. An empty signal means flat with no pending stop state.
const (
	signalNone = ""
	signalBuy  = "buy"
	signalSell = "sell"
)

const (
	// volatilityWindow is the lookback for the sizing volatility leg.
	volatilityWindow = 20
	// winLossCap bounds the retained trade-outcome history.
	winLossCap = 100
	// maxHoldDays is the time-based exit horizon for an open position.
	maxHoldDays = 3
)

// HighConviction is the decision orchestrator: it sequences the risk gate,
// the conviction scorer and the position sizer, and owns all lifecycle
// state for a single asset. Instances are not safe for concurrent use;
// run one per asset.
type HighConviction struct {
	cfg    config.StrategyConfig
	log    logger.Logger
	symbol string

	lastSignal        string
	hasEntry          bool
	entryPrice        float64
	entryTime         time.Time
	trailingHigh      float64
	trailingLow       float64
	consecutiveLosses int
	peakValue         float64
	tradeCount        int
	lastTradeTime     time.Time
	winLoss           []bool
	perfScore         float64

	prices *types.PriceSeries

	// Entry price of the most recently closed position, stashed so OnTrade
	// can classify the trade after the sell cleared the entry fields.
	closedEntry    float64
	hasClosedEntry bool
}

// NewHighConviction validates the config and returns a fresh, flat
// strategy instance. A nil log (or LocalLogs=false) disables strategy-local
// logging.
func NewHighConviction(symbol string, cfg config.StrategyConfig, log logger.Logger) (*HighConviction, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil || !cfg.LocalLogs {
		log = logger.Nop()
	}
	return &HighConviction{
		cfg:       cfg,
		log:       log,
		symbol:    symbol,
		perfScore: 1.0,
		prices:    types.NewPriceSeries(types.DefaultSeriesCap),
	}, nil
}

// Decide produces one decision from the current snapshots and advances the
// lifecycle state. Every degraded condition yields a Hold with a reason,
// never an error.
func (s *HighConviction) Decide(market types.MarketSnapshot, portfolio types.PortfolioSnapshot) types.Decision {
	now := market.Timestamp
	price := market.CurrentPrice
	s.prices.Append(price)

	if len(market.Prices) < s.minHistory() {
		return s.hold("Insufficient price data", "insufficient_data", 0)
	}

	value := portfolio.Value(price)
	if value > s.peakValue {
		s.peakValue = value
	}

	if ok, detail := s.checkTradeLimits(now); !ok {
		return s.hold("Trade limit: "+detail, "trade_limit", 0)
	}
	if !s.checkDrawdownLimits(value) {
		s.log.Warn("risk_gate",
			logger.String("symbol", s.symbol),
			logger.Int("consecutive_losses", s.consecutiveLosses),
			logger.Float64("peak_value", s.peakValue),
		)
		return s.hold("Drawdown limit exceeded", "drawdown_limit", 0)
	}

	score, convReason := s.scoreConviction(market)
	metrics.ConvictionScore.Set(score)
	if math.Abs(score) < s.cfg.ConvictionThreshold {
		return s.hold(fmt.Sprintf("Low conviction: %.3f", score), "low_conviction", score)
	}

	action := types.Buy
	if score < 0 {
		action = types.Sell
	}
	reason := fmt.Sprintf("CONVICTION:%s|SCORE:%.3f", convReason, score)

	// Suppress redundant entries and exits.
	if action == types.Buy && s.lastSignal == signalBuy {
		action, reason = types.Hold, "already_in_long_position"
	} else if action == types.Sell && s.lastSignal != signalBuy {
		action, reason = types.Hold, "no_long_position_to_sell"
	}

	// Exit overrides for an open long, highest priority first. Unlike the
	// signal path these can fire regardless of the candidate action.
	exitTrigger := ""
	if s.lastSignal == signalBuy && s.hasEntry {
		changePct := (price - s.entryPrice) / s.entryPrice
		if price > s.trailingHigh {
			s.trailingHigh = price
		}
		switch {
		case price <= s.trailingHigh*(1-s.cfg.TrailingStopPct):
			action = types.Sell
			reason = fmt.Sprintf("TRAILING_STOP_TRIGGERED | high:%.2f | current:%.2f", s.trailingHigh, price)
			exitTrigger = "trailing_stop"
		case changePct <= -s.cfg.StopLossPct:
			action = types.Sell
			reason = fmt.Sprintf("STOP_LOSS_TRIGGERED | loss:%.2f%%", changePct*100)
			exitTrigger = "stop_loss"
		case changePct >= s.cfg.TakeProfitPct:
			action = types.Sell
			reason = fmt.Sprintf("TAKE_PROFIT_TRIGGERED | profit:%.2f%%", changePct*100)
			exitTrigger = "take_profit"
		case int(now.Sub(s.entryTime).Hours()/24) > maxHoldDays:
			action = types.Sell
			reason = "TIME_BASED_EXIT | position_held_over_3_days"
			exitTrigger = "time_exit"
		}
	}

	switch action {
	case types.Buy:
		return s.executeBuy(market, portfolio, now, score, reason)
	case types.Sell:
		return s.executeSell(portfolio, now, reason, exitTrigger)
	}

	dec := types.Decision{Action: types.Hold, Reason: reason}
	s.logDecision(dec, score)
	metrics.Decisions.WithLabelValues(string(types.Hold)).Inc()
	return dec
}

func (s *HighConviction) executeBuy(market types.MarketSnapshot, portfolio types.PortfolioSnapshot,
	now time.Time, score float64, reason string) types.Decision {

	vol, volOK := indicator.Volatility(market.Prices, volatilityWindow)
	frac := risk.SizeFraction(score, s.winLoss, vol, volOK, s.cfg)
	notional := portfolio.Cash * frac
	if notional <= 0 {
		return s.hold("Insufficient cash", "insufficient_cash", score)
	}
	size := notional / market.CurrentPrice
	if size <= 0 {
		return s.hold("Invalid position size", "invalid_size", score)
	}

	price := market.CurrentPrice
	s.lastSignal = signalBuy
	s.hasEntry = true
	s.entryPrice = price
	s.entryTime = now
	s.trailingHigh = price
	s.trailingLow = price
	s.lastTradeTime = now
	s.tradeCount++

	dec := types.Decision{Action: types.Buy, Size: size, Reason: reason}
	s.logDecision(dec, score)
	s.log.Info("position_opened",
		logger.String("symbol", s.symbol),
		logger.Float64("entry_price", price),
		logger.Float64("notional", notional),
		logger.Float64("size_fraction", frac),
	)
	metrics.Decisions.WithLabelValues(string(types.Buy)).Inc()
	return dec
}

func (s *HighConviction) executeSell(portfolio types.PortfolioSnapshot, now time.Time,
	reason, exitTrigger string) types.Decision {

	if portfolio.Quantity <= 0 {
		return s.hold("No position to sell", "no_position_to_sell", 0)
	}

	// Stop-driven exits keep lastSignal="sell" so the loss bookkeeping in
	// the drawdown gate can see them; signal-driven exits go back to flat.
	if strings.Contains(reason, "STOP_LOSS") || strings.Contains(reason, "TRAILING_STOP") {
		s.lastSignal = signalSell
	} else {
		s.lastSignal = signalNone
	}
	if s.hasEntry {
		s.closedEntry = s.entryPrice
		s.hasClosedEntry = true
	}
	s.hasEntry = false
	s.entryPrice = 0
	s.entryTime = time.Time{}
	s.trailingHigh = 0
	s.trailingLow = 0
	s.lastTradeTime = now
	s.tradeCount++

	dec := types.Decision{Action: types.Sell, Size: portfolio.Quantity, Reason: reason}
	s.logDecision(dec, 0)
	if exitTrigger != "" {
		metrics.Exits.WithLabelValues(exitTrigger).Inc()
	}
	metrics.Decisions.WithLabelValues(string(types.Sell)).Inc()
	return dec
}

// History returns the prices this instance has observed, oldest first,
// bounded by the series cap. Useful for host-side diagnostics.
func (s *HighConviction) History() []float64 {
	return s.prices.Values()
}

// OnTrade is the post-trade feedback hook: the host reports actual fills
// here so the strategy can classify closed trades.
func (s *HighConviction) OnTrade(decision types.Decision, execPrice, execSize float64, timestamp time.Time) {
	if execSize <= 0 {
		return
	}
	switch decision.Action {
	case types.Buy:
		s.log.Info("executed_buy",
			logger.String("symbol", s.symbol),
			logger.Float64("price", execPrice),
			logger.Float64("size", execSize),
			logger.Time("ts", timestamp),
		)
	case types.Sell:
		s.log.Info("executed_sell",
			logger.String("symbol", s.symbol),
			logger.Float64("price", execPrice),
			logger.Float64("size", execSize),
			logger.Time("ts", timestamp),
		)
		entry := s.entryPrice
		ok := s.hasEntry
		if !ok && s.hasClosedEntry {
			entry, ok = s.closedEntry, true
		}
		if !ok || entry <= 0 {
			return
		}
		s.hasClosedEntry = false
		s.recordOutcome(execPrice > entry)
	}
}

func (s *HighConviction) recordOutcome(win bool) {
	s.winLoss = append(s.winLoss, win)
	if len(s.winLoss) > winLossCap {
		s.winLoss = s.winLoss[len(s.winLoss)-winLossCap:]
	}
	if win {
		s.consecutiveLosses = 0
		s.perfScore = math.Min(1.2, s.perfScore+0.05)
	} else {
		s.consecutiveLosses++
		s.perfScore = math.Max(0.8, s.perfScore-0.1)
	}
}

// checkTradeLimits enforces the lifetime trade cap and the cooldown between
// executed trades.
func (s *HighConviction) checkTradeLimits(now time.Time) (bool, string) {
	if s.tradeCount >= s.cfg.MaxTrades {
		return false, "max_trades_reached"
	}
	if !s.lastTradeTime.IsZero() {
		since := now.Sub(s.lastTradeTime)
		minGap := time.Duration(s.cfg.MinTimeBetweenTrades) * time.Hour
		if since < minGap {
			return false, fmt.Sprintf("min_time_between_trades_not_met:%.1fh", since.Hours())
		}
	}
	return true, "ok"
}

// checkDrawdownLimits updates peak/consecutive-loss bookkeeping and reports
// whether trading may continue.
func (s *HighConviction) checkDrawdownLimits(value float64) bool {
	if s.peakValue == 0 {
		s.peakValue = value
		return true
	}
	if value > s.peakValue {
		s.peakValue = value
		s.consecutiveLosses = 0
	}

	dd := risk.Drawdown(s.peakValue, value)
	metrics.Drawdown.Set(dd)

	if s.lastSignal == signalSell && s.hasEntry && value < s.entryPrice {
		s.consecutiveLosses++
	} else if s.lastSignal == signalBuy && s.hasEntry && value > s.entryPrice {
		s.consecutiveLosses = 0
	}

	if s.consecutiveLosses >= s.cfg.ConsecutiveLossLimit {
		return false
	}
	if dd > s.cfg.MaxDrawdownPct {
		return false
	}
	return true
}

// hold emits a Hold decision carrying reason and records the gate that
// produced it.
func (s *HighConviction) hold(reason, gate string, score float64) types.Decision {
	dec := types.Decision{Action: types.Hold, Reason: reason}
	s.log.Info("decision",
		logger.String("symbol", s.symbol),
		logger.String("action", string(types.Hold)),
		logger.String("reason", reason),
		logger.String("gate", gate),
		logger.Float64("score", score),
	)
	metrics.Holds.WithLabelValues(gate).Inc()
	metrics.Decisions.WithLabelValues(string(types.Hold)).Inc()
	return dec
}

func (s *HighConviction) logDecision(dec types.Decision, score float64) {
	s.log.Info("decision",
		logger.String("symbol", s.symbol),
		logger.String("action", string(dec.Action)),
		logger.String("reason", dec.Reason),
		logger.Float64("size", dec.Size),
		logger.Float64("score", score),
	)
}
