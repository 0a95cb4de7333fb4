package types

import "time"

// Action is the outcome of a single strategy evaluation.
type Action string

const (
	Buy  Action = "buy"
	Sell Action = "sell"
	Hold Action = "hold"
)

// Decision is what the strategy hands to the execution collaborator.
// Size is in asset units and is only meaningful for Buy/Sell; Reason is an
// opaque diagnostic string, never machine-parsed by callers.
type Decision struct {
	Action Action
	Size   float64
	Reason string
}

// MarketSnapshot is the immutable per-call market input: the current price
// plus a chronological price series (most-recent last).
type MarketSnapshot struct {
	Symbol       string
	CurrentPrice float64
	Prices       []float64
	Timestamp    time.Time
}

// PortfolioSnapshot is the immutable per-call portfolio input.
type PortfolioSnapshot struct {
	Cash     float64 // available cash, >= 0
	Quantity float64 // held quantity of the asset, >= 0
}

// Value returns the mark-to-market portfolio value at the given price.
func (p PortfolioSnapshot) Value(price float64) float64 {
	return p.Cash + p.Quantity*price
}
