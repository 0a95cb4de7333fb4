package testutils

import (
	"time"

	"github.com/evdnx/gohc/types"
)

// PaperPortfolio is a minimal in-memory portfolio used by tests to drive a
// strategy end to end: it applies each decision with a perfect fill and
// reports the execution so the test can feed OnTrade.
type PaperPortfolio struct {
	Cash     float64
	Quantity float64
}

// NewPaperPortfolio starts with the supplied cash and no position.
func NewPaperPortfolio(cash float64) *PaperPortfolio {
	return &PaperPortfolio{Cash: cash}
}

// Snapshot returns the current portfolio view for the next Decide call.
func (p *PaperPortfolio) Snapshot() types.PortfolioSnapshot {
	return types.PortfolioSnapshot{Cash: p.Cash, Quantity: p.Quantity}
}

// Execution is a perfect fill of a buy or sell decision.
type Execution struct {
	Price float64
	Size  float64
	Time  time.Time
}

// Apply fills the decision at the given market price. Hold decisions and
// unaffordable or oversized orders fill nothing and return ok=false.
func (p *PaperPortfolio) Apply(d types.Decision, price float64, ts time.Time) (Execution, bool) {
	switch d.Action {
	case types.Buy:
		cost := d.Size * price
		if d.Size <= 0 || cost > p.Cash {
			return Execution{}, false
		}
		p.Cash -= cost
		p.Quantity += d.Size
		return Execution{Price: price, Size: d.Size, Time: ts}, true
	case types.Sell:
		if d.Size <= 0 || d.Size > p.Quantity {
			return Execution{}, false
		}
		p.Cash += d.Size * price
		p.Quantity -= d.Size
		return Execution{Price: price, Size: d.Size, Time: ts}, true
	}
	return Execution{}, false
}
