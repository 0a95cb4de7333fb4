package types

// DefaultSeriesCap bounds the retained price history; the longest indicator
// window (MACD slow + signal) needs far less.
const DefaultSeriesCap = 200

// PriceSeries is an append-only rolling window of prices, oldest first.
// Once the cap is reached the oldest entries are discarded.
type PriceSeries struct {
	max int
	buf []float64
}

// NewPriceSeries returns an empty series retaining at most max prices.
func NewPriceSeries(max int) *PriceSeries {
	if max <= 0 {
		max = DefaultSeriesCap
	}
	return &PriceSeries{max: max}
}

func (p *PriceSeries) Append(v float64) {
	p.buf = append(p.buf, v)
	if len(p.buf) > p.max {
		p.buf = p.buf[len(p.buf)-p.max:]
	}
}

func (p *PriceSeries) Len() int {
	return len(p.buf)
}

// Values returns a copy of the retained prices.
func (p *PriceSeries) Values() []float64 {
	out := make([]float64, len(p.buf))
	copy(out, p.buf)
	return out
}

func (p *PriceSeries) Last() float64 {
	if len(p.buf) == 0 {
		return 0
	}
	return p.buf[len(p.buf)-1]
}
