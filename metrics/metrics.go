package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Decisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gohc_decisions_total",
			Help: "Total decisions produced, by action.",
		},
		[]string{"action"},
	)

	Holds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gohc_holds_total",
			Help: "Hold decisions, by gating reason.",
		},
		[]string{"reason"},
	)

	Exits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gohc_exits_total",
			Help: "Risk-managed position exits, by trigger.",
		},
		[]string{"trigger"},
	)

	ConvictionScore = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gohc_conviction_score",
			Help: "Signed conviction score of the most recent evaluation.",
		},
	)

	Drawdown = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gohc_drawdown",
			Help: "Fractional decline of portfolio value from its peak.",
		},
	)
)

func init() {
	prometheus.MustRegister(Decisions, Holds, Exits, ConvictionScore, Drawdown)
}
