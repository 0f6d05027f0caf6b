// Package metrics exposes Prometheus instrumentation for the strategy engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the strategy engine.
type Metrics struct {
	// DecisionsTotal counts decisions by action and response key.
	DecisionsTotal *prometheus.CounterVec

	// GuardBlocksTotal counts requests rejected by the admission guard.
	GuardBlocksTotal prometheus.Counter

	// ClampsTotal counts counter-price safety corrections by kind.
	ClampsTotal *prometheus.CounterVec

	// DecideDuration observes end-to-end decide latency.
	DecideDuration prometheus.Histogram
}

// New creates and registers all metrics against the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		DecisionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strategy_decisions_total",
				Help: "Total number of negotiation decisions produced",
			},
			[]string{"action", "response_key"},
		),
		GuardBlocksTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "strategy_guard_blocks_total",
				Help: "Total number of requests blocked by the admission guard",
			},
		),
		ClampsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "strategy_counter_clamps_total",
				Help: "Total number of counter-price clamp corrections applied",
			},
			[]string{"kind"}, // kind: floor, step, ratchet, ceiling
		),
		DecideDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "strategy_decide_duration_seconds",
				Help:    "Latency of a single decide call",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}
