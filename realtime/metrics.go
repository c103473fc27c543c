package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus collectors updated by a Loop.
type Metrics struct {
	Ticks        prometheus.Counter
	FailedTicks  prometheus.Counter
	Events       prometheus.Counter
	TickDuration prometheus.Histogram
	Deficit      prometheus.Gauge
	State        prometheus.Gauge
}

// NewMetrics creates the loop collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Ticks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Number of step function invocations.",
		}),
		FailedTicks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_failed_total",
			Help:      "Number of ticks whose step function failed and published nothing.",
		}),
		Events: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_drained_total",
			Help:      "Number of events handed to the step function.",
		}),
		TickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Time spent in one tick before sleeping.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		Deficit: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tick_deficit_seconds",
			Help:      "Accumulated overrun not yet repaid by shorter sleeps.",
		}),
		State: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loop_state",
			Help:      "Loop state: 0 running, 1 paused, 2 stopped.",
		}),
	}
}
