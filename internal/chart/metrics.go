package chart

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for chart computation.
type Metrics struct {
	Computations   *prometheus.CounterVec
	ComputeLatency prometheus.Histogram
}

// NewMetrics registers the chart metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Computations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "astro_chart_computations_total",
			Help: "Chart computations by outcome",
		}, []string{"outcome"}), // outcome: "ok", "invalid", "place_not_found", "unavailable", "error"

		ComputeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "astro_chart_compute_duration_seconds",
			Help:    "Duration of a full chart computation including geocoding",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementOutcome records one computation outcome.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.Computations.WithLabelValues(outcome).Inc()
	}
}

// ObserveCompute records the duration of one computation.
func (m *Metrics) ObserveCompute(d time.Duration) {
	if m != nil {
		m.ComputeLatency.Observe(d.Seconds())
	}
}
