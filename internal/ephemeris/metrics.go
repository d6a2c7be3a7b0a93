package ephemeris

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for ephemeris calls.
type Metrics struct {
	CallLatency  *prometheus.HistogramVec
	CallFailures *prometheus.CounterVec
	BreakerOpen  prometheus.Gauge
}

// NewMetrics registers the ephemeris metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		CallLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "astro_ephemeris_call_duration_seconds",
			Help:    "Duration of ephemeris calls by operation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}), // operation: "position", "houses", "ayanamsa"

		CallFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "astro_ephemeris_call_failures_total",
			Help: "Failed ephemeris calls by operation and error category",
		}, []string{"operation", "category"}),

		BreakerOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "astro_ephemeris_breaker_open",
			Help: "1 while the ephemeris circuit breaker is open",
		}),
	}
}

// ObserveCall records the duration of one call.
func (m *Metrics) ObserveCall(operation string, d time.Duration) {
	if m != nil {
		m.CallLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// IncrementFailure records a failed call.
func (m *Metrics) IncrementFailure(operation string, category ErrorCategory) {
	if m != nil {
		m.CallFailures.WithLabelValues(operation, string(category)).Inc()
	}
}

// SetBreakerOpen mirrors the breaker state.
func (m *Metrics) SetBreakerOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.BreakerOpen.Set(1)
		return
	}
	m.BreakerOpen.Set(0)
}
