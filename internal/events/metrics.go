package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks event delivery.
type Metrics struct {
	Published   *prometheus.CounterVec
	BreakerOpen prometheus.Gauge
}

// NewMetrics registers the event metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Published: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "astro_events_published_total",
			Help: "Chart events by delivery outcome",
		}, []string{"outcome"}), // outcome: "delivered", "failed", "dropped"

		BreakerOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "astro_events_breaker_open",
			Help: "1 while event publishing is suspended after repeated failures",
		}),
	}
}

// IncOutcome records one event outcome.
func (m *Metrics) IncOutcome(outcome string) {
	if m != nil {
		m.Published.WithLabelValues(outcome).Inc()
	}
}

// SetBreakerOpen records the breaker state.
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
