package geocode

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts where resolutions were answered from.
type Metrics struct {
	Lookups     *prometheus.CounterVec
	CacheErrors prometheus.Counter
}

// NewMetrics registers the geocode metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Lookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "astro_geocode_lookups_total",
			Help: "Place resolutions by answering source",
		}, []string{"source"}), // source: "static", "cache", "remote", "not_found", "error"

		CacheErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "astro_geocode_cache_errors_total",
			Help: "Geocode cache reads or writes that failed",
		}),
	}
}

// RecordLookup counts one resolution.
func (m *Metrics) RecordLookup(source string) {
	if m != nil {
		m.Lookups.WithLabelValues(source).Inc()
	}
}

// RecordCacheError counts one failed cache operation.
func (m *Metrics) RecordCacheError() {
	if m != nil {
		m.CacheErrors.Inc()
	}
}
