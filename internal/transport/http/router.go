// Package httptransport exposes the engine over HTTP.
package httptransport

import (
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"astroengine/pkg/platform/middleware/accesslog"
	"astroengine/pkg/platform/middleware/cors"
	"astroengine/pkg/platform/middleware/requestid"
	"astroengine/pkg/platform/middleware/requesttime"
)

// RouterConfig holds the cross-cutting router dependencies.
type RouterConfig struct {
	CORSOrigins        []string
	CORSOriginPatterns []*regexp.Regexp
	Logger             *slog.Logger
	Observer           accesslog.Observer
	// MetricsHandler serves /metrics. Defaults to the global Prometheus registry.
	MetricsHandler http.Handler
}

// NewRouter wires middleware and every public endpoint.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(cors.Middleware(cfg.CORSOrigins, cfg.CORSOriginPatterns))
	r.Use(accesslog.Middleware(cfg.Logger, cfg.Observer))

	h.Register(r)

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)
	return r
}
