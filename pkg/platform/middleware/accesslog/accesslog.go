// Package accesslog logs and measures each HTTP request.
package accesslog

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"astroengine/pkg/requestcontext"
)

// Observer receives per-request measurements.
type Observer interface {
	ObserveRequest(route, method, status string, d time.Duration)
}

// Middleware logs method, route, status and duration for every request.
// Route is chi's matched pattern so metrics stay low-cardinality.
func Middleware(logger *slog.Logger, obs Observer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			elapsed := time.Since(start)
			if obs != nil {
				obs.ObserveRequest(route, r.Method, strconv.Itoa(status), elapsed)
			}
			if logger != nil {
				logger.InfoContext(r.Context(), "http request",
					"request_id", requestcontext.RequestID(r.Context()),
					"method", r.Method,
					"route", route,
					"status", status,
					"duration_ms", elapsed.Milliseconds(),
				)
			}
		})
	}
}
