package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"astroengine/internal/aspect"
	"astroengine/internal/chart"
	"astroengine/internal/dasha"
	"astroengine/internal/events"
	"astroengine/internal/transit"
	dErrors "astroengine/pkg/domain-errors"
	"astroengine/pkg/platform/httputil"
	"astroengine/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks ChartService,TransitService

// ChartService computes natal charts.
type ChartService interface {
	Compute(ctx context.Context, req chart.Request) (*chart.NatalChart, error)
}

// TransitService reads the current sky.
type TransitService interface {
	Snapshot(ctx context.Context) (*transit.Snapshot, error)
	ActiveTransits(ctx context.Context, c *chart.NatalChart) ([]aspect.TransitRecord, error)
}

// Handler serves the engine endpoints.
type Handler struct {
	charts    ChartService
	transits  TransitService
	publisher events.Publisher
	logger    *slog.Logger
	engine    string
}

// New constructs the handler. A nil publisher discards events.
func New(charts ChartService, transits TransitService, publisher events.Publisher, logger *slog.Logger, engine string) *Handler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		charts:    charts,
		transits:  transits,
		publisher: publisher,
		logger:    logger,
		engine:    engine,
	}
}

// Register mounts the engine endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/calculate", h.HandleCalculate)
	r.Get("/transits/now", h.HandleTransitsNow)
	r.Get("/health", h.HandleHealth)
}

// HandleCalculate handles POST /calculate.
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CalculateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := h.charts.Compute(ctx, req.ToChartRequest())
	if err != nil {
		h.logFailure(ctx, "chart computation failed", requestID, req.Place, err)
		httputil.WriteError(w, err)
		return
	}

	timeline := dasha.Calculate(c.MoonSidereal(), c.BirthData.Instant, requestcontext.Now(ctx))

	active, err := h.transits.ActiveTransits(ctx, c)
	if err != nil {
		h.logFailure(ctx, "transit scan failed", requestID, req.Place, err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeComputation, "calculation error"))
		return
	}

	h.publisher.Publish(ctx, events.NewChartComputed(ctx, c))

	h.logger.InfoContext(ctx, "chart calculated",
		"request_id", requestID,
		"place", req.Place,
		"rising", c.BigThree.Rising.Sign,
		"active_transits", len(active),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, CalculateResponse{
		Success:        true,
		Chart:          c,
		Dasha:          timeline,
		ActiveTransits: active,
	})
}

// HandleTransitsNow handles GET /transits/now.
func (h *Handler) HandleTransitsNow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap, err := h.transits.Snapshot(ctx)
	if err != nil {
		h.logFailure(ctx, "transit snapshot failed", requestcontext.RequestID(ctx), "", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeComputation, "calculation error"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, snap)
}

// HandleHealth handles GET /health.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "running", Engine: h.engine})
}

func (h *Handler) logFailure(ctx context.Context, msg, requestID, place string, err error) {
	level := slog.LevelError
	if dErrors.HasCode(err, dErrors.CodePlaceNotFound) || dErrors.HasCode(err, dErrors.CodeValidation) {
		level = slog.LevelWarn
	}
	h.logger.Log(ctx, level, msg,
		"request_id", requestID,
		"place", place,
		"error", err,
	)
}
