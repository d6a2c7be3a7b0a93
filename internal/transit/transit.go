// Package transit reads the sky at the request instant and matches it
// against a natal chart.
package transit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"astroengine/internal/aspect"
	"astroengine/internal/chart"
	"astroengine/internal/ephemeris"
	"astroengine/internal/zodiac"
	"astroengine/pkg/requestcontext"
)

// Position is a body's current tropical placement.
type Position struct {
	Position   zodiac.SignPlacement `json:"position"`
	Retrograde bool                 `json:"retrograde"`
	Speed      float64              `json:"speed"`
}

// Snapshot is the sky at one instant. Snapshots are computed per request
// and never cached.
type Snapshot struct {
	Date    time.Time                `json:"date"`
	Planets map[zodiac.Body]Position `json:"planets"`
}

// Transiting returns the snapshot's bodies in chart order. Ketu never
// transits: it mirrors Rahu exactly.
func (s *Snapshot) Transiting() []aspect.TransitingBody {
	out := make([]aspect.TransitingBody, 0, len(s.Planets))
	for _, body := range zodiac.EphemerisBodies {
		p, ok := s.Planets[body]
		if !ok {
			continue
		}
		out = append(out, aspect.TransitingBody{
			Body:       body,
			Longitude:  p.Position.TotalLongitude,
			Sign:       p.Position.Sign,
			Retrograde: p.Retrograde,
		})
	}
	return out
}

// Scanner takes snapshots through an ephemeris provider.
type Scanner struct {
	provider ephemeris.Provider
	logger   *slog.Logger
	tracer   trace.Tracer
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewScanner constructs a scanner.
func NewScanner(provider ephemeris.Provider, opts ...Option) (*Scanner, error) {
	if provider == nil {
		return nil, errors.New("ephemeris provider is required")
	}
	s := &Scanner{
		provider: provider,
		logger:   slog.Default(),
		tracer:   otel.Tracer("astroengine/transit"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Snapshot returns the position of every ephemeris body at the request
// instant. Ketu is left out.
func (s *Scanner) Snapshot(ctx context.Context) (*Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "transit.snapshot")
	defer span.End()

	now := requestcontext.Now(ctx).UTC()
	positions, err := ephemeris.Positions(ctx, s.provider, ephemeris.JulianDay(now))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot failed")
		return nil, err
	}

	snap := &Snapshot{Date: now, Planets: make(map[zodiac.Body]Position, len(zodiac.EphemerisBodies))}
	for _, body := range zodiac.EphemerisBodies {
		pos := positions[body]
		snap.Planets[body] = Position{
			Position:   zodiac.ClassifySign(pos.Longitude),
			Retrograde: ephemeris.Retrograde(body, pos),
			Speed:      zodiac.Round(pos.Speed, 4),
		}
	}
	return snap, nil
}

// ActiveTransits takes a snapshot and returns its aspects to the chart.
func (s *Scanner) ActiveTransits(ctx context.Context, c *chart.NatalChart) ([]aspect.TransitRecord, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	records := Active(snap, c)
	s.logger.DebugContext(ctx, "transits detected",
		"request_id", requestcontext.RequestID(ctx),
		"count", len(records),
	)
	return records, nil
}

// Active matches a snapshot against a chart.
func Active(snap *Snapshot, c *chart.NatalChart) []aspect.TransitRecord {
	return aspect.DetectTransits(snap.Transiting(), c.NatalBodies())
}
