package chart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"astroengine/internal/ephemeris"
	"astroengine/internal/geocode"
	dErrors "astroengine/pkg/domain-errors"
	"astroengine/pkg/platform/sentinel"
)

// Request is a local birth moment and a free-form place name.
type Request struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
	Place  string
}

// Validate rejects calendar dates and clock times that do not exist.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Place) == "" {
		return dErrors.New(dErrors.CodeValidation, "place is required")
	}
	if r.Year < 1 || r.Year > 9999 {
		return dErrors.New(dErrors.CodeValidation, "year must be between 1 and 9999")
	}
	if r.Hour < 0 || r.Hour > 23 || r.Minute < 0 || r.Minute > 59 || r.Second < 0 || r.Second > 59 {
		return dErrors.New(dErrors.CodeValidation, "time of day is out of range")
	}
	t := time.Date(r.Year, time.Month(r.Month), r.Day, 0, 0, 0, 0, time.UTC)
	if t.Year() != r.Year || int(t.Month()) != r.Month || t.Day() != r.Day {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid date %04d-%02d-%02d", r.Year, r.Month, r.Day))
	}
	return nil
}

// Service computes natal charts from a birth request.
type Service struct {
	provider ephemeris.Provider
	geocoder geocode.Geocoder
	metrics  *Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics sets the metrics sink.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService constructs a chart service.
func NewService(provider ephemeris.Provider, geocoder geocode.Geocoder, opts ...Option) (*Service, error) {
	if provider == nil {
		return nil, errors.New("ephemeris provider is required")
	}
	if geocoder == nil {
		return nil, errors.New("geocoder is required")
	}
	s := &Service{
		provider: provider,
		geocoder: geocoder,
		logger:   slog.Default(),
		tracer:   otel.Tracer("astroengine/chart"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Compute resolves the place, converts the local birth time to UT, fetches
// positions and houses and aggregates the chart.
func (s *Service) Compute(ctx context.Context, req Request) (*NatalChart, error) {
	ctx, span := s.tracer.Start(ctx, "chart.compute",
		trace.WithAttributes(attribute.String("chart.place", req.Place)),
	)
	defer span.End()

	start := time.Now()
	c, err := s.compute(ctx, req)
	s.metrics.ObserveCompute(time.Since(start))
	if err != nil {
		s.metrics.IncrementOutcome(outcome(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "chart computation failed")
		return nil, err
	}
	s.metrics.IncrementOutcome("ok")
	return c, nil
}

func (s *Service) compute(ctx context.Context, req Request) (*NatalChart, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	loc, err := s.geocoder.Resolve(ctx, req.Place)
	if err != nil {
		if errors.Is(err, geocode.ErrPlaceNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodePlaceNotFound, "Cannot find location: "+req.Place)
		}
		return nil, computationError(err)
	}

	zone, err := time.LoadLocation(loc.Timezone)
	if err != nil {
		return nil, computationError(fmt.Errorf("load timezone %q: %w", loc.Timezone, err))
	}
	local := time.Date(req.Year, time.Month(req.Month), req.Day, req.Hour, req.Minute, req.Second, 0, zone)
	jd := ephemeris.JulianDay(local)

	in := Input{
		Birth: BirthData{
			Date:      fmt.Sprintf("%04d-%02d-%02d", req.Year, req.Month, req.Day),
			Time:      fmt.Sprintf("%02d:%02d:%02d", req.Hour, req.Minute, req.Second),
			Place:     req.Place,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Timezone:  loc.Timezone,
			JulianDay: jd,
			Instant:   local,
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ay, err := s.provider.Ayanamsa(gctx, jd)
		in.Ayanamsa = ay
		return err
	})
	g.Go(func() error {
		table, err := s.provider.Houses(gctx, jd, loc.Latitude, loc.Longitude, ephemeris.Placidus)
		in.Placidus = table
		return err
	})
	g.Go(func() error {
		table, err := s.provider.Houses(gctx, jd, loc.Latitude, loc.Longitude, ephemeris.WholeSign)
		in.WholeSign = table
		return err
	})
	g.Go(func() error {
		positions, err := ephemeris.Positions(gctx, s.provider, jd)
		in.Positions = positions
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, computationError(err)
	}

	c, err := Aggregate(in)
	if err != nil {
		return nil, computationError(err)
	}
	return c, nil
}

// computationError classifies a failure below the geocoder. An open breaker
// or a transient ephemeris failure surfaces as unavailable; everything else is
// a calculation error.
func computationError(err error) error {
	if errors.Is(err, sentinel.ErrUnavailable) || ephemeris.IsRetryable(err) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "ephemeris temporarily unavailable")
	}
	return dErrors.Wrap(err, dErrors.CodeComputation, "calculation error")
}

func outcome(err error) string {
	switch {
	case dErrors.HasCode(err, dErrors.CodePlaceNotFound):
		return "place_not_found"
	case dErrors.HasCode(err, dErrors.CodeValidation):
		return "invalid"
	case dErrors.HasCode(err, dErrors.CodeUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
