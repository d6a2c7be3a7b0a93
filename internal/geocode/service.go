package geocode

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"astroengine/pkg/platform/sentinel"
)

// Service is the resolution chain: common places, then cache, then remote.
// Concurrent misses for the same place share one remote call. Cache failures
// degrade to a remote lookup and never fail the request.
type Service struct {
	remote        Geocoder
	cache         Cache
	group         singleflight.Group
	lookupTimeout time.Duration
	metrics       *Metrics
	logger        *slog.Logger
}

// DefaultLookupTimeout bounds one shared remote lookup.
const DefaultLookupTimeout = 30 * time.Second

// Option configures a Service.
type Option func(*Service)

// WithMetrics sets the metrics sink.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLookupTimeout bounds the shared remote lookup, which outlives any single
// caller's context.
func WithLookupTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.lookupTimeout = d
		}
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

// NewService builds the chain. remote may be nil for offline use, in which
// case only common places and cached entries resolve.
func NewService(remote Geocoder, cache Cache, opts ...Option) (*Service, error) {
	if cache == nil {
		return nil, errors.New("geocode cache is required")
	}
	s := &Service{
		remote:        remote,
		cache:         cache,
		lookupTimeout: DefaultLookupTimeout,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Resolve returns the location for place or ErrPlaceNotFound.
func (s *Service) Resolve(ctx context.Context, place string) (Location, error) {
	key := Key(place)
	if key == "" {
		return Location{}, ErrPlaceNotFound
	}
	if loc, ok := LookupCommon(key); ok {
		s.metrics.RecordLookup("static")
		return loc, nil
	}

	loc, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		s.metrics.RecordLookup("cache")
		return loc, nil
	case !errors.Is(err, sentinel.ErrNotFound):
		s.metrics.RecordCacheError()
		s.logger.WarnContext(ctx, "geocode cache read failed", "place", key, "error", err)
	}

	if s.remote == nil {
		s.metrics.RecordLookup("not_found")
		return Location{}, ErrPlaceNotFound
	}

	// The shared call runs detached so one caller leaving does not fail the
	// others waiting on the same place.
	ch := s.group.DoChan(key, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.lookupTimeout)
		defer cancel()
		loc, err := s.remote.Resolve(lookupCtx, place)
		if err != nil {
			return Location{}, err
		}
		if err := s.cache.Set(lookupCtx, key, loc); err != nil {
			s.metrics.RecordCacheError()
			s.logger.WarnContext(lookupCtx, "geocode cache write failed", "place", key, "error", err)
		}
		return loc, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		s.metrics.RecordLookup("error")
		return Location{}, ctx.Err()
	}
	v, err := res.Val, res.Err
	if err != nil {
		if errors.Is(err, ErrPlaceNotFound) {
			s.metrics.RecordLookup("not_found")
		} else {
			s.metrics.RecordLookup("error")
		}
		return Location{}, err
	}
	s.metrics.RecordLookup("remote")
	return v.(Location), nil
}
