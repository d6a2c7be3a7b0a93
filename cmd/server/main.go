package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"astroengine/internal/chart"
	"astroengine/internal/ephemeris"
	"astroengine/internal/events"
	"astroengine/internal/geocode"
	"astroengine/internal/platform/config"
	"astroengine/internal/platform/httpserver"
	"astroengine/internal/platform/logger"
	"astroengine/internal/platform/metrics"
	"astroengine/internal/platform/postgres"
	"astroengine/internal/platform/redis"
	"astroengine/internal/transit"
	httptransport "astroengine/internal/transport/http"
	"astroengine/pkg/platform/circuit"
	"astroengine/pkg/platform/middleware/cors"
)

const engineName = "Swiss Ephemeris"

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Logging)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := ephemeris.NewClient(cfg.Ephemeris.URL, cfg.Ephemeris.Timeout,
		ephemeris.WithBreaker(circuit.New("ephemeris", circuit.WithFailureThreshold(cfg.Ephemeris.FailureThreshold))),
		ephemeris.WithMetrics(ephemeris.NewMetrics()),
		ephemeris.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("ephemeris client: %w", err)
	}

	cache, closeCache, err := newGeocodeCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	remote := geocode.NewNominatimClient(
		cfg.Geocoder.NominatimURL,
		cfg.Geocoder.UserAgent,
		cfg.Geocoder.Timeout,
		cfg.Geocoder.RequestsPerSecond,
		geocode.NewTimeAPIResolver(cfg.Geocoder.TimezoneURL, cfg.Geocoder.Timeout),
	)
	geocoder, err := geocode.NewService(remote, cache,
		geocode.WithMetrics(geocode.NewMetrics()),
		geocode.WithLookupTimeout(2*cfg.Geocoder.Timeout),
		geocode.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("geocode service: %w", err)
	}

	charts, err := chart.NewService(provider, geocoder,
		chart.WithMetrics(chart.NewMetrics()),
		chart.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("chart service: %w", err)
	}
	scanner, err := transit.NewScanner(provider, transit.WithLogger(log))
	if err != nil {
		return fmt.Errorf("transit scanner: %w", err)
	}

	publisher, err := newPublisher(ctx, cfg, log)
	if err != nil {
		return err
	}

	originPatterns, err := cors.CompilePatterns(cfg.Server.CORSOriginPatterns)
	if err != nil {
		return err
	}
	handler := httptransport.New(charts, scanner, publisher, log, engineName)
	router := httptransport.NewRouter(handler, httptransport.RouterConfig{
		CORSOrigins:        cfg.Server.CORSOrigins,
		CORSOriginPatterns: originPatterns,
		Logger:             log,
		Observer:           metrics.New(),
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting astro engine", "addr", cfg.Server.Addr, "cache", cfg.Cache.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	if err := publisher.Close(shutdownCtx); err != nil {
		log.Warn("close event publisher", "error", err)
	}
	return nil
}

// newGeocodeCache builds the configured cache backend and its closer.
func newGeocodeCache(ctx context.Context, cfg config.Config) (geocode.Cache, func(), error) {
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		rc, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("redis: %w", err)
		}
		return geocode.NewRedisCache(rc.Client, cfg.Cache.TTL), func() { _ = rc.Close() }, nil
	case config.CachePostgres:
		db, err := postgres.New(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		pc := geocode.NewPostgresCache(db, cfg.Cache.TTL)
		if err := pc.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return pc, closeDB(db), nil
	default:
		return geocode.NewInMemoryCache(cfg.Cache.MaxEntries, cfg.Cache.TTL), func() {}, nil
	}
}

func closeDB(db *sql.DB) func() {
	return func() { _ = db.Close() }
}

// newPublisher returns a Kafka publisher when brokers are configured.
func newPublisher(ctx context.Context, cfg config.Config, log *slog.Logger) (events.Publisher, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return events.NopPublisher{}, nil
	}
	pub, err := events.NewKafkaPublisher(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic,
		events.WithMetrics(events.NewMetrics()),
		events.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("event publisher: %w", err)
	}
	return pub, nil
}
