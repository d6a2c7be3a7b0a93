package geocode

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"astroengine/pkg/platform/sentinel"
	"astroengine/pkg/requestcontext"
)

// Schema creates the cache table.
const Schema = `
CREATE TABLE IF NOT EXISTS geocode_cache (
	place_key  TEXT PRIMARY KEY,
	latitude   DOUBLE PRECISION NOT NULL,
	longitude  DOUBLE PRECISION NOT NULL,
	timezone   TEXT NOT NULL,
	address    TEXT NOT NULL,
	stored_at  TIMESTAMPTZ NOT NULL
)`

// pgUndefinedTable is the SQLSTATE for a missing relation.
const pgUndefinedTable = "42P01"

// PostgresCache persists places in PostgreSQL. Entries older than the TTL are
// ignored on read and overwritten on the next save.
type PostgresCache struct {
	db  *sql.DB
	ttl time.Duration
}

// NewPostgresCache constructs a PostgreSQL-backed cache.
func NewPostgresCache(db *sql.DB, ttl time.Duration) *PostgresCache {
	return &PostgresCache{db: db, ttl: ttl}
}

// EnsureSchema creates the cache table if needed.
func (c *PostgresCache) EnsureSchema(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create geocode cache table: %w", err)
	}
	return nil
}

// Get returns a place stored within the TTL.
func (c *PostgresCache) Get(ctx context.Context, key string) (Location, error) {
	cutoff := requestcontext.Now(ctx).Add(-c.ttl)
	var loc Location
	err := c.db.QueryRowContext(ctx, `
		SELECT latitude, longitude, timezone, address
		FROM geocode_cache
		WHERE place_key = $1 AND stored_at > $2`,
		key, cutoff,
	).Scan(&loc.Latitude, &loc.Longitude, &loc.Timezone, &loc.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Location{}, sentinel.ErrNotFound
		}
		if isUndefinedTable(err) {
			return Location{}, fmt.Errorf("find geocode cache: %w: %w", sentinel.ErrUnavailable, err)
		}
		return Location{}, fmt.Errorf("find geocode cache: %w", err)
	}
	return loc, nil
}

// Set upserts a place.
func (c *PostgresCache) Set(ctx context.Context, key string, loc Location) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO geocode_cache (place_key, latitude, longitude, timezone, address, stored_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (place_key) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			timezone = EXCLUDED.timezone,
			address = EXCLUDED.address,
			stored_at = EXCLUDED.stored_at`,
		key, loc.Latitude, loc.Longitude, loc.Timezone, loc.Address, requestcontext.Now(ctx),
	)
	if err != nil {
		return fmt.Errorf("save geocode cache: %w", err)
	}
	return nil
}

func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUndefinedTable
}
