//go:build integration

package geocode_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"astroengine/internal/geocode"
	"astroengine/pkg/platform/sentinel"
	"astroengine/pkg/requestcontext"
	"astroengine/pkg/testutil/containers"
)

var lima = geocode.Location{Latitude: -12.046374, Longitude: -77.042793, Timezone: "America/Lima", Address: "Lima, Peru"}

// =============================================================================
// Redis
// =============================================================================

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *geocode.RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.cache = geocode.NewRedisCache(s.redis.Client, time.Minute)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestRoundTrip() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Set(ctx, "lima, peru", lima))

	got, err := s.cache.Get(ctx, "lima, peru")
	s.Require().NoError(err)
	s.Equal(lima, got)

	ttl, err := s.redis.Client.TTL(ctx, "geocode:lima, peru").Result()
	s.Require().NoError(err)
	s.Greater(ttl, 50*time.Second)
}

func (s *RedisCacheSuite) TestMiss() {
	_, err := s.cache.Get(context.Background(), "nowhere")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// =============================================================================
// PostgreSQL
// =============================================================================

type PostgresCacheSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	cache    *geocode.PostgresCache
}

func TestPostgresCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresCacheSuite))
}

func (s *PostgresCacheSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.cache = geocode.NewPostgresCache(s.postgres.DB, time.Hour)
	s.Require().NoError(s.cache.EnsureSchema(context.Background()))
}

func (s *PostgresCacheSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "geocode_cache"))
}

func (s *PostgresCacheSuite) TestRoundTrip() {
	ctx := context.Background()
	s.Require().NoError(s.cache.Set(ctx, "lima, peru", lima))

	got, err := s.cache.Get(ctx, "lima, peru")
	s.Require().NoError(err)
	s.Equal(lima, got)
}

func (s *PostgresCacheSuite) TestExpiredEntryIsAMiss() {
	stored := time.Now().Add(-2 * time.Hour)
	s.Require().NoError(s.cache.Set(requestcontext.WithTime(context.Background(), stored), "lima, peru", lima))

	_, err := s.cache.Get(context.Background(), "lima, peru")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// TestConcurrentUpsert verifies concurrent saves of one key leave exactly one
// complete row.
func (s *PostgresCacheSuite) TestConcurrentUpsert() {
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loc := lima
			loc.Address = "Lima " + string(rune('A'+i))
			s.NoError(s.cache.Set(ctx, "lima, peru", loc))
		}()
	}
	wg.Wait()

	var rows int
	s.Require().NoError(s.postgres.DB.QueryRowContext(ctx, `SELECT count(*) FROM geocode_cache`).Scan(&rows))
	s.Equal(1, rows)

	got, err := s.cache.Get(ctx, "lima, peru")
	s.Require().NoError(err)
	s.Equal("America/Lima", got.Timezone)
}
