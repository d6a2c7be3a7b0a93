package geocode

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astroengine/pkg/platform/sentinel"
)

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	paris := Location{Latitude: 48.8566, Longitude: 2.3522, Timezone: "Europe/Paris", Address: "Paris, France"}

	newCache := func(size int) *InMemoryCache {
		c := NewInMemoryCache(size, time.Hour)
		c.clock = func() time.Time { return now }
		return c
	}

	t.Run("round trip", func(t *testing.T) {
		c := newCache(4)
		require.NoError(t, c.Set(ctx, "paris, france", paris))
		got, err := c.Get(ctx, "paris, france")
		require.NoError(t, err)
		assert.Equal(t, paris, got)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := newCache(4).Get(ctx, "nowhere")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("expired entries are dropped", func(t *testing.T) {
		c := newCache(4)
		require.NoError(t, c.Set(ctx, "paris, france", paris))
		c.clock = func() time.Time { return now.Add(time.Hour) }
		_, err := c.Get(ctx, "paris, france")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("capacity evicts least recently used", func(t *testing.T) {
		c := newCache(2)
		require.NoError(t, c.Set(ctx, "a", paris))
		require.NoError(t, c.Set(ctx, "b", paris))
		_, err := c.Get(ctx, "a")
		require.NoError(t, err)
		require.NoError(t, c.Set(ctx, "c", paris))

		assert.Equal(t, 2, c.Len())
		_, err = c.Get(ctx, "b")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		_, err = c.Get(ctx, "a")
		assert.NoError(t, err)
	})
}

func TestLookupCommon(t *testing.T) {
	loc, ok := LookupCommon("  New Delhi, INDIA ")
	require.True(t, ok)
	assert.Equal(t, "Asia/Kolkata", loc.Timezone)
	assert.Equal(t, 28.6139, loc.Latitude)

	_, ok = LookupCommon("new delhi")
	assert.False(t, ok)
}
