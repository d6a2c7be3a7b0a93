package ephemeris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJulianDay(t *testing.T) {
	assert.Equal(t, 2451545.0, JulianDay(time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2440587.5, JulianDay(time.Unix(0, 0)))

	ist := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(1990, time.May, 15, 16, 0, 0, 0, ist)
	assert.Equal(t, JulianDay(local.UTC()), JulianDay(local))
	assert.InDelta(t, 2448026.9375, JulianDay(local), 1e-9)
}

func TestHouseSystem(t *testing.T) {
	assert.Equal(t, "P", Placidus.Code())
	assert.Equal(t, "W", WholeSign.Code())
	assert.Equal(t, "placidus", Placidus.String())

	for in, want := range map[string]HouseSystem{"P": Placidus, "placidus": Placidus, " w ": WholeSign, "whole_sign": WholeSign} {
		got, err := ParseHouseSystem(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseHouseSystem("koch")
	assert.Error(t, err)
}

func TestProviderErrorTaxonomy(t *testing.T) {
	assert.True(t, IsRetryable(NewProviderError(ErrorTimeout, opPosition, "slow", nil)))
	assert.True(t, IsRetryable(NewProviderError(ErrorRateLimited, opPosition, "busy", nil)))
	assert.False(t, IsRetryable(NewProviderError(ErrorBadData, opPosition, "junk", nil)))
	assert.Equal(t, ErrorInternal, GetCategory(assert.AnError))

	err := NewProviderError(ErrorBadData, opHouses, "invalid response", assert.AnError)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "ephemeris houses [bad_data]")
}
