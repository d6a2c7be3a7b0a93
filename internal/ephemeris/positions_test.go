package ephemeris_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"astroengine/internal/ephemeris"
	"astroengine/internal/ephemeris/mocks"
	"astroengine/internal/zodiac"
)

func TestPositions(t *testing.T) {
	t.Run("fetches every body and derives ketu", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := mocks.NewMockProvider(ctrl)
		provider.EXPECT().Position(gomock.Any(), 2451545.0, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ float64, body zodiac.Body) (ephemeris.Position, error) {
				if body == zodiac.Rahu {
					return ephemeris.Position{Longitude: 250, Speed: -0.05}, nil
				}
				return ephemeris.Position{Longitude: float64(body) * 10, Speed: 1}, nil
			}).Times(len(zodiac.EphemerisBodies))

		got, err := ephemeris.Positions(context.Background(), provider, 2451545.0)
		require.NoError(t, err)
		assert.Len(t, got, len(zodiac.Bodies))
		assert.Equal(t, 70.0, got[zodiac.Ketu].Longitude)
		assert.Zero(t, got[zodiac.Ketu].Speed)
		assert.True(t, ephemeris.Retrograde(zodiac.Ketu, got[zodiac.Ketu]))
		assert.True(t, ephemeris.Retrograde(zodiac.Rahu, got[zodiac.Rahu]))
		assert.False(t, ephemeris.Retrograde(zodiac.Sun, got[zodiac.Sun]))
	})

	t.Run("first failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		provider := mocks.NewMockProvider(ctrl)
		outage := ephemeris.NewProviderError(ephemeris.ErrorProviderOutage, "position", "down", nil)
		provider.EXPECT().Position(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, _ float64, body zodiac.Body) (ephemeris.Position, error) {
				if body == zodiac.Saturn {
					return ephemeris.Position{}, outage
				}
				return ephemeris.Position{}, nil
			}).AnyTimes()

		_, err := ephemeris.Positions(context.Background(), provider, 1)
		require.Error(t, err)
		var pe *ephemeris.ProviderError
		assert.True(t, errors.As(err, &pe))
		assert.Contains(t, err.Error(), "Saturn")
	})
}
