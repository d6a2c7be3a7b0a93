package ephemeris

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"astroengine/internal/zodiac"
)

// Positions fetches every ephemeris body at jd in parallel and derives Ketu
// from Rahu. The first failure cancels the remaining fetches.
func Positions(ctx context.Context, p Provider, jd float64) (map[zodiac.Body]Position, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	out := make(map[zodiac.Body]Position, len(zodiac.Bodies))
	for _, body := range zodiac.EphemerisBodies {
		g.Go(func() error {
			pos, err := p.Position(ctx, jd, body)
			if err != nil {
				return fmt.Errorf("position of %s: %w", body, err)
			}
			mu.Lock()
			out[body] = pos
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out[zodiac.Ketu] = KetuFrom(out[zodiac.Rahu])
	return out, nil
}

// KetuFrom returns the south node opposite rahu, with zero speed and latitude.
func KetuFrom(rahu Position) Position {
	return Position{Longitude: zodiac.Normalize(rahu.Longitude + 180)}
}

// Retrograde reports whether body moves backwards. Ketu always does.
func Retrograde(body zodiac.Body, pos Position) bool {
	if body == zodiac.Ketu {
		return true
	}
	return pos.Speed < 0
}
