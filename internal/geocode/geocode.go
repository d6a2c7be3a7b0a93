// Package geocode resolves free-text birthplaces to coordinates and an IANA
// timezone. Resolution consults a static table of common places, then an
// injected cache, then the remote geocoder.
package geocode

import (
	"context"
	"errors"
	"strings"
)

//go:generate mockgen -source=geocode.go -destination=mocks/mocks.go -package=mocks Geocoder

// ErrPlaceNotFound is returned when no source can resolve a place.
var ErrPlaceNotFound = errors.New("place not found")

// Location is a resolved place.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Address   string  `json:"address"`
}

// Geocoder resolves a place name.
type Geocoder interface {
	Resolve(ctx context.Context, place string) (Location, error)
}

// Key normalizes a place name for lookups: lower case, trimmed.
func Key(place string) string {
	return strings.ToLower(strings.TrimSpace(place))
}
