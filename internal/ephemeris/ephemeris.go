// Package ephemeris is the boundary to the body-position and house-cusp
// computation service. The derivation packages never call it directly; the
// chart and transit services fetch raw positions through Provider.
package ephemeris

import (
	"context"
	"fmt"
	"strings"
	"time"

	"astroengine/internal/zodiac"
)

//go:generate mockgen -source=ephemeris.go -destination=mocks/mocks.go -package=mocks Provider

// unixEpochJD is the Julian Day of 1970-01-01T00:00:00Z.
const unixEpochJD = 2440587.5

// HouseSystem selects the cusp algorithm.
type HouseSystem byte

const (
	Placidus  HouseSystem = 'P'
	WholeSign HouseSystem = 'W'
)

// String returns the system name.
func (h HouseSystem) String() string {
	switch h {
	case Placidus:
		return "placidus"
	case WholeSign:
		return "whole_sign"
	default:
		return "unknown"
	}
}

// Code is the single-letter system code used on the wire.
func (h HouseSystem) Code() string {
	return string(rune(h))
}

// ParseHouseSystem accepts a system name or its one-letter code.
func ParseHouseSystem(s string) (HouseSystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", "placidus":
		return Placidus, nil
	case "w", "whole_sign", "wholesign":
		return WholeSign, nil
	default:
		return 0, fmt.Errorf("unknown house system %q", s)
	}
}

// Position is a body's tropical ecliptic position at an instant.
type Position struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	// Speed is in degrees per day; negative means retrograde.
	Speed float64 `json:"speed"`
}

// HouseTable is a set of tropical cusps plus the angles.
type HouseTable struct {
	Cusps     zodiac.Cusps
	Ascendant float64
	Midheaven float64
}

// Provider computes raw positions. Ketu is never requested; callers derive
// it from Rahu.
type Provider interface {
	Position(ctx context.Context, jd float64, body zodiac.Body) (Position, error)
	Houses(ctx context.Context, jd, lat, lon float64, system HouseSystem) (HouseTable, error)
	// Ayanamsa returns the Lahiri tropical-to-sidereal offset in degrees.
	Ayanamsa(ctx context.Context, jd float64) (float64, error)
}

// JulianDay converts an instant to a Julian Day number in Universal Time.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	return unixEpochJD + float64(t.Unix())/86400 + float64(t.Nanosecond())/86400e9
}
