// Package aspect finds angular relationships between bodies.
//
// The same matcher serves natal self-aspects and transit-to-natal aspects;
// the two differ only in their tolerance tables, ordering, and the
// significance tag carried by transit records.
package aspect

import (
	"fmt"
	"math"
	"sort"

	"astroengine/internal/zodiac"
)

// Type is one of the nine recognised aspect angles.
type Type int

const (
	Conjunction Type = iota
	Opposition
	Trine
	Square
	Sextile
	Quincunx
	SemiSextile
	SemiSquare
	Sesquiquadrate
)

// Nature separates the Ptolemaic majors from the minor aspects.
type Nature string

const (
	NatureMajor Nature = "major"
	NatureMinor Nature = "minor"
)

// Harmony tags an aspect as hard, soft, or neutral.
type Harmony string

const (
	Hard        Harmony = "hard"
	Soft        Harmony = "soft"
	HarmonyNone Harmony = "neutral"
)

type definition struct {
	name    string
	angle   float64
	orb     float64
	nature  Nature
	harmony Harmony
}

var definitions = [...]definition{
	Conjunction:    {"conjunction", 0, 8, NatureMajor, HarmonyNone},
	Opposition:     {"opposition", 180, 8, NatureMajor, Hard},
	Trine:          {"trine", 120, 7, NatureMajor, Soft},
	Square:         {"square", 90, 7, NatureMajor, Hard},
	Sextile:        {"sextile", 60, 5, NatureMajor, Soft},
	Quincunx:       {"quincunx", 150, 3, NatureMinor, Hard},
	SemiSextile:    {"semi_sextile", 30, 2, NatureMinor, HarmonyNone},
	SemiSquare:     {"semi_square", 45, 2, NatureMinor, Hard},
	Sesquiquadrate: {"sesquiquadrate", 135, 2, NatureMinor, Hard},
}

// Types lists every aspect type in table order.
var Types = []Type{Conjunction, Opposition, Trine, Square, Sextile, Quincunx, SemiSextile, SemiSquare, Sesquiquadrate}

func (t Type) String() string {
	if t < 0 || int(t) >= len(definitions) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return definitions[t].name
}

// MarshalText renders the aspect by name.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Angle is the exact separation of the aspect in degrees.
func (t Type) Angle() float64 { return definitions[t].angle }

// Nature reports whether the aspect is major or minor.
func (t Type) Nature() Nature { return definitions[t].nature }

// Harmony reports the aspect's harmony tag.
func (t Type) Harmony() Harmony { return definitions[t].harmony }

// Orb is one entry of a tolerance table.
type Orb struct {
	Type Type
	Max  float64
}

// Table is an ordered tolerance table.
type Table []Orb

// NatalOrbs allows the full default orb of every aspect type.
var NatalOrbs = func() Table {
	t := make(Table, 0, len(Types))
	for _, typ := range Types {
		t = append(t, Orb{Type: typ, Max: definitions[typ].orb})
	}
	return t
}()

// TransitOrbs is tighter and limited to the five major aspects.
var TransitOrbs = Table{
	{Conjunction, 3},
	{Opposition, 3},
	{Trine, 2.5},
	{Square, 2.5},
	{Sextile, 2},
}

// Point is a body at an ecliptic longitude.
type Point struct {
	Body      zodiac.Body
	Longitude float64
}

// Match is one aspect found between two longitudes.
type Match struct {
	Type     Type
	Orb      float64
	Strength float64
}

// Separation returns the shorter angular distance between two longitudes,
// in [0, 180].
func Separation(a, b float64) float64 {
	diff := math.Abs(zodiac.Normalize(a) - zodiac.Normalize(b))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// Between returns every aspect in table formed by two longitudes. Strength
// decays linearly from 1 at exactness to 0 at the edge of the orb. The result
// does not depend on argument order.
func Between(a, b float64, table Table) []Match {
	sep := Separation(a, b)
	var matches []Match
	for _, o := range table {
		actual := math.Abs(sep - o.Type.Angle())
		if actual > o.Max {
			continue
		}
		matches = append(matches, Match{
			Type:     o.Type,
			Orb:      zodiac.Round(actual, 2),
			Strength: zodiac.Round(1-actual/o.Max, 3),
		})
	}
	return matches
}

// Record is an aspect between two natal bodies.
type Record struct {
	Planet1  zodiac.Body `json:"planet1"`
	Planet2  zodiac.Body `json:"planet2"`
	Aspect   Type        `json:"aspect"`
	Nature   Nature      `json:"nature"`
	Harmony  Harmony     `json:"harmony"`
	Orb      float64     `json:"orb"`
	Strength float64     `json:"strength"`
}

// Detect checks every unordered pair of points against table and returns the
// records sorted by strength, strongest first. Pairs keep the order of
// points, so Planet1 always precedes Planet2 in the input.
func Detect(points []Point, table Table) []Record {
	records := []Record{}
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			a, b := points[i], points[j]
			if a.Body == b.Body {
				continue
			}
			for _, m := range Between(a.Longitude, b.Longitude, table) {
				records = append(records, Record{
					Planet1:  a.Body,
					Planet2:  b.Body,
					Aspect:   m.Type,
					Nature:   m.Type.Nature(),
					Harmony:  m.Type.Harmony(),
					Orb:      m.Orb,
					Strength: m.Strength,
				})
			}
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Strength > records[j].Strength
	})
	return records
}
