package aspect

import (
	"sort"

	"astroengine/internal/zodiac"
)

// Significance grades a transit.
type Significance string

const (
	Major    Significance = "MAJOR"
	Moderate Significance = "MODERATE"
)

// TransitingBody is a body's current position.
type TransitingBody struct {
	Body       zodiac.Body
	Longitude  float64
	Sign       zodiac.Sign
	Retrograde bool
}

// NatalBody is a natal position a transit can aspect.
type NatalBody struct {
	Body      zodiac.Body
	Longitude float64
	Sign      zodiac.Sign
	House     int
}

// TransitRecord is an aspect from a transiting body to a natal body.
type TransitRecord struct {
	TransitPlanet     zodiac.Body  `json:"transit_planet"`
	TransitSign       zodiac.Sign  `json:"transit_sign"`
	NatalPlanet       zodiac.Body  `json:"natal_planet"`
	NatalSign         zodiac.Sign  `json:"natal_sign"`
	NatalHouse        int          `json:"natal_house"`
	Aspect            Type         `json:"aspect"`
	Orb               float64      `json:"orb"`
	Strength          float64      `json:"strength"`
	TransitRetrograde bool         `json:"transit_retrograde"`
	Significance      Significance `json:"significance"`
}

// Grade returns MAJOR when a slow body makes a hard or fusing aspect to a
// personal body, MODERATE otherwise.
func Grade(transiting, natal zodiac.Body, t Type) Significance {
	if !transiting.IsSlow() || !natal.IsPersonal() {
		return Moderate
	}
	switch t {
	case Conjunction, Opposition, Square:
		return Major
	default:
		return Moderate
	}
}

// DetectTransits matches every transiting body against every natal body using
// TransitOrbs. Records are ordered by the transiting body's priority, slow
// bodies first; equal priorities keep detection order.
func DetectTransits(transiting []TransitingBody, natal []NatalBody) []TransitRecord {
	records := []TransitRecord{}
	for _, t := range transiting {
		for _, n := range natal {
			for _, m := range Between(t.Longitude, n.Longitude, TransitOrbs) {
				records = append(records, TransitRecord{
					TransitPlanet:     t.Body,
					TransitSign:       t.Sign,
					NatalPlanet:       n.Body,
					NatalSign:         n.Sign,
					NatalHouse:        n.House,
					Aspect:            m.Type,
					Orb:               m.Orb,
					Strength:          m.Strength,
					TransitRetrograde: t.Retrograde,
					Significance:      Grade(t.Body, n.Body, m.Type),
				})
			}
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TransitPlanet.TransitPriority() > records[j].TransitPlanet.TransitPriority()
	})
	return records
}
