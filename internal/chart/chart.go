// Package chart assembles a natal chart from raw ephemeris positions and
// derives its summaries: aspects, stelliums, element and modality balance
// and the big three.
package chart

import (
	"time"

	"astroengine/internal/aspect"
	"astroengine/internal/zodiac"
)

// BirthData echoes the resolved birth moment and place.
type BirthData struct {
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Place          string  `json:"place"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Timezone       string  `json:"timezone"`
	JulianDay      float64 `json:"julian_day"`
	AyanamsaLahiri float64 `json:"ayanamsa_lahiri"`

	// Instant is the birth moment in the birth place's zone.
	Instant time.Time `json:"-"`
}

// Placement is one body's full derivation.
type Placement struct {
	Tropical     zodiac.SignPlacement      `json:"tropical"`
	Sidereal     zodiac.SignPlacement      `json:"sidereal"`
	Nakshatra    zodiac.NakshatraPlacement `json:"nakshatra"`
	Dignity      zodiac.Dignity            `json:"dignity"`
	HouseWestern int                       `json:"house_western"`
	HouseVedic   int                       `json:"house_vedic"`
	Retrograde   bool                      `json:"retrograde"`
	Speed        float64                   `json:"speed_deg_per_day"`
	Latitude     float64                   `json:"latitude"`
}

// House is a Placidus cusp.
type House struct {
	CuspLongitude float64              `json:"cusp_longitude"`
	Sign          zodiac.SignPlacement `json:"sign"`
}

// Stellium is a sign holding three or more bodies.
type Stellium struct {
	Sign    zodiac.Sign   `json:"sign"`
	Planets []zodiac.Body `json:"planets"`
	Count   int           `json:"count"`
}

// ElementBalance is the weighted element tally.
type ElementBalance struct {
	Counts   map[zodiac.Element]int `json:"counts"`
	Dominant zodiac.Element         `json:"dominant"`
}

// ModalityBalance is the weighted modality tally.
type ModalityBalance struct {
	Counts   map[zodiac.Modality]int `json:"counts"`
	Dominant zodiac.Modality         `json:"dominant"`
}

type SunSummary struct {
	Sign   zodiac.Sign `json:"sign"`
	House  int         `json:"house"`
	Degree string      `json:"degree"`
}

type MoonSummary struct {
	Sign          zodiac.Sign `json:"sign"`
	House         int         `json:"house"`
	Degree        string      `json:"degree"`
	Nakshatra     string      `json:"nakshatra"`
	NakshatraPada int         `json:"nakshatra_pada"`
}

type RisingSummary struct {
	Sign   zodiac.Sign `json:"sign"`
	Degree string      `json:"degree"`
}

// BigThree summarizes sun, moon and rising.
type BigThree struct {
	Sun    SunSummary    `json:"sun"`
	Moon   MoonSummary   `json:"moon"`
	Rising RisingSummary `json:"rising"`
}

// NatalChart is the complete derivation for one birth. It is not modified
// after Aggregate returns it.
type NatalChart struct {
	BirthData  BirthData                 `json:"birth_data"`
	BigThree   BigThree                  `json:"big_three"`
	Planets    map[zodiac.Body]Placement `json:"planets"`
	Houses     map[int]House             `json:"houses"`
	Ascendant  zodiac.SignPlacement      `json:"ascendant"`
	Midheaven  zodiac.SignPlacement      `json:"midheaven"`
	Aspects    []aspect.Record           `json:"aspects"`
	Stelliums  []Stellium                `json:"stelliums"`
	Elements   ElementBalance            `json:"elements"`
	Modalities ModalityBalance           `json:"modalities"`
}

// MoonSidereal returns the sidereal moon longitude that seeds the dasha
// timeline.
func (c *NatalChart) MoonSidereal() float64 {
	return c.Planets[zodiac.Moon].Sidereal.TotalLongitude
}

// NatalBodies returns the chart's bodies in chart order for transit matching.
func (c *NatalChart) NatalBodies() []aspect.NatalBody {
	out := make([]aspect.NatalBody, 0, len(c.Planets))
	for _, body := range zodiac.Bodies {
		p, ok := c.Planets[body]
		if !ok {
			continue
		}
		out = append(out, aspect.NatalBody{
			Body:      body,
			Longitude: p.Tropical.TotalLongitude,
			Sign:      p.Tropical.Sign,
			House:     p.HouseWestern,
		})
	}
	return out
}
