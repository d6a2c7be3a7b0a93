package chart

import (
	"fmt"

	"astroengine/internal/aspect"
	"astroengine/internal/ephemeris"
	"astroengine/internal/zodiac"
)

// AscendantWeight is the balance weight of the rising sign.
const AscendantWeight = 3

// StelliumSize is the smallest number of bodies that forms a stellium.
const StelliumSize = 3

// Input is everything Aggregate needs. Positions must hold every body,
// Ketu included.
type Input struct {
	Birth     BirthData
	Ayanamsa  float64
	Positions map[zodiac.Body]ephemeris.Position
	Placidus  ephemeris.HouseTable
	WholeSign ephemeris.HouseTable
}

// Aggregate derives the natal chart. It performs no I/O.
func Aggregate(in Input) (*NatalChart, error) {
	for _, body := range zodiac.Bodies {
		if _, ok := in.Positions[body]; !ok {
			return nil, fmt.Errorf("missing position for %s", body)
		}
	}

	c := &NatalChart{
		BirthData: in.Birth,
		Planets:   make(map[zodiac.Body]Placement, len(zodiac.Bodies)),
		Houses:    make(map[int]House, len(in.Placidus.Cusps)),
		Ascendant: zodiac.ClassifySign(in.Placidus.Ascendant),
		Midheaven: zodiac.ClassifySign(in.Placidus.Midheaven),
	}
	c.BirthData.JulianDay = zodiac.Round(in.Birth.JulianDay, 6)
	c.BirthData.AyanamsaLahiri = zodiac.Round(in.Ayanamsa, 4)

	for i, cusp := range in.Placidus.Cusps {
		c.Houses[i+1] = House{
			CuspLongitude: zodiac.Round(cusp, 4),
			Sign:          zodiac.ClassifySign(cusp),
		}
	}

	for _, body := range zodiac.Bodies {
		c.Planets[body] = place(body, in.Positions[body], in.Ayanamsa, in.Placidus.Cusps, in.WholeSign.Cusps)
	}

	points := make([]aspect.Point, 0, len(zodiac.Bodies))
	for _, body := range zodiac.Bodies {
		points = append(points, aspect.Point{Body: body, Longitude: c.Planets[body].Tropical.TotalLongitude})
	}
	c.Aspects = aspect.Detect(points, aspect.NatalOrbs)
	c.Stelliums = Stelliums(c.Planets)
	c.Elements, c.Modalities = Balance(c.Planets, c.Ascendant.Sign)
	c.BigThree = bigThree(c)
	return c, nil
}

func place(body zodiac.Body, pos ephemeris.Position, ayanamsa float64, placidus, wholeSign zodiac.Cusps) Placement {
	sidereal := zodiac.Normalize(pos.Longitude - ayanamsa)
	tropical := zodiac.ClassifySign(pos.Longitude)
	return Placement{
		Tropical:     tropical,
		Sidereal:     zodiac.ClassifySign(sidereal),
		Nakshatra:    zodiac.ClassifyNakshatra(sidereal),
		Dignity:      zodiac.ClassifyDignity(body, tropical.Sign),
		HouseWestern: zodiac.AssignHouse(pos.Longitude, placidus),
		HouseVedic:   zodiac.AssignHouse(sidereal, wholeSign),
		Retrograde:   ephemeris.Retrograde(body, pos),
		Speed:        zodiac.Round(pos.Speed, 6),
		Latitude:     zodiac.Round(pos.Latitude, 4),
	}
}

// Stelliums groups bodies by tropical sign and keeps groups of at least
// StelliumSize. Signs are reported in order of their first body.
func Stelliums(planets map[zodiac.Body]Placement) []Stellium {
	var order []zodiac.Sign
	groups := make(map[zodiac.Sign][]zodiac.Body)
	for _, body := range zodiac.Bodies {
		p, ok := planets[body]
		if !ok {
			continue
		}
		sign := p.Tropical.Sign
		if _, seen := groups[sign]; !seen {
			order = append(order, sign)
		}
		groups[sign] = append(groups[sign], body)
	}

	out := []Stellium{}
	for _, sign := range order {
		if bodies := groups[sign]; len(bodies) >= StelliumSize {
			out = append(out, Stellium{Sign: sign, Planets: bodies, Count: len(bodies)})
		}
	}
	return out
}

// Balance tallies body weights per element and modality, adding
// AscendantWeight for the rising sign. Ties go to the earliest key in
// zodiac.Elements and zodiac.Modalities.
func Balance(planets map[zodiac.Body]Placement, rising zodiac.Sign) (ElementBalance, ModalityBalance) {
	elements := make(map[zodiac.Element]int, len(zodiac.Elements))
	for _, e := range zodiac.Elements {
		elements[e] = 0
	}
	modalities := make(map[zodiac.Modality]int, len(zodiac.Modalities))
	for _, m := range zodiac.Modalities {
		modalities[m] = 0
	}

	for _, body := range zodiac.Bodies {
		p, ok := planets[body]
		w := body.BalanceWeight()
		if !ok || w == 0 {
			continue
		}
		elements[p.Tropical.Sign.Element()] += w
		modalities[p.Tropical.Sign.Modality()] += w
	}
	elements[rising.Element()] += AscendantWeight
	modalities[rising.Modality()] += AscendantWeight

	return ElementBalance{Counts: elements, Dominant: dominant(zodiac.Elements, elements)},
		ModalityBalance{Counts: modalities, Dominant: dominant(zodiac.Modalities, modalities)}
}

func dominant[K comparable](order []K, counts map[K]int) K {
	best := order[0]
	for _, k := range order[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best
}

func bigThree(c *NatalChart) BigThree {
	sun, moon := c.Planets[zodiac.Sun], c.Planets[zodiac.Moon]
	return BigThree{
		Sun: SunSummary{
			Sign:   sun.Tropical.Sign,
			House:  sun.HouseWestern,
			Degree: sun.Tropical.Formatted,
		},
		Moon: MoonSummary{
			Sign:          moon.Tropical.Sign,
			House:         moon.HouseWestern,
			Degree:        moon.Tropical.Formatted,
			Nakshatra:     moon.Nakshatra.Name,
			NakshatraPada: moon.Nakshatra.Pada,
		},
		Rising: RisingSummary{
			Sign:   c.Ascendant.Sign,
			Degree: c.Ascendant.Formatted,
		},
	}
}
