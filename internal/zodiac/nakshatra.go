package zodiac

import "math"

// NakshatraSpan is the width of one lunar mansion in degrees (13°20′).
const NakshatraSpan = 360.0 / 27

// PadaSpan is the width of one quarter of a mansion.
const PadaSpan = NakshatraSpan / 4

// Nakshatra describes one of the 27 lunar mansions.
type Nakshatra struct {
	Name    string
	Ruler   Body
	Quality string
}

// Nakshatras lists the mansions from 0° sidereal Aries. Rulers follow the
// Vimshottari order three times over but are kept explicit per mansion.
var Nakshatras = [27]Nakshatra{
	{"Ashwini", Ketu, "Swift, healing, new beginnings"},
	{"Bharani", Venus, "Transformation, bearing responsibility"},
	{"Krittika", Sun, "Sharp, purifying, courage"},
	{"Rohini", Moon, "Growth, beauty, sensuality"},
	{"Mrigashira", Mars, "Searching, curious, gentle"},
	{"Ardra", Rahu, "Storm, destruction for renewal"},
	{"Punarvasu", Jupiter, "Renewal, optimism after hardship"},
	{"Pushya", Saturn, "Nourishing, most auspicious"},
	{"Ashlesha", Mercury, "Mystical, hypnotic, transformative"},
	{"Magha", Ketu, "Royal, ancestral power, authority"},
	{"Purva Phalguni", Venus, "Pleasure, creativity, romance"},
	{"Uttara Phalguni", Sun, "Patronage, contracts, friendship"},
	{"Hasta", Moon, "Skill with hands, craftsmanship"},
	{"Chitra", Mars, "Brilliant, artistic creation"},
	{"Swati", Rahu, "Independence, flexibility"},
	{"Vishakha", Jupiter, "Determination, single-pointed focus"},
	{"Anuradha", Saturn, "Devotion, friendship"},
	{"Jyeshtha", Mercury, "Seniority, protective, chief"},
	{"Mula", Ketu, "Root, investigation"},
	{"Purva Ashadha", Venus, "Invincibility, declaration"},
	{"Uttara Ashadha", Sun, "Final victory, universal"},
	{"Shravana", Moon, "Listening, learning, connection"},
	{"Dhanishtha", Mars, "Wealth, music, adaptability"},
	{"Shatabhisha", Rahu, "Hundred healers, mystical healing"},
	{"Purva Bhadrapada", Jupiter, "Transformative fire, spiritual warrior"},
	{"Uttara Bhadrapada", Saturn, "Depth, wisdom from cosmic ocean"},
	{"Revati", Mercury, "Journey's end, compassion"},
}

// NakshatraPlacement locates a sidereal longitude within its mansion.
type NakshatraPlacement struct {
	Index             int     `json:"-"`
	Name              string  `json:"name"`
	Ruler             Body    `json:"ruler"`
	Quality           string  `json:"quality"`
	Pada              int     `json:"pada"`
	DegreeInNakshatra float64 `json:"degree_in_nakshatra"`
	// Offset is the unrounded position inside the mansion.
	Offset float64 `json:"-"`
}

// NakshatraIndex returns the mansion index (0-26) of a sidereal longitude and
// the offset inside it.
func NakshatraIndex(siderealLon float64) (int, float64) {
	lon := Normalize(siderealLon)
	idx := int(lon/NakshatraSpan) % 27
	offset := math.Max(lon-float64(idx)*NakshatraSpan, 0)
	return idx, offset
}

// ClassifyNakshatra maps a sidereal longitude (ayanamsa already removed) to
// its lunar mansion and pada.
func ClassifyNakshatra(siderealLon float64) NakshatraPlacement {
	idx, offset := NakshatraIndex(siderealLon)
	pada := int(offset/PadaSpan) + 1
	pada = min(max(pada, 1), 4)

	n := Nakshatras[idx]
	return NakshatraPlacement{
		Index:             idx,
		Name:              n.Name,
		Ruler:             n.Ruler,
		Quality:           n.Quality,
		Pada:              pada,
		DegreeInNakshatra: Round(offset, 2),
		Offset:            offset,
	}
}
