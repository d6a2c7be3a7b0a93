package zodiac

import "slices"

// Dignity is the classical strength of a body in a sign.
type Dignity string

const (
	Domicile   Dignity = "domicile"
	Exaltation Dignity = "exaltation"
	Detriment  Dignity = "detriment"
	Fall       Dignity = "fall"
	Neutral    Dignity = "neutral"
)

type dignityTable struct {
	domicile   []Sign
	exaltation []Sign
	detriment  []Sign
	fall       []Sign
}

func (t dignityTable) lookup(sign Sign) Dignity {
	switch {
	case slices.Contains(t.domicile, sign):
		return Domicile
	case slices.Contains(t.exaltation, sign):
		return Exaltation
	case slices.Contains(t.detriment, sign):
		return Detriment
	case slices.Contains(t.fall, sign):
		return Fall
	default:
		return Neutral
	}
}

// dignityFor covers the seven classical bodies. Mercury's exaltation and fall
// overlap its domicile and detriment; the lookup order decides.
func dignityFor(body Body) (dignityTable, bool) {
	switch body {
	case Sun:
		return dignityTable{[]Sign{Leo}, []Sign{Aries}, []Sign{Aquarius}, []Sign{Libra}}, true
	case Moon:
		return dignityTable{[]Sign{Cancer}, []Sign{Taurus}, []Sign{Capricorn}, []Sign{Scorpio}}, true
	case Mercury:
		return dignityTable{[]Sign{Gemini, Virgo}, []Sign{Virgo}, []Sign{Sagittarius, Pisces}, []Sign{Pisces}}, true
	case Venus:
		return dignityTable{[]Sign{Taurus, Libra}, []Sign{Pisces}, []Sign{Scorpio, Aries}, []Sign{Virgo}}, true
	case Mars:
		return dignityTable{[]Sign{Aries, Scorpio}, []Sign{Capricorn}, []Sign{Libra, Taurus}, []Sign{Cancer}}, true
	case Jupiter:
		return dignityTable{[]Sign{Sagittarius, Pisces}, []Sign{Cancer}, []Sign{Gemini, Virgo}, []Sign{Capricorn}}, true
	case Saturn:
		return dignityTable{[]Sign{Capricorn, Aquarius}, []Sign{Libra}, []Sign{Cancer, Leo}, []Sign{Aries}}, true
	default:
		return dignityTable{}, false
	}
}

// ClassifyDignity returns the dignity of body in sign. Lookup order is
// domicile, exaltation, detriment, fall; bodies outside the classical seven
// are always neutral.
func ClassifyDignity(body Body, sign Sign) Dignity {
	table, ok := dignityFor(body)
	if !ok {
		return Neutral
	}
	return table.lookup(sign)
}
