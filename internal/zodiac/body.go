package zodiac

import "fmt"

// Body identifies a celestial body tracked by the engine.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	Rahu
	Ketu
)

var bodyNames = [...]string{
	Sun:     "Sun",
	Moon:    "Moon",
	Mercury: "Mercury",
	Venus:   "Venus",
	Mars:    "Mars",
	Jupiter: "Jupiter",
	Saturn:  "Saturn",
	Uranus:  "Uranus",
	Neptune: "Neptune",
	Pluto:   "Pluto",
	Rahu:    "Rahu",
	Ketu:    "Ketu",
}

// Bodies lists every body in chart order. Ketu comes last because it is
// derived from Rahu rather than fetched from the ephemeris.
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto, Rahu, Ketu}

// EphemerisBodies are the bodies whose positions come from the ephemeris.
var EphemerisBodies = Bodies[:len(Bodies)-1]

func (b Body) String() string {
	if b < 0 || int(b) >= len(bodyNames) {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// MarshalText renders the body by name.
func (b Body) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// ParseBody resolves a body by its display name.
func ParseBody(name string) (Body, error) {
	for i, n := range bodyNames {
		if n == name {
			return Body(i), nil
		}
	}
	return 0, fmt.Errorf("unknown body %q", name)
}

// BalanceWeight is the body's contribution to element and modality tallies.
// Luminaries weigh 3, personal planets 2, the outer planets 1 and the lunar
// nodes nothing.
func (b Body) BalanceWeight() int {
	switch b {
	case Sun, Moon:
		return 3
	case Mercury, Venus, Mars:
		return 2
	case Jupiter, Saturn, Uranus, Neptune, Pluto:
		return 1
	default:
		return 0
	}
}

// TransitPriority orders transit records: slower bodies rank higher.
func (b Body) TransitPriority() int {
	switch b {
	case Pluto:
		return 10
	case Neptune:
		return 9
	case Uranus:
		return 8
	case Saturn:
		return 7
	case Jupiter:
		return 6
	case Mars:
		return 5
	case Venus:
		return 4
	case Mercury:
		return 3
	case Sun:
		return 2
	case Moon:
		return 1
	default:
		return 0
	}
}

// IsSlow reports whether the body is one of the five slow movers whose
// transits over personal points are flagged as major.
func (b Body) IsSlow() bool {
	switch b {
	case Jupiter, Saturn, Uranus, Neptune, Pluto:
		return true
	default:
		return false
	}
}

// IsPersonal reports whether the body is one of the five fast personal bodies.
func (b Body) IsPersonal() bool {
	switch b {
	case Sun, Moon, Mercury, Venus, Mars:
		return true
	default:
		return false
	}
}
