package zodiac

import (
	"fmt"
	"math"
)

// Sign is one of the twelve zodiac signs in cyclic order starting at Aries.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [...]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (s Sign) String() string {
	if s < 0 || int(s) >= len(signNames) {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// MarshalText renders the sign by name.
func (s Sign) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Element is the classical element of a sign.
type Element int

const (
	Fire Element = iota
	Earth
	Air
	Water
)

// Elements is the fixed iteration order used for tallies and tie-breaks.
var Elements = []Element{Fire, Earth, Air, Water}

var elementNames = [...]string{"Fire", "Earth", "Air", "Water"}

func (e Element) String() string {
	if e < 0 || int(e) >= len(elementNames) {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// MarshalText renders the element by name.
func (e Element) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Modality is the quality (cardinal, fixed, mutable) of a sign.
type Modality int

const (
	Cardinal Modality = iota
	Fixed
	Mutable
)

// Modalities is the fixed iteration order used for tallies and tie-breaks.
var Modalities = []Modality{Cardinal, Fixed, Mutable}

var modalityNames = [...]string{"Cardinal", "Fixed", "Mutable"}

func (m Modality) String() string {
	if m < 0 || int(m) >= len(modalityNames) {
		return fmt.Sprintf("Modality(%d)", int(m))
	}
	return modalityNames[m]
}

// MarshalText renders the modality by name.
func (m Modality) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Element repeats every four signs starting with Fire at Aries.
func (s Sign) Element() Element {
	return Element(int(s) % 4)
}

// Modality repeats every three signs starting with Cardinal at Aries.
func (s Sign) Modality() Modality {
	return Modality(int(s) % 3)
}

// SignPlacement is a longitude resolved into its sign and in-sign position.
type SignPlacement struct {
	Sign           Sign     `json:"sign"`
	SignIndex      int      `json:"sign_index"`
	Degree         int      `json:"degree"`
	Minute         int      `json:"minute"`
	Second         int      `json:"second"`
	Formatted      string   `json:"formatted"`
	TotalLongitude float64  `json:"total_longitude"`
	Element        Element  `json:"element"`
	Modality       Modality `json:"modality"`
}

// Normalize folds any angle into [0, 360).
func Normalize(lon float64) float64 {
	n := math.Mod(lon, 360)
	if n < 0 {
		n += 360
	}
	if n >= 360 {
		n = 0
	}
	return n
}

// ClassifySign maps an ecliptic longitude to its sign placement.
func ClassifySign(lon float64) SignPlacement {
	lon = Normalize(lon)
	sign := Sign(int(lon/30) % 12)

	// Derive the remainder from the chosen sign so the two never disagree
	// at a boundary.
	inSign := math.Max(lon-float64(sign)*30, 0)
	deg := math.Floor(inSign)
	minutesF := (inSign - deg) * 60
	minutes := math.Floor(minutesF)
	seconds := math.Floor((minutesF - minutes) * 60)

	p := SignPlacement{
		Sign:           sign,
		SignIndex:      int(sign),
		Degree:         int(deg),
		Minute:         int(minutes),
		Second:         int(seconds),
		TotalLongitude: Round(lon, 4),
		Element:        sign.Element(),
		Modality:       sign.Modality(),
	}
	p.Formatted = FormatDMS(p.Degree, p.Minute, p.Second, sign)
	return p
}

// FormatDMS renders a position as D°MM'SS" Sign.
func FormatDMS(deg, minute, second int, sign Sign) string {
	return fmt.Sprintf("%d°%02d'%02d\" %s", deg, minute, second, sign)
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
