// Package dasha builds the Vimshottari planetary-period timeline.
//
// A timeline is fully determined by the Moon's sidereal longitude and the
// birth instant. Durations use a mean year of 365.25 days, so dates are an
// approximate calendar rather than leap-year exact.
package dasha

import (
	"encoding/json"
	"iter"
	"slices"
	"time"

	"astroengine/internal/zodiac"
)

const (
	// MeanYearDays is the length of one dasha year.
	MeanYearDays = 365.25
	// TotalCycleYears is the sum of all nine major-period lengths.
	TotalCycleYears = 120
	// LifespanYears caps the generated timeline.
	LifespanYears = 100
	// MaxPasses bounds how many times the nine-ruler order is walked.
	MaxPasses = 3
)

// Order is the cyclic sequence of period rulers.
var Order = [9]zodiac.Body{
	zodiac.Ketu, zodiac.Venus, zodiac.Sun, zodiac.Moon, zodiac.Mars,
	zodiac.Rahu, zodiac.Jupiter, zodiac.Saturn, zodiac.Mercury,
}

// Years is the nominal major-period length of a ruler. Bodies outside the
// Vimshottari order rule no period.
func Years(b zodiac.Body) int {
	switch b {
	case zodiac.Ketu:
		return 7
	case zodiac.Venus:
		return 20
	case zodiac.Sun:
		return 6
	case zodiac.Moon:
		return 10
	case zodiac.Mars:
		return 7
	case zodiac.Rahu:
		return 18
	case zodiac.Jupiter:
		return 16
	case zodiac.Saturn:
		return 19
	case zodiac.Mercury:
		return 17
	default:
		return 0
	}
}

func orderIndex(b zodiac.Body) int {
	return slices.Index(Order[:], b)
}

// Date is an instant that serializes as YYYY-MM-DD.
type Date struct {
	time.Time
}

// MarshalJSON renders the calendar date in the instant's own location.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

// Antardasha is a sub-period nested in a major period.
type Antardasha struct {
	Ruler          zodiac.Body `json:"ruler"`
	Start          Date        `json:"start_date"`
	End            Date        `json:"end_date"`
	DurationMonths float64     `json:"duration_months"`
	AgeStart       float64     `json:"age_start"`
	AgeEnd         float64     `json:"age_end"`
	Label          string      `json:"label"`

	years float64
}

// Mahadasha is a major period and its nine sub-periods.
type Mahadasha struct {
	Ruler         zodiac.Body  `json:"ruler"`
	Start         Date         `json:"start_date"`
	End           Date         `json:"end_date"`
	DurationYears float64      `json:"duration_years"`
	AgeStart      float64      `json:"age_start"`
	AgeEnd        float64      `json:"age_end"`
	SubPeriods    []Antardasha `json:"sub_periods"`

	years float64
}

// Schedule is the birth-dependent seed of a timeline.
type Schedule struct {
	StartingRuler zodiac.Body
	// Balance is the fraction of the first major period still owed at birth.
	Balance float64
}

// NewSchedule derives the starting ruler and birth balance from the Moon's
// sidereal longitude.
func NewSchedule(moonSidereal float64) Schedule {
	idx, offset := zodiac.NakshatraIndex(moonSidereal)
	return Schedule{
		StartingRuler: zodiac.Nakshatras[idx].Ruler,
		Balance:       1 - offset/zodiac.NakshatraSpan,
	}
}

// Mahadashas yields major periods in chronological order, walking the ruler
// order at most MaxPasses times. It stops after the first period that ends
// more than LifespanYears past birth. Only the first period, and each of its
// sub-periods, is scaled by the birth balance.
func (s Schedule) Mahadashas(birth time.Time) iter.Seq[Mahadasha] {
	return func(yield func(Mahadasha) bool) {
		first := orderIndex(s.StartingRuler)
		cursor := birth
		for n := range MaxPasses * len(Order) {
			ruler := Order[(first+n)%len(Order)]
			scale := 1.0
			if n == 0 {
				scale = s.Balance
			}
			years := float64(Years(ruler)) * scale
			end := cursor.Add(yearsToDuration(years))

			md := Mahadasha{
				Ruler:         ruler,
				Start:         Date{cursor},
				End:           Date{end},
				DurationYears: zodiac.Round(years, 2),
				AgeStart:      ageAt(birth, cursor),
				AgeEnd:        ageAt(birth, end),
				SubPeriods:    antardashas(ruler, cursor, end, scale, birth),
				years:         years,
			}
			if !yield(md) {
				return
			}
			cursor = end
			if wholeDays(cursor.Sub(birth)) > LifespanYears*MeanYearDays {
				return
			}
		}
	}
}

func antardashas(major zodiac.Body, start, end time.Time, scale float64, birth time.Time) []Antardasha {
	first := orderIndex(major)
	subs := make([]Antardasha, 0, len(Order))
	cursor := start
	for j := range len(Order) {
		ruler := Order[(first+j)%len(Order)]
		years := float64(Years(major)*Years(ruler)) / TotalCycleYears * scale
		subEnd := cursor.Add(yearsToDuration(years))
		if j == len(Order)-1 {
			// Absorb float drift so the last sub-period closes its parent exactly.
			subEnd = end
		}
		subs = append(subs, Antardasha{
			Ruler:          ruler,
			Start:          Date{cursor},
			End:            Date{subEnd},
			DurationMonths: zodiac.Round(years*12, 1),
			AgeStart:       ageAt(birth, cursor),
			AgeEnd:         ageAt(birth, subEnd),
			Label:          major.String() + "/" + ruler.String(),
			years:          years,
		})
		cursor = subEnd
	}
	return subs
}

func yearsToDuration(years float64) time.Duration {
	return time.Duration(years * MeanYearDays * float64(24*time.Hour))
}

func wholeDays(d time.Duration) float64 {
	return float64(d / (24 * time.Hour))
}

func ageAt(birth, t time.Time) float64 {
	return zodiac.Round(wholeDays(t.Sub(birth))/MeanYearDays, 1)
}
