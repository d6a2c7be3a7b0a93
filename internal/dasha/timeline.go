package dasha

import (
	"slices"
	"time"

	"astroengine/internal/zodiac"
)

// CurrentPeriod names the major and sub-period running at a given instant.
type CurrentPeriod struct {
	Mahadasha  zodiac.Body `json:"mahadasha"`
	Antardasha zodiac.Body `json:"antardasha"`
	Label      string      `json:"label"`
}

// Timeline is the computed dasha output for one birth.
type Timeline struct {
	StartingRuler  zodiac.Body    `json:"starting_ruler"`
	BalanceAtBirth float64        `json:"balance_at_birth"`
	CurrentPeriod  *CurrentPeriod `json:"current_period"`
	Mahadashas     []Mahadasha    `json:"mahadashas"`
}

// Calculate builds the full timeline and locates the period active at now.
func Calculate(moonSidereal float64, birth, now time.Time) Timeline {
	s := NewSchedule(moonSidereal)
	periods := slices.Collect(s.Mahadashas(birth))
	return Timeline{
		StartingRuler:  s.StartingRuler,
		BalanceAtBirth: zodiac.Round(s.Balance, 4),
		CurrentPeriod:  Locate(periods, now),
		Mahadashas:     periods,
	}
}

// Locate returns the first major period whose closed [start, end] interval
// contains now, with its matching sub-period. It returns nil when now falls
// outside the timeline, as for a future birth or a truncated schedule.
func Locate(periods []Mahadasha, now time.Time) *CurrentPeriod {
	for _, md := range periods {
		if !contains(md.Start.Time, md.End.Time, now) {
			continue
		}
		for _, ad := range md.SubPeriods {
			if contains(ad.Start.Time, ad.End.Time, now) {
				return &CurrentPeriod{
					Mahadasha:  md.Ruler,
					Antardasha: ad.Ruler,
					Label:      md.Ruler.String() + " Mahadasha / " + ad.Ruler.String() + " Antardasha",
				}
			}
		}
		return nil
	}
	return nil
}

func contains(start, end, t time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
