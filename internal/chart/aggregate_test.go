package chart

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"

	"astroengine/internal/aspect"
	"astroengine/internal/ephemeris"
	"astroengine/internal/zodiac"
)

// =============================================================================
// Aggregate Test Suite
// =============================================================================
// The fixture puts Sun, Mercury and Venus in Leo and Saturn, Uranus and
// Neptune in Capricorn, with a Cancer ascendant on equal 30 degree cusps.

type AggregateSuite struct {
	suite.Suite
	input Input
}

func TestAggregateSuite(t *testing.T) {
	suite.Run(t, new(AggregateSuite))
}

func (s *AggregateSuite) SetupTest() {
	longitudes := map[zodiac.Body]float64{
		zodiac.Sun: 125, zodiac.Moon: 10, zodiac.Mercury: 130, zodiac.Venus: 140,
		zodiac.Mars: 215, zodiac.Jupiter: 95, zodiac.Saturn: 290, zodiac.Uranus: 280,
		zodiac.Neptune: 283, zodiac.Pluto: 225, zodiac.Rahu: 70,
	}
	positions := make(map[zodiac.Body]ephemeris.Position, len(zodiac.Bodies))
	for body, lon := range longitudes {
		positions[body] = ephemeris.Position{Longitude: lon, Latitude: 0.123456, Speed: 0.9856473}
	}
	positions[zodiac.Rahu] = ephemeris.Position{Longitude: 70, Speed: -0.053}
	positions[zodiac.Ketu] = ephemeris.KetuFrom(positions[zodiac.Rahu])

	var placidus zodiac.Cusps
	for i := range placidus {
		placidus[i] = zodiac.Normalize(95 + float64(i)*30)
	}

	s.input = Input{
		Birth:     BirthData{Place: "Test", JulianDay: 2448027.1234567891},
		Ayanamsa:  24.000049,
		Positions: positions,
		Placidus:  ephemeris.HouseTable{Cusps: placidus, Ascendant: 95, Midheaven: 5},
		WholeSign: ephemeris.HouseTable{Cusps: zodiac.WholeSignCusps(71), Ascendant: 71},
	}
}

func (s *AggregateSuite) aggregate() *NatalChart {
	c, err := Aggregate(s.input)
	s.Require().NoError(err)
	return c
}

// =============================================================================
// Placements
// =============================================================================

func (s *AggregateSuite) TestPlacements() {
	c := s.aggregate()
	s.Len(c.Planets, len(zodiac.Bodies))

	sun := c.Planets[zodiac.Sun]
	s.Equal(zodiac.Leo, sun.Tropical.Sign)
	s.Equal(zodiac.Domicile, sun.Dignity)
	s.Equal(2, sun.HouseWestern)
	s.Equal(0.985647, sun.Speed)
	s.Equal(0.1235, sun.Latitude)
	s.False(sun.Retrograde)

	moon := c.Planets[zodiac.Moon]
	// 10° lies between cusp 10 (5°) and cusp 11 (35°).
	s.Equal(10, moon.HouseWestern)
	s.InDelta(345.999951, moon.Sidereal.TotalLongitude, 1e-4)
	s.Equal("Uttara Bhadrapada", moon.Nakshatra.Name)
	s.Equal(4, moon.Nakshatra.Pada)

	s.True(c.Planets[zodiac.Rahu].Retrograde)
	ketu := c.Planets[zodiac.Ketu]
	s.True(ketu.Retrograde)
	s.Equal(250.0, ketu.Tropical.TotalLongitude)
	s.Equal(zodiac.Neutral, ketu.Dignity)
	s.Zero(ketu.Speed)
}

func (s *AggregateSuite) TestBirthEchoIsRounded() {
	c := s.aggregate()
	s.Equal(2448027.123457, c.BirthData.JulianDay)
	s.Equal(24.0, c.BirthData.AyanamsaLahiri)
}

func (s *AggregateSuite) TestHouses() {
	c := s.aggregate()
	s.Len(c.Houses, 12)
	s.Equal(95.0, c.Houses[1].CuspLongitude)
	s.Equal(zodiac.Cancer, c.Houses[1].Sign.Sign)
	s.Equal(65.0, c.Houses[12].CuspLongitude)
	s.Equal(zodiac.Cancer, c.Ascendant.Sign)
	s.Equal(zodiac.Aries, c.Midheaven.Sign)
}

func (s *AggregateSuite) TestMissingBody() {
	delete(s.input.Positions, zodiac.Ketu)
	_, err := Aggregate(s.input)
	s.ErrorContains(err, "Ketu")
}

// =============================================================================
// Aspects
// =============================================================================

func (s *AggregateSuite) TestAspects() {
	c := s.aggregate()
	s.Require().NotEmpty(c.Aspects)

	first := c.Aspects[0]
	s.Equal(aspect.Record{
		Planet1: zodiac.Sun, Planet2: zodiac.Mars,
		Aspect: aspect.Square, Nature: aspect.Square.Nature(), Harmony: aspect.Square.Harmony(),
		Orb: 0, Strength: 1,
	}, first)

	for i := 1; i < len(c.Aspects); i++ {
		s.GreaterOrEqual(c.Aspects[i-1].Strength, c.Aspects[i].Strength)
	}
	s.Contains(c.Aspects, aspect.Record{
		Planet1: zodiac.Rahu, Planet2: zodiac.Ketu,
		Aspect: aspect.Opposition, Nature: aspect.Opposition.Nature(), Harmony: aspect.Opposition.Harmony(),
		Orb: 0, Strength: 1,
	})
	s.Contains(c.Aspects, aspect.Record{
		Planet1: zodiac.Uranus, Planet2: zodiac.Neptune,
		Aspect: aspect.Conjunction, Nature: aspect.Conjunction.Nature(), Harmony: aspect.Conjunction.Harmony(),
		Orb: 3, Strength: 0.625,
	})
}

// =============================================================================
// Summaries
// =============================================================================

func (s *AggregateSuite) TestStelliumsInOrderOfFirstAppearance() {
	c := s.aggregate()
	want := []Stellium{
		{Sign: zodiac.Leo, Planets: []zodiac.Body{zodiac.Sun, zodiac.Mercury, zodiac.Venus}, Count: 3},
		{Sign: zodiac.Capricorn, Planets: []zodiac.Body{zodiac.Saturn, zodiac.Uranus, zodiac.Neptune}, Count: 3},
	}
	if diff := cmp.Diff(want, c.Stelliums); diff != "" {
		s.Failf("stelliums mismatch", "(-want +got):\n%s", diff)
	}
}

func (s *AggregateSuite) TestBalance() {
	c := s.aggregate()
	s.Equal(map[zodiac.Element]int{zodiac.Fire: 10, zodiac.Earth: 3, zodiac.Air: 0, zodiac.Water: 7}, c.Elements.Counts)
	s.Equal(zodiac.Fire, c.Elements.Dominant)

	// Cardinal and Fixed tie at 10; the earlier key wins.
	s.Equal(map[zodiac.Modality]int{zodiac.Cardinal: 10, zodiac.Fixed: 10, zodiac.Mutable: 0}, c.Modalities.Counts)
	s.Equal(zodiac.Cardinal, c.Modalities.Dominant)
}

func (s *AggregateSuite) TestBigThree() {
	c := s.aggregate()
	s.Equal(SunSummary{Sign: zodiac.Leo, House: 2, Degree: `5°00'00" Leo`}, c.BigThree.Sun)
	s.Equal(zodiac.Aries, c.BigThree.Moon.Sign)
	s.Equal("Uttara Bhadrapada", c.BigThree.Moon.Nakshatra)
	s.Equal(RisingSummary{Sign: zodiac.Cancer, Degree: `5°00'00" Cancer`}, c.BigThree.Rising)
}

func (s *AggregateSuite) TestJSONShape() {
	out, err := json.Marshal(s.aggregate())
	s.Require().NoError(err)

	var doc map[string]any
	s.Require().NoError(json.Unmarshal(out, &doc))
	s.Contains(doc["planets"], "Ketu")
	s.Contains(doc["houses"], "12")
	s.Equal(map[string]any{"Fire": 10.0, "Earth": 3.0, "Air": 0.0, "Water": 7.0}, doc["elements"].(map[string]any)["counts"])
	s.NotContains(doc["birth_data"], "Instant")
}

func TestNatalBodies(t *testing.T) {
	c := &NatalChart{Planets: map[zodiac.Body]Placement{
		zodiac.Moon: {Tropical: zodiac.ClassifySign(10), HouseWestern: 4},
		zodiac.Sun:  {Tropical: zodiac.ClassifySign(125), HouseWestern: 9},
	}}
	got := c.NatalBodies()
	want := []aspect.NatalBody{
		{Body: zodiac.Sun, Longitude: 125, Sign: zodiac.Leo, House: 9},
		{Body: zodiac.Moon, Longitude: 10, Sign: zodiac.Aries, House: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NatalBodies mismatch (-want +got):\n%s", diff)
	}
}
