package zodiac

// Cusps holds the twelve house cusp longitudes, house 1 first.
type Cusps [12]float64

// AssignHouse returns the house (1-12) containing lon. Each house spans the
// arc from its cusp up to the next one; an arc whose start is not below its
// end wraps past 0°. Floating-point gaps at a boundary fall back to house 1.
func AssignHouse(lon float64, cusps Cusps) int {
	lon = Normalize(lon)
	for i := range 12 {
		if inHouse(lon, cusps, i) {
			return i + 1
		}
	}
	return 1
}

func inHouse(lon float64, cusps Cusps, i int) bool {
	start := Normalize(cusps[i])
	end := Normalize(cusps[(i+1)%12])
	if start < end {
		return lon >= start && lon < end
	}
	return lon >= start || lon < end
}

// WholeSignCusps builds equal 30° houses starting at the sign holding the
// ascendant.
func WholeSignCusps(ascendant float64) Cusps {
	first := float64(ClassifySign(ascendant).SignIndex) * 30
	var c Cusps
	for i := range c {
		c[i] = Normalize(first + float64(i)*30)
	}
	return c
}
