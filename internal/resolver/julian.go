package resolver

import "time"

// JulianDay converts a UTC instant to its Julian day number (fractional).
// Fliegel-Van Flandern for the integer part, clock fraction from noon.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	y, m, d := t.Date()

	a := (14 - int(m)) / 12
	yy := y + 4800 - a
	mm := int(m) + 12*a - 3

	jdn := d + (153*mm+2)/5 + 365*yy + yy/4 - yy/100 + yy/400 - 32045

	dayFrac := (float64(t.Hour())-12)/24 +
		float64(t.Minute())/1440 +
		float64(t.Second())/86400

	return float64(jdn) + dayFrac
}
