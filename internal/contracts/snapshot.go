package contracts

import "time"

// PlanetPosition is one body's position at one moment.
// Sign and DegreeInSign are always derived from Longitude; construct through
// NewPlanetPosition so they can never drift apart.
type PlanetPosition struct {
	Body         Body    `json:"body"`
	Longitude    float64 `json:"longitude"` // ecliptic degrees, [0, 360)
	Sign         Sign    `json:"sign"`
	DegreeInSign float64 `json:"degree_in_sign"`

	// Unknown marks a position substituted after a failed ephemeris lookup.
	// Unknown positions contribute zero to every criterion that reads them.
	Unknown bool `json:"unknown,omitempty"`
}

// NewPlanetPosition builds a position from a raw longitude, wrapping it into
// range and deriving the sign fields
func NewPlanetPosition(body Body, longitude float64) PlanetPosition {
	l := NormalizeLongitude(longitude)
	return PlanetPosition{
		Body:         body,
		Longitude:    l,
		Sign:         SignFromLongitude(l),
		DegreeInSign: DegreeInSign(l),
	}
}

// UnknownPosition builds the marked placeholder used when a lookup fails:
// first sign, zero longitude, Unknown set.
func UnknownPosition(body Body) PlanetPosition {
	return PlanetPosition{Body: body, Sign: Aries, Unknown: true}
}

// ChartSnapshot is the immutable set of body positions for one moment.
// ⭐ SSOT: 스코어링 입력 스냅샷은 이 타입으로만 전달
// Scorers only ever read a snapshot; they never mutate one.
type ChartSnapshot struct {
	JulianDay float64                 `json:"julian_day"`
	Positions map[Body]PlanetPosition `json:"positions"`

	// CivilDate is the local calendar date the snapshot was requested for,
	// at midnight UTC. East of UTC+12 local solar noon falls on the
	// previous UTC day, so the Julian day alone cannot recover it.
	CivilDate time.Time `json:"civil_date,omitempty"`

	// Ascendant is approximated from the Sun's sign and the hour of day,
	// not a full house-system computation. Known precision limitation;
	// derived output should be labelled low confidence by callers.
	AscendantSign   Sign `json:"ascendant_sign"`
	AscendantApprox bool `json:"ascendant_approx"`

	// UsedDefaultTime is set when the caller omitted a time of day and the
	// resolver substituted solar noon
	UsedDefaultTime bool `json:"used_default_time,omitempty"`

	// Unreliable lists bodies whose lookups failed and were degraded to
	// Unknown positions
	Unreliable []Body `json:"unreliable,omitempty"`
}

// Position returns the body's position. ok is false when the body is absent
// from the snapshot or its position is marked Unknown — criteria must treat
// both the same way: zero points, no factor label.
func (c *ChartSnapshot) Position(body Body) (PlanetPosition, bool) {
	pos, exists := c.Positions[body]
	if !exists || pos.Unknown {
		return pos, false
	}
	return pos, true
}

// Degraded reports whether any position in the snapshot is Unknown
func (c *ChartSnapshot) Degraded() bool {
	return len(c.Unreliable) > 0
}

// MissingClassical returns the classical bodies without a usable position,
// in ClassicalBodies order
func (c *ChartSnapshot) MissingClassical() []Body {
	var missing []Body
	for _, body := range ClassicalBodies {
		if _, ok := c.Position(body); !ok {
			missing = append(missing, body)
		}
	}
	return missing
}
