package contracts

// Body identifies a celestial body used throughout the engine
// ⭐ SSOT: 천체 식별자는 여기서만 정의
type Body string

const (
	Sun     Body = "sun"
	Moon    Body = "moon"
	Mars    Body = "mars"
	Mercury Body = "mercury"
	Jupiter Body = "jupiter"
	Venus   Body = "venus"
	Saturn  Body = "saturn"
	Rahu    Body = "rahu" // 북쪽 교점 (mean node)
	Ketu    Body = "ketu" // 남쪽 교점 (Rahu + 180°)
)

// AllBodies is the fixed set resolved into every chart snapshot
var AllBodies = []Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// ClassicalBodies are the seven bodies scored by the benefic tabulator.
// The lunar nodes carry no dignity tables and are excluded.
var ClassicalBodies = []Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn}

// Valid reports whether b is a known body identifier
func (b Body) Valid() bool {
	switch b {
	case Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu:
		return true
	}
	return false
}

// IsClassical reports whether b is one of the seven classical bodies
func (b Body) IsClassical() bool {
	return b.Valid() && b != Rahu && b != Ketu
}

// DisplayName returns the capitalized English name used in factor labels
func (b Body) DisplayName() string {
	switch b {
	case Sun:
		return "Sun"
	case Moon:
		return "Moon"
	case Mars:
		return "Mars"
	case Mercury:
		return "Mercury"
	case Jupiter:
		return "Jupiter"
	case Venus:
		return "Venus"
	case Saturn:
		return "Saturn"
	case Rahu:
		return "Rahu"
	case Ketu:
		return "Ketu"
	}
	return string(b)
}
