package contracts

import "math"

// Sign is one of the twelve zodiac signs, ordered from Aries
// ⭐ SSOT: 별자리 인덱스/도출 규칙은 여기서만
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

// SignCount is the number of zodiac signs
const SignCount = 12

// AllSigns lists the signs in zodiac order
var AllSigns = []Sign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

var signNames = [SignCount]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignFromLongitude derives the sign from an ecliptic longitude in degrees.
// sign = floor(longitude/30) mod 12
func SignFromLongitude(longitude float64) Sign {
	idx := int(math.Floor(longitude/30)) % SignCount
	if idx < 0 {
		idx += SignCount
	}
	return Sign(idx)
}

// DegreeInSign returns the position within the sign, in [0, 30)
func DegreeInSign(longitude float64) float64 {
	d := math.Mod(longitude, 30)
	if d < 0 {
		d += 30
	}
	return d
}

// NormalizeLongitude wraps any longitude into [0, 360).
// Provider responses are untrusted and may be negative or >= 360.
func NormalizeLongitude(longitude float64) float64 {
	l := math.Mod(longitude, 360)
	if l < 0 {
		l += 360
	}
	return l
}

// String returns the English sign name
func (s Sign) String() string {
	if s < 0 || int(s) >= SignCount {
		return "Unknown"
	}
	return signNames[s]
}

// Valid reports whether s is in range
func (s Sign) Valid() bool {
	return s >= 0 && int(s) < SignCount
}

// Offset returns the sign n positions ahead in zodiac order (wrapping)
func (s Sign) Offset(n int) Sign {
	idx := (int(s) + n) % SignCount
	if idx < 0 {
		idx += SignCount
	}
	return Sign(idx)
}

// DistanceTo counts signs from s to other, walking forward (1..12 convention:
// a sign is its own 1st house, the next sign its 2nd, and so on)
func (s Sign) DistanceTo(other Sign) int {
	return (int(other)-int(s)+SignCount)%SignCount + 1
}

// InTrine reports whether other sits at 0, +4 or +8 signs from s
// (the classical trikona relationship)
func (s Sign) InTrine(other Sign) bool {
	diff := (int(other) - int(s) + SignCount) % SignCount
	return diff == 0 || diff == 4 || diff == 8
}

// InKendra reports whether other sits at a 4th/7th/10th-style angle from s
func (s Sign) InKendra(other Sign) bool {
	diff := (int(other) - int(s) + SignCount) % SignCount
	return diff == 3 || diff == 6 || diff == 9
}
