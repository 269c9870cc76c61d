package panchanga

import (
	"fmt"
	"time"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/reftables"
)

// arcPortion is the width of one nakshatra or yoga segment (13°20′)
const arcPortion = 360.0 / 27.0

// Panchanga is a day's five-limb almanac derived from the Sun and Moon
// longitudes of a chart snapshot.
// ⭐ SSOT: 판창가 계산 결과는 이 구조체로만 전달
type Panchanga struct {
	Date    string       `json:"date"`
	Weekday time.Weekday `json:"weekday"`

	// Tithi is the 1-based lunar day (1-30), one per 12° of Sun-Moon
	// elongation
	Tithi  int  `json:"tithi"`
	Waxing bool `json:"waxing"`
	Rikta  bool `json:"rikta"`

	// Nakshatra is the Moon's 1-based lunar mansion (1-27)
	Nakshatra     int    `json:"nakshatra"`
	NakshatraName string `json:"nakshatra_name"`

	// Yoga is the 1-based Sun+Moon yoga (1-27)
	Yoga             int  `json:"yoga"`
	InauspiciousYoga bool `json:"inauspicious_yoga"`
}

// Compute derives the panchanga from a resolved chart snapshot. It requires
// reliable Sun and Moon positions; degraded luminaries make every limb
// meaningless, so that case is an error rather than a partial result.
func Compute(snap *contracts.ChartSnapshot, date time.Time, tables *reftables.Store) (*Panchanga, error) {
	sun, ok := snap.Position(contracts.Sun)
	if !ok {
		return nil, fmt.Errorf("panchanga: no reliable Sun position for %s", date.Format("2006-01-02"))
	}
	moon, ok := snap.Position(contracts.Moon)
	if !ok {
		return nil, fmt.Errorf("panchanga: no reliable Moon position for %s", date.Format("2006-01-02"))
	}

	tithi := TithiFromLongitudes(sun.Longitude, moon.Longitude)
	nakshatra := NakshatraFromLongitude(moon.Longitude)
	yoga := YogaFromLongitudes(sun.Longitude, moon.Longitude)

	return &Panchanga{
		Date:             date.Format("2006-01-02"),
		Weekday:          date.Weekday(),
		Tithi:            tithi,
		Waxing:           tithi <= 15,
		Rikta:            tables.IsRiktaTithi(tithi),
		Nakshatra:        nakshatra,
		NakshatraName:    tables.NakshatraName(nakshatra),
		Yoga:             yoga,
		InauspiciousYoga: tables.IsInauspiciousYoga(yoga),
	}, nil
}

// TithiFromLongitudes returns the 1-based tithi (1-30). One tithi spans 12°
// of the Moon's elongation from the Sun.
func TithiFromLongitudes(sun, moon float64) int {
	elong := contracts.NormalizeLongitude(moon - sun)
	return int(elong/12.0) + 1
}

// NakshatraFromLongitude returns the Moon's 1-based nakshatra (1-27)
func NakshatraFromLongitude(moon float64) int {
	return int(contracts.NormalizeLongitude(moon)/arcPortion) + 1
}

// YogaFromLongitudes returns the 1-based yoga (1-27) from the sum of the
// luminaries' longitudes
func YogaFromLongitudes(sun, moon float64) int {
	return int(contracts.NormalizeLongitude(sun+moon)/arcPortion) + 1
}
