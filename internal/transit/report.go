package transit

import (
	"sort"

	"github.com/wonny/jyotish/backend/internal/contracts"
)

// AspectKind is a recognized angular relationship between two longitudes
type AspectKind string

const (
	Conjunction AspectKind = "conjunction"
	Sextile     AspectKind = "sextile"
	Square      AspectKind = "square"
	Trine       AspectKind = "trine"
	Opposition  AspectKind = "opposition"
)

// aspectAngles in degrees, with the orb allowed around each
var aspectAngles = []struct {
	kind  AspectKind
	angle float64
}{
	{Conjunction, 0},
	{Sextile, 60},
	{Square, 90},
	{Trine, 120},
	{Opposition, 180},
}

// maxOrb is how far from exact an aspect still registers
const maxOrb = 6.0

// bodyWeights scale significance: slow bodies dwell in an aspect for weeks,
// so their hits matter more than the Moon's daily sweep.
// 고정 가중치: 직접 조정 금지, 의미 변경 시 테스트도 함께
var bodyWeights = map[contracts.Body]float64{
	contracts.Sun:     0.7,
	contracts.Moon:    0.3,
	contracts.Mars:    0.8,
	contracts.Mercury: 0.5,
	contracts.Jupiter: 1.0,
	contracts.Venus:   0.6,
	contracts.Saturn:  1.0,
	contracts.Rahu:    0.9,
	contracts.Ketu:    0.9,
}

// Aspect is one transiting-to-natal contact
type Aspect struct {
	Transiting contracts.Body `json:"transiting"`
	Natal      contracts.Body `json:"natal"`
	Kind       AspectKind     `json:"kind"`
	Orb        float64        `json:"orb"` // degrees from exact

	// Significance is deterministic: orb tightness scaled by the
	// transiting body's weight, in [0, 1]
	Significance float64 `json:"significance"`
}

// Report lists a day's transiting aspects against a natal chart, most
// significant first
type Report struct {
	JulianDay float64  `json:"julian_day"`
	Aspects   []Aspect `json:"aspects"`

	// Degraded is set when either chart had unknown positions; absent
	// bodies simply produce no aspects
	Degraded bool `json:"degraded,omitempty"`

	// UsedDefaultTime is set when the natal chart carries solar-noon
	// positions because no birth time was recorded
	UsedDefaultTime bool `json:"used_default_time,omitempty"`
}

// Compute builds the report for one transiting snapshot against a natal
// chart. Identical inputs always produce an identical report, aspects
// ordered by descending significance with ties broken by body order.
func Compute(transiting, natal *contracts.ChartSnapshot) *Report {
	report := &Report{
		JulianDay:       transiting.JulianDay,
		Degraded:        transiting.Degraded() || natal.Degraded(),
		UsedDefaultTime: natal.UsedDefaultTime,
	}

	for _, tBody := range contracts.AllBodies {
		tPos, ok := transiting.Position(tBody)
		if !ok {
			continue
		}
		for _, nBody := range contracts.AllBodies {
			nPos, ok := natal.Position(nBody)
			if !ok {
				continue
			}
			if aspect, found := match(tBody, nBody, tPos.Longitude, nPos.Longitude); found {
				report.Aspects = append(report.Aspects, aspect)
			}
		}
	}

	sort.SliceStable(report.Aspects, func(i, j int) bool {
		a, b := report.Aspects[i], report.Aspects[j]
		if a.Significance != b.Significance {
			return a.Significance > b.Significance
		}
		if a.Transiting != b.Transiting {
			return a.Transiting < b.Transiting
		}
		return a.Natal < b.Natal
	})
	return report
}

// match tests one body pair against every aspect angle and keeps the
// tightest hit
func match(tBody, nBody contracts.Body, tLon, nLon float64) (Aspect, bool) {
	sep := angularSeparation(tLon, nLon)

	best := Aspect{Orb: maxOrb + 1}
	for _, a := range aspectAngles {
		orb := sep - a.angle
		if orb < 0 {
			orb = -orb
		}
		if orb <= maxOrb && orb < best.Orb {
			best = Aspect{
				Transiting:   tBody,
				Natal:        nBody,
				Kind:         a.kind,
				Orb:          orb,
				Significance: Significance(tBody, orb),
			}
		}
	}
	if best.Kind == "" {
		return Aspect{}, false
	}
	return best, true
}

// Significance scores an aspect: exact hits by heavy bodies approach 1,
// wide orbs by fast bodies approach 0.
func Significance(transiting contracts.Body, orb float64) float64 {
	tightness := 1 - orb/maxOrb
	if tightness < 0 {
		tightness = 0
	}
	return tightness * bodyWeights[transiting]
}

// angularSeparation returns the absolute separation in [0, 180]
func angularSeparation(a, b float64) float64 {
	d := contracts.NormalizeLongitude(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}
