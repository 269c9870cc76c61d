package evaluator

import (
	"time"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/panchanga"
	"github.com/wonny/jyotish/backend/internal/reftables"
	"github.com/wonny/jyotish/backend/pkg/logger"
)

// Evaluator scores chart snapshots against declarative rule sets. It is
// pure: the same snapshot and rule set always produce the same score, and
// an unknown position silently contributes zero to every criterion.
// ⭐ SSOT: 규칙 평가는 이 타입을 통해서만
type Evaluator struct {
	tables *reftables.Store
	logger *logger.Logger
}

// New creates an evaluator over the reference table store
func New(tables *reftables.Store, log *logger.Logger) *Evaluator {
	return &Evaluator{tables: tables, logger: log}
}

// Evaluate implements contracts.RuleEvaluator. Criteria are applied in rule
// set order; Factors lists the labels of the criteria that fired, in that
// same order.
func (e *Evaluator) Evaluate(snap *contracts.ChartSnapshot, rs *contracts.RuleSet, subject string) contracts.CandidateScore {
	score := contracts.CandidateScore{
		Subject:  subject,
		Date:     civilDate(snap),
		Factors:  []string{},
		Degraded: snap.Degraded(),
	}

	for _, c := range rs.Criteria {
		if e.satisfied(snap, c) {
			score.TotalScore += c.Points
			score.Factors = append(score.Factors, c.Label)
		}
	}

	score.Tier = rs.TierFor(score.TotalScore)
	score.TierName = score.Tier.String()
	return score
}

// satisfied dispatches one criterion against the snapshot. Unknown kinds
// score zero rather than failing: rule sets are operator data, and one bad
// record must not poison a whole scan.
func (e *Evaluator) satisfied(snap *contracts.ChartSnapshot, c contracts.Criterion) bool {
	switch c.Kind {
	case contracts.KindBodyInSigns:
		pos, ok := snap.Position(c.Body)
		if !ok {
			return false
		}
		for _, s := range c.Signs {
			if pos.Sign == s {
				return true
			}
		}
		return false

	case contracts.KindBodyDignity:
		pos, ok := snap.Position(c.Body)
		if !ok {
			return false
		}
		rel := e.tables.Relation(c.Body, pos.Sign)
		return rel == reftables.RelationExalted || rel == reftables.RelationOwn

	case contracts.KindTithi:
		tithi, ok := e.tithi(snap)
		return ok && containsInt(c.TithiNumbers, tithi)

	case contracts.KindNakshatra:
		moon, ok := snap.Position(contracts.Moon)
		if !ok {
			return false
		}
		return containsInt(c.NakshatraNumbers, panchanga.NakshatraFromLongitude(moon.Longitude))

	case contracts.KindYoga:
		sun, okSun := snap.Position(contracts.Sun)
		moon, okMoon := snap.Position(contracts.Moon)
		if !okSun || !okMoon {
			return false
		}
		return containsInt(c.YogaNumbers, panchanga.YogaFromLongitudes(sun.Longitude, moon.Longitude))

	case contracts.KindWeekday:
		wd := civilDate(snap).Weekday()
		for _, w := range c.Weekdays {
			if wd == w {
				return true
			}
		}
		return false

	case contracts.KindMoonWaxing:
		tithi, ok := e.tithi(snap)
		return ok && tithi <= 15

	case contracts.KindBodiesInTrine:
		a, okA := snap.Position(c.Body)
		b, okB := snap.Position(c.OtherBody)
		return okA && okB && a.Sign.InTrine(b.Sign)

	default:
		if e.logger != nil {
			e.logger.WithField("kind", string(c.Kind)).Warn("Unknown criterion kind scores zero")
		}
		return false
	}
}

// tithi derives the lunar day from the snapshot's luminaries
func (e *Evaluator) tithi(snap *contracts.ChartSnapshot) (int, bool) {
	sun, okSun := snap.Position(contracts.Sun)
	moon, okMoon := snap.Position(contracts.Moon)
	if !okSun || !okMoon {
		return 0, false
	}
	return panchanga.TithiFromLongitudes(sun.Longitude, moon.Longitude), true
}

// civilDate is the local calendar date the snapshot answers for. The
// resolver pins it directly; east of UTC+12 the Julian day of local noon
// falls on the previous UTC day, so converting back would name the wrong
// weekday. Snapshots built without it fall back to the UTC conversion.
func civilDate(snap *contracts.ChartSnapshot) time.Time {
	if !snap.CivilDate.IsZero() {
		return snap.CivilDate
	}
	return civilFromJulianDay(snap.JulianDay)
}

// civilFromJulianDay converts a Julian day back to the UTC instant it names
func civilFromJulianDay(jd float64) time.Time {
	if jd == 0 {
		return time.Time{}
	}
	unixSec := (jd - 2440587.5) * 86400
	return time.Unix(int64(unixSec+0.5), 0).UTC()
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
