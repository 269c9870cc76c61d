package benefic

import (
	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/panchanga"
	"github.com/wonny/jyotish/backend/internal/reftables"
	"github.com/wonny/jyotish/backend/pkg/logger"
	"github.com/wonny/jyotish/backend/pkg/metrics"
)

// Tabulator builds the seven 12-sign benefit tables for a natal chart. The
// computation is pure arithmetic over the reference tables; identical natal
// charts always produce identical tables, so results are safe to cache and
// safe to compute concurrently.
// ⭐ SSOT: 길성 점수표 생성은 이 타입을 통해서만
type Tabulator struct {
	tables  *reftables.Store
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// New creates a tabulator over the reference table store
func New(tables *reftables.Store, log *logger.Logger, m *metrics.Metrics) *Tabulator {
	return &Tabulator{tables: tables, logger: log, metrics: m}
}

// Tabulate implements contracts.BeneficTabulator. All seven classical bodies
// must have reliable natal positions; a missing one fails the whole
// tabulation rather than producing a zero-filled row that reads as "weak
// everywhere".
func (t *Tabulator) Tabulate(natal *contracts.ChartSnapshot) (*contracts.TabulationResult, error) {
	if missing := natal.MissingClassical(); len(missing) > 0 {
		return nil, &contracts.IncompleteNatalChartError{Missing: missing}
	}

	cfg := t.tables.Benefic()

	natalSigns := make(map[contracts.Body]contracts.Sign, len(contracts.ClassicalBodies))
	for _, body := range contracts.ClassicalBodies {
		pos, _ := natal.Position(body)
		natalSigns[body] = pos.Sign
	}

	moon, _ := natal.Position(contracts.Moon)
	moonNakshatra := panchanga.NakshatraFromLongitude(moon.Longitude)
	nakshatraLord, err := t.tables.NakshatraLord(moonNakshatra)
	if err != nil {
		return nil, err
	}

	result := &contracts.TabulationResult{
		Tables:          make(map[contracts.Body]*contracts.BenefitTable, len(contracts.ClassicalBodies)),
		BodyTotals:      make(map[contracts.Body]int, len(contracts.ClassicalBodies)),
		BodyStrength:    make(map[contracts.Body]contracts.StrengthClass, len(contracts.ClassicalBodies)),
		Degraded:        natal.Degraded(),
		UsedDefaultTime: natal.UsedDefaultTime,
	}

	for _, body := range contracts.ClassicalBodies {
		table := &contracts.BenefitTable{Body: body}
		for _, sign := range contracts.AllSigns {
			table.Points[sign] = t.cellPoints(cfg, body, sign, natalSigns, nakshatraLord)
		}
		result.Tables[body] = table

		total := table.Total()
		result.BodyTotals[body] = total
		result.BodyStrength[body] = classifyBody(cfg, total)
	}

	for _, sign := range contracts.AllSigns {
		sum := 0
		for _, body := range contracts.ClassicalBodies {
			sum += result.Tables[body].Points[sign]
		}
		avg := roundHalfUp(sum, len(contracts.ClassicalBodies))
		result.SignAverages[sign] = avg

		if avg >= cfg.StrongSignMin {
			result.StrongSigns = append(result.StrongSigns, sign)
		} else if avg <= cfg.WeakSignMax {
			result.WeakSigns = append(result.WeakSigns, sign)
		}
	}

	t.metrics.TabulationPerformed()
	return result, nil
}

// cellPoints sums the five components for one (body, candidate sign) cell
// and clamps into [0, BenefitPointCap]
func (t *Tabulator) cellPoints(cfg reftables.BeneficConfig, body contracts.Body, sign contracts.Sign, natalSigns map[contracts.Body]contracts.Sign, nakshatraLord contracts.Body) int {
	points := cfg.DignityPoints[t.tables.Relation(body, sign)]

	if sign.InTrine(natalSigns[body]) {
		points += cfg.TrineBonus
	}

	// The candidate sign's lord supporting the body from a trine natally
	lord := t.tables.SignLord(sign)
	if lordSign, ok := natalSigns[lord]; ok && lordSign.InTrine(natalSigns[body]) {
		points += cfg.LordTrineBonus
	}

	// One point per other body angular to the candidate sign
	for _, other := range contracts.ClassicalBodies {
		if other == body {
			continue
		}
		if sign.InKendra(natalSigns[other]) {
			points += cfg.KendraPointPer
		}
	}

	if body == nakshatraLord {
		points += cfg.NakshatraLordBonus
	}

	if points > contracts.BenefitPointCap {
		points = contracts.BenefitPointCap
	}
	if points < 0 {
		points = 0
	}
	return points
}

// classifyBody buckets a row total against the per-body maximum
func classifyBody(cfg reftables.BeneficConfig, total int) contracts.StrengthClass {
	pct := float64(total) / float64(contracts.BenefitMaxPerBody)
	switch {
	case pct >= cfg.BodyStrongPct:
		return contracts.StrengthStrong
	case pct >= cfg.BodyModeratePct:
		return contracts.StrengthModerate
	default:
		return contracts.StrengthWeak
	}
}

// roundHalfUp divides with .5 rounding away from zero for non-negative input
func roundHalfUp(sum, n int) int {
	return (2*sum + n) / (2 * n)
}
