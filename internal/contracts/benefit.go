package contracts

// BenefitPointCap bounds each (body, sign) cell after summing the five rule
// components. The cap is part of the table's definition, not an incidental
// side effect: the grand total over seven tables is always <= 672.
const BenefitPointCap = 8

// BenefitMaxPerBody is the largest possible 12-sign row total for one body
const BenefitMaxPerBody = SignCount * BenefitPointCap

// BenefitTable holds one classical body's capped points for all twelve signs
// ⭐ SSOT: 7×12 포인트 테이블은 이 타입으로만 표현
type BenefitTable struct {
	Body   Body           `json:"body"`
	Points [SignCount]int `json:"points"` // each in [0, BenefitPointCap]
}

// Total sums the row. Derived on read — the table is immutable once built
// for a chart, so callers may cache the result freely.
func (t *BenefitTable) Total() int {
	sum := 0
	for _, p := range t.Points {
		sum += p
	}
	return sum
}

// StrengthClass buckets a body's or sign's overall support
type StrengthClass string

const (
	StrengthStrong   StrengthClass = "strong"
	StrengthModerate StrengthClass = "moderate"
	StrengthWeak     StrengthClass = "weak"
)

// TabulationResult is the benefic tabulator's full output for one natal chart
type TabulationResult struct {
	Tables map[Body]*BenefitTable `json:"tables"`

	// SignAverages[i] = mean of the seven bodies' points for sign i,
	// rounded half-up
	SignAverages [SignCount]int `json:"sign_averages"`

	StrongSigns []Sign `json:"strong_signs"`
	WeakSigns   []Sign `json:"weak_signs"`

	BodyTotals   map[Body]int           `json:"body_totals"` // <= BenefitMaxPerBody
	BodyStrength map[Body]StrengthClass `json:"body_strength"`

	// Degraded mirrors the natal snapshot's reliability; non-classical
	// bodies may be unknown without failing the tabulation
	Degraded bool `json:"degraded,omitempty"`

	// UsedDefaultTime is set when the natal chart was resolved without a
	// birth time; positions carry solar-noon precision, not full precision
	UsedDefaultTime bool `json:"used_default_time,omitempty"`
}

// GrandTotal sums all seven tables
func (r *TabulationResult) GrandTotal() int {
	sum := 0
	for _, t := range r.Tables {
		sum += t.Total()
	}
	return sum
}
