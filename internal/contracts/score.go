package contracts

import "time"

// RatingTier is an ordered rating bucket for a scored candidate
// ⭐ SSOT: 등급 순서는 이 열거형이 유일한 기준
type RatingTier int

const (
	TierModerate RatingTier = iota
	TierGood
	TierAuspicious
	TierExcellent
	TierVeryAuspicious
)

var tierNames = [...]string{
	"Moderate", "Good", "Auspicious", "Excellent", "VeryAuspicious",
}

// String returns the tier name
func (t RatingTier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return "Unknown"
	}
	return tierNames[t]
}

// Valid reports whether t is a defined tier
func (t RatingTier) Valid() bool {
	return t >= TierModerate && t <= TierVeryAuspicious
}

// CandidateScore is the evaluator's aggregated output for one subject
// (a candidate day, or a (body, sign) pair).
// ⭐ SSOT: Evaluator → Scanner/Tabulator 점수 전달
type CandidateScore struct {
	Subject    string     `json:"subject"`
	Date       time.Time  `json:"date,omitempty"`
	TotalScore float64    `json:"total_score"`
	Factors    []string   `json:"factors"` // criterion order, not score order
	Tier       RatingTier `json:"tier"`
	TierName   string     `json:"tier_name"`

	// Degraded is set when the underlying snapshot contained unknown
	// positions; callers must surface reduced confidence
	Degraded bool `json:"degraded,omitempty"`
}
