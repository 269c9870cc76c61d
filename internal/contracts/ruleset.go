package contracts

import (
	"fmt"
	"time"
)

// CriterionKind selects the evaluation rule a criterion applies.
// Criteria are data, not code: a kind plus its parameters fully determines
// behavior, so new activity types are added by adding records.
type CriterionKind string

const (
	// KindBodyInSigns awards points when Body occupies one of Signs
	KindBodyInSigns CriterionKind = "body_in_signs"

	// KindBodyDignity awards points when Body stands in own sign or
	// exaltation per the dignity tables
	KindBodyDignity CriterionKind = "body_dignity"

	// KindTithi awards points when the day's tithi is in TithiNumbers
	KindTithi CriterionKind = "tithi"

	// KindNakshatra awards points when the Moon's nakshatra is in
	// NakshatraNumbers
	KindNakshatra CriterionKind = "nakshatra"

	// KindYoga awards points when the day's yoga is in YogaNumbers
	KindYoga CriterionKind = "yoga"

	// KindWeekday awards points when the civil weekday is in Weekdays
	KindWeekday CriterionKind = "weekday"

	// KindMoonWaxing awards points during the bright fortnight (tithi 1-15)
	KindMoonWaxing CriterionKind = "moon_waxing"

	// KindBodiesInTrine awards points when Body and OtherBody occupy signs
	// in trine relation
	KindBodiesInTrine CriterionKind = "bodies_in_trine"
)

// Criterion is one declarative scoring rule. Only the fields relevant to its
// Kind are read; everything else is ignored.
type Criterion struct {
	Kind CriterionKind `yaml:"kind" json:"kind"`

	Body      Body   `yaml:"body,omitempty" json:"body,omitempty"`
	OtherBody Body   `yaml:"other_body,omitempty" json:"other_body,omitempty"`
	Signs     []Sign `yaml:"signs,omitempty" json:"signs,omitempty"`

	TithiNumbers     []int          `yaml:"tithis,omitempty" json:"tithis,omitempty"`
	NakshatraNumbers []int          `yaml:"nakshatras,omitempty" json:"nakshatras,omitempty"`
	YogaNumbers      []int          `yaml:"yogas,omitempty" json:"yogas,omitempty"`
	Weekdays         []time.Weekday `yaml:"weekdays,omitempty" json:"weekdays,omitempty"`

	Points float64 `yaml:"points" json:"points"`
	Label  string  `yaml:"label" json:"label"`
}

// TierThreshold maps an inclusive minimum score to a tier
type TierThreshold struct {
	MinScore float64    `yaml:"min_score" json:"min_score"`
	Tier     RatingTier `yaml:"tier" json:"tier"`
}

// RuleSet is a named, ordered collection of criteria plus the tier ladder
// used to classify the resulting scores.
// ⭐ SSOT: 활동별 채점 규칙은 이 데이터 구조로만 표현
type RuleSet struct {
	Name     string          `yaml:"name" json:"name"`
	Criteria []Criterion     `yaml:"criteria" json:"criteria"`
	Tiers    []TierThreshold `yaml:"tiers" json:"tiers"`

	// NotableTier is the lowest tier collected as a scan alternative
	NotableTier RatingTier `yaml:"notable_tier" json:"notable_tier"`
}

// TierFor classifies a score: the highest threshold whose MinScore the score
// reaches. Thresholds are kept ascending; the first must be 0 so every
// non-negative score lands in a defined tier.
func (rs *RuleSet) TierFor(score float64) RatingTier {
	tier := rs.Tiers[0].Tier
	for _, th := range rs.Tiers {
		if score >= th.MinScore {
			tier = th.Tier
		}
	}
	return tier
}

// Validate checks structural invariants of the rule set
func (rs *RuleSet) Validate() error {
	if rs.Name == "" {
		return fmt.Errorf("ruleset: name is required")
	}
	if len(rs.Criteria) == 0 {
		return fmt.Errorf("ruleset %s: criteria must not be empty", rs.Name)
	}
	for i, c := range rs.Criteria {
		if c.Points < 0 {
			return fmt.Errorf("ruleset %s: criteria[%d].points must be >= 0 (unfavorable conditions score 0, not negative)", rs.Name, i)
		}
		if c.Label == "" && c.Points > 0 {
			return fmt.Errorf("ruleset %s: criteria[%d] needs a label", rs.Name, i)
		}
	}
	if len(rs.Tiers) == 0 {
		return fmt.Errorf("ruleset %s: tiers must not be empty", rs.Name)
	}
	if rs.Tiers[0].MinScore != 0 {
		return fmt.Errorf("ruleset %s: tiers[0].min_score must be 0 so every score has a tier", rs.Name)
	}
	for i := 1; i < len(rs.Tiers); i++ {
		if rs.Tiers[i].MinScore <= rs.Tiers[i-1].MinScore {
			return fmt.Errorf("ruleset %s: tier thresholds must be strictly ascending", rs.Name)
		}
	}
	if !rs.NotableTier.Valid() {
		return fmt.Errorf("ruleset %s: notable_tier out of range", rs.Name)
	}
	return nil
}
