package reftables

import "fmt"

// BeneficConfig holds the point weights and thresholds for the benefic
// tabulator. All classification boundaries live here, not at call sites.
// SSOT: 길성 점수 가중치/임계값
type BeneficConfig struct {
	// Dignity points per relation — the largest single component
	DignityPoints map[DignityRelation]int `yaml:"dignity_points" json:"dignity_points"`

	// Fixed bonus when the candidate sign trines the body's natal sign
	TrineBonus int `yaml:"trine_bonus" json:"trine_bonus"`

	// Smaller bonus when the candidate sign's lord trines the body natally
	LordTrineBonus int `yaml:"lord_trine_bonus" json:"lord_trine_bonus"`

	// Per qualifying body whose natal sign is in kendra to the candidate
	// sign; uncapped before the final cell clamp
	KendraPointPer int `yaml:"kendra_point_per" json:"kendra_point_per"`

	// Bonus when the scored body rules the Moon's natal nakshatra
	NakshatraLordBonus int `yaml:"nakshatra_lord_bonus" json:"nakshatra_lord_bonus"`

	// Sign classification on the rounded per-sign averages
	StrongSignMin int `yaml:"strong_sign_min" json:"strong_sign_min"`
	WeakSignMax   int `yaml:"weak_sign_max" json:"weak_sign_max"`

	// Body classification as percentage of the per-body maximum
	BodyStrongPct   float64 `yaml:"body_strong_pct" json:"body_strong_pct"`
	BodyModeratePct float64 `yaml:"body_moderate_pct" json:"body_moderate_pct"`
}

// DefaultBeneficConfig returns the classical weights
func DefaultBeneficConfig() BeneficConfig {
	return BeneficConfig{
		DignityPoints: map[DignityRelation]int{
			RelationExalted:  5,
			RelationOwn:      4,
			RelationFriendly: 3,
			RelationNeutral:  2,
			RelationEnemy:    1,
		},
		TrineBonus:         2,
		LordTrineBonus:     1,
		KendraPointPer:     1,
		NakshatraLordBonus: 1,

		StrongSignMin: 6,
		WeakSignMax:   3,

		BodyStrongPct:   0.70,
		BodyModeratePct: 0.50,
	}
}

// Validate checks the configuration invariants
func (c BeneficConfig) Validate() error {
	for _, rel := range []DignityRelation{RelationExalted, RelationOwn, RelationFriendly, RelationNeutral, RelationEnemy} {
		p, ok := c.DignityPoints[rel]
		if !ok {
			return fmt.Errorf("benefic: missing dignity points for %s", rel)
		}
		if p < 0 {
			return fmt.Errorf("benefic: dignity points for %s must be >= 0", rel)
		}
	}
	if c.TrineBonus < 0 || c.LordTrineBonus < 0 || c.KendraPointPer < 0 || c.NakshatraLordBonus < 0 {
		return fmt.Errorf("benefic: bonuses must be >= 0")
	}
	if c.WeakSignMax >= c.StrongSignMin {
		return fmt.Errorf("benefic: weak_sign_max must be < strong_sign_min")
	}
	if c.BodyModeratePct >= c.BodyStrongPct {
		return fmt.Errorf("benefic: body_moderate_pct must be < body_strong_pct")
	}
	if c.BodyStrongPct <= 0 || c.BodyStrongPct > 1 || c.BodyModeratePct <= 0 {
		return fmt.Errorf("benefic: body percentage thresholds must be in (0, 1]")
	}
	return nil
}
