package reftables

import (
	"fmt"
	"sort"

	"github.com/wonny/jyotish/backend/internal/contracts"
)

// Store is the immutable reference table store. It is built once at process
// start and passed by reference into the evaluator and tabulator — never
// mutated afterwards.
// ⭐ SSOT: 참조 테이블 조회는 이 타입을 통해서만
type Store struct {
	activities map[string]*contracts.RuleSet
	benefic    BeneficConfig
}

// New builds a store from the built-in tables and default activity profiles
func New() (*Store, error) {
	s := &Store{
		activities: defaultActivityRuleSets(),
		benefic:    DefaultBeneficConfig(),
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("reference tables invalid: %w", err)
	}
	return s, nil
}

// validate checks every rule set and the benefic thresholds
func (s *Store) validate() error {
	if len(s.activities) == 0 {
		return fmt.Errorf("no activity profiles defined")
	}
	for name, rs := range s.activities {
		if err := rs.Validate(); err != nil {
			return fmt.Errorf("activity %q: %w", name, err)
		}
	}
	return s.benefic.Validate()
}

// RuleSetFor returns the rule set for an activity type; ok is false for
// unknown activities
func (s *Store) RuleSetFor(activity string) (*contracts.RuleSet, bool) {
	rs, ok := s.activities[activity]
	return rs, ok
}

// Activities lists the known activity types, sorted
func (s *Store) Activities() []string {
	names := make([]string, 0, len(s.activities))
	for name := range s.activities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Benefic returns the benefic tabulation configuration
func (s *Store) Benefic() BeneficConfig {
	return s.benefic
}

// SignLord returns the ruling body of a sign
func (s *Store) SignLord(sign contracts.Sign) contracts.Body {
	return signLords[sign]
}

// DignityOf returns the dignity data for a classical body; ok is false for
// the lunar nodes, which carry no dignity table
func (s *Store) DignityOf(body contracts.Body) (Dignity, bool) {
	d, ok := dignities[body]
	return d, ok
}

// Relation classifies body against sign: exaltation and own sign first,
// otherwise the relation to the sign's lord (friend / neutral / enemy).
func (s *Store) Relation(body contracts.Body, sign contracts.Sign) DignityRelation {
	d, ok := dignities[body]
	if !ok {
		return RelationNeutral
	}

	if sign == d.Exaltation {
		return RelationExalted
	}
	for _, own := range d.OwnSigns {
		if sign == own {
			return RelationOwn
		}
	}

	lord := signLords[sign]
	if lord == body {
		return RelationOwn
	}
	for _, f := range d.Friends {
		if lord == f {
			return RelationFriendly
		}
	}
	for _, e := range d.Enemies {
		if lord == e {
			return RelationEnemy
		}
	}
	return RelationNeutral
}

// NakshatraLord returns the ruling body of a 1-based nakshatra number
func (s *Store) NakshatraLord(number int) (contracts.Body, error) {
	if number < 1 || number > NakshatraCount {
		return "", fmt.Errorf("nakshatra number out of range: %d", number)
	}
	return nakshatraLordCycle[(number-1)%len(nakshatraLordCycle)], nil
}

// NakshatraName returns the name of a 1-based nakshatra number
func (s *Store) NakshatraName(number int) string {
	if number < 1 || number > NakshatraCount {
		return "Unknown"
	}
	return nakshatraNames[number-1]
}

// IsRiktaTithi reports whether the 1-based tithi is in the unfavorable set
func (s *Store) IsRiktaTithi(tithi int) bool {
	return riktaTithis[tithi]
}

// IsInauspiciousYoga reports whether the 1-based yoga is in the unfavorable set
func (s *Store) IsInauspiciousYoga(yoga int) bool {
	return inauspiciousYogas[yoga]
}
