package reftables

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wonny/jyotish/backend/internal/contracts"
)

// overrideFile is the on-disk shape of a reference table override.
// Only activity profiles and benefic weights are overridable; the
// astronomical tables (sign lords, nakshatra cycle) are compiled in.
type overrideFile struct {
	Activities map[string]*contracts.RuleSet `yaml:"activities" json:"activities"`
	Benefic    *BeneficConfig                `yaml:"benefic" json:"benefic"`
}

// NewFromFile builds a store from the built-in tables with overrides applied
// from a YAML file. Overriding an activity replaces its rule set wholesale;
// activities absent from the file keep their defaults.
// SSOT 핵심: KnownFields(true)로 오타/미사용 필드 즉시 실패
func NewFromFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference table overrides: %w", err)
	}

	var ov overrideFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 알 수 없는 필드 발견 시 에러 반환
	if err := dec.Decode(&ov); err != nil {
		return nil, fmt.Errorf("parse reference table overrides: %w", err)
	}

	s := &Store{
		activities: defaultActivityRuleSets(),
		benefic:    DefaultBeneficConfig(),
	}
	for name, rs := range ov.Activities {
		if rs == nil {
			delete(s.activities, name)
			continue
		}
		if rs.Name == "" {
			rs.Name = name
		}
		s.activities[name] = rs
	}
	if ov.Benefic != nil {
		s.benefic = *ov.Benefic
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("reference tables invalid after overrides: %w", err)
	}
	return s, nil
}

// Hash returns a SHA256 over the store's effective configuration, used to
// tag scan results with the tables that produced them.
// 주의: map 대신 정렬된 struct 사용으로 해시 재현성 보장
func (s *Store) Hash() (string, error) {
	type hashable struct {
		Activities []*contracts.RuleSet `json:"activities"`
		Benefic    BeneficConfig        `json:"benefic"`
	}
	h := hashable{Benefic: s.benefic}
	for _, name := range s.Activities() {
		h.Activities = append(h.Activities, s.activities[name])
	}

	jsonBytes, err := json.Marshal(h)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
