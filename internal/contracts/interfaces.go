package contracts

import (
	"context"
	"time"
)

// PositionProvider supplies ecliptic longitudes. Implementations must be
// safe for concurrent use.
// ⭐ SSOT: 천체력 조회 인터페이스
type PositionProvider interface {
	// Longitude returns the ecliptic longitude in degrees for the body at
	// the given Julian day. Callers wrap the value into [0,360) themselves;
	// the provider's output is not trusted to be in range.
	Longitude(ctx context.Context, julianDay float64, body Body) (float64, error)
}

// ChartResolver builds chart snapshots from calendar input
// ⭐ SSOT: 스냅샷 생성 인터페이스
type ChartResolver interface {
	Resolve(ctx context.Context, date time.Time, hasTime bool, loc Location, bodies []Body) (*ChartSnapshot, error)
}

// RuleEvaluator scores one snapshot against one rule set
// ⭐ SSOT: 규칙 평가 인터페이스
type RuleEvaluator interface {
	Evaluate(snapshot *ChartSnapshot, ruleSet *RuleSet, subject string) CandidateScore
}

// ElectionalScanner finds the best day for an activity within a range
// ⭐ SSOT: 택일 스캔 인터페이스
type ElectionalScanner interface {
	Scan(ctx context.Context, activity string, start, end time.Time, loc Location) (*ScanResult, error)
}

// BeneficTabulator builds the 7×12 benefit tables for a natal chart
// ⭐ SSOT: 길성 점수표 인터페이스
type BeneficTabulator interface {
	Tabulate(natal *ChartSnapshot) (*TabulationResult, error)
}
