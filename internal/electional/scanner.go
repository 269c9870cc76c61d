package electional

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/reftables"
	"github.com/wonny/jyotish/backend/pkg/logger"
	"github.com/wonny/jyotish/backend/pkg/metrics"
)

// Scanner finds the best day for an activity within a date range by scoring
// every candidate day and ranking the results.
// ⭐ SSOT: 택일 스캔은 이 타입을 통해서만
type Scanner struct {
	resolver  contracts.ChartResolver
	evaluator contracts.RuleEvaluator
	tables    *reftables.Store
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

// New creates a scanner
func New(resolver contracts.ChartResolver, evaluator contracts.RuleEvaluator, tables *reftables.Store, log *logger.Logger, m *metrics.Metrics) *Scanner {
	return &Scanner{
		resolver:  resolver,
		evaluator: evaluator,
		tables:    tables,
		logger:    log,
		metrics:   m,
	}
}

// Scan implements contracts.ElectionalScanner. Ranges longer than
// MaxScanDays are truncated and flagged, never silently clipped. A
// cancellation mid-range returns the best of the days scored so far with
// Partial set; cancellation before any day scored returns the context error.
func (s *Scanner) Scan(ctx context.Context, activity string, start, end time.Time, loc contracts.Location) (*contracts.ScanResult, error) {
	rs, ok := s.tables.RuleSetFor(activity)
	if !ok {
		return nil, fmt.Errorf("unknown activity type: %q (known: %v)", activity, s.tables.Activities())
	}

	start = truncateToDate(start)
	end = truncateToDate(end)
	if end.Before(start) {
		return nil, &contracts.InvalidRangeError{Reason: fmt.Sprintf("end %s before start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))}
	}

	days := int(end.Sub(start).Hours()/24) + 1
	truncated := false
	if days > contracts.MaxScanDays {
		days = contracts.MaxScanDays
		end = start.AddDate(0, 0, contracts.MaxScanDays-1)
		truncated = true
		s.logger.WithFields(map[string]interface{}{
			"activity": activity,
			"days":     days,
		}).Warn("Scan range truncated to maximum")
	}

	var (
		scored    []contracts.CandidateScore
		failed    int
		attempted int
		partial   bool
	)

	for i := 0; i < days; i++ {
		if ctx.Err() != nil {
			partial = true
			break
		}

		day := start.AddDate(0, 0, i)
		attempted++

		snap, err := s.resolver.Resolve(ctx, day, false, loc, contracts.AllBodies)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				partial = true
				break
			}
			failed++
			s.logger.WithError(err).WithField("date", day.Format("2006-01-02")).Warn("Day could not be resolved, skipping")
			continue
		}

		scored = append(scored, s.evaluator.Evaluate(snap, rs, day.Format("2006-01-02")))
	}

	if len(scored) == 0 {
		if partial {
			return nil, ctx.Err()
		}
		return nil, &contracts.TotalResolutionError{RangeStart: start, RangeEnd: end}
	}

	Rank(scored)

	result := &contracts.ScanResult{
		ID:          uuid.NewString(),
		Activity:    activity,
		Best:        scored[0],
		RangeStart:  start,
		RangeEnd:    end,
		DaysScanned: attempted - failed,
		Truncated:   truncated,
		Partial:     partial,
	}
	for _, cs := range scored {
		if cs.Degraded {
			result.Degraded = true
		}
	}
	for _, cs := range scored[1:] {
		if cs.Tier >= rs.NotableTier {
			result.Alternatives = append(result.Alternatives, cs)
		}
	}

	s.metrics.ScanPerformed(activity)
	s.logger.WithFields(map[string]interface{}{
		"activity":     activity,
		"days_scanned": result.DaysScanned,
		"best_date":    result.Best.Subject,
		"best_tier":    result.Best.TierName,
		"alternatives": len(result.Alternatives),
	}).Info("Electional scan completed")

	return result, nil
}

// Rank orders candidates best-first: higher tier, then higher score, then
// the earlier date. The order is total, so equal days rank identically on
// every run.
func Rank(scored []contracts.CandidateScore) {
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Tier != b.Tier {
			return a.Tier > b.Tier
		}
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		return a.Date.Before(b.Date)
	})
}

// truncateToDate strips the clock, keeping the civil date in UTC
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
