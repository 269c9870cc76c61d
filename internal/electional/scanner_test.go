package electional

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/ephemeris"
	"github.com/wonny/jyotish/backend/internal/evaluator"
	"github.com/wonny/jyotish/backend/internal/reftables"
	"github.com/wonny/jyotish/backend/internal/resolver"
	"github.com/wonny/jyotish/backend/pkg/config"
	"github.com/wonny/jyotish/backend/pkg/logger"
)

type resolverFunc func(ctx context.Context, date time.Time, hasTime bool, loc contracts.Location, bodies []contracts.Body) (*contracts.ChartSnapshot, error)

func (f resolverFunc) Resolve(ctx context.Context, date time.Time, hasTime bool, loc contracts.Location, bodies []contracts.Body) (*contracts.ChartSnapshot, error) {
	return f(ctx, date, hasTime, loc, bodies)
}

func snapshotFor(date time.Time, lons map[contracts.Body]float64) *contracts.ChartSnapshot {
	snap := &contracts.ChartSnapshot{
		JulianDay: resolver.JulianDay(time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)),
		Positions: make(map[contracts.Body]contracts.PlanetPosition),
	}
	for body, lon := range lons {
		snap.Positions[body] = contracts.NewPlanetPosition(body, lon)
	}
	return snap
}

// dullDay resolves every body to 0° Aries: no dignities, tithi 1, Ashwini,
// yoga 1 (inauspicious), so wedding scores stay low
func dullDay(date time.Time) *contracts.ChartSnapshot {
	lons := make(map[contracts.Body]float64)
	for _, b := range contracts.AllBodies {
		lons[b] = 0
	}
	return snapshotFor(date, lons)
}

// brightDay sets up the strongly auspicious wedding chart used across the
// evaluator tests
func brightDay(date time.Time) *contracts.ChartSnapshot {
	return snapshotFor(date, map[contracts.Body]float64{
		contracts.Sun:     100,
		contracts.Moon:    215,
		contracts.Venus:   350,
		contracts.Jupiter: 95,
		contracts.Mercury: 120,
		contracts.Mars:    10,
		contracts.Saturn:  340,
		contracts.Rahu:    200,
		contracts.Ketu:    20,
	})
}

func testScanner(t *testing.T, r contracts.ChartResolver) *Scanner {
	t.Helper()
	tables, err := reftables.New()
	require.NoError(t, err)
	eval := evaluator.New(tables, logger.Nop())
	return New(r, eval, tables, logger.Nop(), nil)
}

func TestScan_PicksTheBrightDay(t *testing.T) {
	bestDate := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	r := resolverFunc(func(_ context.Context, date time.Time, hasTime bool, _ contracts.Location, _ []contracts.Body) (*contracts.ChartSnapshot, error) {
		assert.False(t, hasTime, "scans score whole days at default time")
		if date.Equal(bestDate) {
			return brightDay(date), nil
		}
		return dullDay(date), nil
	})
	s := testScanner(t, r)

	start := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	res, err := s.Scan(context.Background(), "wedding", start, end, contracts.Location{})
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "wedding", res.Activity)
	assert.Equal(t, "2026-08-28", res.Best.Subject)
	assert.GreaterOrEqual(t, res.Best.Tier, contracts.TierAuspicious)
	assert.Contains(t, res.Best.Factors, "Venus dignified")
	assert.Contains(t, res.Best.Factors, "Jupiter dignified")
	assert.Equal(t, 17, res.DaysScanned)
	assert.False(t, res.Truncated)
	assert.False(t, res.Partial)

	// Dull days never reach the notable threshold
	assert.Empty(t, res.Alternatives)
}

func TestScan_BestPresentEvenWhenNothingNotable(t *testing.T) {
	r := resolverFunc(func(_ context.Context, date time.Time, _ bool, _ contracts.Location, _ []contracts.Body) (*contracts.ChartSnapshot, error) {
		return dullDay(date), nil
	})
	s := testScanner(t, r)

	start := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	res, err := s.Scan(context.Background(), "wedding", start, start.AddDate(0, 0, 6), contracts.Location{})
	require.NoError(t, err)

	assert.NotEmpty(t, res.Best.Subject)
	assert.Empty(t, res.Alternatives)
	// Ties rank by earliest date
	assert.Equal(t, "2026-08-20", res.Best.Subject)
}

func TestScan_TruncatesLongRanges(t *testing.T) {
	r := resolverFunc(func(_ context.Context, date time.Time, _ bool, _ contracts.Location, _ []contracts.Body) (*contracts.ChartSnapshot, error) {
		return dullDay(date), nil
	})
	s := testScanner(t, r)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	res, err := s.Scan(context.Background(), "wedding", start, start.AddDate(0, 0, 89), contracts.Location{})
	require.NoError(t, err)

	assert.True(t, res.Truncated)
	assert.Equal(t, contracts.MaxScanDays, res.DaysScanned)
	assert.Equal(t, start.AddDate(0, 0, contracts.MaxScanDays-1), res.RangeEnd)
}

func TestScan_InvalidRange(t *testing.T) {
	s := testScanner(t, resolverFunc(func(_ context.Context, date time.Time, _ bool, _ contracts.Location, _ []contracts.Body) (*contracts.ChartSnapshot, error) {
		return dullDay(date), nil
	}))

	start := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	_, err := s.Scan(context.Background(), "wedding", start, start.AddDate(0, 0, -1), contracts.Location{})

	var ire *contracts.InvalidRangeError
	assert.ErrorAs(t, err, &ire)
}

func TestScan_SingleDayRangeIsValid(t *testing.T) {
	s := testScanner(t, resolverFunc(func(_ context.Context, date time.Time, _ bool, _ contracts.Location, _ []contracts.Body) (*contracts.ChartSnapshot, error) {
		return dullDay(date), nil
	}))

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	res, err := s.Scan(context.Background(), "wedding", day, day, contracts.Location{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.DaysScanned)
}

func TestScan_HighUTCOffsetKeepsCivilDate(t *testing.T) {
	// UTC+13: local solar noon falls on the previous UTC day, but the
	// reported date and weekday must stay on the scanned civil day.
	r := resolver.New(ephemeris.NewMeanProvider(), config.EphemerisConfig{LookupTimeout: time.Second, MaxConcurrent: 4}, logger.Nop(), nil)
	s := testScanner(t, r)

	day := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC) // a Friday
	res, err := s.Scan(context.Background(), "wedding", day, day, contracts.Location{UTCOffset: 13})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-04", res.Best.Subject)
	assert.Equal(t, day, res.Best.Date)
	assert.Contains(t, res.Best.Factors, "favorable weekday")
}

func TestScan_UnknownActivity(t *testing.T) {
	s := testScanner(t, resolverFunc(func(_ context.Context, date time.Time, _ bool, _ contracts.Location, _ []contracts.Body) (*contracts.ChartSnapshot, error) {
		return dullDay(date), nil
	}))

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	_, err := s.Scan(context.Background(), "exorcism", day, day, contracts.Location{})
	assert.Error(t, err)
}

func TestScan_AllDaysFailed(t *testing.T) {
	s := testScanner(t, resolverFunc(func(_ context.Context, _ time.Time, _ bool, _ contracts.Location, _ []contracts.Body) (*contracts.ChartSnapshot, error) {
		return nil, fmt.Errorf("provider exploded")
	}))

	start := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	_, err := s.Scan(context.Background(), "wedding", start, start.AddDate(0, 0, 4), contracts.Location{})

	var tre *contracts.TotalResolutionError
	assert.ErrorAs(t, err, &tre)
}

func TestScan_SomeDaysFailedStillSucceeds(t *testing.T) {
	s := testScanner(t, resolverFunc(func(_ context.Context, date time.Time, _ bool, _ contracts.Location, _ []contracts.Body) (*contracts.ChartSnapshot, error) {
		if date.Day()%2 == 0 {
			return nil, fmt.Errorf("intermittent upstream failure")
		}
		return dullDay(date), nil
	}))

	start := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	res, err := s.Scan(context.Background(), "wedding", start, start.AddDate(0, 0, 9), contracts.Location{})
	require.NoError(t, err)
	assert.Equal(t, 5, res.DaysScanned)
}

func TestScan_CancellationReturnsPartial(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var resolved int
	s := testScanner(t, resolverFunc(func(_ context.Context, date time.Time, _ bool, _ contracts.Location, _ []contracts.Body) (*contracts.ChartSnapshot, error) {
		resolved++
		if resolved == 3 {
			cancel()
		}
		return dullDay(date), nil
	}))

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	res, err := s.Scan(ctx, "wedding", start, start.AddDate(0, 0, 29), contracts.Location{})
	require.NoError(t, err)

	assert.True(t, res.Partial)
	assert.Equal(t, 3, res.DaysScanned)
	assert.NotEmpty(t, res.Best.Subject)
}

func TestScan_CancelledBeforeAnyDay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := testScanner(t, resolverFunc(func(ctx context.Context, _ time.Time, _ bool, _ contracts.Location, _ []contracts.Body) (*contracts.ChartSnapshot, error) {
		return nil, ctx.Err()
	}))

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.Scan(ctx, "wedding", start, start.AddDate(0, 0, 5), contracts.Location{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScan_DegradedDayPropagates(t *testing.T) {
	s := testScanner(t, resolverFunc(func(_ context.Context, date time.Time, _ bool, _ contracts.Location, _ []contracts.Body) (*contracts.ChartSnapshot, error) {
		snap := dullDay(date)
		if date.Day() == 21 {
			snap.Positions[contracts.Saturn] = contracts.UnknownPosition(contracts.Saturn)
			snap.Unreliable = []contracts.Body{contracts.Saturn}
		}
		return snap, nil
	}))

	start := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	res, err := s.Scan(context.Background(), "wedding", start, start.AddDate(0, 0, 4), contracts.Location{})
	require.NoError(t, err)
	assert.True(t, res.Degraded)
}

func TestRank_TotalOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var scored []contracts.CandidateScore
	for i := 0; i < 200; i++ {
		scored = append(scored, contracts.CandidateScore{
			Subject:    fmt.Sprintf("day-%d", i),
			Date:       base.AddDate(0, 0, rng.Intn(60)),
			TotalScore: float64(rng.Intn(20)),
			Tier:       contracts.RatingTier(rng.Intn(5)),
		})
	}

	Rank(scored)

	sorted := sort.SliceIsSorted(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Tier != b.Tier {
			return a.Tier > b.Tier
		}
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		return a.Date.Before(b.Date)
	})
	assert.True(t, sorted)

	// Ranking again must not reorder anything
	snapshot := make([]contracts.CandidateScore, len(scored))
	copy(snapshot, scored)
	Rank(scored)
	assert.Equal(t, snapshot, scored)
}
