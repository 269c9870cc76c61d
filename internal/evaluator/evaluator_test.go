package evaluator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/reftables"
	"github.com/wonny/jyotish/backend/internal/resolver"
	"github.com/wonny/jyotish/backend/pkg/logger"
)

func testEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	tables, err := reftables.New()
	require.NoError(t, err)
	return New(tables, logger.Nop())
}

// snapshotAt builds a snapshot for noon UTC on the given date with the
// provided longitudes
func snapshotAt(date time.Time, lons map[contracts.Body]float64) *contracts.ChartSnapshot {
	snap := &contracts.ChartSnapshot{
		JulianDay: resolver.JulianDay(time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.UTC)),
		Positions: make(map[contracts.Body]contracts.PlanetPosition),
	}
	for body, lon := range lons {
		snap.Positions[body] = contracts.NewPlanetPosition(body, lon)
	}
	return snap
}

// auspiciousWeddingDay: Venus exalted in Pisces, Jupiter exalted in Cancer
// and in trine to the Moon in Scorpio, tithi 10 waxing, Anuradha nakshatra,
// yoga 24, on a Friday.
func auspiciousWeddingDay() *contracts.ChartSnapshot {
	return snapshotAt(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), map[contracts.Body]float64{
		contracts.Sun:     100, // Cancer
		contracts.Moon:    215, // Scorpio
		contracts.Venus:   350, // Pisces
		contracts.Jupiter: 95,  // Cancer
		contracts.Mercury: 120,
		contracts.Mars:    10,
		contracts.Saturn:  340,
	})
}

func TestEvaluate_WeddingScenario(t *testing.T) {
	e := testEvaluator(t)
	rs, ok := e.tables.RuleSetFor("wedding")
	require.True(t, ok)

	score := e.Evaluate(auspiciousWeddingDay(), rs, "2026-08-28")

	assert.Equal(t, "2026-08-28", score.Subject)
	assert.InDelta(t, 18, score.TotalScore, 1e-9)
	assert.Equal(t, contracts.TierVeryAuspicious, score.Tier)
	assert.Equal(t, "VeryAuspicious", score.TierName)
	assert.False(t, score.Degraded)

	// Factors come back in criterion order, not score order
	assert.Equal(t, []string{
		"Venus dignified",
		"Jupiter dignified",
		"Jupiter in trine to the Moon",
		"waxing Moon",
		"favorable tithi",
		"favorable nakshatra",
		"auspicious yoga",
		"favorable weekday",
	}, score.Factors)
}

func TestEvaluate_CivilDateWinsOverJulianDay(t *testing.T) {
	e := testEvaluator(t)
	rs, ok := e.tables.RuleSetFor("wedding")
	require.True(t, ok)

	// Solar noon at UTC+13 on Friday Sep 4 is 23:00 UTC on Thursday Sep 3.
	// The pinned civil date, not the Julian day, decides Date and weekday.
	snap := auspiciousWeddingDay()
	snap.CivilDate = time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	snap.JulianDay = resolver.JulianDay(time.Date(2026, 9, 3, 23, 0, 0, 0, time.UTC))

	score := e.Evaluate(snap, rs, "2026-09-04")

	assert.Equal(t, snap.CivilDate, score.Date)
	assert.Contains(t, score.Factors, "favorable weekday")
}

func TestEvaluate_Deterministic(t *testing.T) {
	e := testEvaluator(t)
	rs, ok := e.tables.RuleSetFor("wedding")
	require.True(t, ok)
	snap := auspiciousWeddingDay()

	first := e.Evaluate(snap, rs, "d")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Evaluate(snap, rs, "d"))
	}
}

func TestEvaluate_UnknownPositionScoresZero(t *testing.T) {
	e := testEvaluator(t)
	rs, ok := e.tables.RuleSetFor("wedding")
	require.True(t, ok)

	snap := auspiciousWeddingDay()
	snap.Positions[contracts.Venus] = contracts.UnknownPosition(contracts.Venus)
	snap.Unreliable = []contracts.Body{contracts.Venus}

	score := e.Evaluate(snap, rs, "d")

	// Venus dignity no longer fires; everything else is untouched
	assert.InDelta(t, 15, score.TotalScore, 1e-9)
	assert.NotContains(t, score.Factors, "Venus dignified")
	assert.True(t, score.Degraded)
	// Unknown Aries placeholder must not read as Venus in a favorable sign
	assert.Equal(t, contracts.TierExcellent, score.Tier)
}

func TestEvaluate_MissingLuminariesSkipPanchangaCriteria(t *testing.T) {
	e := testEvaluator(t)
	rs := &contracts.RuleSet{
		Name: "lunar-only",
		Criteria: []contracts.Criterion{
			{Kind: contracts.KindMoonWaxing, Points: 2, Label: "waxing Moon"},
			{Kind: contracts.KindTithi, TithiNumbers: []int{1, 2, 3}, Points: 3, Label: "early tithi"},
			{Kind: contracts.KindNakshatra, NakshatraNumbers: []int{1}, Points: 1, Label: "Ashwini"},
			{Kind: contracts.KindYoga, YogaNumbers: []int{2}, Points: 1, Label: "Priti"},
		},
		Tiers:       []contracts.TierThreshold{{MinScore: 0, Tier: contracts.TierModerate}},
		NotableTier: contracts.TierModerate,
	}
	require.NoError(t, rs.Validate())

	snap := snapshotAt(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), map[contracts.Body]float64{
		contracts.Sun: 10, // no Moon at all
	})

	score := e.Evaluate(snap, rs, "d")
	assert.Zero(t, score.TotalScore)
	assert.Empty(t, score.Factors)
}

func TestEvaluate_IndividualKinds(t *testing.T) {
	e := testEvaluator(t)
	snap := auspiciousWeddingDay()

	tests := []struct {
		name  string
		c     contracts.Criterion
		fires bool
	}{
		{"body in signs hit", contracts.Criterion{Kind: contracts.KindBodyInSigns, Body: contracts.Moon, Signs: []contracts.Sign{contracts.Scorpio}, Points: 1, Label: "x"}, true},
		{"body in signs miss", contracts.Criterion{Kind: contracts.KindBodyInSigns, Body: contracts.Moon, Signs: []contracts.Sign{contracts.Aries}, Points: 1, Label: "x"}, false},
		{"dignity own sign", contracts.Criterion{Kind: contracts.KindBodyDignity, Body: contracts.Mars, Points: 1, Label: "x"}, true}, // Mars at 10° is in Aries
		{"dignity friendly is not enough", contracts.Criterion{Kind: contracts.KindBodyDignity, Body: contracts.Sun, Points: 1, Label: "x"}, false},
		{"weekday hit", contracts.Criterion{Kind: contracts.KindWeekday, Weekdays: []time.Weekday{time.Friday}, Points: 1, Label: "x"}, true},
		{"weekday miss", contracts.Criterion{Kind: contracts.KindWeekday, Weekdays: []time.Weekday{time.Sunday}, Points: 1, Label: "x"}, false},
		{"trine symmetric", contracts.Criterion{Kind: contracts.KindBodiesInTrine, Body: contracts.Moon, OtherBody: contracts.Jupiter, Points: 1, Label: "x"}, true},
		{"trine miss", contracts.Criterion{Kind: contracts.KindBodiesInTrine, Body: contracts.Venus, OtherBody: contracts.Mercury, Points: 1, Label: "x"}, false},
		{"unknown kind scores zero", contracts.Criterion{Kind: contracts.CriterionKind("retrograde"), Points: 1, Label: "x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := &contracts.RuleSet{
				Name:        "single",
				Criteria:    []contracts.Criterion{tt.c},
				Tiers:       []contracts.TierThreshold{{MinScore: 0, Tier: contracts.TierModerate}},
				NotableTier: contracts.TierModerate,
			}
			score := e.Evaluate(snap, rs, "d")
			if tt.fires {
				assert.InDelta(t, tt.c.Points, score.TotalScore, 1e-9)
			} else {
				assert.Zero(t, score.TotalScore)
			}
		})
	}
}
