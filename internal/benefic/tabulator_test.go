package benefic

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/reftables"
	"github.com/wonny/jyotish/backend/pkg/logger"
)

func testTabulator(t *testing.T) *Tabulator {
	t.Helper()
	tables, err := reftables.New()
	require.NoError(t, err)
	return New(tables, logger.Nop(), nil)
}

func natalChart(lons map[contracts.Body]float64) *contracts.ChartSnapshot {
	snap := &contracts.ChartSnapshot{
		JulianDay: 2451545.0,
		Positions: make(map[contracts.Body]contracts.PlanetPosition),
	}
	for body, lon := range lons {
		snap.Positions[body] = contracts.NewPlanetPosition(body, lon)
	}
	return snap
}

func spreadChart() *contracts.ChartSnapshot {
	return natalChart(map[contracts.Body]float64{
		contracts.Sun:     10,  // Aries
		contracts.Moon:    95,  // Cancer
		contracts.Mars:    290, // Capricorn
		contracts.Mercury: 170, // Virgo
		contracts.Jupiter: 100, // Cancer
		contracts.Venus:   350, // Pisces
		contracts.Saturn:  190, // Libra
	})
}

func TestTabulate_CompleteChart(t *testing.T) {
	tab := testTabulator(t)

	res, err := tab.Tabulate(spreadChart())
	require.NoError(t, err)

	require.Len(t, res.Tables, len(contracts.ClassicalBodies))
	for _, body := range contracts.ClassicalBodies {
		table := res.Tables[body]
		require.NotNil(t, table, "body %s", body)
		assert.Equal(t, body, table.Body)
		for sign, p := range table.Points {
			assert.GreaterOrEqual(t, p, 0, "%s in %s", body, contracts.Sign(sign))
			assert.LessOrEqual(t, p, contracts.BenefitPointCap, "%s in %s", body, contracts.Sign(sign))
		}
		assert.Equal(t, table.Total(), res.BodyTotals[body])
		assert.LessOrEqual(t, res.BodyTotals[body], contracts.BenefitMaxPerBody)
	}

	assert.LessOrEqual(t, res.GrandTotal(), contracts.BenefitMaxPerBody*len(contracts.ClassicalBodies))
	assert.False(t, res.Degraded)
}

func TestTabulate_SignClassificationDisjoint(t *testing.T) {
	tab := testTabulator(t)

	res, err := tab.Tabulate(spreadChart())
	require.NoError(t, err)

	weak := make(map[contracts.Sign]bool)
	for _, s := range res.WeakSigns {
		weak[s] = true
	}
	for _, s := range res.StrongSigns {
		assert.False(t, weak[s], "sign %s both strong and weak", s)
	}
	for _, avg := range res.SignAverages {
		assert.GreaterOrEqual(t, avg, 0)
		assert.LessOrEqual(t, avg, contracts.BenefitPointCap)
	}
}

func TestTabulate_ExaltationScoresHighest(t *testing.T) {
	tab := testTabulator(t)

	res, err := tab.Tabulate(spreadChart())
	require.NoError(t, err)

	// Moon exalted in Taurus must outscore Moon in its enemy-less worst
	// dignity cells; dignity is the dominant component
	moon := res.Tables[contracts.Moon]
	assert.GreaterOrEqual(t, moon.Points[contracts.Taurus], moon.Points[contracts.Aquarius])
}

func TestTabulate_CellClampedAtCap(t *testing.T) {
	tab := testTabulator(t)

	// Every body at 0° Aries puts six bodies in kendra to Cancer while the
	// Moon owns it; raw points exceed the cap
	lons := make(map[contracts.Body]float64)
	for _, b := range contracts.ClassicalBodies {
		lons[b] = 0
	}
	res, err := tab.Tabulate(natalChart(lons))
	require.NoError(t, err)

	assert.Equal(t, contracts.BenefitPointCap, res.Tables[contracts.Moon].Points[contracts.Cancer])
}

func TestTabulate_CapHoldsForRandomCharts(t *testing.T) {
	tab := testTabulator(t)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		lons := make(map[contracts.Body]float64, len(contracts.ClassicalBodies))
		for _, body := range contracts.ClassicalBodies {
			lons[body] = rng.Float64() * 360
		}

		res, err := tab.Tabulate(natalChart(lons))
		require.NoError(t, err)

		for _, body := range contracts.ClassicalBodies {
			for sign, p := range res.Tables[body].Points {
				if p < 0 || p > contracts.BenefitPointCap {
					t.Fatalf("chart %d: %s in %s = %d, outside [0, %d] (lons %v)",
						i, body, contracts.Sign(sign), p, contracts.BenefitPointCap, lons)
				}
			}
		}
		assert.LessOrEqual(t, res.GrandTotal(), len(contracts.ClassicalBodies)*contracts.BenefitMaxPerBody)
	}
}

func TestTabulate_DefaultTimeCarriesToResult(t *testing.T) {
	tab := testTabulator(t)

	chart := spreadChart()
	chart.UsedDefaultTime = true

	res, err := tab.Tabulate(chart)
	require.NoError(t, err)

	// Solar-noon precision must be visible to API consumers, not just
	// the snapshot
	assert.True(t, res.UsedDefaultTime)
	assert.False(t, res.Degraded, "default time is reduced precision, not degradation")
}

func TestTabulate_MissingBodyFails(t *testing.T) {
	tab := testTabulator(t)

	chart := spreadChart()
	delete(chart.Positions, contracts.Saturn)

	_, err := tab.Tabulate(chart)
	var ince *contracts.IncompleteNatalChartError
	require.ErrorAs(t, err, &ince)
	assert.Equal(t, []contracts.Body{contracts.Saturn}, ince.Missing)
	assert.Contains(t, err.Error(), "Saturn")
}

func TestTabulate_UnknownBodyCountsAsMissing(t *testing.T) {
	tab := testTabulator(t)

	chart := spreadChart()
	chart.Positions[contracts.Venus] = contracts.UnknownPosition(contracts.Venus)

	_, err := tab.Tabulate(chart)
	var ince *contracts.IncompleteNatalChartError
	require.ErrorAs(t, err, &ince)
	assert.Equal(t, []contracts.Body{contracts.Venus}, ince.Missing)
}

func TestTabulate_UnknownNodeDoesNotFail(t *testing.T) {
	tab := testTabulator(t)

	chart := spreadChart()
	chart.Positions[contracts.Rahu] = contracts.UnknownPosition(contracts.Rahu)
	chart.Unreliable = []contracts.Body{contracts.Rahu}

	res, err := tab.Tabulate(chart)
	require.NoError(t, err)
	assert.True(t, res.Degraded)
}

func TestTabulate_ConcurrentIdenticalCharts(t *testing.T) {
	tab := testTabulator(t)

	reference, err := tab.Tabulate(spreadChart())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := tab.Tabulate(spreadChart())
			assert.NoError(t, err)
			assert.Equal(t, reference, res)
		}()
	}
	wg.Wait()
}
