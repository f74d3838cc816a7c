package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microgrid-planner/internal/model"
)

func TestLevelizedCost(t *testing.T) {
	t.Run("undiscounted reduces to cost over energy", func(t *testing.T) {
		econ := model.EconomicConfig{
			CapitalCostUSD: 1000,
			AnnualOpexUSD:  100,
			DiscountRate:   0,
			LifetimeYears:  10,
		}
		lcoe, err := levelizedCost(econ, 5000)
		require.NoError(t, err)
		// (1000 + 10*100) / (10*5000)
		assert.InDelta(t, 0.04, lcoe, 1e-12)
	})

	t.Run("discounting raises the capital share", func(t *testing.T) {
		flat := model.EconomicConfig{CapitalCostUSD: 1000, DiscountRate: 0, LifetimeYears: 20}
		steep := flat
		steep.DiscountRate = 0.08

		flatLCOE, err := levelizedCost(flat, 5000)
		require.NoError(t, err)
		steepLCOE, err := levelizedCost(steep, 5000)
		require.NoError(t, err)
		assert.Greater(t, steepLCOE, flatLCOE)
	})

	t.Run("zero delivered energy is an economic error", func(t *testing.T) {
		econ := model.EconomicConfig{CapitalCostUSD: 1000, LifetimeYears: 10}
		_, err := levelizedCost(econ, 0)
		var econErr *model.EconomicError
		assert.ErrorAs(t, err, &econErr)
	})
}

func TestNetPresentValue(t *testing.T) {
	t.Run("undiscounted sums benefits minus capital", func(t *testing.T) {
		econ := model.EconomicConfig{CapitalCostUSD: 1000, DiscountRate: 0, LifetimeYears: 10}
		assert.InDelta(t, -1000+10*200, netPresentValue(econ, 200), 1e-9)
	})

	t.Run("discounting shrinks future benefits", func(t *testing.T) {
		econ := model.EconomicConfig{CapitalCostUSD: 1000, DiscountRate: 0.08, LifetimeYears: 10}
		npv := netPresentValue(econ, 200)
		assert.Less(t, npv, -1000+10*200.0)
		assert.Greater(t, npv, -1000.0)
	})

	t.Run("negative benefit can only lose money", func(t *testing.T) {
		econ := model.EconomicConfig{CapitalCostUSD: 1000, DiscountRate: 0.08, LifetimeYears: 10}
		assert.Less(t, netPresentValue(econ, -50), -1000.0)
	})
}

func TestPayback(t *testing.T) {
	t.Run("interpolates within the crossing year", func(t *testing.T) {
		econ := model.EconomicConfig{CapitalCostUSD: 100, LifetimeYears: 10}
		p := payback(econ, 40, false)
		require.True(t, p.Reached)
		assert.InDelta(t, 2.5, p.Years, 1e-9)
	})

	t.Run("zero capital pays back immediately", func(t *testing.T) {
		econ := model.EconomicConfig{CapitalCostUSD: 0, LifetimeYears: 10}
		p := payback(econ, 40, false)
		require.True(t, p.Reached)
		assert.Equal(t, 0.0, p.Years)
	})

	t.Run("never reached within lifetime", func(t *testing.T) {
		econ := model.EconomicConfig{CapitalCostUSD: 1000, LifetimeYears: 25}
		p := payback(econ, 10, false)
		assert.False(t, p.Reached)
	})

	t.Run("negative benefit never pays back", func(t *testing.T) {
		econ := model.EconomicConfig{CapitalCostUSD: 1000, LifetimeYears: 25}
		p := payback(econ, -10, false)
		assert.False(t, p.Reached)
	})

	t.Run("discounted payback is later than simple", func(t *testing.T) {
		econ := model.EconomicConfig{CapitalCostUSD: 100, DiscountRate: 0.08, LifetimeYears: 10}
		simple := payback(econ, 40, false)
		discounted := payback(econ, 40, true)
		require.True(t, simple.Reached)
		require.True(t, discounted.Reached)
		assert.Greater(t, discounted.Years, simple.Years)
	})
}

func TestComputeStats(t *testing.T) {
	t.Run("empty series", func(t *testing.T) {
		assert.Equal(t, model.SeriesStats{}, computeStats(nil))
	})

	t.Run("constant series", func(t *testing.T) {
		s := computeStats([]float64{5, 5, 5, 5})
		assert.Equal(t, 5.0, s.Min)
		assert.Equal(t, 5.0, s.Max)
		assert.Equal(t, 5.0, s.Mean)
		assert.Equal(t, 5.0, s.P05)
		assert.Equal(t, 5.0, s.P95)
	})

	t.Run("linear ramp", func(t *testing.T) {
		series := make([]float64, 101)
		for i := range series {
			series[i] = float64(i)
		}
		s := computeStats(series)
		assert.Equal(t, 0.0, s.Min)
		assert.Equal(t, 100.0, s.Max)
		assert.InDelta(t, 50, s.Mean, 1e-9)
		assert.InDelta(t, 5, s.P05, 1e-9)
		assert.InDelta(t, 95, s.P95, 1e-9)
	})
}
