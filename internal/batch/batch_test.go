package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microgrid-planner/internal/model"
)

func testCase(name string, capacityKW float64) Case {
	h := model.HoursPerYear
	site := model.SiteProfile{
		Name:          "const",
		IrradianceWm2: make([]float64, h),
		WindSpeedMs:   make([]float64, h),
		TemperatureC:  make([]float64, h),
	}
	demand := make([]float64, h)
	for t := 0; t < h; t++ {
		if t%24 >= 8 && t%24 < 16 {
			site.IrradianceWm2[t] = 1000
		}
		demand[t] = 100
	}
	return Case{
		Name: name,
		Site: site,
		Load: model.LoadProfile{Name: "flat", DemandKW: demand},
		Assets: []model.GenerationAsset{{
			Name:           "pv",
			Technology:     model.TechSolar,
			CapacityKW:     capacityKW,
			DeratingFactor: 1.0,
		}},
		Grid: model.GridTied,
		Economics: model.EconomicConfig{
			CapitalCostUSD:       capacityKW * 800,
			DiscountRate:         0.08,
			LifetimeYears:        25,
			ImportPriceUSDPerKWh: 0.15,
			ExportPriceUSDPerKWh: 0.05,
		},
	}
}

func TestRunnerPreservesOrder(t *testing.T) {
	cases := []Case{
		testCase("small", 100),
		testCase("medium", 300),
		testCase("large", 600),
	}

	outcomes := NewRunner(2).Run(context.Background(), cases)
	require.Len(t, outcomes, 3)
	for i, o := range outcomes {
		assert.Equal(t, cases[i].Name, o.Name)
		require.NoError(t, o.Err)
		require.NotNil(t, o.KPIs)
		assert.NotEmpty(t, o.ID)
	}
	assert.NotEqual(t, outcomes[0].ID, outcomes[1].ID)
}

func TestRunnerMatchesSequential(t *testing.T) {
	cases := []Case{
		testCase("a", 150),
		testCase("b", 450),
	}

	parallel := NewRunner(4).Run(context.Background(), cases)
	sequential := NewRunner(1).Run(context.Background(), cases)

	require.Len(t, parallel, 2)
	for i := range cases {
		require.NoError(t, parallel[i].Err)
		require.NoError(t, sequential[i].Err)
		assert.Equal(t, sequential[i].KPIs, parallel[i].KPIs)
		assert.Equal(t, sequential[i].Result.Records, parallel[i].Result.Records)
	}
}

func TestRunnerIsolatesFailures(t *testing.T) {
	bad := testCase("bad", 100)
	bad.Load.DemandKW = bad.Load.DemandKW[:100] // wrong horizon

	outcomes := NewRunner(2).Run(context.Background(), []Case{
		testCase("good", 100),
		bad,
	})
	require.Len(t, outcomes, 2)
	assert.NoError(t, outcomes[0].Err)
	assert.Error(t, outcomes[1].Err)
	assert.Nil(t, outcomes[1].Result)
}

func TestRunnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := NewRunner(1).Run(ctx, []Case{testCase("a", 100), testCase("b", 100)})
	require.Len(t, outcomes, 2)
	// Every case is accounted for: either it ran to completion before
	// the cancellation was observed, or it carries the context error.
	for _, o := range outcomes {
		if o.Err != nil {
			assert.ErrorIs(t, o.Err, context.Canceled)
			assert.Nil(t, o.KPIs)
		} else {
			assert.NotNil(t, o.KPIs)
		}
	}
}

func TestRankByNPV(t *testing.T) {
	mk := func(name string, npv float64, err error) Outcome {
		o := Outcome{ID: name, Name: name, Err: err}
		if err == nil {
			o.KPIs = &model.KPISet{NPVUSD: npv}
		}
		return o
	}

	ranked := RankByNPV([]Outcome{
		mk("low", -5000, nil),
		mk("broken", 0, assert.AnError),
		mk("high", 9000, nil),
		mk("mid", 100, nil),
	})

	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].Name)
	assert.Equal(t, "mid", ranked[1].Name)
	assert.Equal(t, "low", ranked[2].Name)
}
