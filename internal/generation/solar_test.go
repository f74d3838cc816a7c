package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"microgrid-planner/internal/model"
)

func solarSite(irradiance, temperature []float64) model.SiteProfile {
	return model.SiteProfile{
		Name:          "test",
		IrradianceWm2: irradiance,
		WindSpeedMs:   make([]float64, len(irradiance)),
		TemperatureC:  temperature,
	}
}

func TestAddSolar(t *testing.T) {
	asset := model.GenerationAsset{
		Name:           "pv",
		Technology:     model.TechSolar,
		CapacityKW:     100,
		DeratingFactor: 0.86,
	}

	t.Run("zero irradiance gives zero output", func(t *testing.T) {
		site := solarSite([]float64{0, 0, 0}, []float64{10, 10, 10})
		out := make([]float64, 3)
		addSolar(out, site, asset)
		assert.Equal(t, []float64{0, 0, 0}, out)
	})

	t.Run("reference irradiance gives derated nameplate", func(t *testing.T) {
		site := solarSite([]float64{1000}, []float64{0})
		out := make([]float64, 1)
		addSolar(out, site, asset)
		assert.InDelta(t, 86.0, out[0], 1e-9)
	})

	t.Run("output scales linearly with irradiance", func(t *testing.T) {
		site := solarSite([]float64{500}, []float64{0})
		out := make([]float64, 1)
		addSolar(out, site, asset)
		assert.InDelta(t, 43.0, out[0], 1e-9)
	})

	t.Run("temperature coefficient derates hot hours", func(t *testing.T) {
		warm := asset
		warm.TempCoeffPerC = -0.004
		// Ambient 25 at full sun puts the cell at 50, 25 above STC.
		site := solarSite([]float64{1000}, []float64{25})
		out := make([]float64, 1)
		addSolar(out, site, warm)
		assert.InDelta(t, 86.0*(1-0.004*25), out[0], 1e-9)
	})

	t.Run("cold hours can exceed STC up to the overrating cap", func(t *testing.T) {
		cold := asset
		cold.DeratingFactor = 1.0
		cold.TempCoeffPerC = -0.004
		cold.OverratingAllowance = 1.05

		// Cell at -25+25=0, 25 below STC: raw factor 1.1, capped at 1.05.
		site := solarSite([]float64{1000}, []float64{-25})
		out := make([]float64, 1)
		addSolar(out, site, cold)
		assert.InDelta(t, 105.0, out[0], 1e-9)
	})

	t.Run("hard cap without overrating allowance", func(t *testing.T) {
		cold := asset
		cold.DeratingFactor = 1.0
		cold.TempCoeffPerC = -0.004
		site := solarSite([]float64{1000}, []float64{-25})
		out := make([]float64, 1)
		addSolar(out, site, cold)
		assert.InDelta(t, 100.0, out[0], 1e-9)
	})

	t.Run("accumulates onto existing output", func(t *testing.T) {
		site := solarSite([]float64{1000}, []float64{0})
		out := []float64{7}
		addSolar(out, site, asset)
		assert.InDelta(t, 93.0, out[0], 1e-9)
	})
}

func TestRunValidates(t *testing.T) {
	good := model.GenerationAsset{
		Name:           "pv",
		Technology:     model.TechSolar,
		CapacityKW:     100,
		DeratingFactor: 0.86,
	}

	t.Run("rejects short weather series", func(t *testing.T) {
		site := solarSite([]float64{1000}, []float64{20})
		_, err := Run(site, []model.GenerationAsset{good})
		var dataErr *model.DataError
		assert.ErrorAs(t, err, &dataErr)
	})

	t.Run("rejects invalid asset", func(t *testing.T) {
		site := fullYearSite(0, 0, 20)
		bad := good
		bad.CapacityKW = -1
		_, err := Run(site, []model.GenerationAsset{bad})
		var cfgErr *model.ConfigurationError
		assert.ErrorAs(t, err, &cfgErr)
	})

	t.Run("splits totals by technology", func(t *testing.T) {
		site := fullYearSite(1000, 12, 20)
		wind := model.GenerationAsset{
			Name:          "wt",
			Technology:    model.TechWind,
			CapacityKW:    50,
			CutInSpeedMs:  3,
			RatedSpeedMs:  12,
			CutOutSpeedMs: 25,
		}
		out, err := Run(site, []model.GenerationAsset{good, wind})
		assert.NoError(t, err)
		assert.InDelta(t, 86.0, out.SolarKW[0], 1e-9)
		assert.InDelta(t, 50.0, out.WindKW[0], 1e-9)
		assert.InDelta(t, 136.0, out.TotalKW[0], 1e-9)
	})
}

// fullYearSite builds a constant-weather year.
func fullYearSite(ghi, wind, temp float64) model.SiteProfile {
	h := model.HoursPerYear
	site := model.SiteProfile{
		Name:          "const",
		IrradianceWm2: make([]float64, h),
		WindSpeedMs:   make([]float64, h),
		TemperatureC:  make([]float64, h),
	}
	for t := 0; t < h; t++ {
		site.IrradianceWm2[t] = ghi
		site.WindSpeedMs[t] = wind
		site.TemperatureC[t] = temp
	}
	return site
}
