package generation

import "microgrid-planner/internal/model"

// Cell temperature model constants. NOCT-style offset: cells run hotter
// than ambient in proportion to irradiance.
const (
	noctCellRiseC      = 25.0 // cell temperature rise at reference irradiance, °C
	referenceCellTempC = 25.0 // STC cell temperature, °C
)

// addSolar accumulates one PV asset's hourly output into dst.
//
// output[t] = capacity · (GHI[t] / G_ref) · derating · tempCorrection(t)
// clamped to [0, capacity · overrating].
func addSolar(dst []float64, site model.SiteProfile, a model.GenerationAsset) {
	gRef := a.ReferenceIrradiance
	if gRef == 0 {
		gRef = model.DefaultReferenceIrradiance
	}
	over := a.OverratingAllowance
	if over == 0 {
		over = 1.0
	}
	capKW := a.CapacityKW
	maxKW := capKW * over

	for t := range dst {
		ghi := site.IrradianceWm2[t]
		p := capKW * (ghi / gRef) * a.DeratingFactor * tempCorrection(a, site.TemperatureC[t], ghi, gRef)
		if p < 0 {
			p = 0
		}
		if p > maxKW {
			p = maxKW
		}
		dst[t] += p
	}
}

// tempCorrection derates output linearly with cell temperature above the
// STC reference. TempCoeffPerC is typically around -0.004/°C.
func tempCorrection(a model.GenerationAsset, ambientC, ghi, gRef float64) float64 {
	if a.TempCoeffPerC == 0 {
		return 1
	}
	cellC := ambientC + noctCellRiseC*(ghi/gRef)
	f := 1 + a.TempCoeffPerC*(cellC-referenceCellTempC)
	if f < 0 {
		return 0
	}
	return f
}
