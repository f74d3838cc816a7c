// Package dispatch implements the per-hour storage decision.
//
// Policy, in priority order on both sides of the balance:
// self-consumption first, then storage, then the grid. Curtailment and
// unmet load are last resorts, used only when storage is saturated and
// the corresponding grid path is disallowed.
package dispatch

import (
	"math"

	"microgrid-planner/internal/model"
)

// Flows is the outcome of one hour of dispatch. All power values are kW
// on the AC side of the storage system; SOCKWh is the stored energy
// after the hour. With one-hour steps, kW values double as kWh.
type Flows struct {
	ChargeKW      float64
	DischargeKW   float64
	GridImportKW  float64
	GridExportKW  float64
	CurtailmentKW float64
	UnmetLoadKW   float64
	SOCKWh        float64
}

// Step decides the storage action for a single hour.
//
// netKW is total generation minus load for the hour. socKWh is the
// stored energy entering the hour; the new value is returned in Flows,
// never kept inside this package, so independent runs share no state.
func Step(storage model.StorageAsset, grid model.GridConnection, socKWh, netKW float64) Flows {
	f := Flows{SOCKWh: socKWh}

	chargeEff, dischargeEff := storage.Efficiencies()

	if netKW >= 0 {
		// Surplus: charge first, then export, then curtail.
		if storage.Enabled() {
			headroom := (storage.MaxEnergyKWh() - socKWh) / chargeEff
			f.ChargeKW = min3(netKW, storage.PowerKW, headroom)
			if f.ChargeKW < 0 {
				f.ChargeKW = 0
			}
			f.SOCKWh = socKWh + f.ChargeKW*chargeEff
		}
		residual := netKW - f.ChargeKW
		if grid.ExportAllowed {
			f.GridExportKW = residual
		} else {
			f.CurtailmentKW = residual
		}
	} else {
		// Deficit: discharge first, then import, then record unmet load.
		deficit := -netKW
		if storage.Enabled() {
			available := (socKWh - storage.MinEnergyKWh()) * dischargeEff
			f.DischargeKW = min3(deficit, storage.PowerKW, available)
			if f.DischargeKW < 0 {
				f.DischargeKW = 0
			}
			f.SOCKWh = socKWh - f.DischargeKW/dischargeEff
		}
		residual := deficit - f.DischargeKW
		if grid.ImportAllowed {
			f.GridImportKW = residual
		} else {
			f.UnmetLoadKW = residual
		}
	}

	if storage.Enabled() {
		f.reconcileClamp(storage, grid, chargeEff, dischargeEff)
	}
	return f
}

// reconcileClamp pins the SOC back inside its bounds after floating-point
// drift and folds the clamped energy into the same hour's flows, so the
// hour still conserves energy.
func (f *Flows) reconcileClamp(storage model.StorageAsset, grid model.GridConnection, chargeEff, dischargeEff float64) {
	if over := f.SOCKWh - storage.MaxEnergyKWh(); over > 0 {
		// Stored too much: give the excess back as AC-side surplus.
		excessAC := over / chargeEff
		if excessAC > f.ChargeKW {
			excessAC = f.ChargeKW
		}
		f.ChargeKW -= excessAC
		if grid.ExportAllowed {
			f.GridExportKW += excessAC
		} else {
			f.CurtailmentKW += excessAC
		}
		f.SOCKWh = storage.MaxEnergyKWh()
	}
	if under := storage.MinEnergyKWh() - f.SOCKWh; under > 0 {
		// Drew too much: take the shortfall back off the discharge.
		shortAC := under * dischargeEff
		if shortAC > f.DischargeKW {
			shortAC = f.DischargeKW
		}
		f.DischargeKW -= shortAC
		if grid.ImportAllowed {
			f.GridImportKW += shortAC
		} else {
			f.UnmetLoadKW += shortAC
		}
		f.SOCKWh = storage.MinEnergyKWh()
	}
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}
