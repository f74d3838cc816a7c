// Package sim runs the hour-by-hour energy balance for one scenario.
package sim

import (
	"math"

	"github.com/google/uuid"

	"microgrid-planner/internal/dispatch"
	"microgrid-planner/internal/generation"
	"microgrid-planner/internal/model"
)

// ConservationTolerance is the relative tolerance for the per-hour
// energy-balance check.
const ConservationTolerance = 1e-6

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run executes the full-year simulation.
//
// The fold over hours is strictly sequential: hour t consumes the SOC
// produced by hour t-1, so there is no intra-run parallelism. All
// validation happens before the loop starts; once running, any failed
// conservation or SOC-bounds check aborts with a
// SimulationInvariantError instead of returning partial results.
//
// The returned result is a fresh value owned by the caller; the engine
// keeps no reference to it, so concurrent runs with distinct inputs are
// safe without locking.
func (e *Engine) Run(
	site model.SiteProfile,
	load model.LoadProfile,
	assets []model.GenerationAsset,
	storage model.StorageAsset,
	grid model.GridConnection,
) (*model.SimulationResult, error) {
	// Fail fast: generation.Run validates the site and every asset.
	gen, err := generation.Run(site, assets)
	if err != nil {
		return nil, err
	}
	h := site.Hours()
	if err := load.Validate(h); err != nil {
		return nil, err
	}
	if err := storage.Validate(); err != nil {
		return nil, err
	}

	result := &model.SimulationResult{
		RunID:        uuid.NewString(),
		HorizonHours: h,
		Records:      make([]model.HourlyRecord, 0, h),
	}

	soc := storage.InitialEnergyKWh()
	for t := 0; t < h; t++ {
		demand := load.DemandKW[t]
		total := gen.TotalKW[t]

		f := dispatch.Step(storage, grid, soc, total-demand)

		if err := checkHour(t, total, demand, f); err != nil {
			return nil, err
		}
		if err := checkSOC(t, storage, f.SOCKWh); err != nil {
			return nil, err
		}

		socPct := 0.0
		if storage.Enabled() {
			socPct = f.SOCKWh / storage.CapacityKWh * 100
		}
		result.Records = append(result.Records, model.HourlyRecord{
			Hour:          t,
			LoadKW:        demand,
			SolarKW:       gen.SolarKW[t],
			WindKW:        gen.WindKW[t],
			GenerationKW:  total,
			Action:        model.ActionFromFlows(f.ChargeKW, f.DischargeKW),
			ChargeKW:      f.ChargeKW,
			DischargeKW:   f.DischargeKW,
			SOCKWh:        f.SOCKWh,
			SOCPercent:    socPct,
			GridImportKW:  f.GridImportKW,
			GridExportKW:  f.GridExportKW,
			CurtailmentKW: f.CurtailmentKW,
			UnmetLoadKW:   f.UnmetLoadKW,
		})
		soc = f.SOCKWh
	}

	result.FinalSOCKWh = soc
	return result, nil
}

// checkHour verifies the hourly energy balance
//
//	generation + discharge + import + unmet = load + charge + export + curtailment
//
// within ConservationTolerance relative to the hour's gross flow. Unmet
// load sits on the supply side: it is the slice of demand nothing served.
func checkHour(t int, generationKW, loadKW float64, f dispatch.Flows) error {
	supply := generationKW + f.DischargeKW + f.GridImportKW + f.UnmetLoadKW
	use := loadKW + f.ChargeKW + f.GridExportKW + f.CurtailmentKW
	residual := supply - use

	scale := math.Max(1, math.Max(supply, use))
	if math.Abs(residual) > ConservationTolerance*scale {
		return &model.SimulationInvariantError{Hour: t, Check: "energy conservation", Residual: residual}
	}
	if f.ChargeKW > 0 && f.DischargeKW > 0 {
		return &model.SimulationInvariantError{Hour: t, Check: "simultaneous charge/discharge", Residual: f.ChargeKW}
	}
	return nil
}

// checkSOC verifies the post-hour SOC sits inside its configured bounds.
func checkSOC(t int, storage model.StorageAsset, socKWh float64) error {
	if !storage.Enabled() {
		return nil
	}
	eps := ConservationTolerance * storage.CapacityKWh
	if socKWh < storage.MinEnergyKWh()-eps {
		return &model.SimulationInvariantError{Hour: t, Check: "SOC lower bound", Residual: storage.MinEnergyKWh() - socKWh}
	}
	if socKWh > storage.MaxEnergyKWh()+eps {
		return &model.SimulationInvariantError{Hour: t, Check: "SOC upper bound", Residual: socKWh - storage.MaxEnergyKWh()}
	}
	return nil
}
