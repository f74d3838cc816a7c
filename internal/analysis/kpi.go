// Package analysis derives KPIs from a completed simulation.
package analysis

import (
	"microgrid-planner/internal/model"
)

// Analyze computes the KPI set for a simulation result.
//
// The simulated year is taken as representative: annual energy and cash
// flows repeat for every year of the project lifetime. Hour steps are
// one hour, so summed kW values are kWh directly.
//
// Returns EconomicError when no energy was delivered to load at all
// (degenerate case C); every metric in the returned KPISet is finite.
func Analyze(
	result *model.SimulationResult,
	assets []model.GenerationAsset,
	storage model.StorageAsset,
	econ model.EconomicConfig,
) (*model.KPISet, error) {
	if result == nil || len(result.Records) == 0 {
		return nil, &model.DataError{Series: "result", Reason: "no hourly records to analyze"}
	}
	if err := econ.Validate(); err != nil {
		return nil, err
	}

	k := &model.KPISet{}

	netLoad := make([]float64, len(result.Records))
	loadSeries := make([]float64, len(result.Records))
	socPctSum := 0.0
	for i, r := range result.Records {
		k.TotalLoadKWh += r.LoadKW
		k.TotalGenerationKWh += r.GenerationKW
		k.TotalSolarKWh += r.SolarKW
		k.TotalWindKWh += r.WindKW
		k.TotalImportKWh += r.GridImportKW
		k.TotalExportKWh += r.GridExportKW
		k.TotalChargeKWh += r.ChargeKW
		k.TotalDischargeKWh += r.DischargeKW
		k.TotalCurtailmentKWh += r.CurtailmentKW
		k.UnmetLoadKWh += r.UnmetLoadKW
		if r.UnmetLoadKW > 0 {
			k.UnmetLoadHours++
		}
		loadSeries[i] = r.LoadKW
		netLoad[i] = r.LoadKW - r.GenerationKW
		socPctSum += r.SOCPercent
	}

	deliveredKWh := k.TotalLoadKWh - k.UnmetLoadKWh
	if deliveredKWh <= 0 {
		return nil, &model.EconomicError{Reason: "no energy delivered to load; LCOE and NPV are undefined"}
	}

	// Load served locally, i.e. by generation directly or via storage.
	// Without the system this energy would have been grid imports.
	servedLocallyKWh := k.TotalLoadKWh - k.UnmetLoadKWh - k.TotalImportKWh
	if servedLocallyKWh < 0 {
		servedLocallyKWh = 0
	}

	k.RenewableFraction = servedLocallyKWh / k.TotalLoadKWh
	k.GridDependency = k.TotalImportKWh / k.TotalLoadKWh
	if k.TotalGenerationKWh > 0 {
		k.SelfConsumption = (k.TotalGenerationKWh - k.TotalExportKWh - k.TotalCurtailmentKWh) / k.TotalGenerationKWh
	}

	hours := float64(result.HorizonHours)
	if capKW := totalCapacityKW(assets, model.TechSolar); capKW > 0 {
		k.SolarCapacityFactor = k.TotalSolarKWh / (capKW * hours)
	}
	if capKW := totalCapacityKW(assets, model.TechWind); capKW > 0 {
		k.WindCapacityFactor = k.TotalWindKWh / (capKW * hours)
	}
	if storage.Enabled() {
		k.StorageCycles = k.TotalChargeKWh / storage.CapacityKWh
		k.AverageSOCPercent = socPctSum / float64(len(result.Records))
	}

	k.LoadStats = computeStats(loadSeries)
	k.NetLoadStats = computeStats(netLoad)

	k.AnnualImportCostUSD = k.TotalImportKWh * econ.ImportPriceUSDPerKWh
	k.AnnualExportRevenueUSD = k.TotalExportKWh * econ.ExportPriceUSDPerKWh

	lcoe, err := levelizedCost(econ, deliveredKWh)
	if err != nil {
		return nil, err
	}
	k.LCOEUSDPerKWh = lcoe

	// Yearly net benefit: avoided import cost plus export revenue minus
	// operating cost. The avoided cost is the local share of served load
	// valued at the import tariff.
	annualBenefitUSD := servedLocallyKWh*econ.ImportPriceUSDPerKWh + k.AnnualExportRevenueUSD - econ.AnnualOpexUSD

	k.NPVUSD = netPresentValue(econ, annualBenefitUSD)
	k.SimplePayback = payback(econ, annualBenefitUSD, false)
	k.DiscountedPayback = payback(econ, annualBenefitUSD, true)

	k.CO2AvoidedTons = servedLocallyKWh * econ.EmissionsFactorKgPerKWh / 1000

	return k, nil
}

func totalCapacityKW(assets []model.GenerationAsset, tech model.Technology) float64 {
	sum := 0.0
	for _, a := range assets {
		if a.Technology == tech {
			sum += a.CapacityKW
		}
	}
	return sum
}
