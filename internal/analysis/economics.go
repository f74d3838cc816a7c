package analysis

import (
	"math"

	"microgrid-planner/internal/model"
)

// levelizedCost computes LCOE in $/kWh: discounted lifecycle cost of
// capital plus operations over discounted energy delivered to load.
func levelizedCost(econ model.EconomicConfig, deliveredAnnualKWh float64) (float64, error) {
	npvCosts := econ.CapitalCostUSD
	npvEnergy := 0.0
	for year := 1; year <= econ.LifetimeYears; year++ {
		df := discountFactor(econ.DiscountRate, year)
		npvCosts += econ.AnnualOpexUSD * df
		npvEnergy += deliveredAnnualKWh * df
	}
	if npvEnergy <= 0 {
		return 0, &model.EconomicError{Reason: "discounted delivered energy is zero; LCOE undefined"}
	}
	return npvCosts / npvEnergy, nil
}

// netPresentValue discounts the yearly net benefit over the project
// lifetime and subtracts the initial capital cost.
func netPresentValue(econ model.EconomicConfig, annualBenefitUSD float64) float64 {
	npv := -econ.CapitalCostUSD
	for year := 1; year <= econ.LifetimeYears; year++ {
		npv += annualBenefitUSD * discountFactor(econ.DiscountRate, year)
	}
	return npv
}

// payback finds the first year in which cumulative net cash flow crosses
// zero, interpolating within that year. Reached is false when the flow
// never recovers the capital cost within the lifetime; that is a valid
// outcome, not an error.
func payback(econ model.EconomicConfig, annualBenefitUSD float64, discounted bool) model.PaybackResult {
	cum := -econ.CapitalCostUSD
	if cum >= 0 {
		return model.PaybackResult{Years: 0, Reached: true}
	}
	for year := 1; year <= econ.LifetimeYears; year++ {
		flow := annualBenefitUSD
		if discounted {
			flow *= discountFactor(econ.DiscountRate, year)
		}
		if flow > 0 && cum+flow >= 0 {
			frac := -cum / flow
			return model.PaybackResult{Years: float64(year-1) + frac, Reached: true}
		}
		cum += flow
	}
	return model.PaybackResult{Reached: false}
}

func discountFactor(rate float64, year int) float64 {
	return 1 / math.Pow(1+rate, float64(year))
}
