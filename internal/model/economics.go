package model

// GridConnection controls whether the site can trade with the grid.
// An off-grid site has both flags false; deficits then become unmet
// load and surpluses become curtailment once storage is saturated.
type GridConnection struct {
	ImportAllowed bool
	ExportAllowed bool
}

// OffGrid is the island-mode connection.
var OffGrid = GridConnection{}

// GridTied allows both import and export.
var GridTied = GridConnection{ImportAllowed: true, ExportAllowed: true}

// EconomicConfig holds the cost side of a scenario.
// Units:
// - CapitalCostUSD: total up-front investment, $
// - AnnualOpexUSD: $/year
// - DiscountRate: fraction per year (0.08 = 8%)
// - Tariffs: $/kWh
// - EmissionsFactorKgPerKWh: grid emissions intensity, kg CO2 per kWh
type EconomicConfig struct {
	CapitalCostUSD          float64
	AnnualOpexUSD           float64
	DiscountRate            float64
	LifetimeYears           int
	ImportPriceUSDPerKWh    float64
	ExportPriceUSDPerKWh    float64
	EmissionsFactorKgPerKWh float64
}

func (c EconomicConfig) Validate() error {
	if c.CapitalCostUSD < 0 {
		return &ConfigurationError{Field: "economics", Reason: "capital cost must be >= 0"}
	}
	if c.AnnualOpexUSD < 0 {
		return &ConfigurationError{Field: "economics", Reason: "annual opex must be >= 0"}
	}
	if c.DiscountRate < 0 || c.DiscountRate >= 1 {
		return &ConfigurationError{Field: "economics", Reason: "discount rate must be in [0, 1)"}
	}
	if c.LifetimeYears <= 0 {
		return &ConfigurationError{Field: "economics", Reason: "project lifetime must be > 0 years"}
	}
	if c.ImportPriceUSDPerKWh < 0 || c.ExportPriceUSDPerKWh < 0 {
		return &ConfigurationError{Field: "economics", Reason: "tariffs must be >= 0"}
	}
	if c.EmissionsFactorKgPerKWh < 0 {
		return &ConfigurationError{Field: "economics", Reason: "emissions factor must be >= 0"}
	}
	return nil
}
