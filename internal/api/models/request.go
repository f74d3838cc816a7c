package models

// SimulateRequest represents the request body for running a simulation
type SimulateRequest struct {
	Weather WeatherSourceConfig `json:"weather" binding:"required"`
	Config  ScenarioConfig      `json:"config" binding:"required"`
	Options SimulateOptions     `json:"options,omitempty"`
}

// WeatherSourceConfig defines where hourly weather comes from
type WeatherSourceConfig struct {
	Type      string  `json:"type" binding:"required"` // "openmeteo" or "file"
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	Year      int     `json:"year,omitempty"`
	File      string  `json:"file,omitempty"` // filename under WEATHER_DIR, without .json
}

// ScenarioConfig contains site, asset, and economic configuration
type ScenarioConfig struct {
	Name        string          `json:"name,omitempty"`
	StorageFile string          `json:"storage_file,omitempty"`
	Load        LoadConfig      `json:"load"`
	Solar       SolarConfig     `json:"solar,omitempty"`
	Wind        WindConfig      `json:"wind,omitempty"`
	Storage     StorageConfig   `json:"storage,omitempty"`
	Grid        GridConfig      `json:"grid"`
	Economics   EconomicsConfig `json:"economics,omitempty"`
}

// LoadConfig selects a synthetic demand profile
type LoadConfig struct {
	Profile              string  `json:"profile,omitempty"` // default: "continuous"
	AnnualConsumptionGWh float64 `json:"annual_consumption_gwh"`
}

// SolarConfig defines the PV array
type SolarConfig struct {
	CapacityKW          float64 `json:"capacity_kw"`
	DeratingFactor      float64 `json:"derating_factor,omitempty"`
	TempCoeffPerC       float64 `json:"temp_coeff_per_c,omitempty"`
	OverratingAllowance float64 `json:"overrating_allowance,omitempty"`
}

// WindConfig defines the turbine fleet
type WindConfig struct {
	Turbine string `json:"turbine,omitempty"`
	Count   int    `json:"count,omitempty"`
	Curve   string `json:"curve,omitempty"` // "linear" or "cubic"
}

// StorageConfig defines battery parameters
type StorageConfig struct {
	CapacityKWh         float64 `json:"capacity_kwh"`
	PowerKW             float64 `json:"power_kw"`
	RoundTripEfficiency float64 `json:"round_trip_efficiency,omitempty"`
	ChargeEfficiency    float64 `json:"charge_efficiency,omitempty"`
	DischargeEfficiency float64 `json:"discharge_efficiency,omitempty"`
	MinSOC              float64 `json:"min_soc,omitempty"`
	MaxSOC              float64 `json:"max_soc,omitempty"`
	InitialSOC          float64 `json:"initial_soc,omitempty"`
}

// GridConfig defines the grid connection policy
type GridConfig struct {
	ImportAllowed bool `json:"import_allowed"`
	ExportAllowed bool `json:"export_allowed"`
}

// EconomicsConfig defines project economics
type EconomicsConfig struct {
	CapitalCostUSD          float64 `json:"capital_cost_usd"`
	AnnualOpexUSD           float64 `json:"annual_opex_usd,omitempty"`
	DiscountRate            float64 `json:"discount_rate,omitempty"`
	LifetimeYears           int     `json:"lifetime_years,omitempty"`
	ImportPriceUSDPerKWh    float64 `json:"import_price_usd_per_kwh,omitempty"`
	ExportPriceUSDPerKWh    float64 `json:"export_price_usd_per_kwh,omitempty"`
	EmissionsFactorKgPerKWh float64 `json:"emissions_factor_kg_per_kwh,omitempty"`
}

// SimulateOptions contains optional simulation parameters
type SimulateOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}

// CompareRequest represents a request to compare multiple scenarios
// against the same weather year
type CompareRequest struct {
	Weather    WeatherSourceConfig `json:"weather" binding:"required"`
	BaseConfig ScenarioConfig      `json:"base_config" binding:"required"`
	Variations []ScenarioVariation `json:"variations" binding:"required"`
	Workers    int                 `json:"workers,omitempty"` // 0 = one per CPU
}

// ScenarioVariation defines a variation to test
type ScenarioVariation struct {
	Name   string         `json:"name" binding:"required"`
	Config ScenarioConfig `json:"config"`
}
