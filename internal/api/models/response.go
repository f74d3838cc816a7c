package models

// SimulateResponse represents the response from a simulation run
type SimulateResponse struct {
	ID      string      `json:"id"`
	Status  string      `json:"status"`
	Summary KPISummary  `json:"summary"`
	Ledger  []LedgerRow `json:"ledger,omitempty"`
}

// KPISummary contains the aggregated simulation results
type KPISummary struct {
	HorizonHours int     `json:"horizon_hours"`
	FinalSOCKWh  float64 `json:"final_soc_kwh"`

	TotalLoadKWh        float64 `json:"total_load_kwh"`
	TotalGenerationKWh  float64 `json:"total_generation_kwh"`
	TotalSolarKWh       float64 `json:"total_solar_kwh"`
	TotalWindKWh        float64 `json:"total_wind_kwh"`
	TotalImportKWh      float64 `json:"total_import_kwh"`
	TotalExportKWh      float64 `json:"total_export_kwh"`
	TotalChargeKWh      float64 `json:"total_charge_kwh"`
	TotalDischargeKWh   float64 `json:"total_discharge_kwh"`
	TotalCurtailmentKWh float64 `json:"total_curtailment_kwh"`
	UnmetLoadKWh        float64 `json:"unmet_load_kwh"`
	UnmetLoadHours      int     `json:"unmet_load_hours"`

	RenewableFraction   float64 `json:"renewable_fraction"`
	SelfConsumption     float64 `json:"self_consumption"`
	GridDependency      float64 `json:"grid_dependency"`
	SolarCapacityFactor float64 `json:"solar_capacity_factor"`
	WindCapacityFactor  float64 `json:"wind_capacity_factor"`
	StorageCycles       float64 `json:"storage_cycles"`
	AverageSOCPercent   float64 `json:"average_soc_percent"`

	LoadStats    SeriesStats `json:"load_stats"`
	NetLoadStats SeriesStats `json:"net_load_stats"`

	AnnualImportCostUSD    float64       `json:"annual_import_cost_usd"`
	AnnualExportRevenueUSD float64       `json:"annual_export_revenue_usd"`
	LCOEUSDPerKWh          float64       `json:"lcoe_usd_per_kwh"`
	NPVUSD                 float64       `json:"npv_usd"`
	SimplePayback          PaybackResult `json:"simple_payback"`
	DiscountedPayback      PaybackResult `json:"discounted_payback"`
	CO2AvoidedTons         float64       `json:"co2_avoided_tons"`
}

// SeriesStats summarizes an hourly series
type SeriesStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	P05  float64 `json:"p05"`
	P95  float64 `json:"p95"`
}

// PaybackResult is a payback period; years is omitted when the
// investment never pays back within the project lifetime
type PaybackResult struct {
	Years   float64 `json:"years"`
	Reached bool    `json:"reached"`
}

// LedgerRow represents one hour of the simulation ledger
type LedgerRow struct {
	Hour          int     `json:"hour"`
	LoadKW        float64 `json:"load_kw"`
	SolarKW       float64 `json:"solar_kw"`
	WindKW        float64 `json:"wind_kw"`
	GenerationKW  float64 `json:"generation_kw"`
	Action        string  `json:"action"` // "CHARGING", "DISCHARGING", "IDLE"
	ChargeKW      float64 `json:"charge_kw"`
	DischargeKW   float64 `json:"discharge_kw"`
	SOCKWh        float64 `json:"soc_kwh"`
	SOCPercent    float64 `json:"soc_percent"`
	GridImportKW  float64 `json:"grid_import_kw"`
	GridExportKW  float64 `json:"grid_export_kw"`
	CurtailmentKW float64 `json:"curtailment_kw"`
	UnmetLoadKW   float64 `json:"unmet_load_kw"`
}

// CompareResponse represents the response from a comparison, ranked
// descending by NPV
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Summary KPISummary `json:"summary"`
}

// ProfileInfo describes a synthetic load profile
type ProfileInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
