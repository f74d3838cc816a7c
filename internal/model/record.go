package model

// HourlyRecord is one row of per-hour output: every energy flow for that
// hour plus the storage state it left behind. Hours are one-hour steps,
// so kW values double as kWh for the interval.
type HourlyRecord struct {
	Hour int

	LoadKW       float64
	SolarKW      float64
	WindKW       float64
	GenerationKW float64

	Action        Action
	ChargeKW      float64
	DischargeKW   float64
	SOCKWh        float64
	SOCPercent    float64
	GridImportKW  float64
	GridExportKW  float64
	CurtailmentKW float64
	UnmetLoadKW   float64
}

// SimulationResult holds the complete hourly series plus run metadata.
// It is created fresh on each run and owned by the caller afterwards;
// the engine keeps no reference to it.
type SimulationResult struct {
	RunID        string
	HorizonHours int

	Records []HourlyRecord

	FinalSOCKWh float64
}

// PaybackResult is the payback-period outcome. Reached is false when the
// cumulative net cash flow never crosses zero within the project
// lifetime; Years is meaningless in that case.
type PaybackResult struct {
	Years   float64
	Reached bool
}

// SeriesStats summarizes the distribution of an hourly series.
type SeriesStats struct {
	Min  float64
	Max  float64
	Mean float64
	P05  float64
	P95  float64
}

// KPISet is the scalar summary derived from a SimulationResult.
// Immutable once computed; never contains NaN or Inf.
type KPISet struct {
	// Technical.
	TotalLoadKWh        float64
	TotalGenerationKWh  float64
	TotalSolarKWh       float64
	TotalWindKWh        float64
	TotalImportKWh      float64
	TotalExportKWh      float64
	TotalChargeKWh      float64
	TotalDischargeKWh   float64
	TotalCurtailmentKWh float64
	UnmetLoadKWh        float64
	UnmetLoadHours      int

	RenewableFraction  float64 // share of load served without grid import
	SelfConsumption    float64 // share of generation not exported or curtailed
	GridDependency     float64 // share of load served by imports
	SolarCapacityFactor float64
	WindCapacityFactor  float64
	StorageCycles       float64
	AverageSOCPercent   float64

	LoadStats    SeriesStats
	NetLoadStats SeriesStats

	// Economic.
	AnnualImportCostUSD    float64
	AnnualExportRevenueUSD float64
	LCOEUSDPerKWh          float64
	NPVUSD                 float64
	SimplePayback          PaybackResult
	DiscountedPayback      PaybackResult
	CO2AvoidedTons         float64
}
