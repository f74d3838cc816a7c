package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"microgrid-planner/internal/analysis"
	"microgrid-planner/internal/api/models"
	"microgrid-planner/internal/batch"
	"microgrid-planner/internal/config"
	"microgrid-planner/internal/data"
	"microgrid-planner/internal/model"
	"microgrid-planner/internal/sim"

	"github.com/gin-gonic/gin"
)

// SimulateHandler handles simulation-related requests
type SimulateHandler struct {
	weather *data.OpenMeteoClient
}

// NewSimulateHandler creates a new simulate handler
func NewSimulateHandler(weather *data.OpenMeteoClient) *SimulateHandler {
	if weather == nil {
		weather = data.NewOpenMeteoClient("")
	}
	return &SimulateHandler{weather: weather}
}

// RunSimulation handles POST /api/v1/simulate
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	site, err := h.fetchWeather(req.Weather)
	if err != nil {
		writeWeatherError(c, err)
		return
	}

	scenario, err := buildScenario(req.Config)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	load, err := data.SynthesizeLoad(scenario.Load.Profile, scenario.Load.AnnualConsumptionGWh, site.Hours())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_LOAD",
				Message: err.Error(),
			},
		})
		return
	}

	assets, err := scenario.Assets()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_ASSETS",
				Message: err.Error(),
			},
		})
		return
	}

	engine := sim.New()
	result, err := engine.Run(*site, load, assets, scenario.ToStorageAsset(), scenario.ToGridConnection())
	if err != nil {
		status := http.StatusBadRequest
		if _, ok := err.(*model.SimulationInvariantError); ok {
			status = http.StatusInternalServerError
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	kpis, err := analysis.Analyze(result, assets, scenario.ToStorageAsset(), scenario.ToEconomicConfig())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "ANALYSIS_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	response := models.SimulateResponse{
		ID:      result.RunID,
		Status:  "completed",
		Summary: buildSummary(result, kpis),
	}
	if req.Options.IncludeLedger {
		response.Ledger = convertLedger(result.Records)
	}
	c.JSON(http.StatusOK, response)
}

// CompareScenarios handles POST /api/v1/simulate/compare
func (h *SimulateHandler) CompareScenarios(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	// Fetch weather once and share it across variations.
	site, err := h.fetchWeather(req.Weather)
	if err != nil {
		writeWeatherError(c, err)
		return
	}

	cases := make([]batch.Case, 0, len(req.Variations))
	for _, variation := range req.Variations {
		merged := mergeScenarioConfig(req.BaseConfig, variation.Config)
		scenario, err := buildScenario(merged)
		if err != nil {
			log.Printf("[API] Skipping variation %q: %v", variation.Name, err)
			continue
		}
		load, err := data.SynthesizeLoad(scenario.Load.Profile, scenario.Load.AnnualConsumptionGWh, site.Hours())
		if err != nil {
			log.Printf("[API] Skipping variation %q: %v", variation.Name, err)
			continue
		}
		assets, err := scenario.Assets()
		if err != nil {
			log.Printf("[API] Skipping variation %q: %v", variation.Name, err)
			continue
		}
		cases = append(cases, batch.Case{
			Name:      variation.Name,
			Site:      *site,
			Load:      load,
			Assets:    assets,
			Storage:   scenario.ToStorageAsset(),
			Grid:      scenario.ToGridConnection(),
			Economics: scenario.ToEconomicConfig(),
		})
	}

	runner := batch.NewRunner(req.Workers)
	outcomes := runner.Run(c.Request.Context(), cases)

	comparison := make([]models.ComparisonResult, 0, len(outcomes))
	for _, o := range batch.RankByNPV(outcomes) {
		comparison = append(comparison, models.ComparisonResult{
			ID:      o.ID,
			Name:    o.Name,
			Summary: buildSummary(o.Result, o.KPIs),
		})
	}

	c.JSON(http.StatusOK, models.CompareResponse{Comparison: comparison})
}

// Helper methods

func (h *SimulateHandler) fetchWeather(ws models.WeatherSourceConfig) (*model.SiteProfile, error) {
	switch ws.Type {
	case "openmeteo":
		wf, err := h.weather.FetchYear(data.WeatherQuery{
			Latitude:  ws.Latitude,
			Longitude: ws.Longitude,
			Year:      ws.Year,
		})
		if err != nil {
			return nil, err
		}
		site := wf.ToSiteProfile()
		return &site, nil
	case "file":
		if ws.File == "" {
			return nil, fmt.Errorf("weather file name is required for type \"file\"")
		}
		wf, err := data.LoadWeatherJSON(filepath.Join(weatherDir(), ws.File+".json"))
		if err != nil {
			return nil, err
		}
		site := wf.ToSiteProfile()
		return &site, nil
	default:
		return nil, fmt.Errorf("unsupported weather source type: %s", ws.Type)
	}
}

// weatherDir resolves the directory holding saved weather JSON files.
func weatherDir() string {
	if dir := os.Getenv("WEATHER_DIR"); dir != "" {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "./examples/weather"
	}
	return filepath.Join(wd, "examples", "weather")
}

func writeWeatherError(c *gin.Context, err error) {
	if omErr, ok := err.(*data.OpenMeteoError); ok {
		statusCode := http.StatusBadGateway
		if omErr.StatusCode == http.StatusTooManyRequests {
			statusCode = http.StatusTooManyRequests
		}
		c.JSON(statusCode, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    omErr.Code,
				Message: omErr.Message,
				Details: map[string]interface{}{
					"status_code": omErr.StatusCode,
				},
			},
		})
		return
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "WEATHER_FETCH_ERROR",
			Message: err.Error(),
		},
	})
}

// buildScenario converts a request config into a validated Scenario,
// loading and merging the storage file if one is named.
func buildScenario(req models.ScenarioConfig) (*config.Scenario, error) {
	scenario := &config.Scenario{
		Name:        req.Name,
		StorageFile: req.StorageFile,
		Load: config.LoadConfig{
			Profile:              req.Load.Profile,
			AnnualConsumptionGWh: req.Load.AnnualConsumptionGWh,
		},
		Solar: config.SolarConfig{
			CapacityKW:          req.Solar.CapacityKW,
			DeratingFactor:      req.Solar.DeratingFactor,
			TempCoeffPerC:       req.Solar.TempCoeffPerC,
			OverratingAllowance: req.Solar.OverratingAllowance,
		},
		Wind: config.WindConfig{
			Turbine: req.Wind.Turbine,
			Count:   req.Wind.Count,
			Curve:   req.Wind.Curve,
		},
		Storage: config.StorageConfig{
			CapacityKWh:         req.Storage.CapacityKWh,
			PowerKW:             req.Storage.PowerKW,
			RoundTripEfficiency: req.Storage.RoundTripEfficiency,
			ChargeEfficiency:    req.Storage.ChargeEfficiency,
			DischargeEfficiency: req.Storage.DischargeEfficiency,
			MinSOC:              req.Storage.MinSOC,
			MaxSOC:              req.Storage.MaxSOC,
			InitialSOC:          req.Storage.InitialSOC,
		},
		Grid: config.GridConfig{
			ImportAllowed: req.Grid.ImportAllowed,
			ExportAllowed: req.Grid.ExportAllowed,
		},
		Economics: config.EconomicsConfig{
			CapitalCostUSD:          req.Economics.CapitalCostUSD,
			AnnualOpexUSD:           req.Economics.AnnualOpexUSD,
			DiscountRate:            req.Economics.DiscountRate,
			LifetimeYears:           req.Economics.LifetimeYears,
			ImportPriceUSDPerKWh:    req.Economics.ImportPriceUSDPerKWh,
			ExportPriceUSDPerKWh:    req.Economics.ExportPriceUSDPerKWh,
			EmissionsFactorKgPerKWh: req.Economics.EmissionsFactorKgPerKWh,
		},
	}

	// storage_file should be just the filename (e.g. "containerized_1mwh").
	// Files are looked up in examples/storage/ unless STORAGE_DIR is set.
	if scenario.StorageFile != "" {
		storageDir := os.Getenv("STORAGE_DIR")
		if storageDir == "" {
			wd, err := os.Getwd()
			if err == nil {
				storageDir = filepath.Join(wd, "examples", "storage")
			} else {
				storageDir = "./examples/storage"
			}
		}
		storagePath := filepath.Join(storageDir, scenario.StorageFile+".yaml")

		loaded, err := config.LoadStorageFile(storagePath)
		if err == nil {
			// Storage file is the base, request fields override it.
			scenario.Storage = config.MergeStorage(loaded, scenario.Storage)
		} else {
			log.Printf("[API] Failed to load storage file %s: %v", storagePath, err)
		}
	}

	scenario.ApplyDefaults()
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return scenario, nil
}

// mergeScenarioConfig overlays the non-zero parts of a variation onto
// the base config.
func mergeScenarioConfig(base, override models.ScenarioConfig) models.ScenarioConfig {
	merged := base
	if override.Name != "" {
		merged.Name = override.Name
	}
	if override.StorageFile != "" {
		merged.StorageFile = override.StorageFile
	}
	if override.Load.Profile != "" {
		merged.Load.Profile = override.Load.Profile
	}
	if override.Load.AnnualConsumptionGWh != 0 {
		merged.Load.AnnualConsumptionGWh = override.Load.AnnualConsumptionGWh
	}
	if override.Solar.CapacityKW != 0 {
		merged.Solar = override.Solar
	}
	if override.Wind.Count != 0 {
		merged.Wind = override.Wind
	}
	if override.Storage.CapacityKWh != 0 {
		merged.Storage = override.Storage
	}
	if override.Economics.CapitalCostUSD != 0 {
		merged.Economics = override.Economics
	}
	return merged
}

func buildSummary(result *model.SimulationResult, kpis *model.KPISet) models.KPISummary {
	return models.KPISummary{
		HorizonHours: result.HorizonHours,
		FinalSOCKWh:  result.FinalSOCKWh,

		TotalLoadKWh:        kpis.TotalLoadKWh,
		TotalGenerationKWh:  kpis.TotalGenerationKWh,
		TotalSolarKWh:       kpis.TotalSolarKWh,
		TotalWindKWh:        kpis.TotalWindKWh,
		TotalImportKWh:      kpis.TotalImportKWh,
		TotalExportKWh:      kpis.TotalExportKWh,
		TotalChargeKWh:      kpis.TotalChargeKWh,
		TotalDischargeKWh:   kpis.TotalDischargeKWh,
		TotalCurtailmentKWh: kpis.TotalCurtailmentKWh,
		UnmetLoadKWh:        kpis.UnmetLoadKWh,
		UnmetLoadHours:      kpis.UnmetLoadHours,

		RenewableFraction:   kpis.RenewableFraction,
		SelfConsumption:     kpis.SelfConsumption,
		GridDependency:      kpis.GridDependency,
		SolarCapacityFactor: kpis.SolarCapacityFactor,
		WindCapacityFactor:  kpis.WindCapacityFactor,
		StorageCycles:       kpis.StorageCycles,
		AverageSOCPercent:   kpis.AverageSOCPercent,

		LoadStats:    convertStats(kpis.LoadStats),
		NetLoadStats: convertStats(kpis.NetLoadStats),

		AnnualImportCostUSD:    kpis.AnnualImportCostUSD,
		AnnualExportRevenueUSD: kpis.AnnualExportRevenueUSD,
		LCOEUSDPerKWh:          kpis.LCOEUSDPerKWh,
		NPVUSD:                 kpis.NPVUSD,
		SimplePayback:          models.PaybackResult(kpis.SimplePayback),
		DiscountedPayback:      models.PaybackResult(kpis.DiscountedPayback),
		CO2AvoidedTons:         kpis.CO2AvoidedTons,
	}
}

func convertStats(s model.SeriesStats) models.SeriesStats {
	return models.SeriesStats{Min: s.Min, Max: s.Max, Mean: s.Mean, P05: s.P05, P95: s.P95}
}

func convertLedger(records []model.HourlyRecord) []models.LedgerRow {
	out := make([]models.LedgerRow, len(records))
	for i, r := range records {
		out[i] = models.LedgerRow{
			Hour:          r.Hour,
			LoadKW:        r.LoadKW,
			SolarKW:       r.SolarKW,
			WindKW:        r.WindKW,
			GenerationKW:  r.GenerationKW,
			Action:        string(r.Action),
			ChargeKW:      r.ChargeKW,
			DischargeKW:   r.DischargeKW,
			SOCKWh:        r.SOCKWh,
			SOCPercent:    r.SOCPercent,
			GridImportKW:  r.GridImportKW,
			GridExportKW:  r.GridExportKW,
			CurtailmentKW: r.CurtailmentKW,
			UnmetLoadKW:   r.UnmetLoadKW,
		}
	}
	return out
}
