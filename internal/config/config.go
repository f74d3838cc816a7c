package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"microgrid-planner/internal/generation"
	"microgrid-planner/internal/model"
)

// Scenario is the on-disk configuration shape (YAML) for one run.
type Scenario struct {
	Name string `yaml:"name"`

	// Optional: load storage parameters from a separate YAML
	// (e.g. examples/storage/*.yaml). Explicit Storage fields override
	// the file.
	StorageFile string `yaml:"storage_file"`

	Load      LoadConfig      `yaml:"load"`
	Solar     SolarConfig     `yaml:"solar"`
	Wind      WindConfig      `yaml:"wind"`
	Storage   StorageConfig   `yaml:"storage"`
	Grid      GridConfig      `yaml:"grid"`
	Economics EconomicsConfig `yaml:"economics"`
}

// LoadConfig selects a synthetic demand profile.
type LoadConfig struct {
	Profile              string  `yaml:"profile"` // "continuous" or "dayshift"
	AnnualConsumptionGWh float64 `yaml:"annual_consumption_gwh"`
}

type SolarConfig struct {
	CapacityKW          float64 `yaml:"capacity_kw"`
	DeratingFactor      float64 `yaml:"derating_factor"`
	TempCoeffPerC       float64 `yaml:"temp_coeff_per_c"`
	OverratingAllowance float64 `yaml:"overrating_allowance"`
}

type WindConfig struct {
	Turbine string `yaml:"turbine"`
	Count   int    `yaml:"count"`
	Curve   string `yaml:"curve"` // "linear" (default) or "cubic"
}

type StorageConfig struct {
	CapacityKWh         float64 `yaml:"capacity_kwh"`
	PowerKW             float64 `yaml:"power_kw"`
	RoundTripEfficiency float64 `yaml:"round_trip_efficiency"`
	ChargeEfficiency    float64 `yaml:"charge_efficiency"`
	DischargeEfficiency float64 `yaml:"discharge_efficiency"`
	MinSOC              float64 `yaml:"min_soc"`
	MaxSOC              float64 `yaml:"max_soc"`
	InitialSOC          float64 `yaml:"initial_soc"`
}

type GridConfig struct {
	ImportAllowed bool `yaml:"import_allowed"`
	ExportAllowed bool `yaml:"export_allowed"`
}

type EconomicsConfig struct {
	CapitalCostUSD          float64 `yaml:"capital_cost_usd"`
	AnnualOpexUSD           float64 `yaml:"annual_opex_usd"`
	DiscountRate            float64 `yaml:"discount_rate"`
	LifetimeYears           int     `yaml:"lifetime_years"`
	ImportPriceUSDPerKWh    float64 `yaml:"import_price_usd_per_kwh"`
	ExportPriceUSDPerKWh    float64 `yaml:"export_price_usd_per_kwh"`
	EmissionsFactorKgPerKWh float64 `yaml:"emissions_factor_kg_per_kwh"`
}

func Load(path string) (*Scenario, error) {
	s, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadUnchecked loads and merges the scenario, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	// If storage_file is set, load it and merge explicit overrides on top.
	if s.StorageFile != "" {
		storagePath := s.StorageFile
		if !filepath.IsAbs(storagePath) {
			// Prefer paths relative to the scenario file directory, but
			// fall back to the provided path if that does not exist.
			cand := filepath.Join(filepath.Dir(path), storagePath)
			if _, err := os.Stat(cand); err == nil {
				storagePath = cand
			}
		}
		loaded, err := LoadStorageFile(storagePath)
		if err != nil {
			return nil, err
		}
		s.Storage = MergeStorage(loaded, s.Storage)
	}
	return &s, nil
}

// ApplyDefaults fills unset fields with the stock values so configs can
// stay concise.
func (s *Scenario) ApplyDefaults() {
	if s.Load.Profile == "" {
		s.Load.Profile = "continuous"
	}
	if s.Wind.Curve == "" {
		s.Wind.Curve = string(model.CurveLinear)
	}
	if s.Storage.CapacityKWh > 0 {
		if s.Storage.RoundTripEfficiency == 0 && s.Storage.ChargeEfficiency == 0 {
			s.Storage.RoundTripEfficiency = 0.85
		}
		if s.Storage.MaxSOC == 0 {
			s.Storage.MaxSOC = 1.0
		}
		if s.Storage.InitialSOC == 0 {
			s.Storage.InitialSOC = 0.5
		}
	}
	if s.Economics.DiscountRate == 0 {
		s.Economics.DiscountRate = 0.08
	}
	if s.Economics.LifetimeYears == 0 {
		s.Economics.LifetimeYears = 25
	}
	if s.Economics.ImportPriceUSDPerKWh == 0 {
		s.Economics.ImportPriceUSDPerKWh = 0.15
	}
	if s.Economics.ExportPriceUSDPerKWh == 0 {
		s.Economics.ExportPriceUSDPerKWh = 0.05
	}
	if s.Economics.EmissionsFactorKgPerKWh == 0 {
		s.Economics.EmissionsFactorKgPerKWh = 0.58
	}
}

func (s *Scenario) Validate() error {
	if s == nil {
		return errors.New("scenario is nil")
	}
	if s.Load.AnnualConsumptionGWh <= 0 {
		return &model.ConfigurationError{Field: "load", Reason: "annual_consumption_gwh must be > 0"}
	}
	if s.Solar.CapacityKW == 0 && s.Wind.Count == 0 {
		return &model.ConfigurationError{Field: "scenario", Reason: "at least one generation asset is required"}
	}
	// Validate by constructing the model objects.
	if _, err := s.Assets(); err != nil {
		return fmt.Errorf("generation config invalid: %w", err)
	}
	if err := s.ToStorageAsset().Validate(); err != nil {
		return fmt.Errorf("storage config invalid: %w", err)
	}
	if err := s.ToEconomicConfig().Validate(); err != nil {
		return fmt.Errorf("economics config invalid: %w", err)
	}
	return nil
}

// Assets builds the generation asset list from the solar and wind blocks.
func (s *Scenario) Assets() ([]model.GenerationAsset, error) {
	var assets []model.GenerationAsset
	if s.Solar.CapacityKW != 0 {
		derating := s.Solar.DeratingFactor
		if derating == 0 {
			derating = 0.86
		}
		assets = append(assets, model.GenerationAsset{
			Name:                "solar",
			Technology:          model.TechSolar,
			CapacityKW:          s.Solar.CapacityKW,
			DeratingFactor:      derating,
			TempCoeffPerC:       s.Solar.TempCoeffPerC,
			OverratingAllowance: s.Solar.OverratingAllowance,
		})
	}
	if s.Wind.Count != 0 {
		wind, err := generation.WindAsset(s.Wind.Turbine, s.Wind.Count, model.CurveShape(s.Wind.Curve))
		if err != nil {
			return nil, err
		}
		assets = append(assets, wind)
	}
	for _, a := range assets {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}
	return assets, nil
}

func (s *Scenario) ToStorageAsset() model.StorageAsset {
	return model.StorageAsset{
		CapacityKWh:         s.Storage.CapacityKWh,
		PowerKW:             s.Storage.PowerKW,
		RoundTripEfficiency: s.Storage.RoundTripEfficiency,
		ChargeEfficiency:    s.Storage.ChargeEfficiency,
		DischargeEfficiency: s.Storage.DischargeEfficiency,
		MinSOC:              s.Storage.MinSOC,
		MaxSOC:              s.Storage.MaxSOC,
		InitialSOC:          s.Storage.InitialSOC,
	}
}

func (s *Scenario) ToGridConnection() model.GridConnection {
	return model.GridConnection{
		ImportAllowed: s.Grid.ImportAllowed,
		ExportAllowed: s.Grid.ExportAllowed,
	}
}

func (s *Scenario) ToEconomicConfig() model.EconomicConfig {
	return model.EconomicConfig{
		CapitalCostUSD:          s.Economics.CapitalCostUSD,
		AnnualOpexUSD:           s.Economics.AnnualOpexUSD,
		DiscountRate:            s.Economics.DiscountRate,
		LifetimeYears:           s.Economics.LifetimeYears,
		ImportPriceUSDPerKWh:    s.Economics.ImportPriceUSDPerKWh,
		ExportPriceUSDPerKWh:    s.Economics.ExportPriceUSDPerKWh,
		EmissionsFactorKgPerKWh: s.Economics.EmissionsFactorKgPerKWh,
	}
}

type storageFileWrapper struct {
	Storage StorageConfig `yaml:"storage"`
}

// LoadStorageFile reads a standalone storage YAML (a file containing
// just a storage block).
func LoadStorageFile(path string) (StorageConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return StorageConfig{}, err
	}
	var w storageFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return StorageConfig{}, err
	}
	return w.Storage, nil
}

// MergeStorage overlays non-zero fields from override onto base. Used
// when loading a storage file and then applying request overrides.
func MergeStorage(base, override StorageConfig) StorageConfig {
	out := base
	if override.CapacityKWh != 0 {
		out.CapacityKWh = override.CapacityKWh
	}
	if override.PowerKW != 0 {
		out.PowerKW = override.PowerKW
	}
	if override.RoundTripEfficiency != 0 {
		out.RoundTripEfficiency = override.RoundTripEfficiency
	}
	if override.ChargeEfficiency != 0 {
		out.ChargeEfficiency = override.ChargeEfficiency
	}
	if override.DischargeEfficiency != 0 {
		out.DischargeEfficiency = override.DischargeEfficiency
	}
	// Note: these are allowed to be 0 in theory, but our configs use
	// non-zero values.
	if override.MinSOC != 0 {
		out.MinSOC = override.MinSOC
	}
	if override.MaxSOC != 0 {
		out.MaxSOC = override.MaxSOC
	}
	if override.InitialSOC != 0 {
		out.InitialSOC = override.InitialSOC
	}
	return out
}
