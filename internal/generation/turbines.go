package generation

import (
	"fmt"
	"sort"

	"microgrid-planner/internal/model"
)

// TurbineSpec describes a catalog turbine model.
type TurbineSpec struct {
	Name         string  `json:"name"` // catalog name used in scenario configs
	Model        string  `json:"model"`
	Manufacturer string  `json:"manufacturer"`
	RatedPowerKW float64 `json:"rated_power_kw"`
	HubHeightM   float64 `json:"hub_height_m"`
	RotorDiamM   float64 `json:"rotor_diameter_m"`
	CutInMs      float64 `json:"cut_in_ms"`
	RatedMs      float64 `json:"rated_ms"`
	CutOutMs     float64 `json:"cut_out_ms"`
}

// turbineCatalog holds the built-in turbine models selectable by name in
// scenario configs.
var turbineCatalog = map[string]TurbineSpec{
	"Vestas V112 3300": {
		Model:        "V112/3300",
		Manufacturer: "Vestas",
		RatedPowerKW: 3300,
		HubHeightM:   119,
		RotorDiamM:   112,
		CutInMs:      3,
		RatedMs:      12,
		CutOutMs:     25,
	},
	"Enercon E126 7500": {
		Model:        "E126/7500",
		Manufacturer: "Enercon",
		RatedPowerKW: 7500,
		HubHeightM:   135,
		RotorDiamM:   126,
		CutInMs:      2.5,
		RatedMs:      13,
		CutOutMs:     28,
	},
	"Goldwind GW121 2500": {
		Model:        "GW121/2500",
		Manufacturer: "Goldwind",
		RatedPowerKW: 2500,
		HubHeightM:   120,
		RotorDiamM:   121,
		CutInMs:      3,
		RatedMs:      10.5,
		CutOutMs:     25,
	},
	"Siemens SWT 3000": {
		Model:        "SWT-3.0-113",
		Manufacturer: "Siemens",
		RatedPowerKW: 3000,
		HubHeightM:   120,
		RotorDiamM:   113,
		CutInMs:      3,
		RatedMs:      12,
		CutOutMs:     25,
	},
}

// LookupTurbine returns the catalog entry for a turbine name.
func LookupTurbine(name string) (TurbineSpec, error) {
	spec, ok := turbineCatalog[name]
	if !ok {
		return TurbineSpec{}, &model.ConfigurationError{
			Field:  "wind.turbine",
			Reason: fmt.Sprintf("unknown turbine model %q", name),
		}
	}
	spec.Name = name
	return spec, nil
}

// ListTurbines returns all catalog turbines sorted by name.
func ListTurbines() []TurbineSpec {
	names := make([]string, 0, len(turbineCatalog))
	for name := range turbineCatalog {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]TurbineSpec, 0, len(names))
	for _, name := range names {
		spec := turbineCatalog[name]
		spec.Name = name
		out = append(out, spec)
	}
	return out
}

// WindAsset builds a GenerationAsset for count turbines of a catalog model.
func WindAsset(name string, count int, curve model.CurveShape) (model.GenerationAsset, error) {
	spec, err := LookupTurbine(name)
	if err != nil {
		return model.GenerationAsset{}, err
	}
	if count <= 0 {
		return model.GenerationAsset{}, &model.ConfigurationError{
			Field:  "wind.count",
			Reason: "turbine count must be > 0",
		}
	}
	return model.GenerationAsset{
		Name:          fmt.Sprintf("%dx %s", count, name),
		Technology:    model.TechWind,
		CapacityKW:    spec.RatedPowerKW * float64(count),
		CutInSpeedMs:  spec.CutInMs,
		RatedSpeedMs:  spec.RatedMs,
		CutOutSpeedMs: spec.CutOutMs,
		Curve:         curve,
	}, nil
}
