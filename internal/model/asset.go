package model

import "fmt"

// Technology tags a generation asset as solar or wind.
type Technology string

const (
	TechSolar Technology = "solar"
	TechWind  Technology = "wind"
)

// CurveShape selects the wind power curve interpolation between cut-in
// and rated speed. Both shapes are deterministic.
type CurveShape string

const (
	// CurveLinear interpolates linearly between cut-in and rated speed.
	CurveLinear CurveShape = "linear"
	// CurveCubic interpolates with the cube of the normalized speed,
	// which tracks the v³ dependence of wind power density.
	CurveCubic CurveShape = "cubic"
)

// DefaultReferenceIrradiance is standard test condition irradiance, W/m².
const DefaultReferenceIrradiance = 1000.0

// GenerationAsset describes one solar array or wind farm.
// Units:
// - CapacityKW: nameplate capacity, kW (kWp for solar)
// - DeratingFactor: 0..1, soiling/wiring/inverter losses combined
// - TempCoeffPerC: power temperature coefficient, fraction per °C (e.g. -0.004)
// - ReferenceIrradiance: W/m², defaults to 1000 if zero
// - OverratingAllowance: max output as multiple of capacity (1.0 = hard cap)
// - CutIn/Rated/CutOut speeds: m/s (wind only)
type GenerationAsset struct {
	Name       string
	Technology Technology
	CapacityKW float64

	// Solar parameters.
	DeratingFactor      float64
	TempCoeffPerC       float64
	ReferenceIrradiance float64
	OverratingAllowance float64

	// Wind parameters.
	CutInSpeedMs  float64
	RatedSpeedMs  float64
	CutOutSpeedMs float64
	Curve         CurveShape
}

func (a GenerationAsset) Validate() error {
	if a.CapacityKW <= 0 {
		return &ConfigurationError{Field: "asset " + a.Name, Reason: "capacity must be > 0"}
	}
	switch a.Technology {
	case TechSolar:
		if a.DeratingFactor <= 0 || a.DeratingFactor > 1 {
			return &ConfigurationError{Field: "asset " + a.Name, Reason: "derating factor must be in (0, 1]"}
		}
		if a.ReferenceIrradiance < 0 {
			return &ConfigurationError{Field: "asset " + a.Name, Reason: "reference irradiance must be >= 0"}
		}
		if a.OverratingAllowance < 1 && a.OverratingAllowance != 0 {
			return &ConfigurationError{Field: "asset " + a.Name, Reason: "overrating allowance must be >= 1"}
		}
	case TechWind:
		if a.CutInSpeedMs < 0 || a.RatedSpeedMs <= a.CutInSpeedMs || a.CutOutSpeedMs <= a.RatedSpeedMs {
			return &ConfigurationError{
				Field:  "asset " + a.Name,
				Reason: "wind speeds must satisfy 0 <= cut_in < rated < cut_out",
			}
		}
		switch a.Curve {
		case CurveLinear, CurveCubic, "":
		default:
			return &ConfigurationError{Field: "asset " + a.Name, Reason: fmt.Sprintf("unknown curve shape %q", a.Curve)}
		}
	default:
		return &ConfigurationError{Field: "asset " + a.Name, Reason: fmt.Sprintf("unknown technology %q", a.Technology)}
	}
	return nil
}
