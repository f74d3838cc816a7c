package model

import "fmt"

// HoursPerYear is the simulation horizon for a normal year.
// Leap years use HoursPerLeapYear.
const (
	HoursPerYear     = 8760
	HoursPerLeapYear = 8784
)

// SiteProfile holds the hourly weather series for a site.
// All three series must have the same length, equal to the simulation
// horizon (8760 or 8784 hours). Units:
// - IrradianceWm2: global horizontal irradiance, W/m²
// - WindSpeedMs: wind speed at hub-comparable height, m/s
// - TemperatureC: ambient temperature, °C
type SiteProfile struct {
	Name string

	IrradianceWm2 []float64
	WindSpeedMs   []float64
	TemperatureC  []float64
}

// Hours returns the horizon length of the profile.
func (p SiteProfile) Hours() int { return len(p.IrradianceWm2) }

// Validate checks series lengths and physical ranges.
func (p SiteProfile) Validate() error {
	h := len(p.IrradianceWm2)
	if h != HoursPerYear && h != HoursPerLeapYear {
		return &DataError{Series: "irradiance", Reason: "length must be 8760 or 8784 hours"}
	}
	if len(p.WindSpeedMs) != h {
		return &DataError{Series: "wind_speed", Reason: "length does not match irradiance series"}
	}
	if len(p.TemperatureC) != h {
		return &DataError{Series: "temperature", Reason: "length does not match irradiance series"}
	}
	for i, v := range p.IrradianceWm2 {
		if v < 0 {
			return &DataError{Series: "irradiance", Reason: fmt.Sprintf("negative value at hour %d", i)}
		}
	}
	for i, v := range p.WindSpeedMs {
		if v < 0 {
			return &DataError{Series: "wind_speed", Reason: fmt.Sprintf("negative value at hour %d", i)}
		}
	}
	return nil
}

// LoadProfile is the hourly demand series in kW. Values are non-negative
// and the length must match the SiteProfile horizon.
type LoadProfile struct {
	Name     string
	DemandKW []float64
}

func (p LoadProfile) Hours() int { return len(p.DemandKW) }

func (p LoadProfile) Validate(horizon int) error {
	if len(p.DemandKW) != horizon {
		return &DataError{Series: "load", Reason: "length does not match weather series"}
	}
	for i, v := range p.DemandKW {
		if v < 0 {
			return &DataError{Series: "load", Reason: fmt.Sprintf("negative demand at hour %d", i)}
		}
	}
	return nil
}
