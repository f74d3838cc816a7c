package model

import "math"

// StorageAsset defines the battery storage system.
// Units:
// - CapacityKWh: kWh; zero means no storage in the scenario
// - PowerKW: max charge/discharge power, kW
// - Efficiencies: 0..1
// - SOC fractions: 0..1 of capacity
//
// If ChargeEfficiency/DischargeEfficiency are zero, both default to
// sqrt(RoundTripEfficiency) so a full cycle recovers exactly the
// configured round-trip fraction.
type StorageAsset struct {
	CapacityKWh         float64
	PowerKW             float64
	RoundTripEfficiency float64
	ChargeEfficiency    float64
	DischargeEfficiency float64
	MinSOC              float64
	MaxSOC              float64
	InitialSOC          float64
}

// Enabled reports whether the scenario has any storage at all.
func (s StorageAsset) Enabled() bool { return s.CapacityKWh > 0 }

// Efficiencies resolves the effective charge/discharge efficiencies,
// applying the symmetric sqrt split when only a round-trip value is set.
func (s StorageAsset) Efficiencies() (charge, discharge float64) {
	if s.ChargeEfficiency > 0 && s.DischargeEfficiency > 0 {
		return s.ChargeEfficiency, s.DischargeEfficiency
	}
	split := math.Sqrt(s.RoundTripEfficiency)
	return split, split
}

// MinEnergyKWh is the lowest usable stored energy.
func (s StorageAsset) MinEnergyKWh() float64 { return s.MinSOC * s.CapacityKWh }

// MaxEnergyKWh is the highest usable stored energy.
func (s StorageAsset) MaxEnergyKWh() float64 { return s.MaxSOC * s.CapacityKWh }

// InitialEnergyKWh is the stored energy at hour zero.
func (s StorageAsset) InitialEnergyKWh() float64 { return s.InitialSOC * s.CapacityKWh }

func (s StorageAsset) Validate() error {
	if s.CapacityKWh < 0 {
		return &ConfigurationError{Field: "storage", Reason: "capacity must be >= 0"}
	}
	if !s.Enabled() {
		// No storage: remaining fields are ignored.
		return nil
	}
	if s.PowerKW <= 0 {
		return &ConfigurationError{Field: "storage", Reason: "power rating must be > 0"}
	}
	if s.ChargeEfficiency == 0 && s.DischargeEfficiency == 0 {
		if s.RoundTripEfficiency <= 0 || s.RoundTripEfficiency > 1 {
			return &ConfigurationError{Field: "storage", Reason: "round-trip efficiency must be in (0, 1]"}
		}
	} else {
		if s.ChargeEfficiency <= 0 || s.ChargeEfficiency > 1 {
			return &ConfigurationError{Field: "storage", Reason: "charge efficiency must be in (0, 1]"}
		}
		if s.DischargeEfficiency <= 0 || s.DischargeEfficiency > 1 {
			return &ConfigurationError{Field: "storage", Reason: "discharge efficiency must be in (0, 1]"}
		}
	}
	if s.MinSOC < 0 || s.MaxSOC > 1 || s.MinSOC >= s.MaxSOC {
		return &ConfigurationError{Field: "storage", Reason: "SOC bounds must satisfy 0 <= min_soc < max_soc <= 1"}
	}
	if s.InitialSOC < s.MinSOC || s.InitialSOC > s.MaxSOC {
		return &ConfigurationError{Field: "storage", Reason: "initial SOC must be within [min_soc, max_soc]"}
	}
	return nil
}
