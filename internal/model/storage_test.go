package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageEfficiencies(t *testing.T) {
	t.Run("symmetric split from round-trip", func(t *testing.T) {
		s := StorageAsset{CapacityKWh: 100, RoundTripEfficiency: 0.85}
		charge, discharge := s.Efficiencies()
		assert.InDelta(t, math.Sqrt(0.85), charge, 1e-12)
		assert.Equal(t, charge, discharge)
		assert.InDelta(t, 0.85, charge*discharge, 1e-12)
	})

	t.Run("explicit values win", func(t *testing.T) {
		s := StorageAsset{CapacityKWh: 100, RoundTripEfficiency: 0.85, ChargeEfficiency: 0.95, DischargeEfficiency: 0.90}
		charge, discharge := s.Efficiencies()
		assert.Equal(t, 0.95, charge)
		assert.Equal(t, 0.90, discharge)
	})
}

func TestStorageEnergyBounds(t *testing.T) {
	s := StorageAsset{CapacityKWh: 200, MinSOC: 0.1, MaxSOC: 0.9, InitialSOC: 0.5}
	assert.Equal(t, 20.0, s.MinEnergyKWh())
	assert.Equal(t, 180.0, s.MaxEnergyKWh())
	assert.Equal(t, 100.0, s.InitialEnergyKWh())
}

func TestStorageValidate(t *testing.T) {
	valid := StorageAsset{
		CapacityKWh:         100,
		PowerKW:             25,
		RoundTripEfficiency: 0.85,
		MinSOC:              0.1,
		MaxSOC:              0.9,
		InitialSOC:          0.5,
	}
	assert.NoError(t, valid.Validate())

	t.Run("zero capacity means no storage", func(t *testing.T) {
		s := StorageAsset{}
		assert.False(t, s.Enabled())
		assert.NoError(t, s.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*StorageAsset)
	}{
		{"negative capacity", func(s *StorageAsset) { s.CapacityKWh = -1 }},
		{"missing power", func(s *StorageAsset) { s.PowerKW = 0 }},
		{"round-trip above one", func(s *StorageAsset) { s.RoundTripEfficiency = 1.2 }},
		{"charge efficiency above one", func(s *StorageAsset) { s.ChargeEfficiency = 1.5; s.DischargeEfficiency = 0.9 }},
		{"inverted SOC bounds", func(s *StorageAsset) { s.MinSOC = 0.9; s.MaxSOC = 0.1; s.InitialSOC = 0.5 }},
		{"initial SOC outside bounds", func(s *StorageAsset) { s.InitialSOC = 0.95 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			var cfgErr *ConfigurationError
			assert.ErrorAs(t, s.Validate(), &cfgErr)
		})
	}
}

func TestActionFromFlows(t *testing.T) {
	assert.Equal(t, ActionCharging, ActionFromFlows(5, 0))
	assert.Equal(t, ActionDischarging, ActionFromFlows(0, 5))
	assert.Equal(t, ActionIdle, ActionFromFlows(0, 0))
}
