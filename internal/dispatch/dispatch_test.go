package dispatch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"microgrid-planner/internal/model"
)

// lossless storage keeps the arithmetic exact in expectations.
func losslessStorage(capacityKWh, powerKW float64) model.StorageAsset {
	return model.StorageAsset{
		CapacityKWh:         capacityKWh,
		PowerKW:             powerKW,
		RoundTripEfficiency: 1.0,
		MinSOC:              0,
		MaxSOC:              1,
	}
}

func TestStepSurplus(t *testing.T) {
	storage := losslessStorage(100, 20)

	t.Run("charges up to power limit then exports", func(t *testing.T) {
		f := Step(storage, model.GridTied, 0, 50)
		assert.Equal(t, 20.0, f.ChargeKW)
		assert.Equal(t, 30.0, f.GridExportKW)
		assert.Equal(t, 0.0, f.CurtailmentKW)
		assert.Equal(t, 20.0, f.SOCKWh)
	})

	t.Run("charges up to headroom", func(t *testing.T) {
		f := Step(storage, model.GridTied, 90, 50)
		assert.Equal(t, 10.0, f.ChargeKW)
		assert.Equal(t, 40.0, f.GridExportKW)
		assert.Equal(t, 100.0, f.SOCKWh)
	})

	t.Run("curtails residual when export disallowed", func(t *testing.T) {
		f := Step(storage, model.OffGrid, 90, 50)
		assert.Equal(t, 10.0, f.ChargeKW)
		assert.Equal(t, 0.0, f.GridExportKW)
		assert.Equal(t, 40.0, f.CurtailmentKW)
	})

	t.Run("full battery exports everything", func(t *testing.T) {
		f := Step(storage, model.GridTied, 100, 50)
		assert.Equal(t, 0.0, f.ChargeKW)
		assert.Equal(t, 50.0, f.GridExportKW)
		assert.Equal(t, 100.0, f.SOCKWh)
	})
}

func TestStepDeficit(t *testing.T) {
	storage := losslessStorage(100, 20)

	t.Run("discharges up to power limit then imports", func(t *testing.T) {
		f := Step(storage, model.GridTied, 100, -50)
		assert.Equal(t, 20.0, f.DischargeKW)
		assert.Equal(t, 30.0, f.GridImportKW)
		assert.Equal(t, 0.0, f.UnmetLoadKW)
		assert.Equal(t, 80.0, f.SOCKWh)
	})

	t.Run("discharges down to available energy", func(t *testing.T) {
		f := Step(storage, model.GridTied, 5, -50)
		assert.Equal(t, 5.0, f.DischargeKW)
		assert.Equal(t, 45.0, f.GridImportKW)
		assert.Equal(t, 0.0, f.SOCKWh)
	})

	t.Run("records unmet load when import disallowed", func(t *testing.T) {
		f := Step(storage, model.OffGrid, 5, -50)
		assert.Equal(t, 5.0, f.DischargeKW)
		assert.Equal(t, 0.0, f.GridImportKW)
		assert.Equal(t, 45.0, f.UnmetLoadKW)
	})

	t.Run("respects min SOC floor", func(t *testing.T) {
		floored := losslessStorage(100, 20)
		floored.MinSOC = 0.2
		f := Step(floored, model.GridTied, 25, -50)
		assert.Equal(t, 5.0, f.DischargeKW)
		assert.Equal(t, 20.0, f.SOCKWh)
	})
}

func TestStepEfficiency(t *testing.T) {
	storage := model.StorageAsset{
		CapacityKWh:         1000,
		PowerKW:             100,
		RoundTripEfficiency: 0.85,
		MinSOC:              0,
		MaxSOC:              1,
	}
	eff := math.Sqrt(0.85)

	t.Run("charge loses on the way in", func(t *testing.T) {
		f := Step(storage, model.GridTied, 0, 10)
		assert.Equal(t, 10.0, f.ChargeKW)
		assert.InDelta(t, 10*eff, f.SOCKWh, 1e-9)
	})

	t.Run("discharge loses on the way out", func(t *testing.T) {
		f := Step(storage, model.GridTied, 100, -10)
		assert.Equal(t, 10.0, f.DischargeKW)
		assert.InDelta(t, 100-10/eff, f.SOCKWh, 1e-9)
	})

	t.Run("full cycle recovers round-trip fraction", func(t *testing.T) {
		in := Step(storage, model.GridTied, 0, 100)
		stored := in.SOCKWh
		out := Step(storage, model.GridTied, stored, -1000)
		assert.InDelta(t, 100*0.85, out.DischargeKW, 1e-9)
	})

	t.Run("available energy limits AC discharge", func(t *testing.T) {
		// 10 kWh stored delivers only 10*eff on the AC side.
		f := Step(storage, model.GridTied, 10, -100)
		assert.InDelta(t, 10*eff, f.DischargeKW, 1e-9)
		assert.InDelta(t, 0, f.SOCKWh, 1e-9)
	})
}

func TestStepNoStorage(t *testing.T) {
	none := model.StorageAsset{}

	t.Run("surplus passes straight to grid", func(t *testing.T) {
		f := Step(none, model.GridTied, 0, 42)
		assert.Equal(t, 0.0, f.ChargeKW)
		assert.Equal(t, 42.0, f.GridExportKW)
		assert.Equal(t, 0.0, f.SOCKWh)
	})

	t.Run("deficit passes straight to grid", func(t *testing.T) {
		f := Step(none, model.GridTied, 0, -42)
		assert.Equal(t, 0.0, f.DischargeKW)
		assert.Equal(t, 42.0, f.GridImportKW)
	})

	t.Run("off-grid deficit is unmet", func(t *testing.T) {
		f := Step(none, model.OffGrid, 0, -42)
		assert.Equal(t, 42.0, f.UnmetLoadKW)
	})
}

func TestStepNeverChargesAndDischarges(t *testing.T) {
	storage := model.StorageAsset{
		CapacityKWh:         50,
		PowerKW:             10,
		RoundTripEfficiency: 0.85,
		MinSOC:              0.1,
		MaxSOC:              0.9,
		InitialSOC:          0.5,
	}
	for _, net := range []float64{-100, -10, -0.001, 0, 0.001, 10, 100} {
		f := Step(storage, model.GridTied, 25, net)
		assert.False(t, f.ChargeKW > 0 && f.DischargeKW > 0, "net=%v", net)
	}
}

func TestStepConservesEnergy(t *testing.T) {
	storage := model.StorageAsset{
		CapacityKWh:         80,
		PowerKW:             15,
		RoundTripEfficiency: 0.85,
		MinSOC:              0.05,
		MaxSOC:              0.95,
	}
	grids := []model.GridConnection{model.GridTied, model.OffGrid, {ImportAllowed: true}, {ExportAllowed: true}}
	for _, grid := range grids {
		for _, soc := range []float64{4, 20, 76} {
			for _, net := range []float64{-40, -5, 0, 5, 40} {
				f := Step(storage, grid, soc, net)
				// AC-side balance: net == charge + export + curtail - discharge - import - unmet.
				acNet := f.ChargeKW + f.GridExportKW + f.CurtailmentKW - f.DischargeKW - f.GridImportKW - f.UnmetLoadKW
				assert.InDelta(t, net, acNet, 1e-9, "grid=%+v soc=%v net=%v", grid, soc, net)
			}
		}
	}
}
