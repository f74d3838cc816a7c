package sim

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microgrid-planner/internal/model"
)

func TestWriteHourlyCSV(t *testing.T) {
	records := []model.HourlyRecord{
		{
			Hour:         0,
			LoadKW:       50,
			SolarKW:      80,
			GenerationKW: 80,
			Action:       model.ActionCharging,
			ChargeKW:     30,
			SOCKWh:       27.658633,
			SOCPercent:   27.658633,
		},
		{
			Hour:         1,
			LoadKW:       50,
			Action:       model.ActionDischarging,
			DischargeKW:  25,
			SOCKWh:       0.541367,
			GridImportKW: 25,
		},
	}

	path := filepath.Join(t.TempDir(), "dispatch.csv")
	require.NoError(t, WriteHourlyCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "hour", rows[0][0])
	assert.Equal(t, "unmet_load_kw", rows[0][len(rows[0])-1])

	assert.Equal(t, "0", rows[1][0])
	assert.Equal(t, "CHARGING", rows[1][5])
	assert.Equal(t, "30.000000", rows[1][6])

	assert.Equal(t, "DISCHARGING", rows[2][5])
	assert.Equal(t, "25.000000", rows[2][10])
}
