package sim

import (
	"encoding/csv"
	"os"
	"strconv"

	"microgrid-planner/internal/model"
)

// WriteHourlyCSV writes the per-hour ledger to a CSV file. This is the
// primary artifact for "what happened" in a run.
func WriteHourlyCSV(path string, records []model.HourlyRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"hour",
		"load_kw",
		"solar_kw",
		"wind_kw",
		"generation_kw",
		"action",
		"charge_kw",
		"discharge_kw",
		"soc_kwh",
		"soc_percent",
		"grid_import_kw",
		"grid_export_kw",
		"curtailment_kw",
		"unmet_load_kw",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Hour),
			fmtFloat(r.LoadKW),
			fmtFloat(r.SolarKW),
			fmtFloat(r.WindKW),
			fmtFloat(r.GenerationKW),
			string(r.Action),
			fmtFloat(r.ChargeKW),
			fmtFloat(r.DischargeKW),
			fmtFloat(r.SOCKWh),
			fmtFloat(r.SOCPercent),
			fmtFloat(r.GridImportKW),
			fmtFloat(r.GridExportKW),
			fmtFloat(r.CurtailmentKW),
			fmtFloat(r.UnmetLoadKW),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
