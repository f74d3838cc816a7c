package data

import (
	"fmt"

	"microgrid-planner/internal/model"
)

// Daily demand shapes, one fraction-of-peak value per hour of day.
// "continuous" is a round-the-clock industrial site, slightly lower at
// night; "dayshift" has a pronounced day/night swing.
var loadPatterns = map[string][24]float64{
	"continuous": {
		0.85, 0.82, 0.80, 0.78, 0.76, 0.78,
		0.85, 0.92, 0.98, 1.00, 1.00, 1.00,
		0.98, 0.95, 0.98, 1.00, 1.00, 0.98,
		0.95, 0.92, 0.90, 0.88, 0.87, 0.86,
	},
	"dayshift": {
		0.45, 0.40, 0.35, 0.32, 0.30, 0.35,
		0.50, 0.70, 0.85, 0.95, 1.00, 1.00,
		0.98, 0.95, 0.98, 1.00, 0.95, 0.85,
		0.70, 0.60, 0.55, 0.52, 0.48, 0.46,
	},
}

// ListLoadProfiles returns the available profile names.
func ListLoadProfiles() []string {
	return []string{"continuous", "dayshift"}
}

// SynthesizeLoad tiles a named daily pattern across the horizon and
// scales it so the year totals annualConsumptionGWh.
func SynthesizeLoad(profile string, annualConsumptionGWh float64, horizonHours int) (model.LoadProfile, error) {
	pattern, ok := loadPatterns[profile]
	if !ok {
		return model.LoadProfile{}, &model.ConfigurationError{
			Field:  "load.profile",
			Reason: fmt.Sprintf("unknown load profile %q", profile),
		}
	}
	if annualConsumptionGWh <= 0 {
		return model.LoadProfile{}, &model.ConfigurationError{
			Field:  "load.annual_consumption_gwh",
			Reason: "must be > 0",
		}
	}
	if horizonHours != model.HoursPerYear && horizonHours != model.HoursPerLeapYear {
		return model.LoadProfile{}, &model.DataError{
			Series: "load",
			Reason: "horizon must be 8760 or 8784 hours",
		}
	}

	demand := make([]float64, horizonHours)
	patternSum := 0.0
	for t := 0; t < horizonHours; t++ {
		v := pattern[t%24]
		demand[t] = v
		patternSum += v
	}

	// Scale so the hourly kW series sums to the target annual kWh.
	targetKWh := annualConsumptionGWh * 1_000_000
	scale := targetKWh / patternSum
	for t := range demand {
		demand[t] *= scale
	}

	return model.LoadProfile{
		Name:     profile,
		DemandKW: demand,
	}, nil
}
