package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"microgrid-planner/internal/model"
)

// WeatherFile is the on-disk JSON shape for one year of hourly weather.
type WeatherFile struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Year      int     `json:"year"`

	IrradianceWm2 []float64 `json:"irradiance_wm2"`
	WindSpeedMs   []float64 `json:"wind_speed_ms"`
	TemperatureC  []float64 `json:"temperature_c"`
}

// ToSiteProfile converts the file into the model's immutable input form.
func (w *WeatherFile) ToSiteProfile() model.SiteProfile {
	return model.SiteProfile{
		Name:          fmt.Sprintf("%.2f,%.2f/%d", w.Latitude, w.Longitude, w.Year),
		IrradianceWm2: w.IrradianceWm2,
		WindSpeedMs:   w.WindSpeedMs,
		TemperatureC:  w.TemperatureC,
	}
}

// LoadWeatherJSON reads a saved weather file.
func LoadWeatherJSON(path string) (*WeatherFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weather file: %w", err)
	}
	var wf WeatherFile
	if err := json.Unmarshal(raw, &wf); err != nil {
		return nil, fmt.Errorf("failed to parse weather file: %w", err)
	}
	return &wf, nil
}

// SaveWeatherJSON writes a weather file, creating the directory if needed.
func SaveWeatherJSON(wf *WeatherFile, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(wf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal weather: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write weather file: %w", err)
	}
	return nil
}
