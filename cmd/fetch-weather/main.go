package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"microgrid-planner/internal/data"
)

// fetch-weather downloads one archive year of hourly weather from
// Open-Meteo and saves it as JSON usable by the CLI and the API's
// "file" weather source.
func main() {
	var (
		lat        = flag.Float64("lat", 52.52, "Site latitude")
		lon        = flag.Float64("lon", 13.41, "Site longitude")
		year       = flag.Int("year", 2023, "Archive year to fetch")
		outputPath = flag.String("output", "", "Output file path (default: ./examples/weather/<lat>_<lon>_<year>.json)")
	)
	flag.Parse()

	if *outputPath == "" {
		*outputPath = filepath.Join("examples", "weather",
			fmt.Sprintf("%.2f_%.2f_%d.json", *lat, *lon, *year))
	}

	client := data.NewOpenMeteoClient("")

	fmt.Printf("Fetching weather for lat=%.2f lon=%.2f year=%d\n", *lat, *lon, *year)

	wf, err := client.FetchYear(data.WeatherQuery{
		Latitude:  *lat,
		Longitude: *lon,
		Year:      *year,
	})
	if err != nil {
		log.Fatalf("Failed to fetch weather: %v", err)
	}

	if err := data.SaveWeatherJSON(wf, *outputPath); err != nil {
		log.Fatalf("Failed to save weather: %v", err)
	}

	fmt.Printf("Saved %d hours to %s\n", len(wf.IrradianceWm2), *outputPath)
}
