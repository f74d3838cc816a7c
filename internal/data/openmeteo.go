package data

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// OpenMeteoClient fetches historical hourly weather from the Open-Meteo
// archive API. No API key is required.
type OpenMeteoClient struct {
	BaseURL string
	Client  *http.Client
}

// NewOpenMeteoClient creates a client. If baseURL is empty, defaults to
// the public archive endpoint.
func NewOpenMeteoClient(baseURL string) *OpenMeteoClient {
	if baseURL == "" {
		baseURL = "https://archive-api.open-meteo.com"
	}
	return &OpenMeteoClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WeatherQuery defines parameters for fetching one calendar year of
// hourly weather at a coordinate.
type WeatherQuery struct {
	Latitude  float64
	Longitude float64
	Year      int
}

// OpenMeteoError represents an error from the Open-Meteo API.
type OpenMeteoError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *OpenMeteoError) Error() string { return e.Message }

// openMeteoResponse matches the archive API's JSON shape.
type openMeteoResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Hourly    struct {
		Time               []string  `json:"time"`
		Temperature2m      []float64 `json:"temperature_2m"`
		WindSpeed10m       []float64 `json:"windspeed_10m"`
		ShortwaveRadiation []float64 `json:"shortwave_radiation"`
	} `json:"hourly"`
}

// FetchYear fetches one year of hourly GHI, wind speed and temperature.
//
// If caching is enabled (ENABLE_WEATHER_CACHE=true), responses may be
// served from an in-memory cache; see cache.go.
func (c *OpenMeteoClient) FetchYear(q WeatherQuery) (*WeatherFile, error) {
	if q.Latitude < -90 || q.Latitude > 90 {
		return nil, fmt.Errorf("latitude must be in [-90, 90]")
	}
	if q.Longitude < -180 || q.Longitude > 180 {
		return nil, fmt.Errorf("longitude must be in [-180, 180]")
	}
	if q.Year < 1940 || q.Year > time.Now().Year() {
		return nil, fmt.Errorf("year %d outside archive coverage", q.Year)
	}

	if cache := GetCache(); cache != nil {
		key := GenerateCacheKey(q)
		if cached, found := cache.Get(key); found {
			log.Printf("[OpenMeteo] Cache hit: %d hours (lat=%.2f, lon=%.2f, year=%d)",
				len(cached.IrradianceWm2), q.Latitude, q.Longitude, q.Year)
			return cached, nil
		}
	}

	u, err := url.Parse(c.BaseURL + "/v1/archive")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	qp := u.Query()
	qp.Set("latitude", fmt.Sprintf("%.4f", q.Latitude))
	qp.Set("longitude", fmt.Sprintf("%.4f", q.Longitude))
	qp.Set("start_date", fmt.Sprintf("%d-01-01", q.Year))
	qp.Set("end_date", fmt.Sprintf("%d-12-31", q.Year))
	qp.Set("hourly", "temperature_2m,windspeed_10m,shortwave_radiation")
	qp.Set("timezone", "UTC")
	u.RawQuery = qp.Encode()

	log.Printf("[OpenMeteo] Request: GET %s (lat=%.2f, lon=%.2f, year=%d)",
		u.Path, q.Latitude, q.Longitude, q.Year)

	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		log.Printf("[OpenMeteo] Request failed: %v (duration: %v)", err, duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[OpenMeteo] Response: %d %s (duration: %v)", resp.StatusCode, resp.Status, duration)

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue.
	case http.StatusTooManyRequests:
		return nil, &OpenMeteoError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    "Open-Meteo rate limit exceeded",
		}
	default:
		return nil, &OpenMeteoError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var raw openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	wf := &WeatherFile{
		Latitude:      q.Latitude,
		Longitude:     q.Longitude,
		Year:          q.Year,
		IrradianceWm2: clampNonNegative(raw.Hourly.ShortwaveRadiation),
		WindSpeedMs:   clampNonNegative(raw.Hourly.WindSpeed10m),
		TemperatureC:  raw.Hourly.Temperature2m,
	}
	log.Printf("[OpenMeteo] Success: received %d hours (lat=%.2f, lon=%.2f, year=%d)",
		len(wf.IrradianceWm2), q.Latitude, q.Longitude, q.Year)

	if cache := GetCache(); cache != nil {
		cache.Set(GenerateCacheKey(q), wf)
	}
	return wf, nil
}

// clampNonNegative zeroes tiny negative sensor artifacts in-place.
func clampNonNegative(vals []float64) []float64 {
	for i, v := range vals {
		if v < 0 {
			vals[i] = 0
		}
	}
	return vals
}
