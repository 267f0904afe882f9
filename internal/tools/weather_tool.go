// In file: internal/tools/weather_tool.go
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// --- Weather Tool Implementation ---

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"

	weatherTimeout = 8 * time.Second
)

// wmoDescriptions maps WMO weather codes to short human-readable conditions.
// Expand as needed; unknown codes render as "unknown".
var wmoDescriptions = map[int]string{
	0: "clear sky", 1: "mainly clear", 2: "partly cloudy", 3: "overcast",
	45: "fog", 48: "rime fog",
	51: "light drizzle", 53: "moderate drizzle", 55: "dense drizzle",
	61: "light rain", 63: "moderate rain", 65: "heavy rain",
	71: "light snow", 73: "moderate snow", 75: "heavy snow",
	80: "rain showers", 81: "heavy rain showers", 82: "violent rain showers",
	95: "thunderstorm", 96: "thunderstorm w/ light hail", 99: "thunderstorm w/ heavy hail",
}

// WeatherTool resolves a place name to coordinates via the open-meteo
// geocoding API and then fetches the current conditions. It holds its own
// configured HTTP client so a hung weather service can never block a request
// past the timeout.
type WeatherTool struct {
	defaultLocation string
	geocodingURL    string
	forecastURL     string
	httpClient      *http.Client
}

// Statically verify that WeatherTool implements the Tool interface.
var _ Tool = (*WeatherTool)(nil)

// NewWeatherTool creates the weather tool. defaultLocation is used whenever
// the caller passes an empty location, so "what's the weather" with no place
// still produces an answer.
func NewWeatherTool(defaultLocation string) *WeatherTool {
	return &WeatherTool{
		defaultLocation: defaultLocation,
		geocodingURL:    defaultGeocodingURL,
		forecastURL:     defaultForecastURL,
		httpClient: &http.Client{
			Timeout: weatherTimeout,
		},
	}
}

func (wt *WeatherTool) Spec() Spec {
	return Spec{
		Name:        NameWeather,
		Description: "Get the current weather for a given city/location.",
		Arguments:   map[string]string{"location": "string"},
		Required:    []string{},
	}
}

// Invoke looks up the location and reports current conditions. An empty
// location falls back to the configured default; a location the geocoder does
// not know is a reported failure, not a fault.
func (wt *WeatherTool) Invoke(ctx context.Context, location string) Result {
	place := strings.TrimSpace(location)
	if place == "" {
		place = wt.defaultLocation
	}

	geo, err := wt.geocode(ctx, place)
	if err != nil {
		return Failure(fmt.Sprintf("Weather error: %v", err))
	}
	if geo == nil {
		return Failure(fmt.Sprintf("Could not find location '%s'. Please specify a city (e.g., 'weather in Toronto').", place))
	}

	current, err := wt.fetchCurrent(ctx, geo.Latitude, geo.Longitude)
	if err != nil {
		return Failure(fmt.Sprintf("Weather error: %v", err))
	}

	desc := "unknown"
	if d, ok := wmoDescriptions[current.WeatherCode]; ok {
		desc = d
	}
	label := geo.Name
	if geo.Country != "" {
		label = fmt.Sprintf("%s, %s", geo.Name, geo.Country)
	}
	text := fmt.Sprintf("%s: %.1f°C, feels like %.1f°C, %s, wind %.1f km/h, precip %.1f mm (current).",
		label, current.Temperature, current.ApparentTemperature, desc, current.WindSpeed, current.Precipitation)
	return Success(text)
}

type geocodeHit struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// geocode resolves a free-text place name to its best-matching coordinates.
// A nil hit with a nil error means the geocoder had no results.
func (wt *WeatherTool) geocode(ctx context.Context, place string) (*geocodeHit, error) {
	params := url.Values{}
	params.Set("name", place)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	var payload struct {
		Results []geocodeHit `json:"results"`
	}
	if err := wt.getJSON(ctx, wt.geocodingURL, params, &payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		return nil, nil
	}
	return &payload.Results[0], nil
}

type currentConditions struct {
	Temperature         float64 `json:"temperature_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	Precipitation       float64 `json:"precipitation"`
	WeatherCode         int     `json:"weather_code"`
	WindSpeed           float64 `json:"wind_speed_10m"`
}

func (wt *WeatherTool) fetchCurrent(ctx context.Context, lat, lon float64) (*currentConditions, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	params.Set("current", "temperature_2m,apparent_temperature,precipitation,weather_code,wind_speed_10m")
	params.Set("temperature_unit", "celsius")
	params.Set("windspeed_unit", "kmh")
	params.Set("precipitation_unit", "mm")
	params.Set("timezone", "auto")

	var payload struct {
		Current currentConditions `json:"current"`
	}
	if err := wt.getJSON(ctx, wt.forecastURL, params, &payload); err != nil {
		return nil, err
	}
	return &payload.Current, nil
}

// getJSON performs a GET against an open-meteo style endpoint and decodes the
// JSON body into out.
func (wt *WeatherTool) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create weather API request: %w", err)
	}
	// Some services block default Go HTTP clients, so set a common User-Agent.
	req.Header.Set("User-Agent", "Voice-Gateway-Agent/1.0")

	resp, err := wt.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call weather API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather API returned non-200 status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse weather API response: %w", err)
	}
	return nil
}
