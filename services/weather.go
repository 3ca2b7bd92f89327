package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stylistweb/models"
)

// Paris, the default locale of the product.
const (
	DefaultLat = 48.8566
	DefaultLon = 2.3522
)

type WeatherServiceProvider interface {
	GetWeather(ctx context.Context, lat, lon float64) (*models.WeatherOut, error)
}

// WeatherService resolves current weather from two keyless public APIs:
// Open-Meteo for the forecast, BigDataCloud for the city name. Exactly one
// call each per lookup; either failing degrades the payload instead of
// failing the request.
type WeatherService struct {
	ForecastURL string
	GeocodeURL  string
	Client      *http.Client
}

func NewWeatherService() *WeatherService {
	return &WeatherService{
		ForecastURL: GetEnv("OPEN_METEO_URL", "https://api.open-meteo.com/v1/forecast"),
		GeocodeURL:  GetEnv("REVERSE_GEOCODE_URL", "https://api.bigdatacloud.net/data/reverse-geocode-client"),
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// weathercode groups per Open-Meteo's WMO table, reduced to the French
// descriptions the pages display.
func DescribeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "ensoleillé"
	case code >= 1 && code <= 3:
		return "nuageux"
	case code == 45 || code == 48:
		return "brouillard"
	case code >= 51 && code <= 57:
		return "bruine"
	case code >= 61 && code <= 67:
		return "pluie"
	case code >= 71 && code <= 77:
		return "neige"
	case code >= 80 && code <= 82:
		return "averses"
	case code == 85 || code == 86:
		return "averses de neige"
	case code >= 95:
		return "orage"
	default:
		return "temps variable"
	}
}

func (w *WeatherService) GetWeather(ctx context.Context, lat, lon float64) (*models.WeatherOut, error) {
	if !validCoordinates(lat, lon) {
		lat, lon = DefaultLat, DefaultLon
	}

	out := &models.WeatherOut{
		Temperature: 18,
		Description: "temps variable",
		Ville:       "Paris",
	}

	var forecast struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
	}
	forecastURL := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&current_weather=true", w.ForecastURL, lat, lon)
	if err := w.fetch(ctx, forecastURL, &forecast); err != nil {
		fmt.Println("Weather forecast lookup failed:", err)
	} else {
		out.Temperature = forecast.CurrentWeather.Temperature
		out.Code = forecast.CurrentWeather.WeatherCode
		out.Description = DescribeWeatherCode(forecast.CurrentWeather.WeatherCode)
	}

	var place struct {
		City     string `json:"city"`
		Locality string `json:"locality"`
	}
	geocodeURL := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&localityLanguage=fr", w.GeocodeURL, lat, lon)
	if err := w.fetch(ctx, geocodeURL, &place); err != nil {
		fmt.Println("Reverse geocode lookup failed:", err)
	} else if place.City != "" {
		out.Ville = place.City
	} else if place.Locality != "" {
		out.Ville = place.Locality
	}

	return out, nil
}

func (w *WeatherService) fetch(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	res, err := w.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func validCoordinates(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
