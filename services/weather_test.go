package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylistweb/models"
)

func TestDescribeWeatherCode(t *testing.T) {
	assert.Equal(t, "ensoleillé", DescribeWeatherCode(0))
	assert.Equal(t, "nuageux", DescribeWeatherCode(2))
	assert.Equal(t, "brouillard", DescribeWeatherCode(45))
	assert.Equal(t, "bruine", DescribeWeatherCode(53))
	assert.Equal(t, "pluie", DescribeWeatherCode(63))
	assert.Equal(t, "neige", DescribeWeatherCode(73))
	assert.Equal(t, "averses", DescribeWeatherCode(81))
	assert.Equal(t, "orage", DescribeWeatherCode(95))
	assert.Equal(t, "temps variable", DescribeWeatherCode(42))
}

func TestGetWeatherHappyPath(t *testing.T) {
	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current_weather":{"temperature":7.5,"weathercode":63}}`))
	}))
	defer forecast.Close()
	geocode := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"city":"Lille","locality":"Vieux-Lille"}`))
	}))
	defer geocode.Close()

	service := &WeatherService{
		ForecastURL: forecast.URL,
		GeocodeURL:  geocode.URL,
		Client:      &http.Client{Timeout: time.Second},
	}

	out, err := service.GetWeather(context.Background(), 50.63, 3.06)
	require.NoError(t, err)
	assert.Equal(t, 7.5, out.Temperature)
	assert.Equal(t, "pluie", out.Description)
	assert.Equal(t, "Lille", out.Ville)
	assert.Equal(t, 63, out.Code)
}

func TestGetWeatherDegradesOnUpstreamFailure(t *testing.T) {
	service := &WeatherService{
		ForecastURL: "http://127.0.0.1:1",
		GeocodeURL:  "http://127.0.0.1:1",
		Client:      &http.Client{Timeout: time.Second},
	}

	out, err := service.GetWeather(context.Background(), 48.85, 2.35)
	require.NoError(t, err, "upstream failure degrades, never errors")
	assert.Equal(t, "Paris", out.Ville)
	assert.Equal(t, "temps variable", out.Description)
}

func TestWeatherCacheKeyRoundsAndDefaults(t *testing.T) {
	assert.Equal(t, "48.86,2.35", WeatherCacheKey(48.8566, 2.3522))
	assert.Equal(t, WeatherCacheKey(48.8566, 2.3522), WeatherCacheKey(48.857, 2.352), "nearby coordinates share a key")
	assert.Equal(t, WeatherCacheKey(DefaultLat, DefaultLon), WeatherCacheKey(0, 0), "missing coordinates fall back to Paris")
	assert.Equal(t, WeatherCacheKey(DefaultLat, DefaultLon), WeatherCacheKey(400, -500))
}

type countingWeatherService struct {
	calls int64
}

func (c *countingWeatherService) GetWeather(ctx context.Context, lat, lon float64) (*models.WeatherOut, error) {
	atomic.AddInt64(&c.calls, 1)
	return &models.WeatherOut{Temperature: 20, Description: "ensoleillé", Ville: "Paris"}, nil
}

func TestWeatherCacheMemoizes(t *testing.T) {
	upstream := &countingWeatherService{}
	cache, err := NewWeatherCacheService(upstream)
	require.NoError(t, err)

	out, err := cache.GetWeather(context.Background(), 48.8566, 2.3522)
	require.NoError(t, err)
	assert.Equal(t, "Paris", out.Ville)

	// ristretto admits asynchronously; poll until a repeated lookup stops
	// reaching upstream
	var before int64
	for i := 0; i < 100; i++ {
		before = atomic.LoadInt64(&upstream.calls)
		time.Sleep(10 * time.Millisecond)
		_, err = cache.GetWeather(context.Background(), 48.8566, 2.3522)
		require.NoError(t, err)
		if atomic.LoadInt64(&upstream.calls) == before {
			break
		}
	}
	require.Equal(t, before, atomic.LoadInt64(&upstream.calls), "cache entry never landed")

	_, err = cache.GetWeather(context.Background(), 48.857, 2.352)
	require.NoError(t, err)
	assert.Equal(t, before, atomic.LoadInt64(&upstream.calls), "nearby coordinates share the warm entry")
}
