package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"

	"stylistweb/models"
)

// Weather barely moves inside ten minutes, and both upstream APIs are rate
// limited for anonymous callers.
const weatherCacheExpiration = 10 * time.Minute

type WeatherCacheServiceProvider interface {
	GetWeather(ctx context.Context, lat, lon float64) (*models.WeatherOut, error)
}

// WeatherCacheService memoizes weather lookups in a loadable Ristretto
// cache keyed by rounded coordinates, so nearby requests within the window
// share one upstream round trip.
type WeatherCacheService struct {
	cache   *cache.LoadableCache[string]
	weather WeatherServiceProvider
}

func NewWeatherCacheService(weather WeatherServiceProvider) (*WeatherCacheService, error) {
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 20, // 1MB, weather payloads are tiny
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}

	ristrettoStore := ristretto_store.NewRistretto(ristrettoCache)

	loadFunction := func(ctx context.Context, key any) (string, []store.Option, error) {
		coordKey, ok := key.(string)
		if !ok {
			return "", nil, fmt.Errorf("invalid key type provided to weather cache: expected string, got %T", key)
		}

		var lat, lon float64
		if _, err := fmt.Sscanf(coordKey, "%f,%f", &lat, &lon); err != nil {
			return "", nil, fmt.Errorf("malformed weather cache key %q", coordKey)
		}

		log.Printf("CACHE MISS for coordinates %s. Fetching weather.", coordKey)
		out, err := weather.GetWeather(ctx, lat, lon)
		if err != nil {
			return "", nil, err
		}
		encoded, err := json.Marshal(out)
		return string(encoded), []store.Option{store.WithExpiration(weatherCacheExpiration)}, err
	}

	loadableCache := cache.NewLoadable[string](
		loadFunction,
		cache.New[string](ristrettoStore),
	)
	fmt.Println("Initialized WeatherCacheService with Ristretto cache!")
	return &WeatherCacheService{
		cache:   loadableCache,
		weather: weather,
	}, nil
}

// WeatherCacheKey rounds coordinates to two decimals (~1km), enough to share
// cache entries across a city without mixing cities.
func WeatherCacheKey(lat, lon float64) string {
	if !validCoordinates(lat, lon) {
		lat, lon = DefaultLat, DefaultLon
	}
	return fmt.Sprintf("%.2f,%.2f", lat, lon)
}

func (s *WeatherCacheService) GetWeather(ctx context.Context, lat, lon float64) (*models.WeatherOut, error) {
	encoded, err := s.cache.Get(ctx, WeatherCacheKey(lat, lon))
	if err != nil {
		return nil, err
	}
	var out models.WeatherOut
	if err := json.Unmarshal([]byte(encoded), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
