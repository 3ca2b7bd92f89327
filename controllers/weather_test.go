package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylistweb/models"
	"stylistweb/test"
)

func TestWeatherDefaultsWithoutCoordinates(t *testing.T) {
	_, _, e, cleaner := setupTest()
	defer cleaner()

	req := test.NewJSONRequest("GET", "/weather", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out models.WeatherOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Paris", out.Ville)
	assert.NotEmpty(t, out.Description)
}

func TestWeatherAnimationCounts(t *testing.T) {
	_, _, e, cleaner := setupTest()
	defer cleaner()

	cases := []struct {
		code      string
		condition string
		count     int
	}{
		{"snow", "snow", 60},
		{"rain", "rain", 80},
		{"drizzle", "drizzle", 80},
		{"overcast", "clouds", 30},
		{"", "sun", 30},
	}

	for _, tc := range cases {
		req := test.NewJSONRequest("GET", "/weather/animation?code="+tc.code, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var out models.AnimationOut
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, tc.condition, out.Condition, "code %q", tc.code)
		assert.Len(t, out.Particles, tc.count, "code %q", tc.code)
	}
}

func TestWeatherAnimationParticleRanges(t *testing.T) {
	_, _, e, cleaner := setupTest()
	defer cleaner()

	req := test.NewJSONRequest("GET", "/weather/animation?code=rain", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out models.AnimationOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	for _, p := range out.Particles {
		assert.GreaterOrEqual(t, p.Left, 0.0)
		assert.Less(t, p.Left, 100.0)
		assert.GreaterOrEqual(t, p.Delay, 0.0)
		assert.Less(t, p.Delay, 5.0)
		assert.GreaterOrEqual(t, p.Duration, 1.0)
		assert.Less(t, p.Duration, 4.0)
		assert.GreaterOrEqual(t, p.Size, 2.0)
		assert.Less(t, p.Size, 6.0)
		assert.GreaterOrEqual(t, p.Opacity, 0.3)
		assert.Less(t, p.Opacity, 0.8)
	}
}
