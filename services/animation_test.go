package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCondition(t *testing.T) {
	cases := map[string]string{
		"thunderstorm":   "thunder",
		"orage violent":  "thunder",
		"light rain":     "rain",
		"averses":        "rain",
		"drizzle":        "drizzle",
		"bruine légère":  "drizzle",
		"snow":           "snow",
		"neige":          "snow",
		"overcast":       "clouds",
		"nuageux":        "clouds",
		"windy":          "wind",
		"clear sky":      "sun",
		"ensoleillé":     "sun",
		"":               "sun",
	}
	for code, expected := range cases {
		assert.Equal(t, expected, ClassifyCondition(code), "code %q", code)
	}
}

func TestParticleCount(t *testing.T) {
	assert.Equal(t, 60, ParticleCount("snow"))
	assert.Equal(t, 60, ParticleCount("neige"))
	assert.Equal(t, 80, ParticleCount("rain"))
	assert.Equal(t, 80, ParticleCount("shower"))
	assert.Equal(t, 80, ParticleCount("drizzle"))
	assert.Equal(t, 30, ParticleCount("clear"))
	assert.Equal(t, 30, ParticleCount(""))
}

func TestGenerateAnimationRanges(t *testing.T) {
	out := GenerateAnimation("snow")
	require.Len(t, out.Particles, 60)
	assert.Equal(t, "snow", out.Condition)
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
