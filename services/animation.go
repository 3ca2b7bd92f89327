package services

import (
	"math/rand"
	"strings"

	"stylistweb/models"
)

// Particle generation for the decorative weather layer. The page renders
// these verbatim as CSS animation parameters.

// ClassifyCondition reduces a free-form weather description to one of the
// seven animation types. Order matters: thunder before rain, rain before
// drizzle.
func ClassifyCondition(description string) string {
	code := strings.ToLower(description)
	switch {
	case strings.Contains(code, "thunder") || strings.Contains(code, "orage"):
		return "thunder"
	case strings.Contains(code, "rain") || strings.Contains(code, "shower") || strings.Contains(code, "pluie") || strings.Contains(code, "averse"):
		return "rain"
	case strings.Contains(code, "drizzle") || strings.Contains(code, "bruine"):
		return "drizzle"
	case strings.Contains(code, "snow") || strings.Contains(code, "neige"):
		return "snow"
	case strings.Contains(code, "cloud") || strings.Contains(code, "overcast") || strings.Contains(code, "nuage") || strings.Contains(code, "brouillard"):
		return "clouds"
	case strings.Contains(code, "wind") || strings.Contains(code, "vent"):
		return "wind"
	default:
		return "sun"
	}
}

// ParticleCount follows the density the animation needs: heavy for rain,
// medium for snow, sparse otherwise.
func ParticleCount(description string) int {
	code := strings.ToLower(description)
	switch {
	case strings.Contains(code, "snow") || strings.Contains(code, "neige"):
		return 60
	case strings.Contains(code, "rain") || strings.Contains(code, "shower") || strings.Contains(code, "drizzle") ||
		strings.Contains(code, "pluie") || strings.Contains(code, "averse") || strings.Contains(code, "bruine"):
		return 80
	default:
		return 30
	}
}

func GenerateAnimation(description string) models.AnimationOut {
	count := ParticleCount(description)
	particles := make([]models.Particle, count)
	for i := range particles {
		particles[i] = models.Particle{
			Left:     rand.Float64() * 100,
			Delay:    rand.Float64() * 5,
			Duration: 1 + rand.Float64()*3,
			Size:     2 + rand.Float64()*4,
			Opacity:  0.3 + rand.Float64()*0.5,
		}
	}
	return models.AnimationOut{
		Condition: ClassifyCondition(description),
		Particles: particles,
	}
}
