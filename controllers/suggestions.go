package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stylistweb/languageutil"
	"stylistweb/models"
	"stylistweb/services"
)

type SuggestionsController struct {
	Backend services.StylistBackendProvider
	Weather services.WeatherCacheServiceProvider
}

func (controller *SuggestionsController) SuggestionsRoutes(g *echo.Group) {
	g.GET("", controller.Get)
	g.POST("/refresh", controller.Refresh)
}

// Get serves the session's cached suggestion set without touching the
// backend. The AI endpoint is billed per call; only an explicit refresh may
// invoke it.
func (controller *SuggestionsController) Get(c echo.Context) error {
	session := c.Get("currentSession").(models.Session)

	out := models.SuggestionsOut{Suggestions: []models.Suggestion{}}
	if session.SuggestionsJSON != nil {
		if err := json.Unmarshal([]byte(*session.SuggestionsJSON), &out.Suggestions); err != nil {
			fmt.Println("Discarding unreadable cached suggestions for session", session.ID, err)
			out.Suggestions = []models.Suggestion{}
		} else {
			out.Cached = true
		}
	}
	if session.Greeting != nil {
		out.Salutation = *session.Greeting
	}
	if session.SuggestedAt != nil {
		out.GeneratedAt = session.SuggestedAt.Format(time.RFC3339)
	}
	return c.JSON(http.StatusOK, out)
}

// Refresh resolves weather for the given (or default) coordinates, asks the
// backend for a new suggestion set, and replaces the cached set and greeting
// together. The previous cache survives untouched if anything fails.
func (controller *SuggestionsController) Refresh(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)
	session := c.Get("currentSession").(models.Session)

	in := new(models.RefreshSuggestionsIn)
	if err := c.Bind(in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
	}
	lat, lon := services.DefaultLat, services.DefaultLon
	if in.Lat != nil && in.Lon != nil {
		lat, lon = *in.Lat, *in.Lon
	}

	weather, err := controller.Weather.GetWeather(c.Request().Context(), lat, lon)
	if err != nil {
		fmt.Println("Weather resolution failed, using defaults:", err)
		weather = &models.WeatherOut{Temperature: 18, Description: "temps variable", Ville: "Paris"}
	}

	generated, err := controller.Backend.GenerateSuggestions(c.Request().Context(), session.UserID, *weather)
	if err != nil {
		return BackendErrorJSON(c, err)
	}

	if generated.Salutation == "" {
		generated.Salutation = languageutil.RandomGreeting(session.Prenom)
	}

	encoded, err := json.Marshal(generated.Suggestions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Suggestions illisibles"})
	}

	now := time.Now()
	r := db.Model(&models.Session{}).Where("id = ?", session.ID).Updates(map[string]interface{}{
		"suggestions_json": string(encoded),
		"greeting":         generated.Salutation,
		"suggested_at":     now,
	})
	if r.Error != nil {
		fmt.Println("Failed to persist suggestion cache", r.Error)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Impossible d'enregistrer les suggestions"})
	}

	return c.JSON(http.StatusOK, models.SuggestionsOut{
		Suggestions: generated.Suggestions,
		Salutation:  generated.Salutation,
		GeneratedAt: now.Format(time.RFC3339),
	})
}
