package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylistweb/models"
	"stylistweb/services"
	"stylistweb/test"
)

func TestGetSuggestionsEmptyCache(t *testing.T) {
	db, backend, e, cleaner := setupTest()
	defer cleaner()
	user := backend.SeedUser("Léa", "Femme", 24, "SABLIER")
	session := test.FakeSession(db, user.ID, user.Prenom)

	req := test.NewJSONAuthRequest("GET", "/suggestions", UIntToStr(session.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out models.SuggestionsOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.False(t, out.Cached)
	assert.Empty(t, out.Suggestions)
	assert.Zero(t, backend.GenerateCalls, "a plain GET never invokes the AI endpoint")
}

func TestRefreshPopulatesCache(t *testing.T) {
	db, backend, e, cleaner := setupTest()
	defer cleaner()
	user := backend.SeedUser("Léa", "Femme", 24, "SABLIER")
	session := test.FakeSession(db, user.ID, user.Prenom)
	backend.Suggestions = []models.Suggestion{
		{Titre: "Look urbain", Description: "Jean et blazer", Occasion: "travail"},
	}
	backend.Salutation = "Salut Léa !"

	req := test.NewJSONAuthRequest("POST", "/suggestions/refresh", UIntToStr(session.ID), models.RefreshSuggestionsIn{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out models.SuggestionsOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Suggestions, 1)
	assert.Equal(t, "Salut Léa !", out.Salutation)
	assert.Equal(t, 1, backend.GenerateCalls)

	// subsequent GETs serve the cache without another AI call
	req = test.NewJSONAuthRequest("GET", "/suggestions", UIntToStr(session.ID), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Cached)
	require.Len(t, out.Suggestions, 1)
	assert.Equal(t, "Look urbain", out.Suggestions[0].Titre)
	assert.Equal(t, 1, backend.GenerateCalls)
}

func TestRefreshReplacesCacheWholesale(t *testing.T) {
	db, backend, e, cleaner := setupTest()
	defer cleaner()
	user := backend.SeedUser("Léa", "Femme", 24, "SABLIER")
	session := test.FakeSession(db, user.ID, user.Prenom)

	backend.Suggestions = []models.Suggestion{{Titre: "Premier look"}, {Titre: "Deuxième look"}}
	req := test.NewJSONAuthRequest("POST", "/suggestions/refresh", UIntToStr(session.ID), models.RefreshSuggestionsIn{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	backend.Suggestions = []models.Suggestion{{Titre: "Nouveau look"}}
	backend.Salutation = "Re-bonjour !"
	req = test.NewJSONAuthRequest("POST", "/suggestions/refresh", UIntToStr(session.ID), models.RefreshSuggestionsIn{})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out models.SuggestionsOut
	req = test.NewJSONAuthRequest("GET", "/suggestions", UIntToStr(session.ID), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Suggestions, 1, "old entries never survive a refresh")
	assert.Equal(t, "Nouveau look", out.Suggestions[0].Titre)
	assert.Equal(t, "Re-bonjour !", out.Salutation)
}

func TestRefreshFailureKeepsPreviousCache(t *testing.T) {
	db, backend, e, cleaner := setupTest()
	defer cleaner()
	user := backend.SeedUser("Léa", "Femme", 24, "SABLIER")
	session := test.FakeSession(db, user.ID, user.Prenom)

	backend.Suggestions = []models.Suggestion{{Titre: "Look conservé"}}
	req := test.NewJSONAuthRequest("POST", "/suggestions/refresh", UIntToStr(session.ID), models.RefreshSuggestionsIn{})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	backend.ForcedError = &services.BackendError{Kind: services.ErrNetwork, Status: 503, Message: "indisponible"}
	req = test.NewJSONAuthRequest("POST", "/suggestions/refresh", UIntToStr(session.ID), models.RefreshSuggestionsIn{})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	backend.ForcedError = nil
	var out models.SuggestionsOut
	req = test.NewJSONAuthRequest("GET", "/suggestions", UIntToStr(session.ID), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Suggestions, 1)
	assert.Equal(t, "Look conservé", out.Suggestions[0].Titre, "a failed refresh must leave the prior cache intact")
}
