package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylistweb/models"
	"stylistweb/test"
)

func TestAdminLoginBadKey(t *testing.T) {
	_, _, e, cleaner := setupTest()
	defer cleaner()

	req := test.NewJSONRequest("POST", "/admin/session", AdminLoginIn{Key: "wrong"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Clé admin invalide", response["error"])
}

func TestAdminLoginOk(t *testing.T) {
	_, backend, e, cleaner := setupTest()
	defer cleaner()
	backend.SeedUser("Léa", "Femme", 24, "SABLIER")

	req := test.NewJSONRequest("POST", "/admin/session", AdminLoginIn{Key: backend.AdminKey})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response struct {
		Token string            `json:"token"`
		Stats models.AdminStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)
	assert.Equal(t, 1, response.Stats.TotalUsers)
}

func TestAdminUsersListsCounts(t *testing.T) {
	db, backend, e, cleaner := setupTest()
	defer cleaner()
	user := backend.SeedUser("Léa", "Femme", 24, "SABLIER")
	backend.SeedItem(user.ID, "wardrobe", "Jean", "Bleu", "Toutes", "")
	backend.SeedItem(user.ID, "wishlist", "Robe", "Noire", "Été", "")
	session := test.FakeAdminSession(db, backend.AdminKey)

	req := test.NewJSONAdminAuthRequest("GET", "/admin/users", UIntToStr(session.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var rows []models.AdminUserRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].ClothingCount)
	assert.NotEmpty(t, rows[0].CreatedAt)
}

func TestAdminForbiddenDestroysSession(t *testing.T) {
	db, _, e, cleaner := setupTest()
	defer cleaner()
	// the stored key was valid once, then revoked on the backend
	session := test.FakeAdminSession(db, "revoked-key")

	req := test.NewJSONAdminAuthRequest("GET", "/admin/users", UIntToStr(session.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	var response map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Clé admin invalide", response["error"])

	var count int64
	db.Model(&models.AdminSession{}).Where("id = ?", session.ID).Count(&count)
	require.Zero(t, count, "a 403 from the backend revokes the admin session")

	// the old token must not open anything anymore
	req = test.NewJSONAdminAuthRequest("GET", "/admin/stats", UIntToStr(session.ID), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserTokenRejectedOnAdminRoutes(t *testing.T) {
	db, backend, e, cleaner := setupTest()
	defer cleaner()
	user := backend.SeedUser("Léa", "Femme", 24, "SABLIER")

	// both tables start their id sequence at 1, so the ids collide
	adminSession := test.FakeAdminSession(db, backend.AdminKey)
	userSession := test.FakeSession(db, user.ID, user.Prenom)
	require.Equal(t, adminSession.ID, userSession.ID)

	req := test.NewJSONAuthRequest("GET", "/admin/users", UIntToStr(userSession.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code, "a user token must never open the admin panel")
}

func TestAdminTokenRejectedOnUserRoutes(t *testing.T) {
	db, backend, e, cleaner := setupTest()
	defer cleaner()
	user := backend.SeedUser("Léa", "Femme", 24, "SABLIER")

	adminSession := test.FakeAdminSession(db, backend.AdminKey)
	userSession := test.FakeSession(db, user.ID, user.Prenom)
	require.Equal(t, adminSession.ID, userSession.ID)

	req := test.NewJSONAdminAuthRequest("GET", "/session/me", UIntToStr(adminSession.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code, "an admin token must never open a user session")
}

func TestAdminDeleteUserReportsCascade(t *testing.T) {
	db, backend, e, cleaner := setupTest()
	defer cleaner()
	user := backend.SeedUser("Léa", "Femme", 24, "SABLIER")
	backend.SeedItem(user.ID, "wardrobe", "Jean", "Bleu", "Toutes", "")
	backend.SeedItem(user.ID, "wardrobe", "Pull", "Gris", "Hiver", "")
	session := test.FakeAdminSession(db, backend.AdminKey)

	// confirmation is required
	req := test.NewJSONAdminAuthRequest("DELETE", fmt.Sprintf("/admin/users/%d", user.ID), UIntToStr(session.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = test.NewJSONAdminAuthRequest("DELETE", fmt.Sprintf("/admin/users/%d?confirm=true", user.ID), UIntToStr(session.ID), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out models.AdminDeleteOut
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 2, out.DeletedItems)
	assert.Empty(t, backend.Users)
}
