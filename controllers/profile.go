package controllers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stylistweb/models"
	"stylistweb/services"
)

type ProfileUpdateIn struct {
	Prenom      *string `json:"prenom" validate:"omitempty,max=60"`
	Genre       *string `json:"genre" validate:"omitempty,genre"`
	Age         *int    `json:"age" validate:"omitempty,min=14,max=70"`
	Morphologie *string `json:"morphologie" validate:"omitempty,morphologie"`
}

type ProfileController struct {
	Backend services.StylistBackendProvider
}

func (controller *ProfileController) ProfileRoutes(g *echo.Group) {
	g.PUT("", controller.Update)
	g.PUT("/style", controller.UpdateStyle)
	g.GET("/style/options", controller.StyleOptions)
	g.DELETE("", controller.DeleteAccount)
}

// Update pushes the changed profile fields to the backend and copies the
// response body into the session row. The session never holds a locally
// assumed value.
func (controller *ProfileController) Update(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)
	session := c.Get("currentSession").(models.Session)

	in := new(ProfileUpdateIn)
	if err := c.Bind(in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
	}
	if in.Morphologie != nil && !models.ValidateMorphologieRaw(*in.Morphologie) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Morphologie inconnue"})
	}
	if err := c.Validate(in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	fields := map[string]interface{}{}
	if in.Prenom != nil {
		fields["prenom"] = *in.Prenom
	}
	if in.Genre != nil {
		fields["genre"] = *in.Genre
	}
	if in.Age != nil {
		fields["age"] = *in.Age
	}
	if in.Morphologie != nil {
		fields["morphologie"] = *in.Morphologie
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Aucun champ à mettre à jour"})
	}

	user, err := controller.Backend.UpdateUser(c.Request().Context(), session.UserID, fields)
	if err != nil {
		return BackendErrorJSON(c, err)
	}

	return applyProfile(c, db, session, user)
}

// UpdateStyle is the wizard's submit: the three id lists are validated
// against the fixed catalog and stored as one JSON string on the backend
// profile.
func (controller *ProfileController) UpdateStyle(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)
	session := c.Get("currentSession").(models.Session)

	in := new(models.StylePreferences)
	if err := c.Bind(in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
	}
	if err := in.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	serialized, err := in.Serialize()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Préférences illisibles"})
	}

	user, err := controller.Backend.UpdateUser(c.Request().Context(), session.UserID, map[string]interface{}{
		"style_prefere": serialized,
	})
	if err != nil {
		return BackendErrorJSON(c, err)
	}

	return applyProfile(c, db, session, user)
}

func (controller *ProfileController) StyleOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, models.StyleCatalog)
}

// DeleteAccount is terminal: backend cascade delete, then the session row
// (with its cached suggestions) is destroyed. Requires confirm=true.
func (controller *ProfileController) DeleteAccount(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)
	session := c.Get("currentSession").(models.Session)

	if c.QueryParam("confirm") != "true" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Confirmation requise pour supprimer le compte"})
	}

	if err := controller.Backend.DeleteUser(c.Request().Context(), session.UserID); err != nil {
		return BackendErrorJSON(c, err)
	}

	if r := db.Delete(&models.Session{}, session.ID); r.Error != nil {
		fmt.Println("Failed to delete session row after account deletion", r.Error)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Compte supprimé"})
}

// applyProfile commits a confirmed backend response to the session row and
// echoes the fresh profile.
func applyProfile(c echo.Context, db *gorm.DB, session models.Session, user *models.UserProfile) error {
	session.Prenom = user.Prenom
	session.Genre = user.Genre
	session.Age = user.Age
	session.Morphologie = user.Morphologie
	session.StylePrefere = user.StylePrefere
	if r := db.Save(&session); r.Error != nil {
		fmt.Println("Failed to persist session profile update", r.Error)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Impossible d'enregistrer le profil"})
	}

	return c.JSON(http.StatusOK, models.SessionOut{
		User:            *user,
		NeedsStyleSetup: session.NeedsStyleSetup(),
	})
}
