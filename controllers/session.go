package controllers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stylistweb/models"
	"stylistweb/services"
)

type RegisterIn struct {
	Prenom      string `json:"prenom" validate:"required,max=60"`
	Genre       string `json:"genre" validate:"required,genre"`
	Age         int    `json:"age" validate:"required,min=14,max=70"`
	Morphologie string `json:"morphologie" validate:"required,morphologie"`
}

type LoginIn struct {
	Prenom string `json:"prenom" validate:"required,max=60"`
}

type SessionController struct {
	Backend services.StylistBackendProvider
}

func (controller *SessionController) SessionRoutes(g *echo.Group) {
	g.POST("/register", controller.Register)
	g.POST("/login", controller.Login)
}

func (controller *SessionController) AuthedSessionRoutes(g *echo.Group) {
	g.GET("/me", controller.Me)
	g.POST("/logout", controller.Logout)
}

// Register validates the profile form before any network call, then creates
// the account and opens a session carrying exactly what the backend
// returned.
func (controller *SessionController) Register(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)

	in := new(RegisterIn)
	if err := c.Bind(in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
	}
	if !models.ValidateMorphologieRaw(in.Morphologie) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Morphologie inconnue"})
	}
	if err := c.Validate(in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Merci de remplir tous les champs du formulaire"})
	}

	user, err := controller.Backend.CreateUser(c.Request().Context(), in.Prenom, in.Genre, in.Age, in.Morphologie)
	if err != nil {
		return BackendErrorJSON(c, err)
	}

	return openSession(c, db, user)
}

func (controller *SessionController) Login(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)

	in := new(LoginIn)
	if err := c.Bind(in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
	}
	if err := c.Validate(in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Merci d'indiquer ton prénom"})
	}

	user, err := controller.Backend.LoginUser(c.Request().Context(), in.Prenom)
	if err != nil {
		if be, ok := services.AsBackendError(err); ok && be.Kind == services.ErrNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": fmt.Sprintf("Aucun compte trouvé pour \"%s\".", in.Prenom),
			})
		}
		return BackendErrorJSON(c, err)
	}

	return openSession(c, db, user)
}

// openSession creates a fresh session row for the confirmed identity. A new
// row per login keeps caches of any previous identity unreachable.
func openSession(c echo.Context, db *gorm.DB, user *models.UserProfile) error {
	session := models.Session{
		UserID:       user.ID,
		Prenom:       user.Prenom,
		Genre:        user.Genre,
		Age:          user.Age,
		Morphologie:  user.Morphologie,
		StylePrefere: user.StylePrefere,
	}
	if r := db.Create(&session); r.Error != nil {
		fmt.Println("Failed to create session row", r.Error)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Impossible d'ouvrir la session"})
	}

	return c.JSON(http.StatusOK, models.SessionOut{
		Token:           GenerateSessionToken(UIntToStr(session.ID), TokenScopeSession, c),
		User:            *user,
		NeedsStyleSetup: session.NeedsStyleSetup(),
	})
}

func (controller *SessionController) Me(c echo.Context) error {
	session := c.Get("currentSession").(models.Session)
	return c.JSON(http.StatusOK, models.SessionOut{
		User: models.UserProfile{
			ID:           session.UserID,
			Prenom:       session.Prenom,
			Genre:        session.Genre,
			Age:          session.Age,
			Morphologie:  session.Morphologie,
			StylePrefere: session.StylePrefere,
		},
		NeedsStyleSetup: session.NeedsStyleSetup(),
	})
}

// Logout deletes the session row; the cached suggestions and greeting live
// on that row and die with it atomically.
func (controller *SessionController) Logout(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)
	session := c.Get("currentSession").(models.Session)

	if r := db.Delete(&models.Session{}, session.ID); r.Error != nil {
		fmt.Println("Failed to delete session row", r.Error)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Impossible de fermer la session"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Déconnecté"})
}
