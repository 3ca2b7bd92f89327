package controllers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"stylistweb/models"
	"stylistweb/services"
)

type AdminLoginIn struct {
	Key string `json:"key" validate:"required"`
}

type AdminController struct {
	Backend services.StylistBackendProvider
}

func (controller *AdminController) AdminRoutes(g *echo.Group) {
	g.POST("/session", controller.Login)
}

func (controller *AdminController) AuthedAdminRoutes(g *echo.Group) {
	g.GET("/users", controller.Users)
	g.GET("/stats", controller.Stats)
	g.DELETE("/users/:userId", controller.DeleteUser)
}

// Login verifies the shared key by probing the stats endpoint; the panel has
// no dedicated login route on the backend.
func (controller *AdminController) Login(c echo.Context) error {
	db := c.Get("__db").(*gorm.DB)

	in := new(AdminLoginIn)
	if err := c.Bind(in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
	}
	if err := c.Validate(in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Merci d'indiquer la clé admin"})
	}

	stats, err := controller.Backend.AdminStats(c.Request().Context(), in.Key)
	if err != nil {
		if be, ok := services.AsBackendError(err); ok && be.Kind == services.ErrForbidden {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Clé admin invalide"})
		}
		return BackendErrorJSON(c, err)
	}

	session := models.AdminSession{AdminKey: in.Key}
	if r := db.Create(&session); r.Error != nil {
		fmt.Println("Failed to create admin session row", r.Error)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Impossible d'ouvrir la session admin"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token": GenerateSessionToken(UIntToStr(session.ID), TokenScopeAdmin, c),
		"stats": stats,
	})
}

// revokeOnForbidden implements the panel's hard rule: the moment the backend
// answers 403, the stored key is considered revoked and the admin session is
// destroyed so no previously fetched rows survive.
func (controller *AdminController) revokeOnForbidden(c echo.Context, err error) error {
	if be, ok := services.AsBackendError(err); ok && be.Kind == services.ErrForbidden {
		db := c.Get("__db").(*gorm.DB)
		session := c.Get("currentAdminSession").(models.AdminSession)
		if r := db.Delete(&models.AdminSession{}, session.ID); r.Error != nil {
			fmt.Println("Failed to destroy revoked admin session", r.Error)
		}
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Clé admin invalide"})
	}
	return BackendErrorJSON(c, err)
}

func (controller *AdminController) Users(c echo.Context) error {
	session := c.Get("currentAdminSession").(models.AdminSession)

	users, err := controller.Backend.AdminUsers(c.Request().Context(), session.AdminKey)
	if err != nil {
		return controller.revokeOnForbidden(c, err)
	}
	if users == nil {
		users = []models.AdminUserRow{}
	}
	return c.JSON(http.StatusOK, users)
}

func (controller *AdminController) Stats(c echo.Context) error {
	session := c.Get("currentAdminSession").(models.AdminSession)

	stats, err := controller.Backend.AdminStats(c.Request().Context(), session.AdminKey)
	if err != nil {
		return controller.revokeOnForbidden(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// DeleteUser cascades on the backend; the response reports how many items
// and files went with the account.
func (controller *AdminController) DeleteUser(c echo.Context) error {
	session := c.Get("currentAdminSession").(models.AdminSession)

	var userId uint
	if err := echo.PathParamsBinder(c).Uint("userId", &userId).BindError(); err != nil {
		return echo.ErrBadRequest
	}
	if c.QueryParam("confirm") != "true" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Confirmation requise pour supprimer cet utilisateur"})
	}

	out, err := controller.Backend.AdminDeleteUser(c.Request().Context(), session.AdminKey, userId)
	if err != nil {
		return controller.revokeOnForbidden(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
