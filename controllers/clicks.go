package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stylistweb/models"
	"stylistweb/services"
)

type ClicksController struct {
	Backend services.StylistBackendProvider
}

func (controller *ClicksController) ClicksRoutes(g *echo.Group) {
	g.POST("", controller.Save)
	g.GET("", controller.List)
	g.DELETE("", controller.Clear)
}

// Save records a product click. Append only.
func (controller *ClicksController) Save(c echo.Context) error {
	session := c.Get("currentSession").(models.Session)

	in := new(models.ClickIn)
	if err := c.Bind(in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
	}
	if err := c.Validate(in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := controller.Backend.SaveClick(c.Request().Context(), session.UserID, *in); err != nil {
		return BackendErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Clic enregistré"})
}

func (controller *ClicksController) List(c echo.Context) error {
	session := c.Get("currentSession").(models.Session)

	clicks, err := controller.Backend.GetClicks(c.Request().Context(), session.UserID)
	if err != nil {
		return BackendErrorJSON(c, err)
	}
	if clicks == nil {
		clicks = []models.ClickRecord{}
	}
	return c.JSON(http.StatusOK, clicks)
}

func (controller *ClicksController) Clear(c echo.Context) error {
	session := c.Get("currentSession").(models.Session)

	if c.QueryParam("confirm") != "true" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Confirmation requise pour vider l'historique"})
	}

	if err := controller.Backend.ClearClicks(c.Request().Context(), session.UserID); err != nil {
		return BackendErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Historique vidé"})
}
