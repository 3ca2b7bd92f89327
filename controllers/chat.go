package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stylistweb/models"
	"stylistweb/services"
)

type ChatController struct {
	Backend services.StylistBackendProvider
	Guard   *services.InflightGuard
}

func (controller *ChatController) ChatRoutes(g *echo.Group) {
	g.POST("", controller.Send)
}

// Send proxies one chat turn. The page holds the whole conversation and
// replays it on every send; this side only serializes sends per session so
// the history the page accumulates stays ordered.
func (controller *ChatController) Send(c echo.Context) error {
	session := c.Get("currentSession").(models.Session)

	in := new(models.ChatIn)
	if err := c.Bind(in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
	}
	if err := c.Validate(in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Message vide ou historique invalide"})
	}

	key := services.InflightKey(session.ID, "chat")
	if !controller.Guard.Acquire(key) {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Une réponse est déjà en cours"})
	}
	defer controller.Guard.Release(key)

	out, err := controller.Backend.Chat(c.Request().Context(), session.UserID, *in)
	if err != nil {
		return BackendErrorJSON(c, err)
	}

	// Each suggested product carries its one-click buy link.
	type productOut struct {
		models.ChatProduct
		URL string `json:"url"`
	}
	products := make([]productOut, len(out.Products))
	for i, p := range out.Products {
		products[i] = productOut{ChatProduct: p, URL: models.BuildChatProductURL(p.Recherche)}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"reply":    out.Reply,
		"products": products,
	})
}
