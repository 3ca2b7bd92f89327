package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stylistweb/models"
	"stylistweb/services"
)

type UpdateItemIn struct {
	Type    string `json:"type" validate:"required,max=100"`
	Couleur string `json:"couleur" validate:"required,max=100"`
	Saison  string `json:"saison" validate:"required,max=100"`
}

type DetailProductOut struct {
	models.ProductRecommendation
	Links models.ShopLinks `json:"links"`
}

type DetailItemOut struct {
	models.DetectedItem
	Products []DetailProductOut `json:"products"`
}

type ItemDetailOut struct {
	Item       models.ClothingItemOut `json:"item"`
	Detected   []DetailItemOut        `json:"detected"`
	Evaluation *models.LookEvaluation `json:"evaluation,omitempty"`
}

type WardrobeController struct {
	Backend services.StylistBackendProvider
	Guard   *services.InflightGuard
}

func (controller *WardrobeController) WardrobeRoutes(g *echo.Group) {
	g.GET("", controller.List)
	g.POST("/upload", controller.Upload)
	g.PUT("/items/:itemId", controller.UpdateItem)
	g.DELETE("/items/:itemId", controller.DeleteItem)
	g.GET("/items/:itemId/detail", controller.ItemDetail)
}

func normalizeCategory(raw string) (string, bool) {
	if raw == "" {
		return string(models.CategoryWardrobe), true
	}
	if !models.ValidateCategoryRaw(raw) {
		return "", false
	}
	return raw, true
}

func (controller *WardrobeController) fetchCollection(c echo.Context, userID uint, category string) ([]models.ClothingItemOut, error) {
	items, err := controller.Backend.GetWardrobe(c.Request().Context(), userID, category)
	if err != nil {
		return nil, err
	}
	out := make([]models.ClothingItemOut, len(items))
	for i, item := range items {
		out[i] = models.ClothingItemOut{
			ClothingItem: item,
			ImageURL:     controller.Backend.ImageURL(item.ImagePath),
		}
	}
	return out, nil
}

func (controller *WardrobeController) List(c echo.Context) error {
	session := c.Get("currentSession").(models.Session)

	category, ok := normalizeCategory(c.QueryParam("category"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Catégorie inconnue"})
	}

	items, err := controller.fetchCollection(c, session.UserID, category)
	if err != nil {
		return BackendErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Upload forwards the photo to the backend, then re-fetches the affected
// collection: the backend's AI classification decides the final item fields,
// so the mutation response is never patched into a cached list. One upload
// per session at a time.
func (controller *WardrobeController) Upload(c echo.Context) error {
	session := c.Get("currentSession").(models.Session)

	category, ok := normalizeCategory(c.FormValue("category"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Catégorie inconnue"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Aucun fichier reçu"})
	}

	key := services.InflightKey(session.ID, "upload")
	if !controller.Guard.Acquire(key) {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Un envoi est déjà en cours"})
	}
	defer controller.Guard.Release(key)

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Fichier illisible"})
	}
	defer file.Close()

	if _, err := controller.Backend.UploadClothing(c.Request().Context(), session.UserID, category, fileHeader.Filename, file); err != nil {
		return BackendErrorJSON(c, err)
	}

	items, err := controller.fetchCollection(c, session.UserID, category)
	if err != nil {
		return BackendErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// UpdateItem edits the base classification only; AI tags are not editable
// from the page.
func (controller *WardrobeController) UpdateItem(c echo.Context) error {
	session := c.Get("currentSession").(models.Session)

	var itemId uint
	if err := echo.PathParamsBinder(c).Uint("itemId", &itemId).BindError(); err != nil {
		return echo.ErrBadRequest
	}
	category, ok := normalizeCategory(c.QueryParam("category"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Catégorie inconnue"})
	}

	in := new(UpdateItemIn)
	if err := c.Bind(in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
	}
	if err := c.Validate(in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if _, err := controller.Backend.UpdateClothing(c.Request().Context(), itemId, in.Type, in.Couleur, in.Saison); err != nil {
		return BackendErrorJSON(c, err)
	}

	items, err := controller.fetchCollection(c, session.UserID, category)
	if err != nil {
		return BackendErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// DeleteItem is irreversible, so the page must send confirm=true.
func (controller *WardrobeController) DeleteItem(c echo.Context) error {
	session := c.Get("currentSession").(models.Session)

	var itemId uint
	if err := echo.PathParamsBinder(c).Uint("itemId", &itemId).BindError(); err != nil {
		return echo.ErrBadRequest
	}
	category, ok := normalizeCategory(c.QueryParam("category"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Catégorie inconnue"})
	}
	if c.QueryParam("confirm") != "true" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Confirmation requise pour supprimer cette pièce"})
	}

	if err := controller.Backend.DeleteClothing(c.Request().Context(), itemId); err != nil {
		return BackendErrorJSON(c, err)
	}

	items, err := controller.fetchCollection(c, session.UserID, category)
	if err != nil {
		return BackendErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ItemDetail resolves the detail view: the AI tag payload is parsed
// defensively and each recommended product gets its shop links.
func (controller *WardrobeController) ItemDetail(c echo.Context) error {
	session := c.Get("currentSession").(models.Session)

	var itemId uint
	if err := echo.PathParamsBinder(c).Uint("itemId", &itemId).BindError(); err != nil {
		return echo.ErrBadRequest
	}
	category, ok := normalizeCategory(c.QueryParam("category"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Catégorie inconnue"})
	}

	items, err := controller.Backend.GetWardrobe(c.Request().Context(), session.UserID, category)
	if err != nil {
		return BackendErrorJSON(c, err)
	}

	for _, item := range items {
		if item.ID != itemId {
			continue
		}
		doc := models.ParseAITags(item.TagsIA, item)
		detected := make([]DetailItemOut, len(doc.Items))
		for i, det := range doc.Items {
			products := make([]DetailProductOut, len(det.ProduitsRecommandes))
			for j, p := range det.ProduitsRecommandes {
				products[j] = DetailProductOut{
					ProductRecommendation: p,
					Links:                 models.BuildShopLinks(p.Recherche),
				}
			}
			detected[i] = DetailItemOut{DetectedItem: det, Products: products}
		}
		return c.JSON(http.StatusOK, ItemDetailOut{
			Item: models.ClothingItemOut{
				ClothingItem: item,
				ImageURL:     controller.Backend.ImageURL(item.ImagePath),
			},
			Detected:   detected,
			Evaluation: doc.Evaluation,
		})
	}

	return c.JSON(http.StatusNotFound, map[string]string{"error": "Pièce introuvable"})
}
