package models

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator"
)

type Category string

const (
	CategoryWardrobe Category = "wardrobe"
	CategoryWishlist Category = "wishlist"
)

func ValidateCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	matched, _ := regexp.MatchString("^(wardrobe|wishlist)$", value)
	return matched
}

func ValidateCategoryRaw(value string) bool {
	matched, _ := regexp.MatchString("^(wardrobe|wishlist)$", value)
	return matched
}

// ClothingItem is an item exactly as the stylist backend returns it. TagsIA
// is an opaque AI payload with no declared schema; see ParseAITags.
type ClothingItem struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Type      string `json:"type"`
	Couleur   string `json:"couleur"`
	Saison    string `json:"saison"`
	TagsIA    string `json:"tags_ia"`
	ImagePath string `json:"image_path"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
}

// ClothingItemOut is the item as served to the page: the base fields plus an
// absolute image URL resolved against the backend base URL.
type ClothingItemOut struct {
	ClothingItem
	ImageURL string `json:"image_url"`
}

// NormalizeImagePath rewrites OS specific separators to forward slashes so
// the path can be joined to the backend base URL.
func NormalizeImagePath(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}
