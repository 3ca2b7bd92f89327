package models

import (
	"regexp"

	"github.com/go-playground/validator"
)

func ValidateMorphologie(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	matched, _ := regexp.MatchString("^(TRIANGLE|OVALE|RECTANGLE|SABLIER|TRAPEZE)$", value)
	return matched
}

func ValidateMorphologieRaw(value string) bool {
	matched, _ := regexp.MatchString("^(TRIANGLE|OVALE|RECTANGLE|SABLIER|TRAPEZE)$", value)
	return matched
}

func ValidateGenre(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "Homme" || value == "Femme"
}

// UserProfile is the user exactly as the stylist backend returns it. The
// session never stores locally assumed values, only this shape.
type UserProfile struct {
	ID           uint    `json:"id"`
	Prenom       string  `json:"prenom"`
	Genre        string  `json:"genre"`
	Age          int     `json:"age"`
	Morphologie  string  `json:"morphologie"`
	StylePrefere *string `json:"style_prefere"`
	CreatedAt    string  `json:"created_at"`
}
