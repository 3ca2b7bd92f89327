package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// The style wizard works over a fixed catalog: three steps, each a closed
// set of selectable items. Ids are what gets stored, labels and emojis are
// display only.

type StyleOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

type StyleCategory struct {
	Key      string        `json:"key"`
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle"`
	Items    []StyleOption `json:"items"`
}

var StyleCatalog = []StyleCategory{
	{
		Key:      "styles",
		Title:    "Quel est ton style ?",
		Subtitle: "Choisis un ou plusieurs styles qui te ressemblent",
		Items: []StyleOption{
			{ID: "streetwear", Label: "Streetwear", Emoji: "🔥"},
			{ID: "casual", Label: "Casual", Emoji: "👕"},
			{ID: "chic", Label: "Chic", Emoji: "✨"},
			{ID: "sportswear", Label: "Sportswear", Emoji: "🏃"},
			{ID: "boheme", Label: "Bohème", Emoji: "🌸"},
			{ID: "vintage", Label: "Vintage", Emoji: "🕰️"},
			{ID: "minimaliste", Label: "Minimaliste", Emoji: "⬜"},
			{ID: "classique", Label: "Classique", Emoji: "👔"},
			{ID: "grunge", Label: "Grunge", Emoji: "🎸"},
			{ID: "preppy", Label: "Preppy", Emoji: "🏫"},
			{ID: "punk", Label: "Punk", Emoji: "🖤"},
			{ID: "avant-garde", Label: "Avant-garde", Emoji: "🎭"},
		},
	},
	{
		Key:      "clothing",
		Title:    "Quels vêtements tu préfères ?",
		Subtitle: "Sélectionne les types de pièces que tu aimes porter",
		Items: []StyleOption{
			{ID: "tshirts", Label: "T-shirts", Emoji: "👕"},
			{ID: "jeans", Label: "Jeans", Emoji: "👖"},
			{ID: "sneakers", Label: "Sneakers", Emoji: "👟"},
			{ID: "blazers", Label: "Blazers", Emoji: "🧥"},
			{ID: "hoodies", Label: "Hoodies", Emoji: "🧷"},
			{ID: "chemises", Label: "Chemises", Emoji: "👔"},
			{ID: "robes", Label: "Robes", Emoji: "👗"},
			{ID: "manteaux", Label: "Manteaux", Emoji: "🧥"},
			{ID: "shorts", Label: "Shorts", Emoji: "🩳"},
			{ID: "boots", Label: "Boots", Emoji: "🥾"},
			{ID: "accessoires", Label: "Accessoires", Emoji: "🧢"},
			{ID: "costumes", Label: "Costumes", Emoji: "🤵"},
		},
	},
	{
		Key:      "interests",
		Title:    "Qu'est-ce qui t'intéresse ?",
		Subtitle: "Tes centres d'intérêt mode",
		Items: []StyleOption{
			{ID: "bons-plans", Label: "Bons plans", Emoji: "💰"},
			{ID: "tendances", Label: "Tendances", Emoji: "📈"},
			{ID: "grandes-marques", Label: "Grandes marques", Emoji: "💎"},
			{ID: "mode-durable", Label: "Mode durable", Emoji: "♻️"},
			{ID: "seconde-main", Label: "Seconde main", Emoji: "🔄"},
			{ID: "haute-couture", Label: "Haute couture", Emoji: "👑"},
			{ID: "sport-mode", Label: "Sport & Mode", Emoji: "🏀"},
			{ID: "luxe-accessible", Label: "Luxe accessible", Emoji: "⭐"},
		},
	},
}

// StylePreferences is the wizard's selection state. Serialization always
// carries all three keys so the backend never sees a partial document.
type StylePreferences struct {
	Styles    []string `json:"styles"`
	Clothing  []string `json:"clothing"`
	Interests []string `json:"interests"`
}

func (p *StylePreferences) Serialize() (string, error) {
	if p.Styles == nil {
		p.Styles = []string{}
	}
	if p.Clothing == nil {
		p.Clothing = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	out, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (p *StylePreferences) Count() int {
	return len(p.Styles) + len(p.Clothing) + len(p.Interests)
}

// Validate rejects any id outside the fixed catalog for its category.
func (p *StylePreferences) Validate() error {
	sets := map[string][]string{
		"styles":    p.Styles,
		"clothing":  p.Clothing,
		"interests": p.Interests,
	}
	for _, category := range StyleCatalog {
		allowed := make(map[string]bool, len(category.Items))
		for _, item := range category.Items {
			allowed[item.ID] = true
		}
		for _, id := range sets[category.Key] {
			if !allowed[id] {
				return fmt.Errorf("choix inconnu pour %s: %q", category.Key, id)
			}
		}
	}
	return nil
}

// ParseStylePreferences reads a stored style_prefere document back into the
// wizard's selection state.
func ParseStylePreferences(raw string) (*StylePreferences, error) {
	if raw == "" {
		return nil, errors.New("empty style preferences")
	}
	var prefs StylePreferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}
