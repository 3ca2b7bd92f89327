package models

import "encoding/json"

// The AI tag payload has no declared schema: the backend has shipped at
// least two shapes, a bare per-item object and an {items: [...]} document
// that may carry a look evaluation. Parse it defensively and never let a
// malformed payload break the detail view.

type ProductRecommendation struct {
	Nom        string `json:"nom"`
	Marque     string `json:"marque"`
	PrixEstime string `json:"prix_estime"`
	Recherche  string `json:"recherche"`
}

type DetectedItem struct {
	Type                string                  `json:"type"`
	Genre               string                  `json:"genre"`
	Textile             string                  `json:"textile"`
	CouleurDominante    string                  `json:"couleur_dominante"`
	Style               string                  `json:"style"`
	Saison              string                  `json:"saison"`
	Coupe               string                  `json:"coupe"`
	Description         string                  `json:"description"`
	ConseilsCombinaison string                  `json:"conseils_combinaison"`
	ProduitsRecommandes []ProductRecommendation `json:"produits_recommandes"`
}

// LookEvaluation is the optional "look" sub-object on wishlist uploads.
type LookEvaluation struct {
	Note             int      `json:"note"` // 1-5
	Commentaire      string   `json:"commentaire"`
	GammesPrix       string   `json:"gammes_prix"`
	PiecesManquantes []string `json:"pieces_manquantes"`
}

type TagsDocument struct {
	Items      []DetectedItem  `json:"items"`
	Evaluation *LookEvaluation `json:"evaluation,omitempty"`
}

type taggedPayload struct {
	Items      []DetectedItem  `json:"items"`
	Evaluation *LookEvaluation `json:"evaluation"`
}

// ParseAITags interprets the raw tags_ia payload of an item. Accepted
// shapes, tried in order: {items: [...], evaluation?: {...}}, a bare JSON
// array of items, a bare item object. Anything else falls back to a single
// item synthesised from the base type/couleur/saison fields.
func ParseAITags(raw string, item ClothingItem) TagsDocument {
	fallback := TagsDocument{Items: []DetectedItem{fallbackItem(item)}}
	if raw == "" {
		return fallback
	}

	var doc taggedPayload
	if err := json.Unmarshal([]byte(raw), &doc); err == nil && len(doc.Items) > 0 {
		return TagsDocument{Items: fillItemDefaults(doc.Items, item), Evaluation: doc.Evaluation}
	}

	var arr []DetectedItem
	if err := json.Unmarshal([]byte(raw), &arr); err == nil && len(arr) > 0 {
		return TagsDocument{Items: fillItemDefaults(arr, item)}
	}

	var single DetectedItem
	if err := json.Unmarshal([]byte(raw), &single); err == nil && (single.Type != "" || single.CouleurDominante != "" || single.Description != "") {
		return TagsDocument{Items: fillItemDefaults([]DetectedItem{single}, item)}
	}

	return fallback
}

func fallbackItem(item ClothingItem) DetectedItem {
	return DetectedItem{
		Type:                item.Type,
		Genre:               "Unisexe",
		CouleurDominante:    item.Couleur,
		Style:               "Casual",
		Saison:              item.Saison,
		Coupe:               "Regular",
		ProduitsRecommandes: []ProductRecommendation{},
	}
}

func fillItemDefaults(items []DetectedItem, item ClothingItem) []DetectedItem {
	filled := make([]DetectedItem, len(items))
	for i, det := range items {
		if det.Type == "" {
			det.Type = item.Type
		}
		if det.Genre == "" {
			det.Genre = "Unisexe"
		}
		if det.CouleurDominante == "" {
			det.CouleurDominante = item.Couleur
		}
		if det.Saison == "" {
			det.Saison = item.Saison
		}
		if det.Style == "" {
			det.Style = "Casual"
		}
		if det.Coupe == "" {
			det.Coupe = "Regular"
		}
		if det.ProduitsRecommandes == nil {
			det.ProduitsRecommandes = []ProductRecommendation{}
		}
		filled[i] = det
	}
	return filled
}
