package models

// SuggestionPiece is one recommended piece inside an outfit suggestion.
type SuggestionPiece struct {
	Type      string `json:"type"`
	Marque    string `json:"marque"`
	Prix      string `json:"prix"`
	Recherche string `json:"recherche"`
}

// Suggestion is ephemeral: generated per request, never addressed by id.
type Suggestion struct {
	Titre       string            `json:"titre"`
	Description string            `json:"description"`
	Occasion    string            `json:"occasion"`
	Pieces      []SuggestionPiece `json:"pieces"`
}

// SuggestionsOut is the cached suggestion set served to the page. The whole
// set and its greeting are replaced together, never patched per item.
type SuggestionsOut struct {
	Suggestions []Suggestion `json:"suggestions"`
	Salutation  string       `json:"salutation"`
	GeneratedAt string       `json:"generated_at,omitempty"`
	Cached      bool         `json:"cached"`
}

type RefreshSuggestionsIn struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type ClickIn struct {
	ProductName string  `json:"product_name" validate:"required"`
	Marque      string  `json:"marque"`
	Prix        float64 `json:"prix"`
	URL         string  `json:"url" validate:"required"`
}

type ClickRecord struct {
	ID          uint    `json:"id"`
	ProductName string  `json:"product_name"`
	Marque      string  `json:"marque"`
	Prix        float64 `json:"prix"`
	URL         string  `json:"url"`
	CreatedAt   string  `json:"created_at"`
}

// ChatMessage is one prior conversation turn. The browser holds the whole
// conversation and replays it on every send.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type ChatIn struct {
	Message string        `json:"message" validate:"required"`
	History []ChatMessage `json:"history" validate:"dive"`
}

type ChatProduct struct {
	Name      string `json:"name"`
	Marque    string `json:"marque"`
	Prix      string `json:"prix"`
	Recherche string `json:"recherche"`
}

type ChatOut struct {
	Reply    string        `json:"reply"`
	Products []ChatProduct `json:"products"`
}

type WeatherOut struct {
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Ville       string  `json:"ville"`
	Code        int     `json:"code"`
}

// Particle is one decorative weather particle. Pure rendering data.
type Particle struct {
	Left     float64 `json:"left"`
	Delay    float64 `json:"delay"`
	Duration float64 `json:"duration"`
	Size     float64 `json:"size"`
	Opacity  float64 `json:"opacity"`
}

type AnimationOut struct {
	Condition string     `json:"condition"`
	Particles []Particle `json:"particles"`
}

type AdminUserRow struct {
	ID            uint   `json:"id"`
	Prenom        string `json:"prenom"`
	Genre         string `json:"genre"`
	Age           int    `json:"age"`
	Morphologie   string `json:"morphologie"`
	ClothingCount int    `json:"clothing_count"`
	CreatedAt     string `json:"created_at"`
}

type AdminStats struct {
	TotalUsers int `json:"total_users"`
	TotalItems int `json:"total_items"`
}

type AdminDeleteOut struct {
	Message      string `json:"message"`
	DeletedItems int    `json:"deleted_items"`
	DeletedFiles int    `json:"deleted_files"`
}
