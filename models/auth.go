package models

import "time"

type JsonModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session is the server-side state kept on behalf of one logged-in browser:
// the authenticated identity plus the cached suggestion set.
// One row per login; destroyed on logout or account deletion.
type Session struct {
	JsonModel
	UserID       uint    `json:"user_id"`
	Prenom       string  `json:"prenom"`
	Genre        string  `json:"genre"`
	Age          int     `json:"age"`
	Morphologie  string  `json:"morphologie"`
	StylePrefere *string `gorm:"type:text" json:"style_prefere"`

	// Suggestion cache. Replaced wholesale on refresh, never patched.
	SuggestionsJSON *string    `gorm:"type:text" json:"-"`
	Greeting        *string    `json:"-"`
	SuggestedAt     *time.Time `json:"-"`
}

// NeedsStyleSetup reports the first-login gate: no style preference recorded
// yet, so the style wizard must be shown before the main view.
func (s *Session) NeedsStyleSetup() bool {
	return s.StylePrefere == nil || *s.StylePrefere == ""
}

// AdminSession is the parallel authentication surface: it holds the shared
// admin key, not a user identity. Destroyed as soon as the backend answers
// 403 to any admin call.
type AdminSession struct {
	JsonModel
	AdminKey string `json:"-"`
}

type SessionOut struct {
	Token           string      `json:"token"`
	User            UserProfile `json:"user"`
	NeedsStyleSetup bool        `json:"needs_style_setup"`
}
