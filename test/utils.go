package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"stylistweb/models"
	"stylistweb/services"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {

	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

type sessionTokenClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

func GenerateSessionToken(sessionPk string, scope string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionTokenClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionPk,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	t, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Fatalf("Error when signing session token for %s. Error %s ", sessionPk, err)
	}
	return t
}

func newAuthRequest(method string, target string, sessionPk string, scope string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	token := GenerateSessionToken(sessionPk, scope)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	return req
}

func NewJSONAuthRequest(method string, target string, sessionPk string, param interface{}) *http.Request {
	return newAuthRequest(method, target, sessionPk, "session", param)
}

func NewJSONAdminAuthRequest(method string, target string, sessionPk string, param interface{}) *http.Request {
	return newAuthRequest(method, target, sessionPk, "admin", param)
}

// FakeSession creates a session row mirroring a registered user.
func FakeSession(db *gorm.DB, userID uint, prenom string) *models.Session {
	session := &models.Session{
		UserID:      userID,
		Prenom:      prenom,
		Genre:       "Femme",
		Age:         25,
		Morphologie: "SABLIER",
	}
	db.Create(&session)
	return session
}

func FakeAdminSession(db *gorm.DB, key string) *models.AdminSession {
	session := &models.AdminSession{AdminKey: key}
	db.Create(&session)
	return session
}

// StylistBackendMock is an in-memory stand-in for the stylist backend. Tests
// can pre-seed users and items, force failures, and hold requests open to
// exercise the single-flight guards.
type StylistBackendMock struct {
	mu sync.Mutex

	Users      map[uint]*models.UserProfile
	Items      map[uint]*models.ClothingItem
	Clicks     map[uint][]models.ClickRecord
	AdminKey   string
	nextUserID uint
	nextItemID uint

	Suggestions   []models.Suggestion
	Salutation    string
	GenerateCalls int

	ChatReply    string
	ChatProducts []models.ChatProduct

	// When set, UploadClothing and Chat signal Started then block until
	// Release is closed.
	Started chan struct{}
	Release chan struct{}

	// When set, every call fails with this error.
	ForcedError *services.BackendError
}

func NewStylistBackendMock() *StylistBackendMock {
	return &StylistBackendMock{
		Users:     map[uint]*models.UserProfile{},
		Items:     map[uint]*models.ClothingItem{},
		Clicks:    map[uint][]models.ClickRecord{},
		AdminKey:  "test-admin-key",
		ChatReply: "Voici ma proposition !",
	}
}

func (m *StylistBackendMock) hold() {
	if m.Started != nil {
		m.Started <- struct{}{}
	}
	if m.Release != nil {
		<-m.Release
	}
}

func (m *StylistBackendMock) fail() error {
	if m.ForcedError != nil {
		return m.ForcedError
	}
	return nil
}

// SeedUser registers a user directly, as if created through the backend.
func (m *StylistBackendMock) SeedUser(prenom, genre string, age int, morphologie string) *models.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextUserID++
	user := &models.UserProfile{
		ID:          m.nextUserID,
		Prenom:      prenom,
		Genre:       genre,
		Age:         age,
		Morphologie: morphologie,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}
	m.Users[user.ID] = user
	return user
}

// SeedItem adds a wardrobe item for a user.
func (m *StylistBackendMock) SeedItem(userID uint, category, itemType, couleur, saison, tagsIA string) *models.ClothingItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextItemID++
	item := &models.ClothingItem{
		ID:        m.nextItemID,
		UserID:    userID,
		Type:      itemType,
		Couleur:   couleur,
		Saison:    saison,
		TagsIA:    tagsIA,
		ImagePath: fmt.Sprintf("uploads\\%d.jpg", m.nextItemID),
		Category:  category,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	m.Items[item.ID] = item
	return item
}

func (m *StylistBackendMock) CreateUser(ctx context.Context, prenom, genre string, age int, morphologie string) (*models.UserProfile, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	return m.SeedUser(prenom, genre, age, morphologie), nil
}

func (m *StylistBackendMock) LoginUser(ctx context.Context, prenom string) (*models.UserProfile, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.Users {
		if user.Prenom == prenom {
			return user, nil
		}
	}
	return nil, &services.BackendError{Kind: services.ErrNotFound, Status: 404, Message: "User not found"}
}

func (m *StylistBackendMock) UpdateUser(ctx context.Context, userID uint, fields map[string]interface{}) (*models.UserProfile, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.Users[userID]
	if !ok {
		return nil, &services.BackendError{Kind: services.ErrNotFound, Status: 404, Message: "User not found"}
	}
	if v, ok := fields["prenom"].(string); ok {
		user.Prenom = v
	}
	if v, ok := fields["genre"].(string); ok {
		user.Genre = v
	}
	if v, ok := fields["age"].(int); ok {
		user.Age = v
	}
	if v, ok := fields["morphologie"].(string); ok {
		user.Morphologie = v
	}
	if v, ok := fields["style_prefere"].(string); ok {
		user.StylePrefere = &v
	}
	return user, nil
}

func (m *StylistBackendMock) DeleteUser(ctx context.Context, userID uint) error {
	if err := m.fail(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Users[userID]; !ok {
		return &services.BackendError{Kind: services.ErrNotFound, Status: 404, Message: "User not found"}
	}
	delete(m.Users, userID)
	for id, item := range m.Items {
		if item.UserID == userID {
			delete(m.Items, id)
		}
	}
	return nil
}

func (m *StylistBackendMock) GetWardrobe(ctx context.Context, userID uint, category string) ([]models.ClothingItem, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []models.ClothingItem{}
	for _, item := range m.Items {
		if item.UserID == userID && (category == "" || item.Category == category) {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (m *StylistBackendMock) UploadClothing(ctx context.Context, userID uint, category, filename string, file io.Reader) (*models.ClothingItem, error) {
	m.hold()
	if err := m.fail(); err != nil {
		return nil, err
	}
	io.Copy(io.Discard, file)
	return m.SeedItem(userID, category, "T-shirt", "Noir", "Été", ""), nil
}

func (m *StylistBackendMock) UpdateClothing(ctx context.Context, itemID uint, itemType, couleur, saison string) (*models.ClothingItem, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.Items[itemID]
	if !ok {
		return nil, &services.BackendError{Kind: services.ErrNotFound, Status: 404, Message: "Item not found"}
	}
	item.Type = itemType
	item.Couleur = couleur
	item.Saison = saison
	return item, nil
}

func (m *StylistBackendMock) DeleteClothing(ctx context.Context, itemID uint) error {
	if err := m.fail(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Items[itemID]; !ok {
		return &services.BackendError{Kind: services.ErrNotFound, Status: 404, Message: "Item not found"}
	}
	delete(m.Items, itemID)
	return nil
}

func (m *StylistBackendMock) GenerateSuggestions(ctx context.Context, userID uint, weather models.WeatherOut) (*models.SuggestionsOut, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateCalls++
	suggestions := m.Suggestions
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}
	return &models.SuggestionsOut{Suggestions: suggestions, Salutation: m.Salutation}, nil
}

func (m *StylistBackendMock) Chat(ctx context.Context, userID uint, in models.ChatIn) (*models.ChatOut, error) {
	m.hold()
	if err := m.fail(); err != nil {
		return nil, err
	}
	products := m.ChatProducts
	if products == nil {
		products = []models.ChatProduct{}
	}
	return &models.ChatOut{Reply: m.ChatReply, Products: products}, nil
}

func (m *StylistBackendMock) SaveClick(ctx context.Context, userID uint, click models.ClickIn) error {
	if err := m.fail(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clicks[userID] = append(m.Clicks[userID], models.ClickRecord{
		ID:          uint(len(m.Clicks[userID]) + 1),
		ProductName: click.ProductName,
		Marque:      click.Marque,
		Prix:        click.Prix,
		URL:         click.URL,
		CreatedAt:   time.Now().Format(time.RFC3339),
	})
	return nil
}

func (m *StylistBackendMock) GetClicks(ctx context.Context, userID uint) ([]models.ClickRecord, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Clicks[userID], nil
}

func (m *StylistBackendMock) ClearClicks(ctx context.Context, userID uint) error {
	if err := m.fail(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Clicks, userID)
	return nil
}

func (m *StylistBackendMock) checkAdminKey(key string) error {
	if key != m.AdminKey {
		return &services.BackendError{Kind: services.ErrForbidden, Status: 403, Message: "Invalid admin key"}
	}
	return nil
}

func (m *StylistBackendMock) AdminStats(ctx context.Context, adminKey string) (*models.AdminStats, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	if err := m.checkAdminKey(adminKey); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return &models.AdminStats{TotalUsers: len(m.Users), TotalItems: len(m.Items)}, nil
}

func (m *StylistBackendMock) AdminUsers(ctx context.Context, adminKey string) ([]models.AdminUserRow, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	if err := m.checkAdminKey(adminKey); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := []models.AdminUserRow{}
	for _, user := range m.Users {
		count := 0
		for _, item := range m.Items {
			if item.UserID == user.ID {
				count++
			}
		}
		rows = append(rows, models.AdminUserRow{
			ID:            user.ID,
			Prenom:        user.Prenom,
			Genre:         user.Genre,
			Age:           user.Age,
			Morphologie:   user.Morphologie,
			ClothingCount: count,
			CreatedAt:     user.CreatedAt,
		})
	}
	return rows, nil
}

func (m *StylistBackendMock) AdminDeleteUser(ctx context.Context, adminKey string, userID uint) (*models.AdminDeleteOut, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	if err := m.checkAdminKey(adminKey); err != nil {
		return nil, err
	}
	m.mu.Lock()
	deleted := 0
	for id, item := range m.Items {
		if item.UserID == userID {
			delete(m.Items, id)
			deleted++
		}
	}
	delete(m.Users, userID)
	m.mu.Unlock()
	return &models.AdminDeleteOut{Message: "Utilisateur supprimé", DeletedItems: deleted, DeletedFiles: deleted}, nil
}

func (m *StylistBackendMock) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return "http://backend.test/" + strings.TrimLeft(models.NormalizeImagePath(path), "/")
}

// WeatherCacheMock serves a fixed payload, no upstream calls.
type WeatherCacheMock struct {
	Out models.WeatherOut
}

func (m *WeatherCacheMock) GetWeather(ctx context.Context, lat, lon float64) (*models.WeatherOut, error) {
	out := m.Out
	if out.Ville == "" {
		out = models.WeatherOut{Temperature: 21, Description: "ensoleillé", Ville: "Paris"}
	}
	return &out, nil
}
