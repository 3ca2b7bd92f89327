package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"stylistweb/models"
)

type BackendErrorKind string

const (
	ErrValidation BackendErrorKind = "validation"
	ErrNotFound   BackendErrorKind = "not_found"
	ErrForbidden  BackendErrorKind = "forbidden"
	ErrNetwork    BackendErrorKind = "network"
)

// BackendError is the error taxonomy of the stylist backend adapter. Every
// failed call surfaces as one of the four kinds; handlers translate them at
// the boundary and never let them reach a global error handler.
type BackendError struct {
	Kind    BackendErrorKind
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s (%d): %s", e.Kind, e.Status, e.Message)
}

func AsBackendError(err error) (*BackendError, bool) {
	be, ok := err.(*BackendError)
	return be, ok
}

// StylistBackendProvider is the typed surface of the stylist REST backend.
// One method per endpoint the pages use.
type StylistBackendProvider interface {
	CreateUser(ctx context.Context, prenom, genre string, age int, morphologie string) (*models.UserProfile, error)
	LoginUser(ctx context.Context, prenom string) (*models.UserProfile, error)
	UpdateUser(ctx context.Context, userID uint, fields map[string]interface{}) (*models.UserProfile, error)
	DeleteUser(ctx context.Context, userID uint) error

	GetWardrobe(ctx context.Context, userID uint, category string) ([]models.ClothingItem, error)
	UploadClothing(ctx context.Context, userID uint, category, filename string, file io.Reader) (*models.ClothingItem, error)
	UpdateClothing(ctx context.Context, itemID uint, itemType, couleur, saison string) (*models.ClothingItem, error)
	DeleteClothing(ctx context.Context, itemID uint) error

	GenerateSuggestions(ctx context.Context, userID uint, weather models.WeatherOut) (*models.SuggestionsOut, error)
	Chat(ctx context.Context, userID uint, in models.ChatIn) (*models.ChatOut, error)

	SaveClick(ctx context.Context, userID uint, click models.ClickIn) error
	GetClicks(ctx context.Context, userID uint) ([]models.ClickRecord, error)
	ClearClicks(ctx context.Context, userID uint) error

	AdminStats(ctx context.Context, adminKey string) (*models.AdminStats, error)
	AdminUsers(ctx context.Context, adminKey string) ([]models.AdminUserRow, error)
	AdminDeleteUser(ctx context.Context, adminKey string, userID uint) (*models.AdminDeleteOut, error)

	ImageURL(path string) string
}

type StylistBackend struct {
	BaseURL string
	Client  *http.Client
}

func NewStylistBackend() *StylistBackend {
	return &StylistBackend{
		BaseURL: strings.TrimRight(GetEnv("STYLIST_API_URL", "http://localhost:8000"), "/"),
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// ImageURL joins a server-relative image path to the backend base URL,
// normalizing OS specific separators first.
func (b *StylistBackend) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return b.BaseURL + "/" + strings.TrimLeft(models.NormalizeImagePath(path), "/")
}

func (b *StylistBackend) do(ctx context.Context, method, path string, body io.Reader, contentType, adminKey string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, b.BaseURL+path, body)
	if err != nil {
		return &BackendError{Kind: ErrNetwork, Message: err.Error()}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if adminKey != "" {
		req.Header.Set("x-admin-key", adminKey)
	}

	res, err := b.Client.Do(req)
	if err != nil {
		return &BackendError{Kind: ErrNetwork, Message: err.Error()}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return &BackendError{Kind: ErrNetwork, Status: res.StatusCode, Message: err.Error()}
	}

	if res.StatusCode >= 400 {
		return classifyStatus(res.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &BackendError{Kind: ErrNetwork, Status: res.StatusCode, Message: "réponse illisible du serveur"}
		}
	}
	return nil
}

func (b *StylistBackend) doJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return &BackendError{Kind: ErrNetwork, Message: err.Error()}
		}
		body = bytes.NewReader(encoded)
	}
	return b.do(ctx, method, path, body, "application/json", "", out)
}

// classifyStatus maps a backend HTTP status to the error taxonomy. FastAPI
// style bodies carry the message under "detail".
func classifyStatus(status int, raw []byte) *BackendError {
	message := extractDetail(raw)
	switch {
	case status == 400 || status == 422:
		return &BackendError{Kind: ErrValidation, Status: status, Message: message}
	case status == 404:
		return &BackendError{Kind: ErrNotFound, Status: status, Message: message}
	case status == 403:
		return &BackendError{Kind: ErrForbidden, Status: status, Message: message}
	default:
		return &BackendError{Kind: ErrNetwork, Status: status, Message: message}
	}
}

func extractDetail(raw []byte) string {
	var payload struct {
		Detail interface{} `json:"detail"`
		Error  string      `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if s, ok := payload.Detail.(string); ok && s != "" {
			return s
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return "erreur du serveur"
}

func (b *StylistBackend) CreateUser(ctx context.Context, prenom, genre string, age int, morphologie string) (*models.UserProfile, error) {
	payload := map[string]interface{}{
		"prenom":      prenom,
		"genre":       genre,
		"age":         age,
		"morphologie": morphologie,
	}
	var user models.UserProfile
	if err := b.doJSON(ctx, http.MethodPost, "/users/create", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (b *StylistBackend) LoginUser(ctx context.Context, prenom string) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := b.doJSON(ctx, http.MethodPost, "/users/login", map[string]string{"prenom": prenom}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (b *StylistBackend) UpdateUser(ctx context.Context, userID uint, fields map[string]interface{}) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := b.doJSON(ctx, http.MethodPut, fmt.Sprintf("/users/%d", userID), fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (b *StylistBackend) DeleteUser(ctx context.Context, userID uint) error {
	return b.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", userID), nil, nil)
}

func (b *StylistBackend) GetWardrobe(ctx context.Context, userID uint, category string) ([]models.ClothingItem, error) {
	path := fmt.Sprintf("/wardrobe/%d", userID)
	if category != "" {
		path += "?category=" + category
	}
	var items []models.ClothingItem
	if err := b.doJSON(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (b *StylistBackend) UploadClothing(ctx context.Context, userID uint, category, filename string, file io.Reader) (*models.ClothingItem, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, &BackendError{Kind: ErrNetwork, Message: err.Error()}
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, &BackendError{Kind: ErrNetwork, Message: err.Error()}
	}
	writer.WriteField("user_id", fmt.Sprintf("%d", userID))
	writer.WriteField("category", category)
	if err := writer.Close(); err != nil {
		return nil, &BackendError{Kind: ErrNetwork, Message: err.Error()}
	}

	var item models.ClothingItem
	if err := b.do(ctx, http.MethodPost, "/wardrobe/upload", &buf, writer.FormDataContentType(), "", &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (b *StylistBackend) UpdateClothing(ctx context.Context, itemID uint, itemType, couleur, saison string) (*models.ClothingItem, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("type", itemType)
	writer.WriteField("couleur", couleur)
	writer.WriteField("saison", saison)
	if err := writer.Close(); err != nil {
		return nil, &BackendError{Kind: ErrNetwork, Message: err.Error()}
	}

	var item models.ClothingItem
	if err := b.do(ctx, http.MethodPut, fmt.Sprintf("/wardrobe/item/%d", itemID), &buf, writer.FormDataContentType(), "", &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (b *StylistBackend) DeleteClothing(ctx context.Context, itemID uint) error {
	return b.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/wardrobe/item/%d", itemID), nil, nil)
}

func (b *StylistBackend) GenerateSuggestions(ctx context.Context, userID uint, weather models.WeatherOut) (*models.SuggestionsOut, error) {
	payload := map[string]interface{}{
		"temperature": weather.Temperature,
		"description": weather.Description,
		"ville":       weather.Ville,
	}
	var out models.SuggestionsOut
	if err := b.doJSON(ctx, http.MethodPost, fmt.Sprintf("/suggestions/%d", userID), payload, &out); err != nil {
		return nil, err
	}
	if out.Suggestions == nil {
		out.Suggestions = []models.Suggestion{}
	}
	return &out, nil
}

func (b *StylistBackend) Chat(ctx context.Context, userID uint, in models.ChatIn) (*models.ChatOut, error) {
	var out models.ChatOut
	if err := b.doJSON(ctx, http.MethodPost, fmt.Sprintf("/chat/%d", userID), in, &out); err != nil {
		return nil, err
	}
	if out.Products == nil {
		out.Products = []models.ChatProduct{}
	}
	return &out, nil
}

func (b *StylistBackend) SaveClick(ctx context.Context, userID uint, click models.ClickIn) error {
	return b.doJSON(ctx, http.MethodPost, fmt.Sprintf("/users/%d/clicks", userID), click, nil)
}

func (b *StylistBackend) GetClicks(ctx context.Context, userID uint) ([]models.ClickRecord, error) {
	var clicks []models.ClickRecord
	if err := b.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d/clicks", userID), nil, &clicks); err != nil {
		return nil, err
	}
	return clicks, nil
}

func (b *StylistBackend) ClearClicks(ctx context.Context, userID uint) error {
	return b.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/users/%d/clicks", userID), nil, nil)
}

func (b *StylistBackend) AdminStats(ctx context.Context, adminKey string) (*models.AdminStats, error) {
	var stats models.AdminStats
	if err := b.do(ctx, http.MethodGet, "/admin/stats", nil, "", adminKey, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (b *StylistBackend) AdminUsers(ctx context.Context, adminKey string) ([]models.AdminUserRow, error) {
	var users []models.AdminUserRow
	if err := b.do(ctx, http.MethodGet, "/admin/users", nil, "", adminKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (b *StylistBackend) AdminDeleteUser(ctx context.Context, adminKey string, userID uint) (*models.AdminDeleteOut, error) {
	var out models.AdminDeleteOut
	if err := b.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", userID), nil, "", adminKey, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
