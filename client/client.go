package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")

	// ErrNotAuthenticated is returned before any network call when an
	// operation needs a signed-in user and no token is stored. Callers
	// redirect to login instead of retrying.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// APIError carries the backend's error message alongside the status class
// sentinel so callers can both errors.Is and display something useful.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return nil
	}
}

// Client is a typed wrapper over the REST backend. All calls take a context
// so a view being torn down can cancel its outstanding fetches.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

type ClientOption func(*Client)

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

func New(baseURL string, tokens TokenStore, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Tokens() TokenStore { return c.tokens }

// --- auth ---

func (c *Client) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	var pair TokenPair
	err := c.do(ctx, http.MethodPost, "/api/auth/token/", map[string]string{
		"username": username,
		"password": password,
	}, &pair, false)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register/", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, nil, false)
}

func (c *Client) RefreshAccess(ctx context.Context, refresh string) (string, error) {
	var resp struct {
		Access string `json:"access"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/token/refresh/", map[string]string{
		"refresh": refresh,
	}, &resp, false)
	return resp.Access, err
}

// --- profile ---

func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/api/profiles/me/", nil, &profile, true); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, bio, country *string) (*Profile, error) {
	body := map[string]any{}
	if bio != nil {
		body["bio"] = *bio
	}
	if country != nil {
		body["country"] = *country
	}
	var profile Profile
	if err := c.do(ctx, http.MethodPatch, "/api/profiles/me/", body, &profile, true); err != nil {
		return nil, err
	}
	return &profile, nil
}

// --- attractions ---

type AttractionFilter struct {
	Region   string
	Category string
	Search   string
	Status   string
	Ordering string
}

func (f AttractionFilter) query() string {
	values := url.Values{}
	if f.Region != "" {
		values.Set("region", f.Region)
	}
	if f.Category != "" {
		values.Set("category", f.Category)
	}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	if f.Status != "" {
		values.Set("status", f.Status)
	}
	if f.Ordering != "" {
		values.Set("ordering", f.Ordering)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

func (c *Client) Attractions(ctx context.Context, filter AttractionFilter) ([]Attraction, error) {
	var items []Attraction
	err := c.do(ctx, http.MethodGet, "/api/attractions/"+filter.query(), nil, &items, true)
	return items, err
}

func (c *Client) Attraction(ctx context.Context, id uuid.UUID) (*Attraction, error) {
	var item Attraction
	if err := c.do(ctx, http.MethodGet, "/api/attractions/"+id.String()+"/", nil, &item, true); err != nil {
		return nil, err
	}
	return &item, nil
}

type AttractionDraft struct {
	Name        string   `json:"name"`
	Region      string   `json:"region"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Status      string   `json:"status"`
	EntranceFee string   `json:"entrance_fee"`
	BestTime    string   `json:"best_time"`
}

func (c *Client) CreateAttraction(ctx context.Context, draft AttractionDraft) (*Attraction, error) {
	var item Attraction
	if err := c.do(ctx, http.MethodPost, "/api/attractions/", draft, &item, true); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateAttraction(ctx context.Context, id uuid.UUID, draft AttractionDraft) (*Attraction, error) {
	var item Attraction
	if err := c.do(ctx, http.MethodPut, "/api/attractions/"+id.String()+"/", draft, &item, true); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteAttraction(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/attractions/"+id.String()+"/", nil, nil, true)
}

// ToggleFavorite reports "added" or "removed".
func (c *Client) ToggleFavorite(ctx context.Context, id uuid.UUID) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	err := c.do(ctx, http.MethodPost, "/api/attractions/"+id.String()+"/toggle_favorite/", nil, &resp, true)
	return resp.Status, err
}

// --- routes ---

func (c *Client) Routes(ctx context.Context) ([]Route, error) {
	var items []Route
	err := c.do(ctx, http.MethodGet, "/api/routes/", nil, &items, false)
	return items, err
}

func (c *Client) Route(ctx context.Context, id uuid.UUID) (*Route, error) {
	var item Route
	if err := c.do(ctx, http.MethodGet, "/api/routes/"+id.String()+"/", nil, &item, false); err != nil {
		return nil, err
	}
	return &item, nil
}

type RouteDraft struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	DurationDays int         `json:"duration_days"`
	BudgetRange  string      `json:"budget_range"`
	Difficulty   string      `json:"difficulty"`
	DistanceKM   int         `json:"distance_km"`
	Image        string      `json:"image"`
	Stops        []RouteStop `json:"stops"`
}

func (c *Client) CreateRoute(ctx context.Context, draft RouteDraft) (*Route, error) {
	var item Route
	if err := c.do(ctx, http.MethodPost, "/api/routes/", draft, &item, true); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateRoute(ctx context.Context, id uuid.UUID, draft RouteDraft) (*Route, error) {
	var item Route
	if err := c.do(ctx, http.MethodPut, "/api/routes/"+id.String()+"/", draft, &item, true); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteRoute(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/routes/"+id.String()+"/", nil, nil, true)
}

// --- reviews ---

type ReviewFilter struct {
	Attraction *uuid.UUID
	Status     string
}

func (c *Client) Reviews(ctx context.Context, filter ReviewFilter) ([]Review, error) {
	values := url.Values{}
	if filter.Attraction != nil {
		values.Set("attraction", filter.Attraction.String())
	}
	if filter.Status != "" {
		values.Set("status", filter.Status)
	}
	path := "/api/reviews/"
	if len(values) > 0 {
		path += "?" + values.Encode()
	}
	var items []Review
	err := c.do(ctx, http.MethodGet, path, nil, &items, true)
	return items, err
}

func (c *Client) CreateReview(ctx context.Context, attraction uuid.UUID, rating int, text string) (*Review, error) {
	var item Review
	err := c.do(ctx, http.MethodPost, "/api/reviews/", map[string]any{
		"attraction": attraction.String(),
		"rating":     rating,
		"text":       text,
	}, &item, true)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) ModerateReview(ctx context.Context, id uuid.UUID, status, reason string) (*Review, error) {
	var item Review
	err := c.do(ctx, http.MethodPost, "/api/reviews/"+id.String()+"/moderate/", map[string]string{
		"status": status,
		"reason": reason,
	}, &item, true)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// --- bookings ---

func (c *Client) Bookings(ctx context.Context) ([]Booking, error) {
	var items []Booking
	err := c.do(ctx, http.MethodGet, "/api/bookings/", nil, &items, true)
	return items, err
}

func (c *Client) CreateBooking(ctx context.Context, route uuid.UUID, date string, peopleCount int) (*Booking, error) {
	var item Booking
	err := c.do(ctx, http.MethodPost, "/api/bookings/", map[string]any{
		"route":        route.String(),
		"date":         date,
		"people_count": peopleCount,
	}, &item, true)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// PayBooking is safe to call again after a failure; the backend keys the
// charge on the booking id.
func (c *Client) PayBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var item Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings/"+id.String()+"/pay/", nil, &item, true); err != nil {
		return nil, err
	}
	return &item, nil
}

// --- lookups, stats, planner ---

func (c *Client) Regions(ctx context.Context) ([]Region, error) {
	var items []Region
	err := c.do(ctx, http.MethodGet, "/api/regions/", nil, &items, false)
	return items, err
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var items []Category
	err := c.do(ctx, http.MethodGet, "/api/categories/", nil, &items, false)
	return items, err
}

func (c *Client) AdminStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats/", nil, &stats, true); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) Ask(ctx context.Context, message string) (*PlannerAnswer, error) {
	var answer PlannerAnswer
	err := c.do(ctx, http.MethodPost, "/api/ai/ask/", map[string]string{
		"message": message,
	}, &answer, false)
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token := c.tokens.Access(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
