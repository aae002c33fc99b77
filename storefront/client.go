package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mithai-mahal/models"
)

// APIError is a non-2xx answer from the API, carrying the server's message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient talks to the API rooted at baseURL (for example http://localhost:5000/api).
// When session is signed in its token is sent on every request.
func NewClient(baseURL string, session *Session, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		session:    session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	if err := c.remember(resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	if err := c.remember(resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout revokes the token server side and always clears the local session.
func (c *Client) Logout(ctx context.Context) error {
	var remoteErr error
	if c.session != nil && c.session.IsAuthenticated() {
		remoteErr = c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	}
	if c.session != nil {
		if err := c.session.Clear(); err != nil {
			return err
		}
	}
	return remoteErr
}

func (c *Client) ListSweets(ctx context.Context) ([]models.Sweet, error) {
	sweets := []models.Sweet{}
	err := c.do(ctx, http.MethodGet, "/sweets", nil, &sweets)
	return sweets, err
}

func (c *Client) SearchSweets(ctx context.Context, filter models.SweetFilter) ([]models.Sweet, error) {
	params := url.Values{}
	if filter.Name != "" {
		params.Set("name", filter.Name)
	}
	if filter.Category != "" {
		params.Set("category", filter.Category)
	}
	if filter.MinPrice != nil {
		params.Set("minPrice", strconv.FormatFloat(*filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice != nil {
		params.Set("maxPrice", strconv.FormatFloat(*filter.MaxPrice, 'f', -1, 64))
	}

	path := "/sweets/search"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	sweets := []models.Sweet{}
	err := c.do(ctx, http.MethodGet, path, nil, &sweets)
	return sweets, err
}

func (c *Client) GetSweet(ctx context.Context, id string) (*models.Sweet, error) {
	var sweet models.Sweet
	if err := c.do(ctx, http.MethodGet, "/sweets/"+url.PathEscape(id), nil, &sweet); err != nil {
		return nil, err
	}
	return &sweet, nil
}

func (c *Client) CreateSweet(ctx context.Context, req models.CreateSweetRequest) (*models.Sweet, error) {
	var sweet models.Sweet
	if err := c.do(ctx, http.MethodPost, "/sweets", req, &sweet); err != nil {
		return nil, err
	}
	return &sweet, nil
}

func (c *Client) UpdateSweet(ctx context.Context, id string, req models.UpdateSweetRequest) (*models.Sweet, error) {
	var sweet models.Sweet
	if err := c.do(ctx, http.MethodPut, "/sweets/"+url.PathEscape(id), req, &sweet); err != nil {
		return nil, err
	}
	return &sweet, nil
}

func (c *Client) DeleteSweet(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sweets/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Purchase(ctx context.Context, id string) (*models.Sweet, error) {
	var resp models.InventoryResponse
	if err := c.do(ctx, http.MethodPost, "/sweets/"+url.PathEscape(id)+"/purchase", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Sweet, nil
}

func (c *Client) Restock(ctx context.Context, id string, quantity int) (*models.Sweet, error) {
	var resp models.InventoryResponse
	body := models.RestockRequest{Quantity: &quantity}
	if err := c.do(ctx, http.MethodPost, "/sweets/"+url.PathEscape(id)+"/restock", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Sweet, nil
}

func (c *Client) remember(resp models.AuthResponse) error {
	if c.session == nil {
		return nil
	}
	return c.session.Set(resp)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil && method != http.MethodGet && method != http.MethodHead {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &APIError{Status: res.StatusCode, Message: errorMessage(res.StatusCode, raw)}
	}

	if out == nil || len(raw) == 0 || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage prefers message, then msg, then error, then the raw body.
func errorMessage(status int, raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.Message != "":
			return body.Message
		case body.Msg != "":
			return body.Msg
		case body.Error != "":
			return body.Error
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return fmt.Sprintf("Request failed with status %d", status)
}
