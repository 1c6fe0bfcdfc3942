// Package client implements the REST contract of the ordering backend. It is
// the only place the kiosk talks to the network; everything above it works
// with typed models and the error taxonomy defined here.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/tastyhub/ordering-service/internal/models"
)

// ErrUnreachable marks a network-level failure: the backend could not be
// reached at all, as opposed to answering with an error status. Callers use
// this to switch into the disconnected state.
var ErrUnreachable = errors.New("backend unreachable")

// APIError is an application-level failure: the backend answered with a
// non-2xx status. The body is captured as text and not parsed further.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %d %s", e.StatusCode, e.Body)
}

// IsUnreachable reports whether the error is a connectivity failure.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// Client is an HTTP client for the ordering backend.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for the backend at baseURL (e.g. "http://localhost:8000").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken sets the bearer token attached to admin requests. An empty token
// clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// do performs a request and decodes the JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Body: "malformed response: " + err.Error()}
	}
	return nil
}

// Menu retrieves the catalog.
func (c *Client) Menu(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := c.do(ctx, http.MethodGet, "/api/menu", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateMenuItem creates a catalog item; the backend assigns the ID.
func (c *Client) CreateMenuItem(ctx context.Context, req models.MenuItemRequest) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := c.do(ctx, http.MethodPost, "/api/menu", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateMenuItem replaces all mutable fields of an existing item.
func (c *Client) UpdateMenuItem(ctx context.Context, id string, req models.MenuItemRequest) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := c.do(ctx, http.MethodPut, "/api/menu/"+id, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteMenuItem removes a catalog item.
func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/menu/"+id, nil, nil)
}

// ToggleMenuItem flips an item's availability.
func (c *Client) ToggleMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := c.do(ctx, http.MethodPut, "/api/menu/"+id+"/toggle", nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Orders retrieves the order ledger, newest first.
func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder submits a new order.
func (c *Client) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus sets the status of an order.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	req := models.StatusUpdateRequest{Status: status}
	if err := c.do(ctx, http.MethodPut, "/api/orders/"+id+"/status", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Settings retrieves the store settings.
func (c *Client) Settings(ctx context.Context) (*models.StoreSettings, error) {
	var settings models.StoreSettings
	if err := c.do(ctx, http.MethodGet, "/api/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings saves the store settings.
func (c *Client) UpdateSettings(ctx context.Context, settings models.StoreSettings) (*models.StoreSettings, error) {
	var saved models.StoreSettings
	if err := c.do(ctx, http.MethodPut, "/api/settings", settings, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// Login authenticates an admin, retains the returned bearer token for
// subsequent requests, and returns it.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	req := models.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return "", err
	}
	c.SetToken(resp.Token)
	return resp.Token, nil
}
