// Package apiclient talks to the restaurant admin HTTP API on behalf of a
// logged-in owner.
package apiclient

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

	"restaurant-admin/enrich"
	"restaurant-admin/models"
)

const (
	OrdersTimeout = 30 * time.Second
	UsersTimeout  = 10 * time.Second
)

// Session is the bearer token of a logged-in owner. It is passed explicitly
// to every call.
type Session struct {
	Token string
}

// APIError is returned for every non-2xx response
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

type LoginResult struct {
	Token string             `json:"token"`
	User  models.UserSummary `json:"user"`
}

func (r *LoginResult) Session() Session {
	return Session{Token: r.Token}
}

type OrdersResult struct {
	RestaurantCoords models.Coords  `json:"restaurantCoords"`
	Summary          map[string]int `json:"summary"`
	Count            int            `json:"count"`
	Orders           []models.Order `json:"orders"`
}

func (c *Client) Login(ctx context.Context, phone, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"phone": phone, "password": password}
	if err := c.do(ctx, Session{}, http.MethodPost, "/api/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders fetches the owner's orders, newest first
func (c *Client) Orders(ctx context.Context, s Session) (*OrdersResult, error) {
	ctx, cancel := context.WithTimeout(ctx, OrdersTimeout)
	defer cancel()

	var out OrdersResult
	if err := c.do(ctx, s, http.MethodGet, "/api/orders", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Order(ctx context.Context, s Session, id string) (*models.Order, error) {
	var out struct {
		Order models.Order `json:"order"`
	}
	if err := c.do(ctx, s, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

func (c *Client) Restaurant(ctx context.Context, s Session, id string) (*models.Restaurant, error) {
	var out struct {
		Restaurant models.Restaurant `json:"restaurant"`
	}
	if err := c.do(ctx, s, http.MethodGet, "/api/restaurants/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Restaurant, nil
}

// RestaurantFetcher binds the session so the enrichment pipeline can look up
// restaurants one order at a time
func (c *Client) RestaurantFetcher(s Session) enrich.RestaurantFetcher {
	return enrich.RestaurantFetcherFunc(func(ctx context.Context, id string) (*models.Restaurant, error) {
		return c.Restaurant(ctx, s, id)
	})
}

// Users returns the bulk user listing. A 404 means the listing is not
// available and yields an empty result.
func (c *Client) Users(ctx context.Context, s Session) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, UsersTimeout)
	defer cancel()

	var out struct {
		Users []models.User `json:"users"`
	}
	err := c.do(ctx, s, http.MethodGet, "/api/users", nil, &out)
	if IsStatus(err, http.StatusNotFound) {
		return []models.User{}, nil
	}
	if err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, s Session, id string, status models.OrderStatus) (*models.Order, error) {
	var out struct {
		Order models.Order `json:"order"`
	}
	body := map[string]models.OrderStatus{"orderStatus": status}
	if err := c.do(ctx, s, http.MethodPatch, "/api/orders/"+url.PathEscape(id), body, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

func (c *Client) do(ctx context.Context, s Session, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &APIError{Status: res.StatusCode, Message: errorMessage(raw, res.Status)}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func errorMessage(raw []byte, fallback string) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return fallback
}
