// Package client is a typed HTTP client for the portal API. Each method maps
// one UI action to one HTTP call; transport errors and non-2xx statuses are
// surfaced to the caller unchanged in meaning.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rashidq/logistics-portal/internal/core/domain"
)

// APIError carries a non-2xx response status and body.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("portal api: status %d: %s", e.StatusCode, e.Body)
}

// Client calls the portal HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetToken sets the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Signup registers a new account and stores the returned token.
func (c *Client) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", req, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Logout acknowledges the logout and clears the stored token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// Profile fetches the authenticated user's projection.
func (c *Client) Profile(ctx context.Context) (*domain.Profile, error) {
	var out domain.Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Services lists all active catalog services.
func (c *Client) Services(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	if err := c.do(ctx, http.MethodGet, "/api/services", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Service fetches one catalog service by id.
func (c *Client) Service(ctx context.Context, id int) (*domain.Service, error) {
	var out domain.Service
	if err := c.do(ctx, http.MethodGet, "/api/services/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRequest submits a service request for the authenticated user.
func (c *Client) CreateRequest(ctx context.Context, payload domain.CreateRequestPayload) (*domain.ServiceRequest, error) {
	var out domain.ServiceRequest
	if err := c.do(ctx, http.MethodPost, "/api/services/request", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Requests lists the authenticated user's service requests.
func (c *Client) Requests(ctx context.Context) ([]domain.ServiceRequest, error) {
	var out []domain.ServiceRequest
	if err := c.do(ctx, http.MethodGet, "/api/services/requests", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search runs a catalog search. A limit of 0 uses the server default.
func (c *Client) Search(ctx context.Context, query string, limit int) (*domain.SearchResponse, error) {
	params := url.Values{"q": {query}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var out domain.SearchResponse
	if err := c.do(ctx, http.MethodGet, "/api/search?"+params.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Suggestions fetches typing suggestions for a partial query.
func (c *Client) Suggestions(ctx context.Context, query string) ([]string, error) {
	params := url.Values{"q": {query}}
	var out []string
	if err := c.do(ctx, http.MethodGet, "/api/search/suggestions?"+params.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PopularTags fetches the popular search tags.
func (c *Client) PopularTags(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/api/search/popular-tags", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request portal api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
