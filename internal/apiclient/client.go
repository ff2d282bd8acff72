// Package apiclient is a thin Go client for the guestbook REST API. The CLI
// uses it, and it doubles as the contract-bearing "store client" for tests.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nfrund/guestmap/internal/domain"
)

// APIError carries a non-2xx response from the server. The status code is
// always checked: a store rejection surfaces here instead of being parsed as
// success.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Client talks to a guestbook API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client against the given base URL (e.g. "http://localhost:5000").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Greeting calls the identity endpoint and returns the greeting string.
func (c *Client) Greeting(ctx context.Context) (string, error) {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1", nil, &body); err != nil {
		return "", err
	}
	return body.Message, nil
}

// ListMessages fetches every stored message in listing order. A single GET,
// no pagination.
func (c *Client) ListMessages(ctx context.Context) ([]domain.Message, error) {
	var msgs []domain.Message
	if err := c.do(ctx, http.MethodGet, "/api/v1/messages", nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Stats fetches the server's message and location counters.
func (c *Client) Stats(ctx context.Context) (messages, locations int, err error) {
	var body struct {
		Messages  int `json:"messages"`
		Locations int `json:"locations"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/stats", nil, &body); err != nil {
		return 0, 0, err
	}
	return body.Messages, body.Locations, nil
}

// CreateMessage posts a new message and returns the stored record with
// server-assigned id and date.
func (c *Client) CreateMessage(ctx context.Context, name, message string, lat, lng float64) (*domain.Message, error) {
	req := map[string]any{
		"name":      name,
		"message":   message,
		"latitude":  lat,
		"longitude": lng,
	}
	var stored domain.Message
	if err := c.do(ctx, http.MethodPost, "/api/v1/messages", req, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// do issues one request and decodes the JSON response into out. Non-2xx
// responses decode into an APIError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Buffer
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// A decode failure here still yields a usable status-only error.
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
