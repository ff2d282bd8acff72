// Package geoip looks up an approximate position for an IP address using an
// ipapi.co-compatible JSON endpoint. It is the fallback path of location
// resolution, used when the browser did not share device coordinates.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nfrund/guestmap/internal/locate"
)

// DefaultBaseURL is the public ipapi.co endpoint.
const DefaultBaseURL = "https://ipapi.co"

// Location is the subset of the lookup response the application cares about.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	Country   string  `json:"country_name"`
}

// Client performs IP geolocation lookups.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client against the given base URL. An empty baseURL selects
// the public ipapi.co service.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Lookup resolves the position of the given IP. An empty ip asks the service
// about the caller's own address.
func (c *Client) Lookup(ctx context.Context, ip string) (*Location, error) {
	url := c.baseURL + "/json"
	if ip != "" {
		url = fmt.Sprintf("%s/%s/json", c.baseURL, ip)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geoip request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geoip lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geoip lookup returned status %d", resp.StatusCode)
	}

	var loc Location
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return nil, fmt.Errorf("failed to decode geoip response: %w", err)
	}

	return &loc, nil
}

// Source adapts the client to the locate.Source interface for the given IP.
// Loopback and empty addresses are reported as unavailable immediately: the
// public service cannot place them and would answer with its own location.
func (c *Client) Source(ip string) locate.Source {
	return locate.SourceFunc(func(ctx context.Context) (locate.Point, error) {
		if ip == "" || ip == "127.0.0.1" || ip == "::1" {
			return locate.Point{}, locate.ErrUnavailable
		}
		loc, err := c.Lookup(ctx, ip)
		if err != nil {
			return locate.Point{}, err
		}
		return locate.Point{Lat: loc.Latitude, Lng: loc.Longitude}, nil
	})
}
