// Package nominatim wraps the OpenStreetMap Nominatim search endpoint
// with a single-result contract: one query, at most one coordinate back.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"itinerary/internal/models"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

type Client struct {
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	countryCode string
}

// NewClient returns a client restricted to the given ISO country code
// (empty disables the filter). Nominatim's usage policy requires an
// identifying User-Agent.
func NewClient(userAgent, countryCode string) *Client {
	return &Client{
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		userAgent:   userAgent,
		countryCode: countryCode,
	}
}

// searchResult is the subset of the Nominatim response we care about.
// Coordinates arrive as strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves "<query>, <region>" to a coordinate. A (nil, nil)
// return means the service had no results for the query; transport
// errors, non-2xx statuses and malformed bodies are returned as errors
// so callers can tell a miss from a failure. The client never retries
// and never caches.
func (c *Client) Geocode(ctx context.Context, query, region string) (*models.Coordinates, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s, %s", query, region))
	params.Set("format", "json")
	params.Set("limit", "1")
	if c.countryCode != "" {
		params.Set("countrycodes", c.countryCode)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("nominatim: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: unexpected status %s", resp.Status)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("nominatim: decode response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: parse lat %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: parse lon %q: %w", results[0].Lon, err)
	}

	return &models.Coordinates{Lat: lat, Lng: lng}, nil
}
