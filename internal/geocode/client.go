// ABOUTME: HTTP client for the address search service
// ABOUTME: Thin wrapper over the /search endpoint with a request limit

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public address search endpoint.
const DefaultBaseURL = "https://data.geopf.fr/geocodage"

// resultLimit caps how many suggestions a query returns.
const resultLimit = 5

// Address is one geocoding suggestion.
type Address struct {
	Lng      float64 `json:"x"`
	Lat      float64 `json:"y"`
	FullText string  `json:"fulltext"`
	City     string  `json:"city"`
	ZipCode  string  `json:"zipcode"`
}

// Client queries an address search service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given base URL; empty means the
// default public service.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Search returns up to five suggestions for a free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]Address, error) {
	u := fmt.Sprintf("%s/search?q=%s&limit=%d", c.baseURL, url.QueryEscape(query), resultLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search %q: unexpected status %d", query, resp.StatusCode)
	}

	var payload struct {
		Results []Address `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return payload.Results, nil
}
