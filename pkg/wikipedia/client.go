// Package wikipedia resolves a free-text query to a representative
// image in two steps: a full-text search for the best-matching page
// title, then the page's thumbnail via the pageimages prop.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://en.wikipedia.org"
	apiPath        = "/w/api.php"
	thumbSize      = 480
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

func NewClient(userAgent string) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		userAgent:  userAgent,
	}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type pageImagesResponse struct {
	Query struct {
		Pages map[string]struct {
			Thumbnail struct {
				Source string `json:"source"`
			} `json:"thumbnail"`
		} `json:"pages"`
	} `json:"query"`
}

func (c *Client) get(ctx context.Context, params url.Values, v any) error {
	params.Set("format", "json")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s%s?%s", c.baseURL, apiPath, params.Encode()), nil)
	if err != nil {
		return fmt.Errorf("wikipedia: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wikipedia: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wikipedia: unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("wikipedia: decode response: %w", err)
	}
	return nil
}

// SearchTitle returns the canonical title of the best search hit for
// the query, or "" when nothing matches.
func (c *Client) SearchTitle(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)

	var result searchResponse
	if err := c.get(ctx, params, &result); err != nil {
		return "", err
	}
	if len(result.Query.Search) == 0 {
		return "", nil
	}
	return result.Query.Search[0].Title, nil
}

// Thumbnail returns the thumbnail URL for a page title, or "" when the
// page has no lead image.
func (c *Client) Thumbnail(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "pageimages")
	params.Set("piprop", "thumbnail")
	params.Set("pithumbsize", fmt.Sprintf("%d", thumbSize))
	params.Set("titles", title)

	var result pageImagesResponse
	if err := c.get(ctx, params, &result); err != nil {
		return "", err
	}
	for _, page := range result.Query.Pages {
		if page.Thumbnail.Source != "" {
			return page.Thumbnail.Source, nil
		}
	}
	return "", nil
}

// ImageFor combines both steps; "" means no usable image was found.
func (c *Client) ImageFor(ctx context.Context, query string) (string, error) {
	title, err := c.SearchTitle(ctx, query)
	if err != nil || title == "" {
		return "", err
	}
	return c.Thumbnail(ctx, title)
}
