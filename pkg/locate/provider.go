// Package locate supplies the "where am I" reference coordinate used
// for distance sorting. It asks an ip-api-style JSON endpoint once and
// reuses the fix for a while; any failure means "no reference
// location", never an error.
package locate

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"itinerary/internal/models"
)

const (
	defaultTimeout = 10 * time.Second
	// fixes older than this are refreshed, matching the max-age a
	// browser would use for a cached position
	defaultMaxAge = 10 * time.Minute
)

type Provider struct {
	endpoint   string
	httpClient *http.Client
	maxAge     time.Duration
	now        func() time.Time
	log        zerolog.Logger

	mu      sync.Mutex
	fix     *models.Coordinates
	fixedAt time.Time
}

// NewProvider builds a provider for the given lookup endpoint
// (e.g. "http://ip-api.com/json").
func NewProvider(endpoint string, log zerolog.Logger) *Provider {
	return &Provider{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxAge:     defaultMaxAge,
		now:        time.Now,
		log:        log,
	}
}

type lookupResponse struct {
	Status string  `json:"status"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// Current returns the reference coordinate, reusing a fix younger than
// the max-age. Denial, timeout or any other failure returns nil.
func (p *Provider) Current(ctx context.Context) *models.Coordinates {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fix != nil && p.now().Sub(p.fixedAt) < p.maxAge {
		return p.fix
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		p.log.Warn().Err(err).Msg("location lookup request failed")
		return nil
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.Warn().Err(err).Msg("location lookup failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.log.Warn().Str("status", resp.Status).Msg("location lookup rejected")
		return nil
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		p.log.Warn().Err(err).Msg("location response malformed")
		return nil
	}
	if body.Status != "" && body.Status != "success" {
		p.log.Warn().Str("status", body.Status).Msg("location lookup denied")
		return nil
	}

	p.fix = &models.Coordinates{Lat: body.Lat, Lng: body.Lon}
	p.fixedAt = p.now()
	return p.fix
}
