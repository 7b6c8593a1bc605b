// Package trip loads the static trip data (config, booked itinerary,
// suggested days) once per session and keeps it in memory. A failed
// load is fatal to the consuming view, so errors are returned rather
// than swallowed.
package trip

import (
	"context"
	"fmt"
	"sync"
	"time"

	"itinerary/internal/models"
)

// Object keys of the three data files inside the trip bucket.
const (
	ConfigKey    = "trip-config.json"
	ItineraryKey = "booked-itinerary.json"
	SuggestedKey = "suggested-itinerary.json"
)

// ObjectGetter loads and decodes one JSON object from the data source.
type ObjectGetter interface {
	GetJSON(ctx context.Context, bucket, key string, v any) error
}

// Loader is a session-scoped data context: construct one at session
// start, share it with consumers, drop it at session end. Each object
// is fetched at most once.
type Loader struct {
	store  ObjectGetter
	bucket string

	mu        sync.Mutex
	config    *models.TripConfig
	itinerary []models.ItineraryItem
	suggested []models.SuggestedDay
}

func NewLoader(store ObjectGetter, bucket string) *Loader {
	return &Loader{store: store, bucket: bucket}
}

func (l *Loader) Config(ctx context.Context) (*models.TripConfig, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.config != nil {
		return l.config, nil
	}
	var cfg models.TripConfig
	if err := l.store.GetJSON(ctx, l.bucket, ConfigKey, &cfg); err != nil {
		return nil, fmt.Errorf("trip: load config: %w", err)
	}
	l.config = &cfg
	return l.config, nil
}

func (l *Loader) Itinerary(ctx context.Context) ([]models.ItineraryItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.itinerary != nil {
		return l.itinerary, nil
	}
	var items []models.ItineraryItem
	if err := l.store.GetJSON(ctx, l.bucket, ItineraryKey, &items); err != nil {
		return nil, fmt.Errorf("trip: load itinerary: %w", err)
	}
	if items == nil {
		items = []models.ItineraryItem{}
	}
	l.itinerary = items
	return l.itinerary, nil
}

func (l *Loader) SuggestedDays(ctx context.Context) ([]models.SuggestedDay, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.suggested != nil {
		return l.suggested, nil
	}
	var days []models.SuggestedDay
	if err := l.store.GetJSON(ctx, l.bucket, SuggestedKey, &days); err != nil {
		return nil, fmt.Errorf("trip: load suggested days: %w", err)
	}
	if days == nil {
		days = []models.SuggestedDay{}
	}
	l.suggested = days
	return l.suggested, nil
}

// RegionForDate picks the region hint for a given day: the secondary
// region applies from its start date onward, the main region otherwise.
// Unparseable dates fall back to the main region.
func RegionForDate(dateISO string, cfg models.TripConfig) string {
	hints := cfg.RegionHints
	if hints.SecondaryRegion == "" || hints.SecondaryRegionStartDate == "" {
		return hints.MainRegion
	}

	date, err := time.Parse("2006-01-02", dateISO)
	if err != nil {
		return hints.MainRegion
	}
	start, err := time.Parse("2006-01-02", hints.SecondaryRegionStartDate)
	if err != nil {
		return hints.MainRegion
	}

	if !date.Before(start) {
		return hints.SecondaryRegion
	}
	return hints.MainRegion
}
