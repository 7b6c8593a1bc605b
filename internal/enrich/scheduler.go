package enrich

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"itinerary/internal/models"
	"itinerary/internal/trip"
	"itinerary/pkg/geo"
)

// DefaultPacing is the minimum gap between consecutive geocoding
// requests, per Nominatim's usage policy.
const DefaultPacing = time.Second

// Geocoder resolves one "<query>, <region>" search to a coordinate.
// (nil, nil) means no results; errors mean the lookup itself failed.
type Geocoder interface {
	Geocode(ctx context.Context, query, region string) (*models.Coordinates, error)
}

// Cache is the persisted key-to-coordinate store consulted before any
// network lookup.
type Cache interface {
	Get(ctx context.Context, key string) (*models.Coordinates, bool)
	Put(ctx context.Context, key string, coords models.Coordinates)
}

// Scheduler resolves coordinates for a batch of suggested items exactly
// once per session. Batches run strictly sequentially: one item
// finishes (success or failure) before the next begins, so the pacing
// interval holds globally rather than per item.
type Scheduler struct {
	geocoder  Geocoder
	cache     Cache
	limiter   *rate.Limiter
	observers []Observer
	log       zerolog.Logger

	mu       sync.Mutex
	statuses map[string]Status
	coords   map[string]models.Coordinates
}

// NewScheduler builds a scheduler with the given pacing interval
// between network attempts. Burst 1 means the first attempt goes out
// immediately and every later one waits out the interval.
func NewScheduler(geocoder Geocoder, cache Cache, pacing time.Duration, log zerolog.Logger, observers ...Observer) *Scheduler {
	if pacing <= 0 {
		pacing = DefaultPacing
	}
	return &Scheduler{
		geocoder:  geocoder,
		cache:     cache,
		limiter:   rate.NewLimiter(rate.Every(pacing), 1),
		observers: observers,
		log:       log,
		statuses:  make(map[string]Status),
		coords:    make(map[string]models.Coordinates),
	}
}

// variant is one candidate search, already normalized.
type variant struct {
	query  string
	region string
}

// queryVariants returns the ordered lookups to try for an item:
// local name with the day's area, English name with the area, then both
// names with the trip-level region hint. Empty names and empty hints
// are skipped.
func queryVariants(item models.SuggestedItem, area, region string) []variant {
	var out []variant
	for _, hint := range []string{area, region} {
		if hint == "" {
			continue
		}
		for _, name := range []string{item.NameLocal, item.NameEn} {
			q := geo.NormalizeQuery(name)
			if q == "" {
				continue
			}
			out = append(out, variant{query: q, region: hint})
		}
	}
	return out
}

// Run processes every item of every day in order. Cancelling ctx stops
// further network calls and suppresses further updates for the batch;
// results already cached stay valid.
func (s *Scheduler) Run(ctx context.Context, days []models.SuggestedDay, cfg models.TripConfig) {
	for _, day := range days {
		region := trip.RegionForDate(day.Date, cfg)
		for _, item := range day.Items {
			if ctx.Err() != nil {
				s.log.Debug().Msg("enrichment batch cancelled")
				return
			}
			s.enrichItem(ctx, item, day.Area, region)
		}
	}
}

func (s *Scheduler) enrichItem(ctx context.Context, item models.SuggestedItem, area, region string) {
	key := item.Key()

	// resolved earlier this session, leave it alone
	if st := s.Status(key); st == StatusSucceeded || st == StatusFailed {
		return
	}

	// pre-supplied coordinates always win over lookup
	if item.Coords != nil {
		s.publish(ctx, key, StatusSucceeded, item.Coords)
		return
	}

	if coords, ok := s.cache.Get(ctx, key); ok {
		s.publish(ctx, key, StatusSucceeded, coords)
		return
	}

	s.publish(ctx, key, StatusLoading, nil)

	var found *models.Coordinates
	for _, v := range queryVariants(item, area, region) {
		if err := s.limiter.Wait(ctx); err != nil {
			// cancelled while pacing: no further calls, no further updates
			return
		}
		coords, err := s.geocoder.Geocode(ctx, v.query, v.region)
		if err != nil {
			s.log.Warn().Err(err).Str("query", v.query).Str("region", v.region).Msg("geocode attempt failed")
			continue
		}
		if coords == nil {
			s.log.Debug().Str("query", v.query).Str("region", v.region).Msg("no geocoding results")
			continue
		}
		found = coords
		break
	}

	if ctx.Err() != nil {
		return
	}
	if found == nil {
		// failures are never cached so a later session can retry
		s.publish(ctx, key, StatusFailed, nil)
		return
	}

	s.cache.Put(ctx, key, *found)
	s.publish(ctx, key, StatusSucceeded, found)
}

// publish records the transition and notifies observers unless the
// batch has been cancelled.
func (s *Scheduler) publish(ctx context.Context, key string, st Status, coords *models.Coordinates) {
	s.mu.Lock()
	s.statuses[key] = st
	if coords != nil {
		s.coords[key] = *coords
	}
	s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	u := Update{Key: key, Status: st, Coords: coords}
	for _, o := range s.observers {
		o.Publish(u)
	}
}

// Status returns the current session status for an item key.
func (s *Scheduler) Status(key string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statuses[key]
}

// Statuses returns a snapshot of all per-item statuses.
func (s *Scheduler) Statuses() map[string]Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Status, len(s.statuses))
	for k, v := range s.statuses {
		out[k] = v
	}
	return out
}

// Coordinates returns a snapshot of every resolved coordinate,
// including pre-supplied ones.
func (s *Scheduler) Coordinates() map[string]models.Coordinates {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]models.Coordinates, len(s.coords))
	for k, v := range s.coords {
		out[k] = v
	}
	return out
}
