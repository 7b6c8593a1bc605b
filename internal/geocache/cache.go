// Package geocache persists geocoding results per item key with a
// fixed time-to-live, so repeated sessions skip the network.
package geocache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"itinerary/internal/models"
	"itinerary/internal/storage"
)

// TTL after which an entry is treated as absent and purged on access.
const TTL = 30 * 24 * time.Hour

// keyPrefix keeps cache entries apart from other KV users (the visited
// set shares the same store).
const keyPrefix = "geocode:"

// Entry pairs a coordinate with the time it was stored.
type Entry struct {
	Coords  models.Coordinates `json:"coords"`
	SavedAt time.Time          `json:"savedAt"`
}

type Cache struct {
	kv  storage.KV
	ttl time.Duration
	now func() time.Time
	log zerolog.Logger
}

func New(kv storage.KV, log zerolog.Logger) *Cache {
	return &Cache{kv: kv, ttl: TTL, now: time.Now, log: log}
}

// Get returns the cached coordinate for the key. Absent, stale,
// unreadable and undecodable entries all count as a miss; a stale entry
// is deleted as a side effect. Storage problems are logged, never
// surfaced: a broken cache behaves like an empty one.
func (c *Cache) Get(ctx context.Context, key string) (*models.Coordinates, bool) {
	raw, ok, err := c.kv.Get(ctx, keyPrefix+key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("geocache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("geocache entry corrupt")
		return nil, false
	}
	if c.now().Sub(entry.SavedAt) > c.ttl {
		if err := c.kv.Delete(ctx, keyPrefix+key); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("geocache purge failed")
		}
		return nil, false
	}

	coords := entry.Coords
	return &coords, true
}

// Put stores the coordinate under the key, overwriting any prior entry.
func (c *Cache) Put(ctx context.Context, key string, coords models.Coordinates) {
	raw, err := json.Marshal(Entry{Coords: coords, SavedAt: c.now()})
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("geocache encode failed")
		return
	}
	if err := c.kv.Put(ctx, keyPrefix+key, raw); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("geocache write failed")
	}
}
