// Package visited tracks which places the traveler has checked off.
// Membership is persisted as a JSON array of item keys under one fixed
// storage key.
package visited

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/rs/zerolog"

	"itinerary/internal/storage"
)

const storageKey = "travel-itinerary-visited-places"

type Store struct {
	kv  storage.KV
	log zerolog.Logger
}

func NewStore(kv storage.KV, log zerolog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// Load returns the current visited set. Missing, unreadable or corrupt
// stored data reads as an empty set, never as an error.
func (s *Store) Load(ctx context.Context) map[string]struct{} {
	set := make(map[string]struct{})

	raw, ok, err := s.kv.Get(ctx, storageKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("visited set read failed")
		return set
	}
	if !ok {
		return set
	}

	var keys []string
	if err := json.Unmarshal(raw, &keys); err != nil {
		s.log.Warn().Err(err).Msg("visited set corrupt, treating as empty")
		return set
	}
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func (s *Store) IsVisited(ctx context.Context, key string) bool {
	_, ok := s.Load(ctx)[key]
	return ok
}

// Toggle flips membership for the key, persists the result and returns
// the new snapshot. Write failures are logged; the returned snapshot
// still reflects the toggle so the current session stays consistent.
func (s *Store) Toggle(ctx context.Context, key string) map[string]struct{} {
	set := s.Load(ctx)
	if _, ok := set[key]; ok {
		delete(set, key)
	} else {
		set[key] = struct{}{}
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys) // deterministic stored form

	raw, err := json.Marshal(keys)
	if err != nil {
		s.log.Warn().Err(err).Msg("visited set encode failed")
		return set
	}
	if err := s.kv.Put(ctx, storageKey, raw); err != nil {
		s.log.Warn().Err(err).Msg("visited set write failed")
	}
	return set
}
