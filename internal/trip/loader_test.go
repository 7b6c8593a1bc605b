package trip

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itinerary/internal/models"
)

// fakeStore serves canned JSON per object key and counts fetches.
type fakeStore struct {
	objects map[string]any
	calls   map[string]int
}

func (f *fakeStore) GetJSON(_ context.Context, _ string, key string, v any) error {
	f.calls[key]++
	obj, ok := f.objects[key]
	if !ok {
		return errors.New("no such object")
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects: map[string]any{
			ConfigKey: models.TripConfig{
				TripName: "Portugal Trip",
				RegionHints: models.RegionHints{
					MainRegion:               "Portugal",
					SecondaryRegion:          "Madeira, Portugal",
					SecondaryRegionStartDate: "2024-10-09",
				},
			},
			ItineraryKey: []models.ItineraryItem{{Date: "2024-10-01", Type: "stay", Title: "Casa Aga"}},
			SuggestedKey: []models.SuggestedDay{{Date: "2024-10-02", Area: "Sintra"}},
		},
		calls: map[string]int{},
	}
}

func TestLoader_LoadsOncePerSession(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	loader := NewLoader(store, "trip-data")

	for i := 0; i < 3; i++ {
		cfg, err := loader.Config(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Portugal Trip", cfg.TripName)

		items, err := loader.Itinerary(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 1)

		days, err := loader.SuggestedDays(ctx)
		require.NoError(t, err)
		assert.Len(t, days, 1)
	}

	assert.Equal(t, 1, store.calls[ConfigKey])
	assert.Equal(t, 1, store.calls[ItineraryKey])
	assert.Equal(t, 1, store.calls[SuggestedKey])
}

func TestLoader_LoadFailureIsSurfaced(t *testing.T) {
	store := &fakeStore{objects: map[string]any{}, calls: map[string]int{}}
	loader := NewLoader(store, "trip-data")

	_, err := loader.Config(context.Background())
	assert.Error(t, err)

	_, err = loader.SuggestedDays(context.Background())
	assert.Error(t, err)
}

func TestRegionForDate(t *testing.T) {
	cfg := models.TripConfig{RegionHints: models.RegionHints{
		MainRegion:               "Portugal",
		SecondaryRegion:          "Madeira, Portugal",
		SecondaryRegionStartDate: "2024-10-09",
	}}

	tests := []struct {
		name string
		date string
		want string
	}{
		{"before secondary start", "2024-10-02", "Portugal"},
		{"on secondary start", "2024-10-09", "Madeira, Portugal"},
		{"after secondary start", "2024-10-15", "Madeira, Portugal"},
		{"unparseable date", "someday", "Portugal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RegionForDate(tt.date, cfg))
		})
	}
}

func TestRegionForDate_NoSecondaryRegion(t *testing.T) {
	cfg := models.TripConfig{RegionHints: models.RegionHints{MainRegion: "Portugal"}}
	assert.Equal(t, "Portugal", RegionForDate("2024-10-15", cfg))
}
