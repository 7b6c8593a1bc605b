package enrich

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"itinerary/internal/models"
)

// ImageFetcher resolves a free-text query to a representative image
// URL; "" means nothing suitable was found.
type ImageFetcher interface {
	ImageFor(ctx context.Context, query string) (string, error)
}

// imageSearchQuery builds the search text for an item from its names
// and category.
func imageSearchQuery(item models.SuggestedItem) string {
	var parts []string
	for _, p := range []string{item.NameLocal, item.NameEn, item.Category} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// FetchImages looks up an image for every item that does not already
// carry one. Unlike geocoding, lookups fan out in parallel with no
// pacing (the image service publishes no rate limit). Failures leave
// the item without an image; results arriving after cancellation are
// dropped.
func FetchImages(ctx context.Context, fetcher ImageFetcher, days []models.SuggestedDay, log zerolog.Logger) map[string]string {
	out := make(map[string]string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, day := range days {
		for _, item := range day.Items {
			if item.Image != "" {
				continue
			}
			wg.Add(1)
			go func(item models.SuggestedItem) {
				defer wg.Done()
				url, err := fetcher.ImageFor(ctx, imageSearchQuery(item))
				if err != nil {
					log.Debug().Err(err).Str("item", item.DisplayName()).Msg("image lookup failed")
					return
				}
				if url == "" || ctx.Err() != nil {
					return
				}
				mu.Lock()
				out[item.Key()] = url
				mu.Unlock()
			}(item)
		}
	}

	wg.Wait()
	return out
}
