// Package rank orders suggested items for presentation.
package rank

import (
	"sort"

	"itinerary/internal/models"
	"itinerary/pkg/geo"
)

// SortItems orders items in place: by category, then — when a
// reference coordinate is known — resolved items before unresolved ones
// and among resolved ones by ascending distance, then by display name.
// The order is stable and total: identical inputs always produce the
// identical ordering.
func SortItems(items []models.SuggestedItem, coords map[string]models.Coordinates, ref *models.Coordinates) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		if a.Category != b.Category {
			return a.Category < b.Category
		}

		if ref != nil {
			ca, aok := coords[a.Key()]
			cb, bok := coords[b.Key()]
			if aok != bok {
				return aok
			}
			if aok && bok {
				da := geo.DistanceKm(*ref, ca)
				db := geo.DistanceKm(*ref, cb)
				if da != db {
					return da < db
				}
			}
		}

		return a.DisplayName() < b.DisplayName()
	})
}
