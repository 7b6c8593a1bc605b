// Package geo holds the pure helpers of the enrichment pipeline:
// great-circle distance and search-query normalization.
package geo

import (
	"math"

	"itinerary/internal/models"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// DistanceKm returns the great-circle distance between two points in
// kilometers. It is symmetric and zero for identical points.
func DistanceKm(a, b models.Coordinates) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}
