// Package enrich resolves coordinates for suggested-itinerary items:
// it consults the geocode cache, paces lookups against the external
// geocoder, tracks per-item status and fans updates out to observers.
// Image enrichment (images.go) runs as a separate, unpaced parallel
// step.
package enrich

import "itinerary/internal/models"

// Status is the per-item enrichment state for the current session.
// Transitions only move forward; a resolved item is never re-fetched
// within the same session.
type Status int

const (
	StatusNotStarted Status = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Update is published to observers whenever an item's status changes.
// Coords is set only for successful resolutions.
type Update struct {
	Key    string
	Status Status
	Coords *models.Coordinates
}

// Observer receives status updates. Publish is called from the
// scheduler goroutine; implementations that block will stall the batch.
type Observer interface {
	Publish(Update)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Update)

func (f ObserverFunc) Publish(u Update) { f(u) }
