package models

import "net/url"

// Coordinates is a WGS84 point in degrees. Values are taken as-is;
// out-of-range input is a caller bug, not a runtime error.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type TripLocation struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
}

// RegionHints steers geocoding queries: MainRegion is appended to every
// lookup, SecondaryRegion takes over from SecondaryRegionStartDate onward.
type RegionHints struct {
	MainRegion               string `json:"mainRegion"`
	SecondaryRegion          string `json:"secondaryRegion,omitempty"`
	SecondaryRegionStartDate string `json:"secondaryRegionStartDate,omitempty"`
}

type TripConfig struct {
	TripName     string         `json:"tripName"`
	TripSubtitle string         `json:"tripSubtitle"`
	Locations    []TripLocation `json:"locations"`
	RegionHints  RegionHints    `json:"regionHints"`
}

// ItineraryItem is a booked event (flight, stay, meal, visit). Details
// vary per type and are kept as a free-form map.
type ItineraryItem struct {
	Date       string         `json:"date"`
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Location   string         `json:"location,omitempty"`
	Host       string         `json:"host,omitempty"`
	Image      string         `json:"image,omitempty"`
	Link       string         `json:"link,omitempty"`
	FooterNote string         `json:"footerNote,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

// SuggestedItem is an activity candidate. Coords, when present in the
// source data, wins over any geocoding lookup.
type SuggestedItem struct {
	NameLocal string       `json:"nameLocal"`
	NameEn    string       `json:"nameEn"`
	Link      string       `json:"link"`
	Summary   string       `json:"summary"`
	Category  string       `json:"category"`
	Image     string       `json:"image,omitempty"`
	Coords    *Coordinates `json:"coords,omitempty"`
}

// Key returns the stable identifier used for caching, status tracking
// and the visited set: the URL-encoded link, or the local name for
// items without one.
func (s SuggestedItem) Key() string {
	if s.Link != "" {
		return url.QueryEscape(s.Link)
	}
	return s.NameLocal
}

// DisplayName prefers the local name and falls back to the English one.
func (s SuggestedItem) DisplayName() string {
	if s.NameLocal != "" {
		return s.NameLocal
	}
	return s.NameEn
}

type SuggestedDay struct {
	Date        string          `json:"date"`
	Area        string          `json:"area,omitempty"`
	Description string          `json:"description,omitempty"`
	Items       []SuggestedItem `json:"items"`
}
