package models

// SearchFootprint records the center and radius of the last provider fetch,
// used to decide whether a radius change can reuse fetched results.
type SearchFootprint struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Radius float64 `json:"radius"`
}

// MapSession is the transient map screen state: pin position, selected
// radius, the last fetch and its results, active filters and query. It is
// created on first use, mutated by search/filter/pin actions, and restored
// by id when the user returns from a detail view.
type MapSession struct {
	ID               string      `json:"id"`
	UserLocation     Coordinates `json:"user_location"`
	PinLocation      Coordinates `json:"pin_location"`
	HasPinBeenPlaced bool        `json:"has_pin_been_placed"`

	// SelectedRadius in meters; 0 means radius search is off.
	SelectedRadius float64 `json:"selected_radius"`

	ActiveFilters []string `json:"active_filters"`
	SearchQuery   string   `json:"search_query"`

	// FetchedCafes is the universe returned by the last provider fetch;
	// the visible list is derived from it by radius/filter/query matching.
	FetchedCafes []Cafe           `json:"fetched_cafes"`
	LastSearch   *SearchFootprint `json:"last_search,omitempty"`

	// SearchError is the user-visible inline message; empty when the last
	// search succeeded with results.
	SearchError string `json:"search_error,omitempty"`
}

// Center returns the active search center: the pin when one has been
// placed, otherwise the user location.
func (s *MapSession) Center() Coordinates {
	if s.HasPinBeenPlaced {
		return s.PinLocation
	}
	return s.UserLocation
}

// Marker is one renderable map marker: either a cluster with a count and
// the zoom that expands it, or a single cafe showing its rating.
type Marker struct {
	Cluster       bool        `json:"cluster"`
	Count         int         `json:"count,omitempty"`
	ExpansionZoom int         `json:"expansion_zoom,omitempty"`
	CafeID        string      `json:"cafe_id,omitempty"`
	Rating        float64     `json:"rating,omitempty"`
	Coordinates   Coordinates `json:"coordinates"`
}

// RoutePlan is everything the client needs to draw a driving route: the
// line geometry, the destination marker position, and the bounds to fit.
type RoutePlan struct {
	Line            LineString  `json:"line"`
	Destination     Coordinates `json:"destination"`
	Bounds          BoundingBox `json:"bounds"`
	DistanceMeters  float64     `json:"distance_meters"`
	DurationSeconds float64     `json:"duration_seconds"`
}
