package models

// Polygon is a GeoJSON polygon geometry. The first ring is the outer
// boundary; coordinates are [lng, lat] pairs.
type Polygon struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// LineString is a GeoJSON line geometry with [lng, lat] pairs.
type LineString struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// BoundingBox is a lat/lng envelope, used to fit the viewport to a route
// or to query markers for the visible map area.
type BoundingBox struct {
	LatMin float64 `json:"lat_min"`
	LatMax float64 `json:"lat_max"`
	LngMin float64 `json:"lng_min"`
	LngMax float64 `json:"lng_max"`
}

// Contains reports whether the point lies inside the box.
func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax && lng >= b.LngMin && lng <= b.LngMax
}

// Extend grows the box to include the point.
func (b *BoundingBox) Extend(lat, lng float64) {
	if b.LatMin == 0 && b.LatMax == 0 && b.LngMin == 0 && b.LngMax == 0 {
		b.LatMin, b.LatMax, b.LngMin, b.LngMax = lat, lat, lng, lng
		return
	}
	if lat < b.LatMin {
		b.LatMin = lat
	}
	if lat > b.LatMax {
		b.LatMax = lat
	}
	if lng < b.LngMin {
		b.LngMin = lng
	}
	if lng > b.LngMax {
		b.LngMax = lng
	}
}
