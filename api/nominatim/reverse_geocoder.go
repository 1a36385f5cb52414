package nominatim

import "context"

// ReverseGeocoder defines the interface for turning coordinates into a
// human-readable place label.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}
