package osrm

import (
	"context"

	"loca-server/models"
)

// Route is a driving route between two coordinates. The line is a GeoJSON
// LineString in [lng, lat] order, as served by the routing backend.
type Route struct {
	Line            models.LineString
	DistanceMeters  float64
	DurationSeconds float64
}

// RoutingAPI defines the interface for the driving-route gateway.
type RoutingAPI interface {
	Route(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (*Route, error)
}
