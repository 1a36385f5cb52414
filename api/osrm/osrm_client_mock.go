package osrm

import (
	"context"

	"loca-server/models"
	"loca-server/util"
)

// OSRMClientMock serves a straight two-point line between the endpoints.
type OSRMClientMock struct {
	Err error
}

// NewOSRMClientMock creates a new instance of OSRMClientMock
func NewOSRMClientMock() *OSRMClientMock {
	return &OSRMClientMock{}
}

func (c *OSRMClientMock) Route(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (*Route, error) {
	if c.Err != nil {
		return nil, c.Err
	}

	distance := util.Haversine(fromLat, fromLng, toLat, toLng)
	return &Route{
		Line: models.LineString{
			Type: "LineString",
			Coordinates: [][2]float64{
				{fromLng, fromLat},
				{toLng, toLat},
			},
		},
		DistanceMeters:  distance,
		DurationSeconds: distance / 8.0, // ~30 km/h urban driving
	}, nil
}
