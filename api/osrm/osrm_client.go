package osrm

import (
	"context"
	"fmt"

	"loca-server/api"
	"loca-server/models"
)

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry models.LineString `json:"geometry"`
		Distance float64           `json:"distance"`
		Duration float64           `json:"duration"`
	} `json:"routes"`
}

// OSRMClient embeds the common HTTPClient
type OSRMClient struct {
	*api.HTTPClient
}

// NewOSRMClient creates a new instance of OSRMClient
func NewOSRMClient(httpClient *api.HTTPClient) *OSRMClient {
	return &OSRMClient{
		HTTPClient: httpClient,
	}
}

// Route fetches a driving route with full GeoJSON geometry. Coordinates on
// the wire are lng,lat ordered.
func (c *OSRMClient) Route(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (*Route, error) {
	endpoint := fmt.Sprintf(
		"/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson",
		fromLng, fromLat, toLng, toLat,
	)

	var response osrmResponse
	if err := c.RequestContext(ctx, "GET", endpoint, nil, nil, &response); err != nil {
		return nil, err
	}

	if response.Code != "Ok" {
		return nil, fmt.Errorf("routing error: %s", response.Code)
	}
	if len(response.Routes) == 0 {
		return nil, fmt.Errorf("routing returned no routes")
	}

	best := response.Routes[0]
	return &Route{
		Line:            best.Geometry,
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
	}, nil
}
