package places

import (
	"context"
	"fmt"
	"net/url"

	"loca-server/api"
)

// googlePlacesResult mirrors one result of the Google Places nearby search.
type googlePlacesResult struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Vicinity string   `json:"vicinity"`
	Types    []string `json:"types"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Rating           float64 `json:"rating"`
	UserRatingsTotal int     `json:"user_ratings_total"`
	Photos           []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
	OpeningHours *struct {
		OpenNow bool `json:"open_now"`
	} `json:"opening_hours,omitempty"`
}

type googlePlacesResponse struct {
	Results []googlePlacesResult `json:"results"`
	Status  string               `json:"status"`
}

// GooglePlacesClient embeds the common HTTPClient
type GooglePlacesClient struct {
	*api.HTTPClient
	apiKey string
}

// NewGooglePlacesClient creates a new instance of GooglePlacesClient
func NewGooglePlacesClient(httpClient *api.HTTPClient) *GooglePlacesClient {
	return &GooglePlacesClient{
		HTTPClient: httpClient,
	}
}

func (c *GooglePlacesClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

// NearbySearch queries the nearby-search endpoint with type "cafe" and an
// optional keyword, and converts results into RawPlace values.
func (c *GooglePlacesClient) NearbySearch(ctx context.Context, lat, lng, radiusMeters float64, keyword string) ([]RawPlace, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("places API key is not configured")
	}

	endpoint := fmt.Sprintf(
		"/nearbysearch/json?location=%f,%f&radius=%d&type=cafe&key=%s",
		lat, lng, int(radiusMeters), url.QueryEscape(c.apiKey),
	)
	if keyword != "" {
		endpoint += "&keyword=" + url.QueryEscape(keyword)
	}

	var response googlePlacesResponse
	if err := c.RequestContext(ctx, "GET", endpoint, nil, nil, &response); err != nil {
		return nil, err
	}

	if response.Status != "OK" && response.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places API error: %s", response.Status)
	}

	raw := make([]RawPlace, 0, len(response.Results))
	for _, r := range response.Results {
		place := RawPlace{
			PlaceID:     r.PlaceID,
			Name:        r.Name,
			Vicinity:    r.Vicinity,
			Lat:         r.Geometry.Location.Lat,
			Lng:         r.Geometry.Location.Lng,
			Rating:      r.Rating,
			UserRatings: r.UserRatingsTotal,
			Types:       r.Types,
		}
		if len(r.Photos) > 0 && r.Photos[0].PhotoReference != "" {
			place.PhotoURL = c.photoURL(r.Photos[0].PhotoReference)
		}
		if r.OpeningHours != nil {
			place.OpenNow = r.OpeningHours.OpenNow
		}
		raw = append(raw, place)
	}
	return raw, nil
}

func (c *GooglePlacesClient) photoURL(photoReference string) string {
	return fmt.Sprintf(
		"%s/photo?maxwidth=400&maxheight=400&photo_reference=%s&key=%s",
		c.BaseURL, url.QueryEscape(photoReference), url.QueryEscape(c.apiKey),
	)
}
