package places

import "context"

// RawPlace is a provider-shaped nearby-search result, before normalization
// into the app's cafe model.
type RawPlace struct {
	PlaceID     string   `json:"place_id"`
	Name        string   `json:"name"`
	Vicinity    string   `json:"vicinity"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Rating      float64  `json:"rating"`
	UserRatings int      `json:"user_ratings_total"`
	Types       []string `json:"types"`
	PhotoURL    string   `json:"photo_url"`
	OpenNow     bool     `json:"open_now"`
}

// PlacesAPI defines the interface for the nearby-places provider.
type PlacesAPI interface {
	NearbySearch(ctx context.Context, lat, lng, radiusMeters float64, keyword string) ([]RawPlace, error)
	SetCredentials(apiKey string)
}
