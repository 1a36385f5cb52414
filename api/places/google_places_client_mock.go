package places

import (
	"context"
	"strings"
)

// GooglePlacesClientMock serves deterministic results around the request
// center, for tests and keyless dev runs. One entry has zero reviews to
// exercise the gateway's review filter.
type GooglePlacesClientMock struct {
}

// NewGooglePlacesClientMock creates a new instance of GooglePlacesClientMock
func NewGooglePlacesClientMock() *GooglePlacesClientMock {
	return &GooglePlacesClientMock{}
}

func (c *GooglePlacesClientMock) SetCredentials(apiKey string) {}

type mockSeed struct {
	id        string
	name      string
	vicinity  string
	latOffset float64
	lngOffset float64
	rating    float64
	reviews   int
	types     []string
}

// Offsets in degrees; ~0.0015 is roughly 160m of latitude.
var mockSeeds = []mockSeed{
	{"mock-1", "Nevada Coffee", "Caferaga Mah, Muhurdar Cd. No:12", 0.0010, -0.0040, 4.8, 124, []string{"cafe", "food"}},
	{"mock-2", "Brew & Bloom Bahçe", "Moda Bostani Sk. No:45", -0.0030, 0.0050, 4.9, 215, []string{"cafe", "bakery"}},
	{"mock-3", "The Loft Work", "Rasimpasa Mah. No:8", 0.0040, 0.0030, 4.7, 89, []string{"cafe"}},
	{"mock-4", "Manzara Terrace", "Yahya Kemal Cd. No:3", -0.0050, -0.0020, 4.6, 156, []string{"cafe", "restaurant"}},
	{"mock-5", "Ghost Espresso", "Duatepe Sk. No:21", 0.0020, 0.0010, 0, 0, []string{"cafe"}},
	{"mock-6", "Kahvalti Garage", "Sakiz Sk. No:7", 0.0115, -0.0080, 4.4, 341, []string{"cafe", "breakfast_restaurant"}},
}

// NearbySearch returns seeded places offset from the request center. A
// keyword narrows results to names/addresses containing any of its words.
func (c *GooglePlacesClientMock) NearbySearch(ctx context.Context, lat, lng, radiusMeters float64, keyword string) ([]RawPlace, error) {
	words := strings.Fields(strings.ToLower(keyword))

	results := make([]RawPlace, 0, len(mockSeeds))
	for _, s := range mockSeeds {
		if len(words) > 0 && !mockMatches(s, words) {
			continue
		}
		results = append(results, RawPlace{
			PlaceID:     s.id,
			Name:        s.name,
			Vicinity:    s.vicinity,
			Lat:         lat + s.latOffset,
			Lng:         lng + s.lngOffset,
			Rating:      s.rating,
			UserRatings: s.reviews,
			Types:       s.types,
			OpenNow:     true,
		})
	}
	return results, nil
}

func mockMatches(s mockSeed, words []string) bool {
	haystack := strings.ToLower(s.name + " " + s.vicinity)
	for _, w := range words {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}
