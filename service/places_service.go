package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"loca-server/api/places"
	"loca-server/cache"
	"loca-server/config"
	"loca-server/models"
	"loca-server/util"
)

// PLACEHOLDER_IMAGE backs venues the provider returns without a photo.
const PLACEHOLDER_IMAGE = "https://images.unsplash.com/photo-1554118811-1e0d58224f24?q=80&w=2047&auto=format&fit=crop"

// PlacesService fetches venues from the places provider with two cache
// tiers: a fine-grained in-memory cache for interactive searches and a
// coarse persistent cache for the passive discovery strip.
type PlacesService struct {
	placesAPI      places.PlacesAPI
	nearbyCache    *cache.CafeCache
	discoveryCache *cache.CafeCache
}

// NewPlacesService constructs a new PlacesService with its gateway and
// cache dependencies.
func NewPlacesService(
	placesAPI places.PlacesAPI,
	nearbyCache *cache.CafeCache,
	discoveryCache *cache.CafeCache) *PlacesService {

	return &PlacesService{
		placesAPI:      placesAPI,
		nearbyCache:    nearbyCache,
		discoveryCache: discoveryCache,
	}
}

// FetchNearby returns cafés around a point, serving repeat lookups from the
// short-TTL cache. Coordinates are rounded to ~11m for the key so small GPS
// jitter still hits. Provider failures log and return an empty list with
// the error, so callers can tell a failed search from an empty one.
func (ps *PlacesService) FetchNearby(ctx context.Context, lat, lng, radiusMeters float64, keyword string) ([]models.Cafe, error) {
	key := cache.Key(lat, lng, config.NEARBY_COORD_DECIMALS, radiusMeters, keyword)

	if cafes, ok := ps.nearbyCache.Get(key); ok {
		log.Printf("[PlacesService] Cache HIT for key: %s", key)
		return cafes, nil
	}
	log.Printf("[PlacesService] Cache MISS. Fetching from API: %s", key)

	raw, err := ps.placesAPI.NearbySearch(ctx, lat, lng, radiusMeters, keyword)
	if err != nil {
		log.Printf("[PlacesService] Nearby search failed: %v", err)
		return []models.Cafe{}, fmt.Errorf("nearby search: %w", err)
	}

	cafes := ps.normalize(raw, lat, lng)

	if err := ps.nearbyCache.Put(key, cafes); err != nil {
		log.Printf("[PlacesService] Cache write failed: %v", err)
	}
	return cafes, nil
}

// FetchDiscovery is the coarse variant for the home screen's passive strip:
// ~111m key precision and a persistent 1h cache to bound request volume.
func (ps *PlacesService) FetchDiscovery(ctx context.Context, lat, lng, radiusMeters float64, keyword string) []models.Cafe {
	key := cache.Key(lat, lng, config.DISCOVERY_COORD_DECIMALS, radiusMeters, keyword)

	if cafes, ok := ps.discoveryCache.Get(key); ok {
		log.Println("[PlacesService] Discovery cache HIT (1h)")
		return cafes
	}
	log.Println("[PlacesService] Discovery cache MISS. Fetching from API (max 1 req/hour)")

	cafes, err := ps.FetchNearby(ctx, lat, lng, radiusMeters, keyword)
	if err != nil {
		return []models.Cafe{}
	}

	if err := ps.discoveryCache.Put(key, cafes); err != nil {
		log.Printf("[PlacesService] Discovery cache write failed: %v", err)
	}
	return cafes
}

// normalize converts raw provider results into the café shape: zero-review
// entries are dropped, distances computed from the search origin, and the
// list ordered by rating desc with reviews as tiebreak.
func (ps *PlacesService) normalize(raw []places.RawPlace, originLat, originLng float64) []models.Cafe {
	cafes := make([]models.Cafe, 0, len(raw))
	for _, p := range raw {
		if p.UserRatings <= 0 {
			continue
		}

		id := p.PlaceID
		if id == "" {
			id = fmt.Sprintf("place-%f-%f", p.Lat, p.Lng)
		}
		name := p.Name
		if name == "" {
			name = "Mekan"
		}
		image := p.PhotoURL
		if image == "" {
			image = PLACEHOLDER_IMAGE
		}

		distance := util.Haversine(originLat, originLng, p.Lat, p.Lng)
		cafes = append(cafes, models.Cafe{
			ID:          id,
			Name:        name,
			Distance:    util.FormatDistance(distance),
			Rating:      p.Rating,
			Reviews:     p.UserRatings,
			Image:       image,
			Address:     p.Vicinity,
			Amenities:   []string{},
			Moods:       []string{},
			MaxStamps:   10,
			IsOpenNow:   p.OpenNow,
			Coordinates: models.Coordinates{Lat: p.Lat, Lng: p.Lng},
			PlaceTypes:  p.Types,
		})
	}

	sort.SliceStable(cafes, func(i, j int) bool {
		if cafes[i].Rating != cafes[j].Rating {
			return cafes[i].Rating > cafes[j].Rating
		}
		return cafes[i].Reviews > cafes[j].Reviews
	})
	return cafes
}
