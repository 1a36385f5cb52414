package services

import (
	"sort"
	"strconv"
	"strings"

	"loca-server/config"
	"loca-server/models"
)

// categorySearchTerms expands each category shortcut into the text fragments
// that identify it across venue names, descriptions, amenities and moods.
var categorySearchTerms = map[string][]string{
	"work":      {"work", "çalışma", "laptop", "priz", "desk", "coffee", "kahve"},
	"view":      {"manzara", "deniz", "teras", "view", "viewpoint"},
	"garden":    {"bahçe", "outdoor", "terrace", "açık hava", "garden"},
	"botanical": {"botanik", "bitki", "yeşil", "plant", "flora"},
	"creative":  {"creative", "konsept", "sanat", "art", "design", "ilham", "yaratıcılık"},
	"bosphorus": {"boğaz", "bosphorus", "deniz manzarası", "bebek", "ortaköy"},
	"breakfast": {"kahvaltı", "brunch", "yumurta"},
	"filter":    {"filtre", "demleme", "v60"},
}

// gardenAmenities are amenity tags that satisfy the garden filter outright.
var gardenAmenities = []string{"Outdoor", "Garden", "Bahçe"}

// A café with this reputation counts as work-friendly even without a
// keyword hit or amenity data.
const (
	WORK_FILTER_MIN_RATING  = 4.5
	WORK_FILTER_MIN_REVIEWS = 100
)

// workPlaceTypes are provider place types that imply a laptop-friendly venue.
var workPlaceTypes = []string{"cafe", "bakery", "restaurant"}

// DiscoveryService filters and ranks café lists: category shortcuts AND
// together, each satisfied by a structural signal or a term match.
type DiscoveryService struct {
}

// NewDiscoveryService constructs a new DiscoveryService.
func NewDiscoveryService() *DiscoveryService {
	return &DiscoveryService{}
}

// Filter returns the cafés matching every active category filter and the
// free-text query. No active filters means no category restriction.
func (ds *DiscoveryService) Filter(cafes []models.Cafe, activeFilters []string, query string) []models.Cafe {
	result := make([]models.Cafe, 0, len(cafes))
	for _, c := range cafes {
		if !ds.matchesAllFilters(c, activeFilters) {
			continue
		}
		if !matchesQuery(c, query) {
			continue
		}
		result = append(result, c)
	}
	return result
}

// PrimaryKeyword builds the provider search keyword for the active
// filters: the first term of each category, space-joined.
func (ds *DiscoveryService) PrimaryKeyword(activeFilters []string) string {
	terms := make([]string, 0, len(activeFilters))
	for _, f := range activeFilters {
		if list, ok := categorySearchTerms[f]; ok && len(list) > 0 {
			terms = append(terms, list[0])
		}
	}
	return strings.Join(terms, " ")
}

// Matches reports whether a single café satisfies one category filter.
func (ds *DiscoveryService) Matches(c models.Cafe, filterID string) bool {
	return matchesFilter(c, filterID)
}

// AvailableShortcuts returns the category shortcut ids offered at a
// location. The bosphorus shortcut only appears inside the Istanbul box.
func (ds *DiscoveryService) AvailableShortcuts(lat, lng float64) []string {
	shortcuts := []string{"work", "view", "garden", "botanical", "creative", "breakfast", "filter"}
	if InIstanbul(lat, lng) {
		shortcuts = append(shortcuts, "bosphorus")
	}
	return shortcuts
}

// InIstanbul reports whether the point falls inside the Istanbul bounding
// box used to gate city-specific features.
func InIstanbul(lat, lng float64) bool {
	return lat >= config.ISTANBUL_LAT_MIN && lat <= config.ISTANBUL_LAT_MAX &&
		lng >= config.ISTANBUL_LNG_MIN && lng <= config.ISTANBUL_LNG_MAX
}

// NearBosphorus reports whether the point falls inside the box drawn
// around the strait, a structural signal for the view filters.
func NearBosphorus(lat, lng float64) bool {
	return lat >= config.BOSPHORUS_LAT_MIN && lat <= config.BOSPHORUS_LAT_MAX &&
		lng >= config.BOSPHORUS_LNG_MIN && lng <= config.BOSPHORUS_LNG_MAX
}

// MergeDedupe combines café lists keeping one entry per id. When the same
// id appears with different stats, the higher (rating, reviews) tuple wins.
func (ds *DiscoveryService) MergeDedupe(lists ...[]models.Cafe) []models.Cafe {
	byID := make(map[string]models.Cafe)
	order := make([]string, 0)

	for _, list := range lists {
		for _, c := range list {
			existing, seen := byID[c.ID]
			if !seen {
				byID[c.ID] = c
				order = append(order, c.ID)
				continue
			}
			if c.Rating > existing.Rating ||
				(c.Rating == existing.Rating && c.Reviews > existing.Reviews) {
				byID[c.ID] = c
			}
		}
	}

	merged := make([]models.Cafe, 0, len(order))
	for _, id := range order {
		merged = append(merged, byID[id])
	}
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Rating != merged[j].Rating {
			return merged[i].Rating > merged[j].Rating
		}
		return merged[i].Reviews > merged[j].Reviews
	})
	return merged
}

func (ds *DiscoveryService) matchesAllFilters(c models.Cafe, activeFilters []string) bool {
	for _, f := range activeFilters {
		if !ds.Matches(c, f) {
			return false
		}
	}
	return true
}

func matchesFilter(c models.Cafe, filterID string) bool {
	// Structural signals take precedence over text matching.
	switch filterID {
	case "work":
		if c.PowerOutlets || wifiAtLeast(c, 50) {
			return true
		}
		if c.Rating >= WORK_FILTER_MIN_RATING && c.Reviews >= WORK_FILTER_MIN_REVIEWS {
			return true
		}
		if hasAnyPlaceType(c, workPlaceTypes) {
			return true
		}
	case "garden":
		if c.HasGarden || hasAnyAmenity(c, gardenAmenities) {
			return true
		}
	case "view", "bosphorus":
		if NearBosphorus(c.Coordinates.Lat, c.Coordinates.Lng) {
			return true
		}
	}

	terms, ok := categorySearchTerms[filterID]
	if !ok {
		terms = []string{filterID}
	}

	searchable := strings.ToLower(strings.Join(append([]string{
		c.Name, c.Address, c.Description,
	}, append(c.Amenities, c.Moods...)...), " "))

	for _, term := range terms {
		if strings.Contains(searchable, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func matchesQuery(c models.Cafe, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Address), q)
}

func wifiAtLeast(c models.Cafe, mbps int) bool {
	if c.WifiSpeed == "" {
		return false
	}
	speed, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(c.WifiSpeed, "Mbps")))
	if err != nil {
		return false
	}
	return speed >= mbps
}

func hasAnyAmenity(c models.Cafe, wanted []string) bool {
	for _, a := range c.Amenities {
		for _, w := range wanted {
			if a == w {
				return true
			}
		}
	}
	return false
}

func hasAnyPlaceType(c models.Cafe, wanted []string) bool {
	for _, pt := range c.PlaceTypes {
		for _, w := range wanted {
			if pt == w {
				return true
			}
		}
	}
	return false
}
