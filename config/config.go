package config

import (
	"os"
	"path/filepath"
	"time"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Places gateway caches
const NEARBY_CACHE_TTL = 5 * time.Minute
const NEARBY_COORD_DECIMALS = 4 // ~11m precision
const DISCOVERY_CACHE_TTL = 1 * time.Hour
const DISCOVERY_COORD_DECIMALS = 3 // ~111m precision
const DISCOVERY_DEFAULT_RADIUS_METERS = 2000

// Google Places
const GOOGLE_PLACES_ENDPOINT_BASE = "https://maps.googleapis.com/maps/api/place"

// OSRM routing
const OSRM_ENDPOINT_BASE = "https://router.project-osrm.org"

// Nominatim reverse geocoding. One request every few seconds per the
// usage policy; anything faster gets the previous result.
const NOMINATIM_ENDPOINT_BASE = "https://nominatim.openstreetmap.org"
const NOMINATIM_MIN_INTERVAL = 10 * time.Second

// Gemini structured summaries
const GEMINI_ENDPOINT_BASE = "https://generativelanguage.googleapis.com/v1beta"
const GEMINI_MODEL = "gemini-3-flash-preview"

// Map search. The largest radius tier is the only one that clusters markers.
const CLUSTERING_RADIUS_METERS = 2000
const SAME_CENTER_EPSILON_DEGREES = 1e-5

// Istanbul bounding box, gates city-specific shortcuts
const ISTANBUL_LAT_MIN = 40.85
const ISTANBUL_LAT_MAX = 41.25
const ISTANBUL_LNG_MIN = 28.8
const ISTANBUL_LNG_MAX = 29.5

// Bosphorus strait box, a structural signal for the view filters. Starts
// north of Kadıköy so the inland districts stay out.
const BOSPHORUS_LAT_MIN = 41.0
const BOSPHORUS_LAT_MAX = 41.25
const BOSPHORUS_LNG_MIN = 28.94
const BOSPHORUS_LNG_MAX = 29.17

// Discovery refresher
const DISCOVERY_REFRESHER_SCHEDULE_MINUTES = 60

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const SEED_CAFES_RESOURCE = "seed_cafes.json"
const COLLECTIONS_RESOURCE = "collections.json"
const EDITOR_PICKS_RESOURCE = "editor_picks.json"
const CAMPAIGNS_RESOURCE = "campaigns.json"

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}

// GooglePlacesAPIKey returns the Places key from the environment. Empty
// means the live client is unavailable and the mock serves instead.
func GooglePlacesAPIKey() string {
	return os.Getenv("GOOGLE_PLACES_API_KEY")
}

// GeminiAPIKey returns the Gemini key from the environment.
func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// PlotRefreshMap reports whether the discovery refresher should render an
// HTML map of each refreshed area. Local debugging aid.
func PlotRefreshMap() bool {
	return os.Getenv("PLOT_REFRESH_MAP") == "1"
}

// RedisAddress returns the Redis address, falling back to the default.
func RedisAddress() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return REDIS_DB_ADDRESS
}

// Env returns the runtime environment name ("prod" or anything else).
func Env() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "dev"
}
