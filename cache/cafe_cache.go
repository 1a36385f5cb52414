package cache

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"loca-server/models"
	"loca-server/util"
)

var (
	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "places_cache_hits_total",
			Help: "Total number of places cache hits",
		},
		[]string{"cache"},
	)
	cacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "places_cache_misses_total",
			Help: "Total number of places cache misses",
		},
		[]string{"cache"},
	)
)

// InitMetrics registers the cache metrics. Call once from main.
func InitMetrics() {
	prometheus.MustRegister(cacheHits)
	prometheus.MustRegister(cacheMisses)
}

// Entry holds one cached cafe list with its write timestamp.
type Entry struct {
	Key       string        `json:"key"`
	Cafes     []models.Cafe `json:"cafes"`
	Timestamp time.Time     `json:"timestamp"`
}

// Store persists cache entries. A nil entry with a nil error is a miss.
type Store interface {
	Get(key string) (*Entry, error)
	Put(entry Entry) error
}

// CafeCache is a TTL cache over a Store, keyed by rounded coordinates,
// radius, and keyword. The clock and store are injected dependencies.
type CafeCache struct {
	name  string
	store Store
	clock Clock
	ttl   time.Duration
}

// NewCafeCache constructs a cache with the given backing store and TTL.
// The name labels metrics and log lines.
func NewCafeCache(name string, store Store, clock Clock, ttl time.Duration) *CafeCache {
	return &CafeCache{
		name:  name,
		store: store,
		clock: clock,
		ttl:   ttl,
	}
}

// Key builds a cache key from coordinates rounded to the given number of
// decimals, plus radius and keyword.
func Key(lat, lng float64, decimals int, radiusMeters float64, keyword string) string {
	parts := []string{
		strconv.FormatFloat(util.RoundCoord(lat, decimals), 'f', -1, 64),
		strconv.FormatFloat(util.RoundCoord(lng, decimals), 'f', -1, 64),
		strconv.FormatFloat(radiusMeters, 'f', -1, 64),
		keyword,
	}
	return strings.Join(parts, ",")
}

// Get returns a copy of the cached list for the key when present and
// inside the TTL window.
func (c *CafeCache) Get(key string) ([]models.Cafe, bool) {
	entry, err := c.store.Get(key)
	if err != nil || entry == nil {
		cacheMisses.WithLabelValues(c.name).Inc()
		return nil, false
	}
	if c.clock.Now().Sub(entry.Timestamp) >= c.ttl {
		cacheMisses.WithLabelValues(c.name).Inc()
		return nil, false
	}
	cacheHits.WithLabelValues(c.name).Inc()

	// Callers receive a copy so UI state never aliases cache internals.
	cafes := make([]models.Cafe, len(entry.Cafes))
	copy(cafes, entry.Cafes)
	return cafes, true
}

// Put stores a copy of the list under the key, stamped with the current time.
func (c *CafeCache) Put(key string, cafes []models.Cafe) error {
	stored := make([]models.Cafe, len(cafes))
	copy(stored, cafes)
	return c.store.Put(Entry{
		Key:       key,
		Cafes:     stored,
		Timestamp: c.clock.Now(),
	})
}
