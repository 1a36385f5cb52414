package db

import "context"

// RedisClient defines the Redis operations the DAOs and caches rely on.
type RedisClient interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Incr(key string) (int64, error)
	Decr(key string) (int64, error)
	AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lng float64, data interface{}) error
	GetLocationsWithinRadius(geoKey string, lat, lng, radiusMeters float64) ([]string, error)
	Keys(pattern string) ([]string, error)
	Del(key string) error
	GetContext() context.Context
	Ping() error
}
