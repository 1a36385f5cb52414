package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"path"
	"strconv"
	"sync"
)

// MockRedisClient simulates a Redis client for testing and keyless dev runs.
// Unlike a naive stub, the radius query applies real great-circle filtering
// so geo tests behave like GEORADIUS.
type MockRedisClient struct {
	data    map[string]string
	geoData map[string]map[string]geoLoc
	mu      sync.RWMutex
	context context.Context
}

type geoLoc struct {
	Lat float64
	Lng float64
}

// NewMockRedisClient initializes an empty MockRedisClient.
func NewMockRedisClient(ctx context.Context) *MockRedisClient {
	return &MockRedisClient{
		data:    make(map[string]string),
		geoData: make(map[string]map[string]geoLoc),
		context: ctx,
	}
}

func (m *MockRedisClient) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockRedisClient) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	if !exists {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return value, nil
}

func (m *MockRedisClient) Incr(key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current := int64(0)
	if raw, exists := m.data[key]; exists {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value at %s is not an integer", key)
		}
		current = parsed
	}
	current++
	m.data[key] = strconv.FormatInt(current, 10)
	return current, nil
}

func (m *MockRedisClient) Decr(key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current := int64(0)
	if raw, exists := m.data[key]; exists {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value at %s is not an integer", key)
		}
		current = parsed
	}
	current--
	m.data[key] = strconv.FormatInt(current, 10)
	return current, nil
}

func (m *MockRedisClient) AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lng float64, data interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, exists := m.geoData[geoKey]; !exists {
		m.geoData[geoKey] = make(map[string]geoLoc)
	}
	m.geoData[geoKey][memberKey] = geoLoc{Lat: lat, Lng: lng}
	m.data[memberKey] = string(jsonData)
	return nil
}

func (m *MockRedisClient) GetLocationsWithinRadius(geoKey string, lat, lng, radiusMeters float64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	members, exists := m.geoData[geoKey]
	if !exists {
		return nil, nil
	}

	var results []string
	for memberKey, loc := range members {
		if haversineMeters(lat, lng, loc.Lat, loc.Lng) > radiusMeters {
			continue
		}
		if data, ok := m.data[memberKey]; ok {
			results = append(results, data)
		}
	}
	return results, nil
}

func (m *MockRedisClient) Keys(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for k := range m.data {
		if matched, _ := path.Match(pattern, k); matched {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (m *MockRedisClient) Del(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockRedisClient) GetContext() context.Context {
	return m.context
}

func (m *MockRedisClient) Ping() error {
	return nil
}

// Duplicated from util to keep db free of app-level imports.
func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadius = 6371000.0
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return earthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
