package cache

import (
	"encoding/json"
	"fmt"
	"log"

	"loca-server/db"
)

// DISCOVERY_CACHE_KEY is the single storage key holding the most recent
// discovery entry, mirroring the one-slot persistent cache of the client.
const DISCOVERY_CACHE_KEY = "loca_discovery_cache_v1"

// RedisStore persists one entry at a time in Redis so the discovery list
// survives restarts. A stored entry for a different key is a miss.
type RedisStore struct {
	client     db.RedisClient
	storageKey string
}

func NewRedisStore(client db.RedisClient) *RedisStore {
	return &RedisStore{client: client, storageKey: DISCOVERY_CACHE_KEY}
}

func (s *RedisStore) Get(key string) (*Entry, error) {
	raw, err := s.client.Get(s.storageKey)
	if err != nil {
		// Missing key is an ordinary miss, not a failure.
		return nil, nil
	}
	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		log.Printf("[RedisStore] Ignoring unreadable cache blob: %v", err)
		return nil, nil
	}
	if entry.Key != key {
		return nil, nil
	}
	return &entry, nil
}

func (s *RedisStore) Put(entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	if err := s.client.Set(s.storageKey, string(data)); err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}
