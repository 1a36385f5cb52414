package db_test

import (
	"context"
	"encoding/json"
	"testing"

	"loca-server/db"
)

func TestRedisClient_SetAndGet(t *testing.T) {
	tests := []struct {
		name   string
		client db.RedisClient
	}{
		{"MockRedisClient", db.NewMockRedisClient(context.Background())},
		// Replace with a real Redis client configuration for integration testing
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			key := "test-key"
			value := "test-value"

			// Act
			err := test.client.Set(key, value)
			if err != nil {
				t.Fatalf("Set failed: %v", err)
			}

			retrieved, err := test.client.Get(key)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}

			// Assert
			if retrieved != value {
				t.Errorf("Expected %s, got %s", value, retrieved)
			}
		})
	}
}

func TestRedisClient_Incr(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())

	for want := int64(1); want <= 3; want++ {
		got, err := client.Incr("claims:camp-1")
		if err != nil {
			t.Fatalf("Incr failed: %v", err)
		}
		if got != want {
			t.Errorf("Expected %d, got %d", want, got)
		}
	}

	got, err := client.Decr("claims:camp-1")
	if err != nil {
		t.Fatalf("Decr failed: %v", err)
	}
	if got != 2 {
		t.Errorf("Expected 2 after decrement, got %d", got)
	}
}

func TestRedisClient_GeoRadiusFiltering(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	ctx := context.Background()

	near := map[string]string{"id": "cafe-near", "name": "Close Cafe"}
	far := map[string]string{"id": "cafe-far", "name": "Far Cafe"}

	// ~0m and ~5.6km from the query point
	if err := client.AddLocationWithJSON(ctx, "cafes", "cafe-near", 40.9910, 29.0270, near); err != nil {
		t.Fatalf("AddLocationWithJSON failed: %v", err)
	}
	if err := client.AddLocationWithJSON(ctx, "cafes", "cafe-far", 41.0256, 28.9744, far); err != nil {
		t.Fatalf("AddLocationWithJSON failed: %v", err)
	}

	results, err := client.GetLocationsWithinRadius("cafes", 40.9910, 29.0270, 1000)
	if err != nil {
		t.Fatalf("GetLocationsWithinRadius failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("Expected 1 result within 1km, got %d", len(results))
	}

	var retrieved map[string]string
	if err := json.Unmarshal([]byte(results[0]), &retrieved); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
	if retrieved["id"] != "cafe-near" {
		t.Errorf("Expected 'cafe-near', got '%s'", retrieved["id"])
	}
}

func TestRedisClient_Ping(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	if err := client.Ping(); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
