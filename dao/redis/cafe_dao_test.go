package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"loca-server/db"
	"loca-server/models"
)

func newTestDAO() (*CafeDAO, *db.MockRedisClient) {
	mockClient := db.NewMockRedisClient(context.Background())
	return NewCafeDAO(mockClient), mockClient
}

func TestCafeDAO_UpsertCafe_Success(t *testing.T) {
	// Setup
	dao, mockClient := newTestDAO()

	testCafe := models.Cafe{
		ID:          "cafe123",
		Name:        "Nevada Coffee",
		Coordinates: models.Coordinates{Lat: 40.9920, Lng: 29.0230},
	}

	// Act
	err := dao.UpsertCafe(testCafe)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expectedKey := fmt.Sprintf(CAFES_GEO_MEMBER_FORMAT_V1, "cafe123")
	storedValue, err := mockClient.Get(expectedKey)
	if err != nil {
		t.Fatalf("Expected data to be stored, got error: %v", err)
	}

	var stored models.Cafe
	if err := json.Unmarshal([]byte(storedValue), &stored); err != nil {
		t.Fatalf("Failed to unmarshal stored cafe data: %v", err)
	}
	if stored.ID != testCafe.ID {
		t.Errorf("Expected ID %s, got %s", testCafe.ID, stored.ID)
	}
}

func TestCafeDAO_GetNearbyCafes_RadiusFilter(t *testing.T) {
	// Setup
	dao, _ := newTestDAO()

	near := models.Cafe{
		ID:          "cafe-near",
		Name:        "Close Cafe",
		Coordinates: models.Coordinates{Lat: 40.9912, Lng: 29.0272},
	}
	far := models.Cafe{
		ID:          "cafe-far",
		Name:        "Galata Roastery",
		Coordinates: models.Coordinates{Lat: 41.0256, Lng: 28.9744},
	}
	_ = dao.UpsertCafe(near)
	_ = dao.UpsertCafe(far)

	// Act
	cafes, err := dao.GetNearbyCafes(40.9910, 29.0270, 500)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(cafes) != 1 {
		t.Fatalf("Expected 1 cafe within 500m, got %d", len(cafes))
	}
	if cafes[0].ID != "cafe-near" {
		t.Errorf("Unexpected cafe: %s", cafes[0].ID)
	}
}

func TestCafeDAO_GetNearbyCafes_NoResults(t *testing.T) {
	dao, _ := newTestDAO()

	cafes, err := dao.GetNearbyCafes(40.9910, 29.0270, 1000)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(cafes) != 0 {
		t.Errorf("Expected no cafes, got %d", len(cafes))
	}
}

func TestCafeDAO_JoinAndStamp(t *testing.T) {
	dao, _ := newTestDAO()

	cafe := models.Cafe{
		ID:          "cafe123",
		Name:        "The Loft Work",
		MaxStamps:   2,
		Coordinates: models.Coordinates{Lat: 40.9950, Lng: 29.0300},
	}
	_ = dao.UpsertCafe(cafe)

	// Stamping before joining is rejected
	if _, err := dao.AddStamp("cafe123", 25); err == nil {
		t.Fatal("Expected error stamping an unjoined cafe")
	}

	joined, err := dao.JoinCafe("cafe123")
	if err != nil {
		t.Fatalf("JoinCafe failed: %v", err)
	}
	if !joined.IsJoined {
		t.Error("Expected IsJoined after JoinCafe")
	}

	// Stamps cap at MaxStamps, points keep accumulating
	for i := 0; i < 3; i++ {
		if _, err := dao.AddStamp("cafe123", 25); err != nil {
			t.Fatalf("AddStamp failed: %v", err)
		}
	}
	updated, _ := dao.GetCafe("cafe123")
	if updated.Stamps != 2 {
		t.Errorf("Expected stamps capped at 2, got %d", updated.Stamps)
	}
	if updated.Points != 75 {
		t.Errorf("Expected 75 points, got %d", updated.Points)
	}
}

func TestCafeDAO_ClaimCounters(t *testing.T) {
	dao, _ := newTestDAO()

	count, err := dao.GetClaimCount("camp-1")
	if err != nil {
		t.Fatalf("GetClaimCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 claims initially, got %d", count)
	}

	for want := 1; want <= 3; want++ {
		got, err := dao.IncrClaimCount("camp-1")
		if err != nil {
			t.Fatalf("IncrClaimCount failed: %v", err)
		}
		if got != want {
			t.Errorf("Expected %d, got %d", want, got)
		}
	}
}

func TestCafeDAO_ToggleFavorite(t *testing.T) {
	dao, _ := newTestDAO()

	ids, err := dao.ToggleFavorite("user-1", "cafe123")
	if err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "cafe123" {
		t.Fatalf("Expected [cafe123], got %v", ids)
	}

	ids, err = dao.ToggleFavorite("user-1", "cafe123")
	if err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected favorite removed, got %v", ids)
	}
}
