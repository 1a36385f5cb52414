package util

import (
	"encoding/json"
	"fmt"
	"os"

	"loca-server/models"
)

// ReadCafesFromJSON loads the seed cafe catalog from JSON on disk.
func ReadCafesFromJSON(filePath string) ([]models.Cafe, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var cafes []models.Cafe
	if err := json.Unmarshal(data, &cafes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cafes: %w", err)
	}
	return cafes, nil
}

// ReadCollectionsFromJSON loads the curated collections from JSON on disk.
func ReadCollectionsFromJSON(filePath string) ([]models.Collection, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var collections []models.Collection
	if err := json.Unmarshal(data, &collections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collections: %w", err)
	}
	return collections, nil
}

// ReadEditorPicksFromJSON loads the editorial picks from JSON on disk.
func ReadEditorPicksFromJSON(filePath string) ([]models.EditorPick, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var picks []models.EditorPick
	if err := json.Unmarshal(data, &picks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal editor picks: %w", err)
	}
	return picks, nil
}

// ReadCampaignsFromJSON loads the active campaigns from JSON on disk.
func ReadCampaignsFromJSON(filePath string) ([]models.Campaign, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var campaigns []models.Campaign
	if err := json.Unmarshal(data, &campaigns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal campaigns: %w", err)
	}
	return campaigns, nil
}
