package gemini

import (
	"context"

	"loca-server/models"
)

// JourneySummarizer defines the interface for AI-generated journey and
// trending summaries.
type JourneySummarizer interface {
	SummarizeJourney(ctx context.Context, checkIns []models.CheckIn) (*models.JourneySummary, error)
	TrendingCafes(ctx context.Context, location string) (*models.TrendingReport, error)
}
