package gemini

import (
	"context"

	"loca-server/models"
)

// FallbackSummaryText is served when no model is reachable.
const FallbackSummaryText = "Bugün güzel bir kahve rotası çizdin. Yarın yeni bir mekan keşfetmeye ne dersin?"

// GeminiClientMock is the keyless stand-in. Journey summaries keep the real
// venue count but carry zeroed stats and a fixed summary line.
type GeminiClientMock struct {
	Err error
}

// NewGeminiClientMock creates a new instance of GeminiClientMock
func NewGeminiClientMock() *GeminiClientMock {
	return &GeminiClientMock{}
}

func (c *GeminiClientMock) SummarizeJourney(ctx context.Context, checkIns []models.CheckIn) (*models.JourneySummary, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return &models.JourneySummary{
		Summary:         FallbackSummaryText,
		DistanceKm:      0,
		Neighborhoods:   "",
		VenueCount:      len(checkIns),
		IsRoutineChange: false,
	}, nil
}

func (c *GeminiClientMock) TrendingCafes(ctx context.Context, location string) (*models.TrendingReport, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return &models.TrendingReport{
		Text:  "Bu ay öne çıkan kahvecileri görmek için tekrar uğra.",
		Links: []models.GroundingLink{},
	}, nil
}
