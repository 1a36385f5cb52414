package services

import (
	"context"
	"log"

	"loca-server/api/gemini"
	"loca-server/models"
)

// JourneyService produces the profile screen's daily journey summary and
// the trending writeup. Model failures degrade to the static fallback
// instead of surfacing errors; the venue count always reflects the real
// input list.
type JourneyService struct {
	summarizer gemini.JourneySummarizer
}

// NewJourneyService constructs a new JourneyService.
func NewJourneyService(summarizer gemini.JourneySummarizer) *JourneyService {
	return &JourneyService{summarizer: summarizer}
}

// Summarize returns the structured journey summary for the day's check-ins.
func (js *JourneyService) Summarize(ctx context.Context, checkIns []models.CheckIn) *models.JourneySummary {
	summary, err := js.summarizer.SummarizeJourney(ctx, checkIns)
	if err != nil {
		log.Printf("[JourneyService] Summarize failed, serving fallback: %v", err)
		return &models.JourneySummary{
			Summary:    gemini.FallbackSummaryText,
			VenueCount: len(checkIns),
		}
	}
	// The model occasionally miscounts; the input list is authoritative.
	summary.VenueCount = len(checkIns)
	return summary
}

// Trending returns the trending-cafés report for a location, or nil when
// the model is unavailable.
func (js *JourneyService) Trending(ctx context.Context, location string) *models.TrendingReport {
	report, err := js.summarizer.TrendingCafes(ctx, location)
	if err != nil {
		log.Printf("[JourneyService] Trending lookup failed: %v", err)
		return nil
	}
	return report
}
