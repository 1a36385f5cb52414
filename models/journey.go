package models

// CheckIn is one visited venue in a user's daily trail.
type CheckIn struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// JourneySummary is the structured result of summarizing a day's visits.
type JourneySummary struct {
	Summary           string  `json:"summary"`
	DistanceKm        float64 `json:"distance_km"`
	Neighborhoods     string  `json:"neighborhoods"`
	VenueCount        int     `json:"venue_count"`
	IsRoutineChange   bool    `json:"is_routine_change"`
	InteractivePrompt string  `json:"interactive_prompt,omitempty"`
}

// GroundingLink is a source reference attached to AI-generated content.
type GroundingLink struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// TrendingReport is a freeform trending-cafes writeup with its sources.
type TrendingReport struct {
	Text  string          `json:"text"`
	Links []GroundingLink `json:"links"`
}
