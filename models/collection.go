package models

// Collection is a themed, possibly city-scoped grouping of cafes shown as
// a rotating spotlight card.
type Collection struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
	CafeIDs       []string `json:"cafe_ids"`
	Type          string   `json:"type"` // e.g. "DYNAMIC", "BREAKFAST", "ICONIC"
	Tag           string   `json:"tag,omitempty"`
	Sentiment     string   `json:"sentiment,omitempty"`
	RatingSummary string   `json:"rating_summary,omitempty"`
	City          string   `json:"city,omitempty"` // shown only for this city when set
}

// EditorPick is an article-like editorial record; static content with no
// lifecycle beyond being read.
type EditorPick struct {
	ID          string `json:"id"`
	EditorName  string `json:"editor_name"`
	EditorImage string `json:"editor_image"`
	Title       string `json:"title"`
	Blurb       string `json:"blurb"`
	Image       string `json:"image"`
	Location    string `json:"location"`
	ReadTime    string `json:"read_time"`
}
