package models

// Campaign is a time-bounded promotional offer tied to one cafe.
type Campaign struct {
	ID           string `json:"id"`
	CafeID       string `json:"cafe_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Discount     string `json:"discount"`
	TimeLeft     string `json:"time_left"` // countdown display, e.g. "02:14:50"
	ClaimedCount int    `json:"claimed_count"`
	TotalLimit   int    `json:"total_limit"`
	ProductImage string `json:"product_image"`
}

// Remaining returns how many claims are still available.
func (c *Campaign) Remaining() int {
	left := c.TotalLimit - c.ClaimedCount
	if left < 0 {
		return 0
	}
	return left
}
