package models

import "fmt"

// Coordinates is a WGS84 lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Cafe represents a venue in the discovery catalog.
type Cafe struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Distance    string  `json:"distance"` // display string from the search origin
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Image       string  `json:"image"`
	Address     string  `json:"address"`
	Description string  `json:"description"`

	Amenities []string `json:"amenities"`
	Moods     []string `json:"moods"`

	// Loyalty fields
	IsJoined  bool `json:"is_joined"`
	Stamps    int  `json:"stamps"`
	MaxStamps int  `json:"max_stamps"`
	Points    int  `json:"points"`

	// Operational flags, optional
	WifiSpeed    string `json:"wifi_speed,omitempty"`
	PowerOutlets bool   `json:"power_outlets,omitempty"`
	NoiseLevel   string `json:"noise_level,omitempty"`
	HasGarden    bool   `json:"has_garden,omitempty"`
	IsOpenNow    bool   `json:"is_open_now,omitempty"`

	Coordinates Coordinates `json:"coordinates"`

	// Raw place-type tags carried over from the places provider.
	PlaceTypes []string `json:"place_types,omitempty"`
}

func (c *Cafe) ToString() string {
	return fmt.Sprintf("Cafe(id=%s, name=%s, lat=%f, lng=%f)",
		c.ID, c.Name, c.Coordinates.Lat, c.Coordinates.Lng)
}
