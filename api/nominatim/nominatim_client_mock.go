package nominatim

import "context"

// NominatimClientMock answers every lookup with a fixed district label.
type NominatimClientMock struct {
	Label string
	Err   error
}

// NewNominatimClientMock creates a new instance of NominatimClientMock
func NewNominatimClientMock() *NominatimClientMock {
	return &NominatimClientMock{Label: "Moda, İstanbul"}
}

func (c *NominatimClientMock) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	if c.Err != nil {
		return "", c.Err
	}
	return c.Label, nil
}
