package nominatim

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"loca-server/api"
	"loca-server/config"
)

type nominatimAddress struct {
	Suburb       string `json:"suburb"`
	Town         string `json:"town"`
	District     string `json:"district"`
	CityDistrict string `json:"city_district"`
	City         string `json:"city"`
	Province     string `json:"province"`
	State        string `json:"state"`
}

type nominatimResponse struct {
	Address *nominatimAddress `json:"address"`
}

// NominatimClient embeds the common HTTPClient. Nominatim's usage policy
// caps request rates, so calls closer together than the configured minimum
// interval are answered from the previous result instead of hitting the API.
type NominatimClient struct {
	*api.HTTPClient

	mu          sync.Mutex
	minInterval time.Duration
	lastCall    time.Time
	lastResult  string
	now         func() time.Time
}

// NewNominatimClient creates a new instance of NominatimClient
func NewNominatimClient(httpClient *api.HTTPClient) *NominatimClient {
	return &NominatimClient{
		HTTPClient:  httpClient,
		minInterval: config.NOMINATIM_MIN_INTERVAL,
		now:         time.Now,
	}
}

// ReverseGeocode resolves coordinates to a district label. Inside the
// İstanbul province it returns "District, İstanbul"; elsewhere just the
// province or city name.
func (c *NominatimClient) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	c.mu.Lock()
	if c.lastResult != "" && c.now().Sub(c.lastCall) < c.minInterval {
		result := c.lastResult
		c.mu.Unlock()
		return result, nil
	}
	c.mu.Unlock()

	endpoint := fmt.Sprintf("/reverse?format=jsonv2&lat=%f&lon=%f", lat, lng)
	headers := map[string]string{
		"Accept-Language": "tr-TR,tr;q=0.9",
		"User-Agent":      "LocaServer/1.0",
	}

	var response nominatimResponse
	if err := c.RequestContext(ctx, "GET", endpoint, headers, nil, &response); err != nil {
		return "", err
	}
	if response.Address == nil {
		return "", fmt.Errorf("reverse geocode returned no address")
	}

	label := formatLabel(response.Address)

	c.mu.Lock()
	c.lastCall = c.now()
	c.lastResult = label
	c.mu.Unlock()

	return label, nil
}

func formatLabel(addr *nominatimAddress) string {
	province := firstNonEmpty(addr.Province, addr.City, addr.State)
	if strings.Contains(province, "İstanbul") {
		district := firstNonEmpty(addr.Suburb, addr.Town, addr.District, addr.CityDistrict)
		if district == "" {
			district = "İstanbul"
		}
		return district + ", İstanbul"
	}
	if province == "" {
		return "Bilinmeyen Konum"
	}
	return province
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
