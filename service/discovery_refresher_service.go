package services

import (
	"context"
	"log"
	"time"

	"loca-server/config"
	"loca-server/models"
	"loca-server/util"
)

// Location holds latitude and longitude for refresh jobs.
type Location struct {
	Lat float64
	Lng float64
}

// defaultLocations is the constant list of coordinates whose discovery
// caches are kept warm. Istanbul neighborhoods with the densest usage.
var defaultLocations = []Location{
	{
		// Moda
		Lat: 40.9798,
		Lng: 29.0254,
	},
	{
		// Yeldegirmeni
		Lat: 40.9936,
		Lng: 29.0316,
	},
	{
		// Karaköy
		Lat: 41.0242,
		Lng: 28.9744,
	},
	{
		// Cihangir
		Lat: 41.0314,
		Lng: 28.9823,
	},
	{
		// Bebek
		Lat: 41.0776,
		Lng: 29.0432,
	},
	{
		// Nişantaşı
		Lat: 41.0469,
		Lng: 28.9936,
	},
}

// DiscoveryRefresherService periodically re-fetches the discovery lists for
// the default locations so the persistent cache stays warm across its TTL.
type DiscoveryRefresherService struct {
	placesService *PlacesService
}

// NewDiscoveryRefresherService constructs a new Refresher with dependencies.
func NewDiscoveryRefresherService(placesService *PlacesService) *DiscoveryRefresherService {
	return &DiscoveryRefresherService{
		placesService: placesService,
	}
}

// StartPeriodicJob launches the background loop at the given interval.
func (dr *DiscoveryRefresherService) StartPeriodicJob(interval time.Duration) {
	go dr.startPeriodicJob(interval)
}

func (dr *DiscoveryRefresherService) startPeriodicJob(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		log.Println("[DiscoveryRefresherService] Running periodic discovery refresher job.")
		dr.RefreshDiscoveryData(context.Background())
		log.Println("[DiscoveryRefresherService] Discovery refresh completed.")
	}
}

// RefreshDiscoveryData re-fetches the discovery list for every default
// location. Individual failures log and move on.
func (dr *DiscoveryRefresherService) RefreshDiscoveryData(ctx context.Context) {
	log.Printf("[DiscoveryRefresherService] Refreshing %d locations", len(defaultLocations))
	for _, loc := range defaultLocations {
		cafes := dr.placesService.FetchDiscovery(ctx, loc.Lat, loc.Lng, config.DISCOVERY_DEFAULT_RADIUS_METERS, "")
		log.Printf("[DiscoveryRefresherService] Refreshed %.4f,%.4f: %d cafes", loc.Lat, loc.Lng, len(cafes))

		if config.PlotRefreshMap() {
			util.PlotSearchArea(models.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, config.DISCOVERY_DEFAULT_RADIUS_METERS, cafes)
		}
	}
}
