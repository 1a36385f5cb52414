package server

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loca-server/server/handlers"
	"loca-server/server/middleware"
)

type Router struct {
	cafeHandler       *handlers.CafeHandler
	mapSessionHandler *handlers.MapSessionHandler
	catalogHandler    *handlers.CatalogHandler
	journeyHandler    *handlers.JourneyHandler
	router            *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	cafeHandler *handlers.CafeHandler,
	mapSessionHandler *handlers.MapSessionHandler,
	catalogHandler *handlers.CatalogHandler,
	journeyHandler *handlers.JourneyHandler,
	router *mux.Router) *Router {
	return &Router{
		cafeHandler:       cafeHandler,
		mapSessionHandler: mapSessionHandler,
		catalogHandler:    catalogHandler,
		journeyHandler:    journeyHandler,
		router:            router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(middleware.Monitoring)
	r.router.Use(middleware.RateLimit)

	r.router.HandleFunc("/ping", r.cafeHandler.Ping).Methods("GET")
	r.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// expects ?lat={latitude(float)}&lng={longitude(float)}&radius={radius(float)}&keyword={string}
	r.router.HandleFunc("/v1/cafes/nearby", r.cafeHandler.GetCafesNearby).Methods("GET")
	r.router.HandleFunc("/v1/discovery", r.cafeHandler.GetDiscovery).Methods("GET")

	r.router.HandleFunc("/v1/geocode/reverse", r.journeyHandler.ReverseGeocode).Methods("GET")

	r.router.HandleFunc("/v1/map/sessions", r.mapSessionHandler.CreateSession).Methods("POST")
	r.router.HandleFunc("/v1/map/sessions/{id}", r.mapSessionHandler.GetSession).Methods("GET")
	r.router.HandleFunc("/v1/map/sessions/{id}/search", r.mapSessionHandler.Search).Methods("POST")
	// expects ?bbox={latMin,lngMin,latMax,lngMax}&zoom={int}
	r.router.HandleFunc("/v1/map/sessions/{id}/markers", r.mapSessionHandler.GetMarkers).Methods("GET")
	r.router.HandleFunc("/v1/map/sessions/{id}/route", r.mapSessionHandler.Route).Methods("POST")

	r.router.HandleFunc("/v1/collections", r.catalogHandler.GetCollections).Methods("GET")
	r.router.HandleFunc("/v1/collections/{id}/cafes", r.catalogHandler.GetCollectionCafes).Methods("GET")
	r.router.HandleFunc("/v1/editorial", r.catalogHandler.GetEditorPicks).Methods("GET")
	r.router.HandleFunc("/v1/campaigns", r.catalogHandler.GetCampaigns).Methods("GET")
	r.router.HandleFunc("/v1/campaigns/{id}/claim", r.catalogHandler.ClaimCampaign).Methods("POST")

	r.router.HandleFunc("/v1/cafes/{id}/join", r.catalogHandler.JoinLoyalty).Methods("POST")
	r.router.HandleFunc("/v1/cafes/{id}/checkin", r.catalogHandler.CheckIn).Methods("POST")
	r.router.HandleFunc("/v1/users/{id}/favorites", r.catalogHandler.ToggleFavorite).Methods("POST")
	r.router.HandleFunc("/v1/users/{id}/favorites", r.catalogHandler.GetFavorites).Methods("GET")

	r.router.HandleFunc("/v1/journey/summary", r.journeyHandler.SummarizeJourney).Methods("POST")
	r.router.HandleFunc("/v1/journey/trending", r.journeyHandler.GetTrending).Methods("GET")
}
