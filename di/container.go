package di

import (
	"context"
	"fmt"
	"log"
	"loca-server/api"
	"loca-server/api/gemini"
	"loca-server/api/nominatim"
	"loca-server/api/osrm"
	"loca-server/api/places"
	"loca-server/cache"
	"loca-server/config"
	"loca-server/dao/redis"
	"loca-server/db"
	"loca-server/server"
	"loca-server/server/handlers"
	services "loca-server/service"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient               db.RedisClient
	CafeDao                   *redis.CafeDAO
	PlacesAPI                 places.PlacesAPI
	RoutingAPI                osrm.RoutingAPI
	Geocoder                  nominatim.ReverseGeocoder
	Summarizer                gemini.JourneySummarizer
	PlacesService             *services.PlacesService
	DiscoveryService          *services.DiscoveryService
	MapService                *services.MapService
	CatalogService            *services.CatalogService
	JourneyService            *services.JourneyService
	DiscoveryRefresherService *services.DiscoveryRefresherService
	CafeHandler               *handlers.CafeHandler
	MapSessionHandler         *handlers.MapSessionHandler
	CatalogHandler            *handlers.CatalogHandler
	JourneyHandler            *handlers.JourneyHandler
	MuxRouter                 *mux.Router
	Router                    *server.Router
	LocaHttpServer            *server.LocaHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(env string) *Container {
	log.Printf("initializing container - env: %s", env)
	ctx := context.Background()

	// Initialize Redis client. Outside prod an in-memory stand-in serves
	// so the server runs without a Redis instance.
	var redisClient db.RedisClient
	if env == "prod" {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     config.RedisAddress(),
			Password: config.REDIS_DB_PASSWORD,
			DB:       config.REDIS_DB,
		})

		redisClient = db.NewGeoRedisClient(ctx, redisInternalClient)
		if err := redisClient.Ping(); err != nil {
			panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
		}
	} else {
		log.Printf("Using in-memory redis client")
		redisClient = db.NewMockRedisClient(ctx)
	}

	// Initialize Redis Cafe DAO
	cafeDao := redis.NewCafeDAO(redisClient)

	// Initialize Places API - mock when no key is configured
	var placesAPI places.PlacesAPI
	if key := config.GooglePlacesAPIKey(); key != "" {
		log.Printf("Using google places api")
		httpClient := api.NewHTTPClient(config.GOOGLE_PLACES_ENDPOINT_BASE)
		placesAPI = places.NewGooglePlacesClient(httpClient)
		placesAPI.SetCredentials(key)
	} else {
		log.Printf("Using mock places api")
		placesAPI = places.NewGooglePlacesClientMock()
	}

	// Initialize Gemini summarizer - mock when no key is configured
	var summarizer gemini.JourneySummarizer
	if key := config.GeminiAPIKey(); key != "" {
		log.Printf("Using gemini api")
		geminiClient := gemini.NewGeminiClient(api.NewHTTPClient(config.GEMINI_ENDPOINT_BASE))
		geminiClient.SetCredentials(key)
		summarizer = geminiClient
	} else {
		log.Printf("Using mock gemini api")
		summarizer = gemini.NewGeminiClientMock()
	}

	// Routing and reverse geocoding run against public instances, no keys
	routingAPI := osrm.NewOSRMClient(api.NewHTTPClient(config.OSRM_ENDPOINT_BASE))
	geocoder := nominatim.NewNominatimClient(api.NewHTTPClient(config.NOMINATIM_ENDPOINT_BASE))

	// Caches: short-TTL in-memory for interactive searches, hourly
	// Redis-backed for the discovery strip so it survives restarts.
	nearbyCache := cache.NewCafeCache("nearby", cache.NewMemoryStore(), cache.SystemClock(), config.NEARBY_CACHE_TTL)
	discoveryCache := cache.NewCafeCache("discovery", cache.NewRedisStore(redisClient), cache.SystemClock(), config.DISCOVERY_CACHE_TTL)

	// Initialize service layer
	placesService := services.NewPlacesService(placesAPI, nearbyCache, discoveryCache)
	discoveryService := services.NewDiscoveryService()
	mapService := services.NewMapService(placesService, discoveryService, routingAPI)
	catalogService := services.NewCatalogService(cafeDao)
	journeyService := services.NewJourneyService(summarizer)
	discoveryRefresherService := services.NewDiscoveryRefresherService(placesService)

	// Initialize handlers
	cafeHandler := handlers.NewCafeHandler(placesService, discoveryService)
	mapSessionHandler := handlers.NewMapSessionHandler(mapService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	journeyHandler := handlers.NewJourneyHandler(journeyService, geocoder)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(cafeHandler, mapSessionHandler, catalogHandler, journeyHandler, muxRouter)

	// Initialize loca server
	locaHttpServer := server.NewLocaHttpServer(router, muxRouter)

	return &Container{
		RedisClient:               redisClient,
		CafeDao:                   cafeDao,
		PlacesAPI:                 placesAPI,
		RoutingAPI:                routingAPI,
		Geocoder:                  geocoder,
		Summarizer:                summarizer,
		PlacesService:             placesService,
		DiscoveryService:          discoveryService,
		MapService:                mapService,
		CatalogService:            catalogService,
		JourneyService:            journeyService,
		DiscoveryRefresherService: discoveryRefresherService,
		CafeHandler:               cafeHandler,
		MapSessionHandler:         mapSessionHandler,
		CatalogHandler:            catalogHandler,
		JourneyHandler:            journeyHandler,
		MuxRouter:                 muxRouter,
		Router:                    router,
		LocaHttpServer:            locaHttpServer,
	}
}
