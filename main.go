package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"loca-server/cache"
	"loca-server/config"
	"loca-server/di"
	"loca-server/server/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[MAIN] No .env file found, using environment as-is")
	}

	cache.InitMetrics()
	middleware.InitPrometheus()

	container := di.NewContainer(config.Env())

	if err := container.CatalogService.LoadSeedData(); err != nil {
		log.Fatalf("[MAIN] Failed to load seed data: %v", err)
	}

	go middleware.CleanupVisitors()

	log.Println("[MAIN] Starting discovery refresher")
	container.DiscoveryRefresherService.StartPeriodicJob(config.DISCOVERY_REFRESHER_SCHEDULE_MINUTES * time.Minute)

	log.Println("[MAIN] Starting server")
	container.LocaHttpServer.Start()
}
