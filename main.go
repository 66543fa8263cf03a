// File: /main.go
package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"w2meet-api/config"
	"w2meet-api/database"
	"w2meet-api/jobs"
	"w2meet-api/routes"
	"w2meet-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Outbound email transport
	emailService := services.NewEmailService(cfg)

	// Places search; without an API key events are created with no venue
	// candidates rather than failing.
	var places services.PlacesSearcher
	if cfg.GoogleMapsAPIKey != "" {
		placesService, err := services.NewPlacesService(cfg.GoogleMapsAPIKey)
		if err != nil {
			log.Fatal("Failed to create places client:", err)
		}
		places = placesService
	} else {
		log.Println("GOOGLE_MAPS_API_KEY not set, events will have no meetup location candidates")
	}

	// Expiry scan and notification dispatch. Started exactly once, here.
	notifyJob := jobs.NewNotifyJob(db, emailService, cfg.NotifyInterval)
	notifyJob.Start()
	defer notifyJob.Stop()

	// Set Gin mode based on environment
	if cfg.Port == "3000" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()

	// Setup CORS middleware
	router.Use(routes.SetupCORS())

	// Request logging middleware
	router.Use(gin.Logger())

	// Recovery middleware
	router.Use(gin.Recovery())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, places)

	// Start server
	log.Printf("Starting 2W2Meet API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
