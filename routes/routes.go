// File: /routes/routes.go
package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"w2meet-api/config"
	"w2meet-api/controllers"
	"w2meet-api/middleware"
	"w2meet-api/repositories"
	"w2meet-api/services"
)

func SetupCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	})
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, places services.PlacesSearcher) {
	eventRepo := repositories.NewEventRepository(db)
	eventService := services.NewEventService(eventRepo, places)

	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	eventController := controllers.NewEventController(db, eventService, eventRepo)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	api := r.Group("/api")
	api.Use(middleware.RateLimit(120, 20))

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
		auth.GET("/me", middleware.AuthMiddleware(cfg.JWTSecret), authController.Me)
	}

	// Event routes. Public by design so participants without accounts can
	// respond; a presented token only attributes createdBy.
	events := api.Group("/event")
	events.Use(middleware.OptionalAuth(cfg.JWTSecret))
	{
		events.GET("", eventController.ListEvents)
		events.POST("", eventController.CreateEvent)
		events.GET("/:id", eventController.GetEvent)
		events.PUT("/:id", eventController.UpdateEvent)
		events.DELETE("/:id", eventController.DeleteEvent)
		events.POST("/:id/respond", eventController.RespondToEvent)
		events.POST("/:id/vote", eventController.VoteLocation)
	}
}
