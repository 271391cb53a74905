package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"crime-report-server/config"
	"crime-report-server/database"
	"crime-report-server/jobs"
	"crime-report-server/middleware"
	"crime-report-server/routes"
	"crime-report-server/services"
	ws "crime-report-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Seed reference accounts and demo data on an empty database
	if err := seedInitialData(database.DB); err != nil {
		log.Printf("⚠️ Seeding failed: %v", err)
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Device-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Request logging
	router.Use(middleware.RequestLogMiddleware())

	// WebSocket hub for live notification delivery
	hub := ws.NewHub()
	go hub.Run()

	// Services
	jwtService := services.NewJWTService(database.DB)
	notificationService := services.NewNotificationService(database.DB)
	notificationService.SetPublisher(hub)
	analyticsService := services.NewAnalyticsService(database.DB)

	var imageUploader services.Uploader
	if uploader, err := services.NewCloudinaryUploader(); err != nil {
		log.Printf("⚠️ Image uploads disabled: %v", err)
	} else {
		imageUploader = uploader
	}

	complaintService := services.NewComplaintService(database.DB, imageUploader, notificationService, analyticsService)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Crime Report Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes, database.DB, jwtService, notificationService)

		// Category routes (public)
		routes.RegisterCategoryRoutes(api)

		// Notification stream authenticates via query token on upgrade
		routes.RegisterNotificationStream(api, database.DB, hub)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			complaintRoutes := protected.Group("/complaints")
			routes.RegisterComplaintRoutes(complaintRoutes, complaintService)

			userRoutes := protected.Group("/users")
			routes.RegisterUserRoutes(userRoutes, database.DB, notificationService)

			notificationRoutes := protected.Group("/notifications")
			routes.RegisterNotificationRoutes(notificationRoutes, notificationService)

			routes.RegisterAnalyticsRoutes(protected, analyticsService)
			routes.RegisterAuditRoutes(protected, notificationService)
		}
	}

	// Start background jobs
	cleanupJob := jobs.NewCleanupJob(jwtService)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
