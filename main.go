package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tourlink-server/config"
	"tourlink-server/database"
	"tourlink-server/middleware"
	"tourlink-server/models"
	"tourlink-server/routes"
	"tourlink-server/utils"
	ws "tourlink-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database (runs migrations)
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Optional tag seeding for fresh databases
	if os.Getenv("SEED_TAGS") == "true" {
		seedTags()
	}

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security middleware stack
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.CORSMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "TourLink Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Notification hub for real-time events
	hub := ws.InitHub()

	// WebSocket endpoint authenticates via token query parameter because
	// browsers cannot set headers on WebSocket upgrade requests
	router.GET("/api/v1/ws/notifications", func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "error": "Token required"})
			return
		}
		claims, err := utils.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "error": "Invalid token"})
			return
		}
		ws.ServeWebSocket(hub, c.Writer, c.Request, claims.UserID)
	})

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes with stricter rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/auth/me", routes.GetCurrentUser)

			routes.RegisterUploadRoutes(protected)
			routes.RegisterSocialRoutes(protected)
			routes.RegisterPreviousTourRoutes(protected)
			routes.RegisterLeaveRequestRoutes(protected)

			// AI analysis and review pushes are organization actions
			orgOnly := protected.Group("")
			orgOnly.Use(middleware.RequireRole(models.RoleOrganization))
			routes.RegisterPerformanceReviewRoutes(orgOnly)
		}

		// Routes with both public and protected endpoints
		routes.RegisterGuideRoutes(api, protected)
		routes.RegisterOrganizationRoutes(api, protected)
		routes.RegisterTourRoutes(api, protected)
		routes.RegisterReviewRoutes(api, protected)
	}

	// Start server
	port := config.AppConfig.Server.Port
	log.Printf("🚀 TourLink Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
