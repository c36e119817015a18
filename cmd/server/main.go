package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"veritas/internal/auth"
	"veritas/internal/database"
	"veritas/internal/handlers"
	"veritas/internal/realtime"
	"veritas/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to database
	dbConfig := database.LoadConfig()
	if err := database.Connect(dbConfig); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize and start background workers
	workerService := worker.NewWorkerService(database.DB)
	if os.Getenv("DISABLE_WORKER") != "true" {
		if err := workerService.Start(); err != nil {
			log.Fatal("Failed to start background workers:", err)
		}
	}

	setupGracefulShutdown(workerService)
	setupServer(workerService)
}

func setupGracefulShutdown(workerService *worker.WorkerService) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Received shutdown signal, gracefully shutting down...")
		workerService.Stop()
		database.Close()
		log.Println("Shutdown complete")
		os.Exit(0)
	}()
}

func setupServer(workerService *worker.WorkerService) {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Initialize shared infrastructure
	hub := realtime.NewHub()
	issuer := auth.NewTokenIssuer()

	// Initialize handlers
	newsHandler := handlers.NewNewsHandler(database.DB)
	analysisHandler := handlers.NewAnalysisHandler(database.DB, hub)
	authHandler := handlers.NewAuthHandler(database.DB, issuer)
	adminHandler := handlers.NewAdminHandler(database.DB, workerService)
	docsHandler := handlers.NewDocsHandler()
	liveHandler := handlers.NewLiveHandler(hub)

	// Health check
	r.GET("/health", newsHandler.HealthCheck)

	// Documentation
	r.GET("/docs/:doc", docsHandler.ServeMarkdownAsHTML)

	// Auth
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)

	// Public API (optional auth enables view recording)
	api := r.Group("/api")
	api.Use(issuer.OptionalAuth())
	{
		api.GET("/news", newsHandler.ListNews)
		api.GET("/news/search", newsHandler.ListNews)
		api.GET("/news/:id", newsHandler.GetArticle)
		api.GET("/incidents/:id", analysisHandler.GetIncident)
		api.GET("/incidents/:id/analysis", analysisHandler.GetAnalysis)
		api.GET("/incidents/:id/similar", analysisHandler.GetSimilar)
		api.GET("/live", liveHandler.Stream)
	}

	// Authenticated API
	authed := r.Group("/api")
	authed.Use(issuer.RequireAuth())
	{
		authed.GET("/recommendations", analysisHandler.GetRecommendations)
	}

	// Admin interface
	admin := r.Group("/admin")
	admin.Use(adminHandler.AdminAuth())
	{
		admin.GET("/stats", adminHandler.Stats)
		admin.POST("/fetch", adminHandler.TriggerFetch)
		admin.DELETE("/incidents/:id/analysis", analysisHandler.InvalidateAnalysis)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
