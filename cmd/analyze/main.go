package main

import (
	"context"
	"log"

	"veritas/internal/database"
	"veritas/internal/services"

	"github.com/joho/godotenv"
)

// Invalidates and regenerates the cached analysis for every incident.
// Useful after changing scoring configuration or source categories.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbConfig := database.LoadConfig()
	if err := database.Connect(dbConfig); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	log.Println("Recomputing all incident analyses...")

	analysisService := services.NewAnalysisService(database.DB, nil)
	recomputed, err := analysisService.RecomputeAll(context.Background())
	if err != nil {
		log.Fatal("Recompute failed:", err)
	}

	log.Printf("Recomputed %d analyses", recomputed)
}
