package main

import (
	"context"
	"flag"
	"log"
	"time"

	"veritas/internal/database"
	"veritas/internal/ingest"

	"github.com/joho/godotenv"
)

// One-shot ingestion run. The server's background worker does the same
// thing on a schedule; this command exists for manual backfills.

func main() {
	var query = flag.String("query", "world OR international OR global", "NewsAPI search query")
	var days = flag.Int("days", 7, "How many days back to fetch")
	var pageSize = flag.Int("page-size", 50, "Articles per request")
	var enrich = flag.Bool("enrich", false, "Fetch og: metadata for articles missing images")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbConfig := database.LoadConfig()
	if err := database.Connect(dbConfig); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ingestor := ingest.NewIngestor(database.DB, *enrich)
	stats, err := ingestor.Run(ctx, *query, *days, *pageSize)
	if err != nil {
		log.Fatal("Ingestion failed:", err)
	}

	log.Printf("Done: %+v", stats)
}
