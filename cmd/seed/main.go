package main

import (
	"context"
	"flag"
	"log"
	"time"

	"veritas/internal/auth"
	"veritas/internal/database"
	"veritas/internal/engine"
	"veritas/internal/models"
	"veritas/internal/services"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds the database with categorized sources, a demo user and a handful of
// articles, then runs them through the clusterer and analysis pipeline. For
// local development; production data comes from the ingestion worker.

func main() {
	var demoEmail = flag.String("email", "demo@veritas.local", "Email for the demo user")
	var demoPassword = flag.String("password", "demo123", "Password for the demo user")
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

	ctx := context.Background()

	sources := seedSources()
	log.Printf("Seeded %d sources", len(sources))

	user := seedUser(*demoEmail, *demoPassword)
	log.Printf("Seeded demo user %s", user.Email)

	articles := seedArticles(sources)
	log.Printf("Seeded %d articles", len(articles))

	clusterer := engine.NewClusterer(database.DB)
	for i := range articles {
		if _, _, err := clusterer.ClusterArticle(ctx, &articles[i]); err != nil {
			log.Fatalf("Failed to cluster article %q: %v", articles[i].Title, err)
		}
	}
	log.Println("Clustered seed articles")

	analysisService := services.NewAnalysisService(database.DB, nil)
	recomputed, err := analysisService.RecomputeAll(ctx)
	if err != nil {
		log.Fatal("Failed to compute analyses:", err)
	}
	log.Printf("Computed %d analyses", recomputed)
}

func seedSources() []models.Source {
	specs := []struct {
		name     string
		category string
	}{
		{"The Times of India", models.CategoryPublic},
		{"Hindustan Times", models.CategoryPublic},
		{"BBC News", models.CategoryPublic},
		{"Reuters", models.CategoryNeutral},
		{"The Hindu", models.CategoryNeutral},
		{"Associated Press", models.CategoryNeutral},
		{"Press Trust of India", models.CategoryPolitical},
		{"Fox News", models.CategoryPolitical},
	}

	sources := make([]models.Source, 0, len(specs))
	for _, spec := range specs {
		source := models.Source{
			ID:       uuid.New(),
			Name:     spec.name,
			Category: spec.category,
		}
		database.DB.Where(models.Source{Name: spec.name}).FirstOrCreate(&source)
		sources = append(sources, source)
	}
	return sources
}

func seedUser(email, password string) models.User {
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash demo password:", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     "demo",
		Email:        email,
		PasswordHash: hash,
	}
	database.DB.Where(models.User{Email: email}).FirstOrCreate(&user)
	return user
}

func seedArticles(sources []models.Source) []models.Article {
	base := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	specs := []struct {
		source    int
		title     string
		summary   string
		location  string
		kind      string
		published time.Time
	}{
		{0, "Chain-snatching spree reported in Maninagar", "Police registered three chain-snatching complaints in the Maninagar area on Friday evening.", "Maninagar, Ahmedabad", "Crime", base},
		{3, "Two held after Maninagar robbery investigation", "Officers arrested two suspects linked to a series of robberies in Maninagar.", "Maninagar, Ahmedabad", "Crime", base.AddDate(0, 0, 8)},
		{6, "Police commissioner briefs press on Maninagar arrests", "The commissioner credited rapid patrol deployment for the arrests.", "Maninagar, Ahmedabad", "Crime", base.AddDate(0, 0, 9)},
		{1, "Waterlogging disrupts traffic in Navrangpura", "Heavy overnight rain left key Navrangpura junctions waterlogged.", "Navrangpura, Ahmedabad", "Environment", base.AddDate(0, 0, 2)},
		{4, "Civic body reviews Navrangpura drainage after flooding", "The municipal corporation ordered an audit of storm drains.", "Navrangpura, Ahmedabad", "Environment", base.AddDate(0, 0, 5)},
		{2, "Markets rally as quarterly results beat forecasts", "Benchmark indices closed higher after strong earnings reports.", "Mumbai", "Business", base.AddDate(0, 0, 3)},
		{5, "Tech layoffs continue across Bengaluru startups", "Several venture-backed startups announced staff reductions.", "Bengaluru", "Business", base.AddDate(0, 0, 6)},
		{7, "Stadium roof collapse injures four in Delhi", "A section of temporary roofing collapsed during construction.", "Delhi", "Accident", base.AddDate(0, 0, 4)},
	}

	articles := make([]models.Article, 0, len(specs))
	for i, spec := range specs {
		source := sources[spec.source]
		article := models.Article{
			ID:            uuid.New(),
			SourceID:      &source.ID,
			URL:           "https://seed.veritas.local/articles/" + uuid.NewString(),
			Title:         spec.title,
			Summary:       spec.summary,
			Content:       spec.summary + " Further reporting to follow.",
			Location:      spec.location,
			IncidentType:  spec.kind,
			PublishedDate: spec.published,
		}
		if err := database.DB.Create(&article).Error; err != nil {
			log.Fatalf("Failed to seed article %d: %v", i, err)
		}
		articles = append(articles, article)
	}
	return articles
}
