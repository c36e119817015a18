package engine

import (
	"testing"
	"time"

	"veritas/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createTestSource(t *testing.T, db *gorm.DB, name, category string) models.Source {
	source := models.Source{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
	}
	if err := db.Create(&source).Error; err != nil {
		t.Fatalf("Failed to create test source: %v", err)
	}
	return source
}

type articleSpec struct {
	source    *models.Source
	title     string
	location  string
	kind      string
	published time.Time
	summary   string
	content   string
}

func createTestArticle(t *testing.T, db *gorm.DB, spec articleSpec) models.Article {
	article := models.Article{
		ID:            uuid.New(),
		URL:           "https://example.com/" + uuid.NewString(),
		Title:         spec.title,
		Summary:       spec.summary,
		Content:       spec.content,
		Location:      spec.location,
		IncidentType:  spec.kind,
		PublishedDate: spec.published,
	}
	if spec.source != nil {
		article.SourceID = &spec.source.ID
	}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("Failed to create test article: %v", err)
	}
	return article
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
