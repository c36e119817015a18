package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"veritas/internal/engine"
	"veritas/internal/metadata"
	"veritas/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stats summarizes one ingestion run.
type Stats struct {
	Fetched          int `json:"fetched"`
	Filtered         int `json:"filtered"`
	Duplicates       int `json:"duplicates"`
	Inserted         int `json:"inserted"`
	IncidentsCreated int `json:"incidents_created"`
	IncidentsUpdated int `json:"incidents_updated"`
}

// Ingestor pulls articles from NewsAPI, stores them and hands each one to
// the clusterer. It is the caller that explicitly invalidates a cached
// analysis when an existing incident gains an article.
type Ingestor struct {
	db        *gorm.DB
	client    *Client
	clusterer *engine.Clusterer
	cache     *engine.AnalysisCache
	extractor *metadata.Extractor
	enrich    bool
}

// NewIngestor creates an ingestor. enrichMetadata enables fetching og:
// metadata for articles that arrive without an image or description.
func NewIngestor(db *gorm.DB, enrichMetadata bool) *Ingestor {
	return &Ingestor{
		db:        db,
		client:    NewClient(),
		clusterer: engine.NewClusterer(db),
		cache:     engine.NewAnalysisCache(db),
		extractor: metadata.NewExtractor(),
		enrich:    enrichMetadata,
	}
}

// Run fetches one batch of articles for the query and ingests them.
func (in *Ingestor) Run(ctx context.Context, query string, days, pageSize int) (Stats, error) {
	var stats Stats

	raw, err := in.client.FetchEverything(ctx, query, days, pageSize, 1)
	if err != nil {
		return stats, err
	}
	stats.Fetched = len(raw)

	for _, article := range raw {
		if !isValidArticle(article) {
			stats.Filtered++
			continue
		}
		if err := in.ingestOne(ctx, article, &stats); err != nil {
			// One bad article should not sink the batch.
			log.Printf("Failed to ingest %q: %v", article.URL, err)
		}
	}

	log.Printf("Ingestion run complete: %d fetched, %d inserted, %d duplicates, %d incidents created, %d updated",
		stats.Fetched, stats.Inserted, stats.Duplicates, stats.IncidentsCreated, stats.IncidentsUpdated)
	return stats, nil
}

func (in *Ingestor) ingestOne(ctx context.Context, raw RawArticle, stats *Stats) error {
	var existing models.Article
	err := in.db.WithContext(ctx).Where("url = ?", raw.URL).First(&existing).Error
	if err == nil {
		stats.Duplicates++
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	source, err := in.findOrCreateSource(ctx, raw.Source.Name)
	if err != nil {
		return err
	}

	incidentType, keywords := ClassifyIncidentType(raw.Title, raw.Description)
	location := ExtractLocation(raw.Title + " " + raw.Description)

	published := time.Now().UTC()
	if raw.PublishedAt != nil {
		published = raw.PublishedAt.UTC()
	}

	article := models.Article{
		ID:            uuid.New(),
		SourceID:      &source.ID,
		URL:           raw.URL,
		Title:         strings.TrimSpace(raw.Title),
		Summary:       strings.TrimSpace(raw.Description),
		Content:       strings.TrimSpace(raw.Content),
		Location:      location,
		IncidentType:  incidentType,
		PublishedDate: published,
		ImageURL:      raw.URLToImage,
		Keywords:      keywords,
	}

	if in.enrich && (article.ImageURL == "" || article.Summary == "") {
		in.enrichArticle(ctx, &article)
	}

	if err := in.db.WithContext(ctx).Create(&article).Error; err != nil {
		return err
	}
	stats.Inserted++

	incident, created, err := in.clusterer.ClusterArticle(ctx, &article)
	if err != nil {
		return fmt.Errorf("clustering failed: %w", err)
	}
	if created {
		stats.IncidentsCreated++
		return nil
	}
	stats.IncidentsUpdated++

	// The incident's linked set changed, so any cached analysis is stale.
	// Invalidation is this caller's explicit decision; the next read
	// recomputes.
	if err := in.cache.Invalidate(ctx, incident.ID); err != nil && !errors.Is(err, engine.ErrNotFound) {
		return err
	}
	return nil
}

func (in *Ingestor) findOrCreateSource(ctx context.Context, name string) (*models.Source, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Unknown"
	}

	var source models.Source
	err := in.db.WithContext(ctx).Where("name = ?", name).First(&source).Error
	if err == nil {
		return &source, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	source = models.Source{
		ID:       uuid.New(),
		Name:     name,
		Category: CategorizeSource(name),
	}
	if err := in.db.WithContext(ctx).Create(&source).Error; err != nil {
		// Lost a create race; the winner's row is fine.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if ferr := in.db.WithContext(ctx).Where("name = ?", name).First(&source).Error; ferr == nil {
				return &source, nil
			}
		}
		return nil, err
	}
	return &source, nil
}

func (in *Ingestor) enrichArticle(ctx context.Context, article *models.Article) {
	enrichCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	meta, err := in.extractor.Extract(enrichCtx, article.URL)
	if err != nil {
		log.Printf("Metadata enrichment failed for %q: %v", article.URL, err)
		return
	}
	if article.ImageURL == "" {
		article.ImageURL = meta.ImageURL
	}
	if article.Summary == "" {
		article.Summary = meta.Description
	}
}

// isValidArticle drops placeholder and junk entries before they reach the
// store.
func isValidArticle(raw RawArticle) bool {
	if len(raw.Title) < 10 || raw.Description == "" || raw.URL == "" {
		return false
	}
	combined := strings.ToLower(raw.Title + " " + raw.Description + " " + raw.Content)
	for _, marker := range []string{"[removed]", "[deleted]", "subscribe to"} {
		if strings.Contains(combined, marker) {
			return false
		}
	}
	return true
}
