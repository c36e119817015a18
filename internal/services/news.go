package services

import (
	"context"
	"errors"
	"fmt"

	"veritas/internal/engine"
	"veritas/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewsService handles read-side article and incident queries plus view
// recording.
type NewsService struct {
	db *gorm.DB
}

// NewNewsService creates a new news service
func NewNewsService(db *gorm.DB) *NewsService {
	return &NewsService{db: db}
}

// SearchFilters narrows a paginated article query.
type SearchFilters struct {
	Query        string
	Location     string
	IncidentType string
}

// LatestArticles returns the most recently published articles.
func (s *NewsService) LatestArticles(ctx context.Context, limit int) ([]models.Article, error) {
	if limit <= 0 {
		limit = 20
	}
	var articles []models.Article
	err := s.db.WithContext(ctx).
		Preload("Source").
		Order("published_date DESC").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}
	return articles, nil
}

// ArticleByID returns a single article with its source.
func (s *NewsService) ArticleByID(ctx context.Context, articleID uuid.UUID) (*models.Article, error) {
	var article models.Article
	err := s.db.WithContext(ctx).Preload("Source").First(&article, "id = ?", articleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: article %s", engine.ErrNotFound, articleID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}
	return &article, nil
}

// SearchArticles returns a page of articles matching the filters, newest
// first, along with the total match count.
func (s *NewsService) SearchArticles(ctx context.Context, filters SearchFilters, page, perPage int) ([]models.Article, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := s.db.WithContext(ctx).Model(&models.Article{})
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where(
			"title LIKE ? OR summary LIKE ? OR content LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filters.Location != "" {
		query = query.Where("lower(location) LIKE ?", "%"+engine.NormalizeLocation(filters.Location)+"%")
	}
	if filters.IncidentType != "" {
		query = query.Where("incident_type = ?", filters.IncidentType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}

	var articles []models.Article
	err := query.
		Preload("Source").
		Order("published_date DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&articles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}
	return articles, total, nil
}

// IncidentByID returns a single incident.
func (s *NewsService) IncidentByID(ctx context.Context, incidentID uuid.UUID) (*models.Incident, error) {
	var incident models.Incident
	err := s.db.WithContext(ctx).First(&incident, "id = ?", incidentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: incident %s", engine.ErrNotFound, incidentID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}
	return &incident, nil
}

// IncidentArticles returns all articles linked to an incident, newest first.
func (s *NewsService) IncidentArticles(ctx context.Context, incidentID uuid.UUID) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).
		Preload("Source").
		Joins("JOIN incident_articles ON incident_articles.article_id = articles.id").
		Where("incident_articles.incident_id = ?", incidentID).
		Order("articles.published_date DESC").
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}
	return articles, nil
}

// IncidentForArticle returns the incident an article was clustered into.
func (s *NewsService) IncidentForArticle(ctx context.Context, articleID uuid.UUID) (*models.Incident, error) {
	var link models.IncidentArticle
	err := s.db.WithContext(ctx).Where("article_id = ?", articleID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: article %s is not clustered", engine.ErrNotFound, articleID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}

	var incident models.Incident
	if err := s.db.WithContext(ctx).First(&incident, "id = ?", link.IncidentID).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}
	return &incident, nil
}

// RecordView appends an entry to the user's view history.
func (s *NewsService) RecordView(ctx context.Context, userID, articleID uuid.UUID) error {
	entry := models.UserHistory{
		ID:        uuid.New(),
		UserID:    userID,
		ArticleID: articleID,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}
	return nil
}
