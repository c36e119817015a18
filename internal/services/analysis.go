package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"veritas/internal/engine"
	"veritas/internal/models"
	"veritas/internal/realtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalysisService orchestrates the derivation pipeline: it loads an
// incident's linked articles and a registry snapshot, runs the pure scoring
// components and manages the analysis cache.
type AnalysisService struct {
	db    *gorm.DB
	cache *engine.AnalysisCache
	hub   *realtime.Hub
}

// NewAnalysisService creates an analysis service. The hub may be nil when no
// live subscribers are served (CLI commands, tests).
func NewAnalysisService(db *gorm.DB, hub *realtime.Hub) *AnalysisService {
	return &AnalysisService{
		db:    db,
		cache: engine.NewAnalysisCache(db),
		hub:   hub,
	}
}

// Cache exposes the underlying analysis cache for explicit invalidation.
func (s *AnalysisService) Cache() *engine.AnalysisCache {
	return s.cache
}

// GetOrCreateAnalysis returns the cached analysis for an incident, computing
// and caching one when absent. forceRefresh invalidates any existing result
// first; recomputation never happens implicitly.
func (s *AnalysisService) GetOrCreateAnalysis(ctx context.Context, incidentID uuid.UUID, forceRefresh bool) (*models.AnalysisResult, error) {
	var incident models.Incident
	if err := s.db.WithContext(ctx).First(&incident, "id = ?", incidentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: incident %s", engine.ErrNotFound, incidentID)
		}
		return nil, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}

	if forceRefresh {
		if err := s.cache.Invalidate(ctx, incidentID); err != nil && !errors.Is(err, engine.ErrNotFound) {
			return nil, err
		}
	} else {
		cached, err := s.cache.Get(ctx, incidentID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, engine.ErrNotFound) {
			return nil, err
		}
	}

	result, err := s.computeAnalysis(ctx, incident)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Put(ctx, result); err != nil {
		// A concurrent caller may have computed the same analysis first;
		// theirs is just as valid, so return it.
		if errors.Is(err, engine.ErrConflict) {
			return s.cache.Get(ctx, incidentID)
		}
		return nil, err
	}

	if s.hub != nil {
		s.hub.Broadcast(map[string]interface{}{
			"type":     "analysis_generated",
			"analysis": result,
		})
	}

	return result, nil
}

// computeAnalysis runs the pure scoring components over the incident's
// linked article set.
func (s *AnalysisService) computeAnalysis(ctx context.Context, incident models.Incident) (*models.AnalysisResult, error) {
	articles, err := s.linkedArticles(ctx, incident.ID)
	if err != nil {
		return nil, err
	}

	registry, err := engine.LoadRegistry(s.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	score, err := engine.CredibilityScore(articles, engine.CredibilityConfig{})
	if err != nil {
		return nil, err
	}

	distribution, err := engine.PerspectiveDistribution(articles, registry)
	if err != nil {
		return nil, err
	}

	return &models.AnalysisResult{
		ID:               uuid.New(),
		IncidentID:       incident.ID,
		CredibilityScore: score,
		PublicPct:        distribution.PublicPct,
		NeutralPct:       distribution.NeutralPct,
		PoliticalPct:     distribution.PoliticalPct,
		Summary:          distribution.Summary,
		GeneratedAt:      time.Now().UTC(),
	}, nil
}

// SimilarIncidents ranks other incidents by resemblance to the target.
func (s *AnalysisService) SimilarIncidents(ctx context.Context, incidentID uuid.UUID, limit int) ([]engine.SimilarIncident, error) {
	var target models.Incident
	if err := s.db.WithContext(ctx).First(&target, "id = ?", incidentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: incident %s", engine.ErrNotFound, incidentID)
		}
		return nil, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}

	var pool []models.Incident
	if err := s.db.WithContext(ctx).Where("id <> ?", incidentID).Find(&pool).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}

	return engine.SimilarIncidents(target, pool, limit), nil
}

// Recommendations derives a ranked article list from the user's history.
func (s *AnalysisService) Recommendations(ctx context.Context, userID uuid.UUID, limit int) ([]engine.RecommendedArticle, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", engine.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}

	var history []models.UserHistory
	err := s.db.WithContext(ctx).
		Preload("Article").
		Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}

	var pool []models.Article
	if err := s.db.WithContext(ctx).Find(&pool).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}

	return engine.RecommendArticles(history, pool, limit), nil
}

// RecomputeAll invalidates and regenerates the analysis for every incident.
// Incidents that cannot be scored (e.g. no categorized sources yet) are
// skipped with a log line rather than aborting the run.
func (s *AnalysisService) RecomputeAll(ctx context.Context) (int, error) {
	var incidents []models.Incident
	if err := s.db.WithContext(ctx).Find(&incidents).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}

	recomputed := 0
	for _, incident := range incidents {
		if err := s.cache.Invalidate(ctx, incident.ID); err != nil && !errors.Is(err, engine.ErrNotFound) {
			return recomputed, err
		}
		if _, err := s.GetOrCreateAnalysis(ctx, incident.ID, false); err != nil {
			if errors.Is(err, engine.ErrInvalidInput) {
				log.Printf("Skipping incident %s: %v", incident.ID, err)
				continue
			}
			return recomputed, err
		}
		recomputed++
	}
	return recomputed, nil
}

// linkedArticles returns all articles linked to an incident.
func (s *AnalysisService) linkedArticles(ctx context.Context, incidentID uuid.UUID) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).
		Joins("JOIN incident_articles ON incident_articles.article_id = articles.id").
		Where("incident_articles.incident_id = ?", incidentID).
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrStoreUnavailable, err)
	}
	return articles, nil
}
