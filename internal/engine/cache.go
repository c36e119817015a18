package engine

import (
	"context"
	"errors"

	"veritas/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalysisCache stores at most one AnalysisResult per incident. There is no
// overwrite path: a stale result must be explicitly invalidated before a new
// one can be put, so staleness stays a caller decision.
type AnalysisCache struct {
	db *gorm.DB
}

// NewAnalysisCache creates an analysis cache over the given database.
func NewAnalysisCache(db *gorm.DB) *AnalysisCache {
	return &AnalysisCache{db: db}
}

// Get returns the cached result for an incident, or ErrNotFound.
func (c *AnalysisCache) Get(ctx context.Context, incidentID uuid.UUID) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	err := c.db.WithContext(ctx).Where("incident_id = ?", incidentID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("no analysis for incident %s", incidentID)
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &result, nil
}

// Put inserts a result for an incident. If one already exists the unique
// index rejects the insert and Put fails with ErrConflict.
func (c *AnalysisCache) Put(ctx context.Context, result *models.AnalysisResult) error {
	if result == nil {
		return invalidInput("nil analysis result")
	}
	if result.IncidentID == uuid.Nil {
		return invalidInput("analysis result without incident id")
	}
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}

	err := c.db.WithContext(ctx).Create(result).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflictErr(err)
	}
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// Invalidate deletes the cached result for an incident. Deleting a result
// that does not exist is ErrNotFound so callers notice misdirected
// invalidations.
func (c *AnalysisCache) Invalidate(ctx context.Context, incidentID uuid.UUID) error {
	res := c.db.WithContext(ctx).Where("incident_id = ?", incidentID).Delete(&models.AnalysisResult{})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("no analysis for incident %s", incidentID)
	}
	return nil
}
