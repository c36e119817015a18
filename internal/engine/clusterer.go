package engine

import (
	"context"
	"errors"
	"time"

	"veritas/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultClusterWindow is how far an article's published date may sit from
// an incident's last_reported date and still join that incident.
const DefaultClusterWindow = 30 * 24 * time.Hour

// Clusterer assigns articles to incidents. An article joins an existing
// incident only when location, incident type and the time window all agree;
// otherwise it starts a new one.
type Clusterer struct {
	db     *gorm.DB
	window time.Duration
}

// NewClusterer creates a clusterer with the default 30-day window.
func NewClusterer(db *gorm.DB) *Clusterer {
	return &Clusterer{db: db, window: DefaultClusterWindow}
}

// NewClustererWithWindow creates a clusterer with a custom window.
func NewClustererWithWindow(db *gorm.DB, window time.Duration) *Clusterer {
	return &Clusterer{db: db, window: window}
}

// ClusterArticle finds or creates the incident a stored article belongs to
// and links the article to it. Returns the incident and whether it was
// newly created.
//
// The whole find-or-create-and-link sequence runs in one transaction,
// serialized per cluster key, so two concurrent articles for the same event
// cannot each create their own incident. A transaction that loses a race is
// retried once before the error surfaces.
//
// Re-clustering an already linked article is a no-op that returns its
// existing incident.
func (c *Clusterer) ClusterArticle(ctx context.Context, article *models.Article) (*models.Incident, bool, error) {
	if article == nil {
		return nil, false, invalidInput("nil article")
	}
	if article.PublishedDate.IsZero() {
		return nil, false, invalidInput("article %s has no published date", article.ID)
	}

	incident, created, err := c.clusterOnce(ctx, article)
	if err != nil && errors.Is(err, ErrConflict) {
		incident, created, err = c.clusterOnce(ctx, article)
	}
	return incident, created, err
}

func (c *Clusterer) clusterOnce(ctx context.Context, article *models.Article) (*models.Incident, bool, error) {
	var incident models.Incident
	var created bool

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// An article already linked somewhere keeps its incident.
		var link models.IncidentArticle
		err := tx.Where("article_id = ?", article.ID).First(&link).Error
		if err == nil {
			return tx.First(&incident, "id = ?", link.IncidentID).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		location := NormalizeLocation(article.Location)
		incidentType := article.IncidentType

		// Without both cluster attributes the match rules cannot be
		// evaluated, so the article always gets a singleton incident.
		if location == "" || incidentType == "" {
			created = true
			return c.createIncident(tx, article, location, incidentType, &incident)
		}

		if err := c.lockClusterKey(tx, incidentType, location); err != nil {
			return err
		}

		best, err := c.findBestCandidate(tx, location, incidentType, article.PublishedDate)
		if err != nil {
			return err
		}
		if best == nil {
			created = true
			return c.createIncident(tx, article, location, incidentType, &incident)
		}

		// Extend the summary bounds together with the link so they always
		// equal the min/max over linked articles.
		updates := map[string]interface{}{}
		if article.PublishedDate.After(best.LastReported) {
			best.LastReported = article.PublishedDate
			updates["last_reported"] = article.PublishedDate
		}
		if article.PublishedDate.Before(best.FirstReported) {
			best.FirstReported = article.PublishedDate
			updates["first_reported"] = article.PublishedDate
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Incident{}).Where("id = ?", best.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&models.IncidentArticle{
			ID:         uuid.New(),
			IncidentID: best.ID,
			ArticleID:  article.ID,
		}).Error; err != nil {
			return err
		}

		incident = *best
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, conflictErr(err)
		}
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrConflict) {
			return nil, false, err
		}
		return nil, false, storeErr(err)
	}
	return &incident, created, nil
}

// lockClusterKey serializes find-or-create for one (type, location) key.
// Postgres gets an advisory transaction lock; sqlite (tests) serializes
// writers on its own.
func (c *Clusterer) lockClusterKey(tx *gorm.DB, incidentType, location string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec(
		"SELECT pg_advisory_xact_lock(hashtext(?))",
		incidentType+"\x00"+location,
	).Error
}

// findBestCandidate returns the open incident closest in time to the
// article, or nil when nothing is within the window. Ties go to the lowest
// incident ID for determinism.
func (c *Clusterer) findBestCandidate(tx *gorm.DB, location, incidentType string, published time.Time) (*models.Incident, error) {
	var candidates []models.Incident
	err := tx.
		Where("incident_type = ? AND location = ?", incidentType, location).
		Where("last_reported >= ? AND last_reported <= ?",
			published.Add(-c.window), published.Add(c.window)).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	var best *models.Incident
	var bestDistance time.Duration
	for i := range candidates {
		candidate := &candidates[i]
		distance := published.Sub(candidate.LastReported)
		if distance < 0 {
			distance = -distance
		}
		switch {
		case best == nil,
			distance < bestDistance,
			distance == bestDistance && candidate.ID.String() < best.ID.String():
			best = candidate
			bestDistance = distance
		}
	}
	return best, nil
}

func (c *Clusterer) createIncident(tx *gorm.DB, article *models.Article, location, incidentType string, out *models.Incident) error {
	*out = models.Incident{
		ID:            uuid.New(),
		IncidentType:  incidentType,
		Location:      location,
		FirstReported: article.PublishedDate,
		LastReported:  article.PublishedDate,
	}
	if err := tx.Create(out).Error; err != nil {
		return err
	}
	return tx.Create(&models.IncidentArticle{
		ID:         uuid.New(),
		IncidentID: out.ID,
		ArticleID:  article.ID,
	}).Error
}
