package services

import (
	"context"
	"testing"
	"time"

	"veritas/internal/engine"
	"veritas/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

type testFixture struct {
	db        *gorm.DB
	clusterer *engine.Clusterer
	sources   map[string]models.Source
}

func newTestFixture(t *testing.T) *testFixture {
	db := setupTestDB(t)
	f := &testFixture{
		db:        db,
		clusterer: engine.NewClusterer(db),
		sources:   map[string]models.Source{},
	}

	for name, category := range map[string]string{
		"Times":   models.CategoryPublic,
		"Herald":  models.CategoryPublic,
		"Reuters": models.CategoryNeutral,
		"Tribune": models.CategoryPolitical,
	} {
		source := models.Source{ID: uuid.New(), Name: name, Category: category}
		require.NoError(t, db.Create(&source).Error)
		f.sources[name] = source
	}
	return f
}

func (f *testFixture) addArticle(t *testing.T, sourceName, location, kind string, published time.Time) models.Article {
	source := f.sources[sourceName]
	article := models.Article{
		ID:            uuid.New(),
		SourceID:      &source.ID,
		URL:           "https://example.com/" + uuid.NewString(),
		Title:         "article",
		Summary:       "summary",
		Content:       "content",
		Location:      location,
		IncidentType:  kind,
		PublishedDate: published,
	}
	require.NoError(t, f.db.Create(&article).Error)
	return article
}

func (f *testFixture) clusterArticle(t *testing.T, article *models.Article) *models.Incident {
	incident, _, err := f.clusterer.ClusterArticle(context.Background(), article)
	require.NoError(t, err)
	return incident
}

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestGetOrCreateAnalysis_ComputesAndCaches(t *testing.T) {
	f := newTestFixture(t)
	service := NewAnalysisService(f.db, nil)
	ctx := context.Background()

	a := f.addArticle(t, "Times", "Maninagar, Ahmedabad", "Crime", day(10))
	b := f.addArticle(t, "Reuters", "Maninagar, Ahmedabad", "Crime", day(12))
	incident := f.clusterArticle(t, &a)
	f.clusterArticle(t, &b)

	first, err := service.GetOrCreateAnalysis(ctx, incident.ID, false)
	require.NoError(t, err)
	assert.Equal(t, incident.ID, first.IncidentID)
	assert.Equal(t, 100, first.PublicPct+first.NeutralPct+first.PoliticalPct)
	assert.Equal(t, 50, first.PublicPct)
	assert.Equal(t, 50, first.NeutralPct)
	// 2 of 5 sources, every article specific and complete: 16+30+30.
	assert.Equal(t, 76, first.CredibilityScore)

	// The second call serves the cached row, not a recomputation.
	second, err := service.GetOrCreateAnalysis(ctx, incident.ID, false)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.GeneratedAt.Unix(), second.GeneratedAt.Unix())

	var cachedCount int64
	f.db.Model(&models.AnalysisResult{}).Where("incident_id = ?", incident.ID).Count(&cachedCount)
	assert.EqualValues(t, 1, cachedCount)
}

func TestGetOrCreateAnalysis_StaleUntilInvalidated(t *testing.T) {
	f := newTestFixture(t)
	service := NewAnalysisService(f.db, nil)
	ctx := context.Background()

	a := f.addArticle(t, "Times", "Maninagar, Ahmedabad", "Crime", day(10))
	incident := f.clusterArticle(t, &a)

	first, err := service.GetOrCreateAnalysis(ctx, incident.ID, false)
	require.NoError(t, err)

	// New coverage arrives, but the cached result stays until somebody
	// invalidates it.
	b := f.addArticle(t, "Reuters", "Maninagar, Ahmedabad", "Crime", day(12))
	f.clusterArticle(t, &b)

	stale, err := service.GetOrCreateAnalysis(ctx, incident.ID, false)
	require.NoError(t, err)
	assert.Equal(t, first.ID, stale.ID)
	assert.Equal(t, first.CredibilityScore, stale.CredibilityScore)

	fresh, err := service.GetOrCreateAnalysis(ctx, incident.ID, true)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, fresh.ID)
	assert.Greater(t, fresh.CredibilityScore, first.CredibilityScore)
}

func TestGetOrCreateAnalysis_UnknownIncident(t *testing.T) {
	f := newTestFixture(t)
	service := NewAnalysisService(f.db, nil)

	_, err := service.GetOrCreateAnalysis(context.Background(), uuid.New(), false)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestGetOrCreateAnalysis_UncategorizedCoverageIsInvalid(t *testing.T) {
	f := newTestFixture(t)
	service := NewAnalysisService(f.db, nil)
	ctx := context.Background()

	unlabeled := models.Source{ID: uuid.New(), Name: "Unlabeled Wire"}
	require.NoError(t, f.db.Create(&unlabeled).Error)

	article := models.Article{
		ID:            uuid.New(),
		SourceID:      &unlabeled.ID,
		URL:           "https://example.com/" + uuid.NewString(),
		Title:         "article",
		Location:      "Maninagar",
		IncidentType:  "Crime",
		PublishedDate: day(10),
	}
	require.NoError(t, f.db.Create(&article).Error)
	incident := f.clusterArticle(t, &article)

	_, err := service.GetOrCreateAnalysis(ctx, incident.ID, false)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)

	// Nothing was cached for the failed computation.
	_, err = service.Cache().Get(ctx, incident.ID)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestSimilarIncidents_ServiceFlow(t *testing.T) {
	f := newTestFixture(t)
	service := NewAnalysisService(f.db, nil)
	ctx := context.Background()

	a := f.addArticle(t, "Times", "Maninagar", "Crime", day(10))
	target := f.clusterArticle(t, &a)

	b := f.addArticle(t, "Reuters", "Maninagar", "Accident", day(12))
	related := f.clusterArticle(t, &b)

	c := f.addArticle(t, "Herald", "Mumbai", "Business", day(12))
	f.clusterArticle(t, &c)

	ranked, err := service.SimilarIncidents(ctx, target.ID, 0)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, related.ID, ranked[0].Incident.ID)

	_, err = service.SimilarIncidents(ctx, uuid.New(), 0)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestRecommendations_ServiceFlow(t *testing.T) {
	f := newTestFixture(t)
	service := NewAnalysisService(f.db, nil)
	news := NewNewsService(f.db)
	ctx := context.Background()

	user := models.User{ID: uuid.New(), Username: "demo", Email: "demo@example.com", PasswordHash: "x"}
	require.NoError(t, f.db.Create(&user).Error)

	viewed := f.addArticle(t, "Times", "Maninagar", "Crime", day(10))
	match := f.addArticle(t, "Reuters", "Maninagar", "Crime", day(12))
	f.addArticle(t, "Herald", "Mumbai", "Business", day(12))

	recs, err := service.Recommendations(ctx, user.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, recs, "no history yet")

	require.NoError(t, news.RecordView(ctx, user.ID, viewed.ID))

	recs, err = service.Recommendations(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, match.ID, recs[0].Article.ID)

	_, err = service.Recommendations(ctx, uuid.New(), 0)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestRecomputeAll_SkipsUnscorableIncidents(t *testing.T) {
	f := newTestFixture(t)
	service := NewAnalysisService(f.db, nil)
	ctx := context.Background()

	a := f.addArticle(t, "Times", "Maninagar", "Crime", day(10))
	scorable := f.clusterArticle(t, &a)

	unlabeled := models.Source{ID: uuid.New(), Name: "Unlabeled Wire"}
	require.NoError(t, f.db.Create(&unlabeled).Error)
	b := models.Article{
		ID:            uuid.New(),
		SourceID:      &unlabeled.ID,
		URL:           "https://example.com/" + uuid.NewString(),
		Title:         "article",
		Location:      "Delhi",
		IncidentType:  "Accident",
		PublishedDate: day(11),
	}
	require.NoError(t, f.db.Create(&b).Error)
	f.clusterArticle(t, &b)

	recomputed, err := service.RecomputeAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, recomputed)

	_, err = service.Cache().Get(ctx, scorable.ID)
	assert.NoError(t, err)
}
