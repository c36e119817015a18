package services

import (
	"context"
	"testing"

	"veritas/internal/engine"
	"veritas/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchArticles(t *testing.T) {
	f := newTestFixture(t)
	news := NewNewsService(f.db)
	ctx := context.Background()

	f.addArticle(t, "Times", "Maninagar, Ahmedabad", "Crime", day(10))
	f.addArticle(t, "Reuters", "Maninagar, Ahmedabad", "Crime", day(12))
	f.addArticle(t, "Herald", "Mumbai", "Business", day(11))

	t.Run("location filter matches normalized substrings", func(t *testing.T) {
		articles, total, err := news.SearchArticles(ctx, SearchFilters{Location: "  MANINAGAR "}, 1, 20)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, articles, 2)
	})

	t.Run("type filter is exact", func(t *testing.T) {
		_, total, err := news.SearchArticles(ctx, SearchFilters{IncidentType: "Business"}, 1, 20)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("pagination returns newest first", func(t *testing.T) {
		page1, total, err := news.SearchArticles(ctx, SearchFilters{}, 1, 2)
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, page1, 2)
		assert.Equal(t, day(12), page1[0].PublishedDate.UTC())

		page2, _, err := news.SearchArticles(ctx, SearchFilters{}, 2, 2)
		require.NoError(t, err)
		assert.Len(t, page2, 1)
	})
}

func TestIncidentQueries(t *testing.T) {
	f := newTestFixture(t)
	news := NewNewsService(f.db)
	ctx := context.Background()

	a := f.addArticle(t, "Times", "Maninagar", "Crime", day(10))
	b := f.addArticle(t, "Reuters", "Maninagar", "Crime", day(12))
	incident := f.clusterArticle(t, &a)
	f.clusterArticle(t, &b)

	got, err := news.IncidentByID(ctx, incident.ID)
	require.NoError(t, err)
	assert.Equal(t, "maninagar", got.Location)

	articles, err := news.IncidentArticles(ctx, incident.ID)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, b.ID, articles[0].ID, "newest first")

	back, err := news.IncidentForArticle(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, incident.ID, back.ID)

	unclustered := f.addArticle(t, "Herald", "", "", day(13))
	_, err = news.IncidentForArticle(ctx, unclustered.ID)
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestArticleByID(t *testing.T) {
	f := newTestFixture(t)
	news := NewNewsService(f.db)
	ctx := context.Background()

	a := f.addArticle(t, "Times", "Maninagar", "Crime", day(10))

	got, err := news.ArticleByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Source)
	assert.Equal(t, "Times", got.Source.Name)

	_, err = news.ArticleByID(ctx, uuid.New())
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestRecordView(t *testing.T) {
	f := newTestFixture(t)
	news := NewNewsService(f.db)
	ctx := context.Background()

	user := models.User{ID: uuid.New(), Username: "demo", Email: "demo@example.com", PasswordHash: "x"}
	require.NoError(t, f.db.Create(&user).Error)
	a := f.addArticle(t, "Times", "Maninagar", "Crime", day(10))

	require.NoError(t, news.RecordView(ctx, user.ID, a.ID))

	var entries []models.UserHistory
	require.NoError(t, f.db.Where("user_id = ?", user.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, a.ID, entries[0].ArticleID)
}
