package engine

import (
	"testing"
	"time"

	"veritas/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poolArticle(location, kind string, published time.Time) models.Article {
	return models.Article{
		ID:            uuid.New(),
		Location:      location,
		IncidentType:  kind,
		PublishedDate: published,
	}
}

func historyEntry(article models.Article) models.UserHistory {
	return models.UserHistory{
		ID:        uuid.New(),
		ArticleID: article.ID,
		Article:   article,
	}
}

func TestRecommendArticles_EmptyHistoryIsEmptyResult(t *testing.T) {
	pool := []models.Article{
		poolArticle("Maninagar", "Crime", date(2025, 1, 10)),
	}

	recs := RecommendArticles(nil, pool, 0)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommendArticles_RanksByAffinity(t *testing.T) {
	viewed := poolArticle("Maninagar", "Crime", date(2025, 1, 10))
	history := []models.UserHistory{historyEntry(viewed)}

	bothAxes := poolArticle("Maninagar", "Crime", date(2025, 1, 12))
	locationOnly := poolArticle("Maninagar", "Business", date(2025, 1, 12))
	typeOnly := poolArticle("Delhi", "Crime", date(2025, 1, 12))
	neither := poolArticle("Mumbai", "Business", date(2025, 1, 12))

	recs := RecommendArticles(history, []models.Article{neither, typeOnly, bothAxes, locationOnly}, 0)
	require.Len(t, recs, 3)

	// Matching both axes collects both affinity weights.
	assert.Equal(t, bothAxes.ID, recs[0].Article.ID)
	assert.InDelta(t, 2.0, recs[0].Score, 1e-9)
	assert.InDelta(t, 1.0, recs[1].Score, 1e-9)
	assert.InDelta(t, 1.0, recs[2].Score, 1e-9)
}

func TestRecommendArticles_RecencyWeightsHistory(t *testing.T) {
	// Most recent view first: crime carries weight 1, business 1/2.
	history := []models.UserHistory{
		historyEntry(poolArticle("Maninagar", "Crime", date(2025, 1, 10))),
		historyEntry(poolArticle("Mumbai", "Business", date(2025, 1, 8))),
	}

	crime := poolArticle("Delhi", "Crime", date(2025, 1, 12))
	business := poolArticle("Delhi", "Business", date(2025, 1, 12))

	recs := RecommendArticles(history, []models.Article{business, crime}, 0)
	require.Len(t, recs, 2)

	assert.Equal(t, crime.ID, recs[0].Article.ID)
	assert.InDelta(t, 1.0, recs[0].Score, 1e-9)
	assert.Equal(t, business.ID, recs[1].Article.ID)
	assert.InDelta(t, 0.5, recs[1].Score, 1e-9)
}

func TestRecommendArticles_ExcludesViewed(t *testing.T) {
	viewed := poolArticle("Maninagar", "Crime", date(2025, 1, 10))
	history := []models.UserHistory{historyEntry(viewed)}

	recs := RecommendArticles(history, []models.Article{viewed}, 0)
	assert.Empty(t, recs)
}

func TestRecommendArticles_LocationMatchIsNormalized(t *testing.T) {
	viewed := poolArticle("Maninagar,  Ahmedabad", "Crime", date(2025, 1, 10))
	history := []models.UserHistory{historyEntry(viewed)}

	candidate := poolArticle(" maninagar, ahmedabad", "", date(2025, 1, 12))
	recs := RecommendArticles(history, []models.Article{candidate}, 0)
	require.Len(t, recs, 1)
	assert.Equal(t, candidate.ID, recs[0].Article.ID)
}

func TestRecommendArticles_TieBreaksAndLimit(t *testing.T) {
	viewed := poolArticle("Maninagar", "Crime", date(2025, 1, 1))
	history := []models.UserHistory{historyEntry(viewed)}

	older := poolArticle("Maninagar", "Crime", date(2025, 1, 5))
	newer := poolArticle("Maninagar", "Crime", date(2025, 1, 9))

	recs := RecommendArticles(history, []models.Article{older, newer}, 0)
	require.Len(t, recs, 2)
	assert.Equal(t, newer.ID, recs[0].Article.ID)
	assert.Equal(t, older.ID, recs[1].Article.ID)

	pool := make([]models.Article, 0, DefaultRecommendLimit+5)
	for i := 0; i < DefaultRecommendLimit+5; i++ {
		pool = append(pool, poolArticle("Maninagar", "Crime", date(2025, 1, 2)))
	}
	assert.Len(t, RecommendArticles(history, pool, 0), DefaultRecommendLimit)
	assert.Len(t, RecommendArticles(history, pool, 2), 2)
}
