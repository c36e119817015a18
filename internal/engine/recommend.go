package engine

import (
	"sort"

	"veritas/internal/models"

	"github.com/google/uuid"
)

// DefaultRecommendLimit is how many articles a recommendation query returns.
const DefaultRecommendLimit = 10

// RecommendedArticle pairs a candidate article with its affinity score.
type RecommendedArticle struct {
	Article models.Article `json:"article"`
	Score   float64        `json:"score"`
}

// RecommendArticles derives a ranked article list from a user's view
// history. History must be ordered most recent first; each entry carries a
// weight of 1/(1+rank) so fresh interests dominate.
//
// A candidate collects the location-affinity and type-affinity weights it
// overlaps with; already viewed articles and articles with zero overlap are
// dropped. An empty history yields an empty list, which is a valid result.
func RecommendArticles(history []models.UserHistory, pool []models.Article, limit int) []RecommendedArticle {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}
	if len(history) == 0 {
		return []RecommendedArticle{}
	}

	viewed := make(map[uuid.UUID]struct{}, len(history))
	locationAffinity := map[string]float64{}
	typeAffinity := map[string]float64{}

	for rank, entry := range history {
		viewed[entry.ArticleID] = struct{}{}

		weight := 1.0 / float64(1+rank)
		if location := NormalizeLocation(entry.Article.Location); location != "" {
			locationAffinity[location] += weight
		}
		if entry.Article.IncidentType != "" {
			typeAffinity[entry.Article.IncidentType] += weight
		}
	}

	ranked := make([]RecommendedArticle, 0, len(pool))
	for _, article := range pool {
		if _, seen := viewed[article.ID]; seen {
			continue
		}

		score := locationAffinity[NormalizeLocation(article.Location)]
		if article.IncidentType != "" {
			score += typeAffinity[article.IncidentType]
		}
		if score <= 0 {
			continue
		}

		ranked = append(ranked, RecommendedArticle{Article: article, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Article.PublishedDate.Equal(b.Article.PublishedDate) {
			return a.Article.PublishedDate.After(b.Article.PublishedDate)
		}
		return a.Article.ID.String() < b.Article.ID.String()
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
