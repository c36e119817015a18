package engine

import (
	"math"

	"veritas/internal/models"

	"github.com/google/uuid"
)

// DefaultSourceCap is the distinct-source count at which the diversity
// sub-score saturates.
const DefaultSourceCap = 5

// Sub-score weights. Each sub-score is normalized to [0,100] before
// weighting, so the final score also lands in [0,100].
const (
	diversityWeight    = 0.4
	clarityWeight      = 0.3
	completenessWeight = 0.3
)

// CredibilityConfig tunes the scorer. The zero value selects defaults.
type CredibilityConfig struct {
	SourceCap int
}

// CredibilityScore computes the rule-based 0-100 credibility score for an
// incident's linked article set. It is a pure function: the caller decides
// whether to persist the result.
//
// Scoring an empty article set is an input error, never a silent zero.
func CredibilityScore(articles []models.Article, cfg CredibilityConfig) (int, error) {
	if len(articles) == 0 {
		return 0, invalidInput("credibility score over zero linked articles")
	}

	sourceCap := cfg.SourceCap
	if sourceCap <= 0 {
		sourceCap = DefaultSourceCap
	}

	diversity := sourceDiversity(articles, sourceCap)
	clarity := locationClarity(articles)
	completeness := contentCompleteness(articles)

	score := int(math.Round(
		diversityWeight*diversity + clarityWeight*clarity + completenessWeight*completeness,
	))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}

// sourceDiversity scales the distinct source count linearly up to the cap.
func sourceDiversity(articles []models.Article, sourceCap int) float64 {
	distinct := make(map[uuid.UUID]struct{})
	for _, article := range articles {
		if article.SourceID != nil {
			distinct[*article.SourceID] = struct{}{}
		}
	}
	fraction := float64(len(distinct)) / float64(sourceCap)
	if fraction > 1 {
		fraction = 1
	}
	return fraction * 100
}

// locationClarity gives partial credit by the fraction of articles whose
// location names an area, not just a city.
func locationClarity(articles []models.Article) float64 {
	specific := 0
	for _, article := range articles {
		if isSpecificLocation(article.Location) {
			specific++
		}
	}
	return float64(specific) / float64(len(articles)) * 100
}

// contentCompleteness gives credit by the fraction of articles carrying both
// a summary and body content.
func contentCompleteness(articles []models.Article) float64 {
	complete := 0
	for _, article := range articles {
		if article.Summary != "" && article.Content != "" {
			complete++
		}
	}
	return float64(complete) / float64(len(articles)) * 100
}
