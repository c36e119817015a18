package engine

import (
	"fmt"

	"veritas/internal/models"
)

// Distribution is the percentage split of an incident's coverage across the
// three perspective categories. The percentages always sum to exactly 100.
type Distribution struct {
	PublicPct    int    `json:"public_pct"`
	NeutralPct   int    `json:"neutral_pct"`
	PoliticalPct int    `json:"political_pct"`
	Summary      string `json:"summary"`
}

// perspective categories in deterministic tie-break order
var categoryOrder = []string{
	models.CategoryPublic,
	models.CategoryNeutral,
	models.CategoryPolitical,
}

// PerspectiveDistribution counts each linked article's source category and
// converts the counts to integer percentages with largest-remainder
// rounding. Articles whose source is missing or unclassified are excluded
// from the denominator; if that leaves nothing to count the distribution is
// undefined and the call fails.
func PerspectiveDistribution(articles []models.Article, registry *Registry) (Distribution, error) {
	counts := map[string]int{}
	for _, article := range articles {
		if article.SourceID == nil {
			continue
		}
		category, ok := registry.PerspectiveOf(*article.SourceID)
		if !ok {
			continue
		}
		counts[category]++
	}

	total := 0
	for _, category := range categoryOrder {
		total += counts[category]
	}
	if total == 0 {
		return Distribution{}, invalidInput("no categorized sources among %d linked articles", len(articles))
	}

	percentages := roundPercentages(counts, total)

	return Distribution{
		PublicPct:    percentages[models.CategoryPublic],
		NeutralPct:   percentages[models.CategoryNeutral],
		PoliticalPct: percentages[models.CategoryPolitical],
		Summary:      describeDistribution(counts, total),
	}, nil
}

// roundPercentages floors each share, then hands the leftover points to the
// categories with the largest fractional remainders, walking the fixed
// category order on ties. Integer arithmetic keeps it deterministic.
func roundPercentages(counts map[string]int, total int) map[string]int {
	percentages := make(map[string]int, len(categoryOrder))
	remainders := make(map[string]int, len(categoryOrder))

	assigned := 0
	for _, category := range categoryOrder {
		exact := counts[category] * 100
		percentages[category] = exact / total
		remainders[category] = exact % total
		assigned += percentages[category]
	}

	for leftover := 100 - assigned; leftover > 0; leftover-- {
		best := ""
		for _, category := range categoryOrder {
			if best == "" || remainders[category] > remainders[best] {
				best = category
			}
		}
		percentages[best]++
		remainders[best] = -1
	}

	return percentages
}

// describeDistribution produces the human-readable summary stored alongside
// the percentages.
func describeDistribution(counts map[string]int, total int) string {
	dominant := categoryOrder[0]
	for _, category := range categoryOrder[1:] {
		if counts[category] > counts[dominant] {
			dominant = category
		}
	}

	var text string
	switch {
	case counts[dominant] == total:
		text = fmt.Sprintf("Coverage is entirely %s", dominant)
	case counts[dominant]*10 >= total*6:
		text = fmt.Sprintf("Coverage is primarily %s", dominant)
	case counts[models.CategoryPublic] > 0 && counts[models.CategoryNeutral] > 0 && counts[models.CategoryPolitical] > 0:
		text = "Coverage includes multiple perspectives"
	default:
		text = "Coverage shows mixed perspectives"
	}

	noun := "reports"
	if total == 1 {
		noun = "report"
	}
	return fmt.Sprintf("%s (%d categorized %s)", text, total, noun)
}
