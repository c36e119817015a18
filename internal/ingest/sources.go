package ingest

import (
	"regexp"
	"strings"

	"veritas/internal/models"
)

// sourceCategories maps normalized outlet names to their fixed perspective
// category. The mapping is editorial reference data; nothing here is
// inferred from article text. Entries are an ordered slice so substring
// fallbacks resolve the same way on every run.
var sourceCategories = []struct {
	name     string
	category string
}{
	// public (mass readership)
	{"the times of india", models.CategoryPublic},
	{"hindustan times", models.CategoryPublic},
	{"india today", models.CategoryPublic},
	{"ndtv news", models.CategoryPublic},
	{"cnn", models.CategoryPublic},
	{"bbc news", models.CategoryPublic},
	{"usa today", models.CategoryPublic},
	{"daily mail", models.CategoryPublic},
	{"new york post", models.CategoryPublic},

	// neutral (wire services, record-of-note)
	{"reuters", models.CategoryNeutral},
	{"associated press", models.CategoryNeutral},
	{"the hindu", models.CategoryNeutral},
	{"bloomberg", models.CategoryNeutral},
	{"the economist", models.CategoryNeutral},
	{"al jazeera english", models.CategoryNeutral},
	{"deutsche welle", models.CategoryNeutral},
	{"the indian express", models.CategoryNeutral},

	// political (partisan or state-aligned)
	{"fox news", models.CategoryPolitical},
	{"breitbart news", models.CategoryPolitical},
	{"the daily wire", models.CategoryPolitical},
	{"msnbc", models.CategoryPolitical},
	{"rt", models.CategoryPolitical},
	{"press trust of india", models.CategoryPolitical},
	{"xinhua", models.CategoryPolitical},
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9 ]+`)

// normalizeName lowercases and strips punctuation for safe comparisons.
func normalizeName(name string) string {
	name = strings.ToLower(name)
	name = nonAlphanumeric.ReplaceAllString(name, " ")
	return strings.Join(strings.Fields(name), " ")
}

// CategorizeSource resolves an outlet name to a perspective category. Exact
// lookup first, then word-boundary substring matching so short keys like
// "rt" cannot fire inside unrelated names, then a government/press
// heuristic; unknown outlets default to neutral.
func CategorizeSource(name string) string {
	normalized := normalizeName(name)
	if normalized == "" {
		return models.CategoryNeutral
	}

	for _, entry := range sourceCategories {
		if entry.name == normalized {
			return entry.category
		}
	}

	for _, entry := range sourceCategories {
		if containsPhrase(normalized, entry.name) {
			return entry.category
		}
	}

	if strings.Contains(normalized, "gov") || strings.Contains(normalized, "press") {
		return models.CategoryPolitical
	}

	return models.CategoryNeutral
}
