package engine

import (
	"sort"

	"veritas/internal/models"
)

// DefaultSimilarLimit is how many similar incidents a query returns.
const DefaultSimilarLimit = 5

// similarityWindowDays scales the temporal penalty: one full match point
// fades over 30 days of distance between last_reported dates.
const similarityWindowDays = 30.0

// SimilarIncident pairs a candidate incident with its similarity score.
type SimilarIncident struct {
	Incident models.Incident `json:"incident"`
	Score    float64         `json:"score"`
}

// SimilarIncidents ranks the candidate pool by resemblance to the target,
// most similar first. Candidates sharing neither location nor incident type
// are excluded outright, as is the target itself.
//
// Eligible candidates score +2 when both attributes match, +1 for one, minus
// a fractional temporal penalty of |days between last_reported| / 30, with
// the combined score floored at 0. Ties break toward the more recently
// reported incident, then the lowest incident ID.
func SimilarIncidents(target models.Incident, pool []models.Incident, limit int) []SimilarIncident {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	targetLocation := NormalizeLocation(target.Location)

	ranked := make([]SimilarIncident, 0, len(pool))
	for _, candidate := range pool {
		if candidate.ID == target.ID {
			continue
		}

		locationMatch := targetLocation != "" && NormalizeLocation(candidate.Location) == targetLocation
		typeMatch := target.IncidentType != "" && candidate.IncidentType == target.IncidentType
		if !locationMatch && !typeMatch {
			continue
		}

		match := 1.0
		if locationMatch && typeMatch {
			match = 2.0
		}

		distance := target.LastReported.Sub(candidate.LastReported)
		if distance < 0 {
			distance = -distance
		}
		penalty := distance.Hours() / 24 / similarityWindowDays

		score := match - penalty
		if score < 0 {
			score = 0
		}

		ranked = append(ranked, SimilarIncident{Incident: candidate, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Incident.LastReported.Equal(b.Incident.LastReported) {
			return a.Incident.LastReported.After(b.Incident.LastReported)
		}
		return a.Incident.ID.String() < b.Incident.ID.String()
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
