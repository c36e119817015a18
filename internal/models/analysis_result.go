package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisResult holds the cached derived metrics for one incident.
//
// The unique index on IncidentID enforces the at-most-one-result-per-incident
// invariant at the store level: inserting a second row is a conflict, never
// an overwrite. Recomputation requires explicit invalidation first.
type AnalysisResult struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	IncidentID uuid.UUID `json:"incident_id" db:"incident_id" gorm:"type:uuid;uniqueIndex;not null"`

	CredibilityScore int `json:"credibility_score" db:"credibility_score"` // 0-100

	// Perspective split; the three always sum to 100 when a result exists.
	PublicPct    int `json:"public_pct" db:"public_pct"`
	NeutralPct   int `json:"neutral_pct" db:"neutral_pct"`
	PoliticalPct int `json:"political_pct" db:"political_pct"`

	Summary     string    `json:"summary" db:"summary" gorm:"type:text"`
	GeneratedAt time.Time `json:"generated_at" db:"generated_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for the AnalysisResult model
func (AnalysisResult) TableName() string {
	return "analysis_results"
}
