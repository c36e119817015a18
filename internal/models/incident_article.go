package models

import (
	"time"

	"github.com/google/uuid"
)

// IncidentArticle links an article to the incident it was clustered into.
// An (incident, article) pair exists at most once; only the clusterer
// creates rows here.
type IncidentArticle struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	IncidentID uuid.UUID `json:"incident_id" db:"incident_id" gorm:"type:uuid;uniqueIndex:idx_incident_article;not null"`
	ArticleID  uuid.UUID `json:"article_id" db:"article_id" gorm:"type:uuid;uniqueIndex:idx_incident_article;index;not null"`
	LinkedAt   time.Time `json:"linked_at" db:"linked_at" gorm:"autoCreateTime"`

	// Relationships
	Incident Incident `json:"incident,omitempty" gorm:"foreignKey:IncidentID"`
	Article  Article  `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
}

// TableName sets the table name for the IncidentArticle model
func (IncidentArticle) TableName() string {
	return "incident_articles"
}
