package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Article represents a single reported news item. Articles are immutable
// once stored; the analysis engine only reads them.
type Article struct {
	ID       uuid.UUID  `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	SourceID *uuid.UUID `json:"source_id" db:"source_id" gorm:"type:uuid;index"`
	URL      string     `json:"url" db:"url" gorm:"uniqueIndex;not null"`
	Title    string     `json:"title" db:"title" gorm:"not null"`
	Summary  string     `json:"summary" db:"summary" gorm:"type:text"`
	Content  string     `json:"content" db:"content" gorm:"type:text"`

	// Clustering attributes
	Location      string    `json:"location" db:"location"`           // free-text area name
	IncidentType  string    `json:"incident_type" db:"incident_type"` // categorical, e.g. "Crime"
	PublishedDate time.Time `json:"published_date" db:"published_date" gorm:"index"`

	ImageURL string         `json:"image_url" db:"image_url"`
	Keywords pq.StringArray `json:"keywords" db:"keywords" gorm:"type:text[]"` // classifier keywords that matched

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Source *Source `json:"source,omitempty" gorm:"foreignKey:SourceID"`
}

// TableName sets the table name for the Article model
func (Article) TableName() string {
	return "articles"
}
