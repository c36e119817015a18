package models

import (
	"time"

	"github.com/google/uuid"
)

// Perspective categories a source can carry. The mapping is fixed reference
// data supplied at seed/ingest time, never inferred from article text.
const (
	CategoryPublic    = "public"
	CategoryNeutral   = "neutral"
	CategoryPolitical = "political"
)

// Source represents a news outlet with a fixed editorial-orientation category
type Source struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	Name     string    `json:"name" db:"name" gorm:"uniqueIndex;not null"`
	Category string    `json:"category" db:"category"` // public, neutral or political; empty when unclassified

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Articles []Article `json:"articles,omitempty" gorm:"foreignKey:SourceID"`
}

// TableName sets the table name for the Source model
func (Source) TableName() string {
	return "sources"
}
