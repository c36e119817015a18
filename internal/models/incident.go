package models

import (
	"time"

	"github.com/google/uuid"
)

// Incident represents a real-world event backed by one or more linked
// articles sharing location, incident type and temporal proximity.
//
// FirstReported and LastReported are derived from the linked article set and
// are only ever written together with link creation; FirstReported is never
// after LastReported.
type Incident struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	IncidentType  string    `json:"incident_type" db:"incident_type" gorm:"index:idx_incidents_cluster_key"`
	Location      string    `json:"location" db:"location" gorm:"index:idx_incidents_cluster_key"`
	FirstReported time.Time `json:"first_reported" db:"first_reported"`
	LastReported  time.Time `json:"last_reported" db:"last_reported" gorm:"index"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Links []IncidentArticle `json:"links,omitempty" gorm:"foreignKey:IncidentID"`
}

// TableName sets the table name for the Incident model
func (Incident) TableName() string {
	return "incidents"
}
