package models

import (
	"time"

	"github.com/google/uuid"
)

// UserHistory records a single article view. Append-only; the recommendation
// generator reads it and nothing in the engine ever mutates it.
type UserHistory struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;index;not null"`
	ArticleID uuid.UUID `json:"article_id" db:"article_id" gorm:"type:uuid;index;not null"`
	ViewedAt  time.Time `json:"viewed_at" db:"viewed_at" gorm:"autoCreateTime;index"`

	// Relationships
	Article Article `json:"article,omitempty" gorm:"foreignKey:ArticleID"`
}

// TableName sets the table name for the UserHistory model
func (UserHistory) TableName() string {
	return "user_history"
}
