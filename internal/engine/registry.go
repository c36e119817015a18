package engine

import (
	"veritas/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registry is an immutable snapshot of the source → perspective mapping.
// Callers load one snapshot per analysis run so concurrent source edits
// cannot change a computation halfway through.
type Registry struct {
	categories map[uuid.UUID]string
}

// LoadRegistry reads the current source table into a snapshot.
func LoadRegistry(db *gorm.DB) (*Registry, error) {
	var sources []models.Source
	if err := db.Find(&sources).Error; err != nil {
		return nil, storeErr(err)
	}

	categories := make(map[uuid.UUID]string, len(sources))
	for _, source := range sources {
		if source.Category != "" {
			categories[source.ID] = source.Category
		}
	}

	return &Registry{categories: categories}, nil
}

// NewRegistry builds a snapshot from an explicit mapping. Used by tests and
// by callers that already hold the source set.
func NewRegistry(categories map[uuid.UUID]string) *Registry {
	snapshot := make(map[uuid.UUID]string, len(categories))
	for id, category := range categories {
		if category != "" {
			snapshot[id] = category
		}
	}
	return &Registry{categories: snapshot}
}

// PerspectiveOf returns the perspective category for a source, or false when
// the source is unknown or unclassified.
func (r *Registry) PerspectiveOf(sourceID uuid.UUID) (string, bool) {
	category, ok := r.categories[sourceID]
	return category, ok
}

// Len returns the number of classified sources in the snapshot.
func (r *Registry) Len() int {
	return len(r.categories)
}
