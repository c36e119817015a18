package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The schema has to migrate cleanly on the sqlite test dialect, not just
// postgres, since the whole suite runs against in-memory databases.
func TestAutoMigrate_SQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))

	for _, model := range AllModels() {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}

	source := Source{ID: uuid.New(), Name: "Reuters", Category: CategoryNeutral}
	require.NoError(t, db.Create(&source).Error)

	var got Source
	require.NoError(t, db.First(&got, "id = ?", source.ID).Error)
	assert.Equal(t, source.ID, got.ID)
}
