package services

import (
	"testing"

	"github.com/Jean612/SoundScape/internal/database"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	wrapped := &database.DB{DB: db}
	require.NoError(t, database.Migrate(wrapped))
	return wrapped
}
