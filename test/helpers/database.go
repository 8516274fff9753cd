package helpers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/unitforge-go/internal/infrastructure/config"
	"github.com/andrescamacho/unitforge-go/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory campaign database closed at test end
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// NewTestCampaignFile returns the config of an empty SQLite campaign file in
// the test's temp dir. Tests open and close it themselves.
func NewTestCampaignFile(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	return &config.DatabaseConfig{Type: config.DatabaseSQLite, Path: filepath.Join(t.TempDir(), "campaign.db")}
}
