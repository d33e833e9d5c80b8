package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/entity"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/infrastructure/config"
)

func TestNewDB(t *testing.T) {
	t.Run("opens sqlite and migrates", func(t *testing.T) {
		cfg := &config.DatabaseConfig{
			Driver: DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "feedback.db"),
		}

		db, err := NewDB(cfg)
		require.NoError(t, err)
		require.NoError(t, AutoMigrate(db))

		assert.True(t, db.Migrator().HasTable(&entity.Feedback{}))

		sqlDB, err := db.DB()
		require.NoError(t, err)
		assert.NoError(t, sqlDB.Ping())
		_ = sqlDB.Close()
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		_, err := NewDB(&config.DatabaseConfig{Driver: "oracle"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "oracle")
	})
}
