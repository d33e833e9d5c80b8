package sqlstore

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/entity"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/infrastructure/config"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/infrastructure/database"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewDB(&config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "feedback.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestFeedbackRepository_Append(t *testing.T) {
	repo := NewFeedbackRepository(setupDB(t))
	ctx := context.Background()

	first := entity.NewFeedback("fast delivery", entity.SentimentPositive, 0.8)
	second := entity.NewFeedback("broken box", entity.SentimentNegative, 0.7)

	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
}

func TestFeedbackRepository_AppendBatch(t *testing.T) {
	repo := NewFeedbackRepository(setupDB(t))
	ctx := context.Background()

	var batch []*entity.Feedback
	for i := 0; i < 250; i++ {
		batch = append(batch, entity.NewFeedback(fmt.Sprintf("row %d", i), entity.SentimentNeutral, 0.5))
	}

	require.NoError(t, repo.AppendBatch(ctx, batch))
	require.NoError(t, repo.AppendBatch(ctx, nil))

	entries, total, err := repo.List(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(250), total)
	assert.Equal(t, "row 249", entries[0].Text)

	for i := 1; i < len(batch); i++ {
		assert.Greater(t, batch[i].ID, batch[i-1].ID, "ids follow input order")
	}
}

func TestFeedbackRepository_List(t *testing.T) {
	repo := NewFeedbackRepository(setupDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, entity.NewFeedback(fmt.Sprintf("text %d", i), entity.SentimentPositive, 0.9)))
	}

	entries, total, err := repo.List(ctx, 2, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, entries, 2)
	assert.Equal(t, "text 3", entries[0].Text)
	assert.Equal(t, "text 2", entries[1].Text)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestFeedbackRepository_CountBySentiment(t *testing.T) {
	repo := NewFeedbackRepository(setupDB(t))
	ctx := context.Background()

	counts, err := repo.CountBySentiment(ctx)
	require.NoError(t, err)
	assert.Empty(t, counts)

	labels := []string{"positive", "positive", "negative", "neutral", "positive"}
	for _, l := range labels {
		require.NoError(t, repo.Append(ctx, entity.NewFeedback("x", l, 0.6)))
	}

	counts, err = repo.CountBySentiment(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"positive": 3, "negative": 1, "neutral": 1}, counts)
}

func TestFeedbackRepository_ConcurrentAppends(t *testing.T) {
	repo := NewFeedbackRepository(setupDB(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.Append(ctx, entity.NewFeedback(fmt.Sprintf("worker %d", i), entity.SentimentNeutral, 0.4)))
		}(i)
	}
	wg.Wait()

	_, total, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)
}
