package rediscache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/entity"
)

// MockFeedbackRepository is a mock implementation of FeedbackRepository
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Append(ctx context.Context, feedback *entity.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepository) AppendBatch(ctx context.Context, feedback []*entity.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepository) List(ctx context.Context, limit, offset int) ([]*entity.Feedback, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Feedback), args.Get(1).(int64), args.Error(2)
}

func (m *MockFeedbackRepository) CountBySentiment(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func setup(t *testing.T) (*MockFeedbackRepository, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return new(MockFeedbackRepository), mr, client
}

func TestCachedFeedbackRepository_CountBySentiment(t *testing.T) {
	ctx := context.Background()

	t.Run("second call is served from cache", func(t *testing.T) {
		next, mr, client := setup(t)
		repo := NewCachedFeedbackRepository(next, client, time.Minute, zap.NewNop())

		counts := map[string]int64{"positive": 2, "negative": 1}
		next.On("CountBySentiment", mock.Anything).Return(counts, nil).Once()

		first, err := repo.CountBySentiment(ctx)
		require.NoError(t, err)
		second, err := repo.CountBySentiment(ctx)
		require.NoError(t, err)

		assert.Equal(t, counts, first)
		assert.Equal(t, counts, second)
		assert.True(t, mr.Exists(StatsKey))
		next.AssertNumberOfCalls(t, "CountBySentiment", 1)
	})

	t.Run("append invalidates cache", func(t *testing.T) {
		next, mr, client := setup(t)
		repo := NewCachedFeedbackRepository(next, client, time.Minute, zap.NewNop())

		next.On("CountBySentiment", mock.Anything).Return(map[string]int64{"positive": 1}, nil)
		next.On("Append", mock.Anything, mock.AnythingOfType("*entity.Feedback")).Return(nil)

		_, err := repo.CountBySentiment(ctx)
		require.NoError(t, err)
		require.True(t, mr.Exists(StatsKey))

		require.NoError(t, repo.Append(ctx, entity.NewFeedback("ok", "positive", 0.7)))
		assert.False(t, mr.Exists(StatsKey))
	})

	t.Run("append during a count is not overwritten", func(t *testing.T) {
		next, mr, client := setup(t)
		repo := NewCachedFeedbackRepository(next, client, time.Minute, zap.NewNop())

		next.On("Append", mock.Anything, mock.AnythingOfType("*entity.Feedback")).Return(nil)
		next.On("CountBySentiment", mock.Anything).
			Run(func(mock.Arguments) {
				// the append commits after the database was counted
				require.NoError(t, repo.Append(ctx, entity.NewFeedback("awful", "negative", 0.8)))
			}).
			Return(map[string]int64{"positive": 1}, nil).Once()
		next.On("CountBySentiment", mock.Anything).
			Return(map[string]int64{"positive": 1, "negative": 1}, nil).Once()

		stale, err := repo.CountBySentiment(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"positive": 1}, stale)
		assert.False(t, mr.Exists(StatsKey))

		fresh, err := repo.CountBySentiment(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), fresh["negative"])
		assert.True(t, mr.Exists(StatsKey))
	})

	t.Run("append bumps the generation", func(t *testing.T) {
		next, mr, client := setup(t)
		repo := NewCachedFeedbackRepository(next, client, time.Minute, zap.NewNop())
		next.On("Append", mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, repo.Append(ctx, entity.NewFeedback("excellent", "positive", 0.9)))
		require.NoError(t, repo.Append(ctx, entity.NewFeedback("excellent", "positive", 0.9)))

		gen, err := mr.Get(GenerationKey)
		require.NoError(t, err)
		assert.Equal(t, "2", gen)
	})

	t.Run("batch append invalidates cache", func(t *testing.T) {
		next, mr, client := setup(t)
		repo := NewCachedFeedbackRepository(next, client, time.Minute, zap.NewNop())

		require.NoError(t, mr.Set(StatsKey, `{"positive":1}`))
		next.On("AppendBatch", mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, repo.AppendBatch(ctx, []*entity.Feedback{entity.NewFeedback("ok", "positive", 0.7)}))
		assert.False(t, mr.Exists(StatsKey))
	})

	t.Run("failed append keeps cache", func(t *testing.T) {
		next, mr, client := setup(t)
		repo := NewCachedFeedbackRepository(next, client, time.Minute, zap.NewNop())

		require.NoError(t, mr.Set(StatsKey, `{"positive":1}`))
		next.On("Append", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		assert.Error(t, repo.Append(ctx, entity.NewFeedback("ok", "positive", 0.7)))
		assert.True(t, mr.Exists(StatsKey))
	})

	t.Run("falls through when redis is down", func(t *testing.T) {
		next, mr, client := setup(t)
		repo := NewCachedFeedbackRepository(next, client, time.Minute, zap.NewNop())
		mr.Close()

		next.On("CountBySentiment", mock.Anything).Return(map[string]int64{"neutral": 4}, nil)

		counts, err := repo.CountBySentiment(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"neutral": 4}, counts)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		next, mr, client := setup(t)
		repo := NewCachedFeedbackRepository(next, client, time.Second, zap.NewNop())

		next.On("CountBySentiment", mock.Anything).Return(map[string]int64{"positive": 1}, nil)

		_, err := repo.CountBySentiment(ctx)
		require.NoError(t, err)
		mr.FastForward(2 * time.Second)
		_, err = repo.CountBySentiment(ctx)
		require.NoError(t, err)

		next.AssertNumberOfCalls(t, "CountBySentiment", 2)
	})
}

func TestCachedFeedbackRepository_List(t *testing.T) {
	next, _, client := setup(t)
	repo := NewCachedFeedbackRepository(next, client, time.Minute, zap.NewNop())

	entries := []*entity.Feedback{entity.NewFeedback("a", "positive", 0.9)}
	next.On("List", mock.Anything, 10, 0).Return(entries, int64(1), nil)

	got, total, err := repo.List(context.Background(), 10, 0)

	require.NoError(t, err)
	assert.Equal(t, entries, got)
	assert.Equal(t, int64(1), total)
}
