// Package rediscache caches feedback log aggregates in Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/entity"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/repository"
)

// Redis keys
const (
	// StatsKey holds the cached per-sentiment counts
	StatsKey = "feedback:stats:counts"
	// GenerationKey is bumped on every append. A stats fill is only stored
	// if the generation it started under is still current.
	GenerationKey = "feedback:stats:generation"
)

var errStaleStats = errors.New("stats changed while counting")

type cachedFeedbackRepository struct {
	next   repository.FeedbackRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedFeedbackRepository wraps next so CountBySentiment is served from
// Redis until the next append or until ttl expires. Redis failures fall
// through to next. Counts read while an append lands are returned but not
// cached.
func NewCachedFeedbackRepository(next repository.FeedbackRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) repository.FeedbackRepository {
	return &cachedFeedbackRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *cachedFeedbackRepository) Append(ctx context.Context, feedback *entity.Feedback) error {
	if err := r.next.Append(ctx, feedback); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedFeedbackRepository) AppendBatch(ctx context.Context, feedback []*entity.Feedback) error {
	if err := r.next.AppendBatch(ctx, feedback); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedFeedbackRepository) List(ctx context.Context, limit, offset int) ([]*entity.Feedback, int64, error) {
	return r.next.List(ctx, limit, offset)
}

func (r *cachedFeedbackRepository) CountBySentiment(ctx context.Context) (map[string]int64, error) {
	raw, err := r.client.Get(ctx, StatsKey).Bytes()
	switch {
	case err == nil:
		var counts map[string]int64
		if jsonErr := json.Unmarshal(raw, &counts); jsonErr == nil {
			return counts, nil
		}
		r.logger.Warn("Discarding malformed cached stats")
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("Failed to read cached stats", zap.Error(err))
	}

	gen, genErr := r.generation(ctx, r.client)

	counts, err := r.next.CountBySentiment(ctx)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		r.store(ctx, gen, counts)
	}

	return counts, nil
}

// store caches counts unless an append bumped the generation after gen
// was read.
func (r *cachedFeedbackRepository) store(ctx context.Context, gen int64, counts map[string]int64) {
	data, err := json.Marshal(counts)
	if err != nil {
		return
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := r.generation(ctx, tx)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleStats
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, StatsKey, data, r.ttl)
			return nil
		})
		return err
	}, GenerationKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleStats), errors.Is(err, redis.TxFailedErr):
		r.logger.Debug("Skipping stale stats")
	default:
		r.logger.Warn("Failed to cache stats", zap.Error(err))
	}
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *cachedFeedbackRepository) generation(ctx context.Context, c getter) (int64, error) {
	gen, err := c.Get(ctx, GenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (r *cachedFeedbackRepository) invalidate(ctx context.Context) {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey)
		pipe.Del(ctx, StatsKey)
		return nil
	})
	if err != nil {
		r.logger.Warn("Failed to invalidate cached stats", zap.Error(err))
	}
}
