package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/entity"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/repository"
)

const batchSize = 100

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback log repository
func NewFeedbackRepository(db *gorm.DB) repository.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Append(ctx context.Context, feedback *entity.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) AppendBatch(ctx context.Context, feedback []*entity.Feedback) error {
	if len(feedback) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(feedback, batchSize).Error
	})
}

func (r *feedbackRepository) List(ctx context.Context, limit, offset int) ([]*entity.Feedback, int64, error) {
	var entries []*entity.Feedback
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Feedback{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *feedbackRepository) CountBySentiment(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Sentiment string
		Count     int64
	}

	err := r.db.WithContext(ctx).
		Model(&entity.Feedback{}).
		Select("sentiment, COUNT(*) AS count").
		Group("sentiment").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Sentiment] = row.Count
	}
	return counts, nil
}
