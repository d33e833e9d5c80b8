package repository

import (
	"context"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/entity"
)

// FeedbackRepository defines the append-only prediction log
type FeedbackRepository interface {
	// Append stores a single entry and assigns its ID
	Append(ctx context.Context, feedback *entity.Feedback) error

	// AppendBatch stores entries in order, all or none
	AppendBatch(ctx context.Context, feedback []*entity.Feedback) error

	// List retrieves entries newest first with pagination
	List(ctx context.Context, limit, offset int) ([]*entity.Feedback, int64, error)

	// CountBySentiment counts entries per sentiment label
	CountBySentiment(ctx context.Context) (map[string]int64, error)
}
