package usecase

import (
	"context"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/entity"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/repository"
)

// Page size bounds for List
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// FeedbackListOutput represents a page of the prediction log
type FeedbackListOutput struct {
	Feedback []*PredictionOutput `json:"feedback"`
	Total    int64               `json:"total"`
	Limit    int                 `json:"limit"`
	Offset   int                 `json:"offset"`
	HasMore  bool                `json:"has_more"`
}

// FeedbackUsecase defines the interface for reading the prediction log
type FeedbackUsecase interface {
	List(ctx context.Context, limit, offset int) (*FeedbackListOutput, error)
	Stats(ctx context.Context) (*entity.AggregateReport, error)
}

type feedbackUsecase struct {
	feedback repository.FeedbackRepository
}

// NewFeedbackUsecase creates a new feedback usecase
func NewFeedbackUsecase(feedback repository.FeedbackRepository) FeedbackUsecase {
	return &feedbackUsecase{feedback: feedback}
}

func (u *feedbackUsecase) List(ctx context.Context, limit, offset int) (*FeedbackListOutput, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	entries, total, err := u.feedback.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	outputs := make([]*PredictionOutput, len(entries))
	for i, fb := range entries {
		outputs[i] = toPredictionOutput(fb)
	}

	return &FeedbackListOutput{
		Feedback: outputs,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
		HasMore:  int64(offset+limit) < total,
	}, nil
}

// Stats aggregates the whole log the same way a batch report does
func (u *feedbackUsecase) Stats(ctx context.Context) (*entity.AggregateReport, error) {
	counts, err := u.feedback.CountBySentiment(ctx)
	if err != nil {
		return nil, err
	}
	return entity.NewAggregateReportFromCounts(counts), nil
}
