package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/dataset"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/entity"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/repository"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/infrastructure/metrics"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/ml/model"
)

// PredictInput represents a single text to classify
type PredictInput struct {
	Feedback string `json:"feedback" form:"feedback" binding:"required"`
}

// PredictionOutput represents the label assigned to one text
type PredictionOutput struct {
	ID         uint64  `json:"id"`
	Feedback   string  `json:"feedback"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Emoji      string  `json:"emoji"`
	Timestamp  string  `json:"timestamp"`
}

// BatchOption configures PredictBatch and Evaluate
type BatchOption func(*batchOptions)

type batchOptions struct {
	progress func(done, total int)
}

// WithProgress reports each labeled row to fn
func WithProgress(fn func(done, total int)) BatchOption {
	return func(o *batchOptions) {
		o.progress = fn
	}
}

// PredictionUsecase defines the interface for inference
type PredictionUsecase interface {
	Predict(ctx context.Context, input *PredictInput) (*PredictionOutput, error)
	PredictBatch(ctx context.Context, table *dataset.Table, opts ...BatchOption) (*entity.AggregateReport, error)
	Evaluate(ctx context.Context, table *dataset.Table, opts ...BatchOption) (*entity.AggregateReport, error)
}

type predictionUsecase struct {
	models   repository.ModelRepository
	feedback repository.FeedbackRepository
	logger   *zap.Logger
}

// NewPredictionUsecase creates a new prediction usecase
func NewPredictionUsecase(models repository.ModelRepository, feedback repository.FeedbackRepository, logger *zap.Logger) PredictionUsecase {
	return &predictionUsecase{
		models:   models,
		feedback: feedback,
		logger:   logger,
	}
}

func (u *predictionUsecase) Predict(ctx context.Context, input *PredictInput) (*PredictionOutput, error) {
	if input == nil || strings.TrimSpace(input.Feedback) == "" {
		return nil, ErrInvalidRequest
	}

	artifact, err := loadArtifact(ctx, u.models)
	if err != nil {
		return nil, err
	}

	p := artifact.Predict(input.Feedback)
	fb := entity.NewFeedback(input.Feedback, p.Sentiment, p.Confidence)

	if err := u.feedback.Append(ctx, fb); err != nil {
		return nil, err
	}
	metrics.ObservePrediction(p.Sentiment)

	return toPredictionOutput(fb), nil
}

// PredictBatch labels every row of the feedback column in order and logs
// them in a single write. A missing column fails before any row is labeled.
func (u *predictionUsecase) PredictBatch(ctx context.Context, table *dataset.Table, opts ...BatchOption) (*entity.AggregateReport, error) {
	artifact, err := loadArtifact(ctx, u.models)
	if err != nil {
		return nil, err
	}

	texts, err := requireTexts(table, dataset.ColumnFeedback)
	if err != nil {
		return nil, err
	}

	predictions := predictAll(artifact, texts, opts)

	entries := make([]*entity.Feedback, len(texts))
	labels := make([]string, len(texts))
	for i, p := range predictions {
		entries[i] = entity.NewFeedback(texts[i], p.Sentiment, p.Confidence)
		labels[i] = p.Sentiment
	}

	if err := u.feedback.AppendBatch(ctx, entries); err != nil {
		return nil, err
	}

	for _, l := range labels {
		metrics.ObservePrediction(l)
	}
	metrics.ObserveBatch(metrics.BatchPredict, len(texts))

	report := entity.NewAggregateReport(labels)
	u.logger.Info("Batch labeled",
		zap.Int("rows", report.Total),
		zap.String("overall", report.Overall),
	)

	return report, nil
}

// Evaluate reports the predicted label distribution of a labeled dataset
// without logging anything.
func (u *predictionUsecase) Evaluate(ctx context.Context, table *dataset.Table, opts ...BatchOption) (*entity.AggregateReport, error) {
	artifact, err := loadArtifact(ctx, u.models)
	if err != nil {
		return nil, err
	}

	// TODO: score predictions against the sentiment column (accuracy and per-class precision/recall).
	texts, err := requireTexts(table, dataset.ColumnFeedback, dataset.ColumnSentiment)
	if err != nil {
		return nil, err
	}

	predictions := predictAll(artifact, texts, opts)

	labels := make([]string, len(predictions))
	for i, p := range predictions {
		labels[i] = p.Sentiment
	}
	metrics.ObserveBatch(metrics.BatchEvaluate, len(texts))

	return entity.NewAggregateReport(labels), nil
}

func requireTexts(table *dataset.Table, columns ...string) ([]string, error) {
	if table == nil {
		return nil, &SchemaError{Expected: columns, Missing: columns}
	}
	if err := table.Require(columns...); err != nil {
		return nil, err
	}
	return table.Column(dataset.ColumnFeedback)
}

func predictAll(artifact *model.Artifact, texts []string, opts []BatchOption) []model.Prediction {
	o := &batchOptions{}
	for _, opt := range opts {
		opt(o)
	}

	out := make([]model.Prediction, len(texts))
	for i, text := range texts {
		out[i] = artifact.Predict(text)
		if o.progress != nil {
			o.progress(i+1, len(texts))
		}
	}
	return out
}

// loadArtifact reads the stored model on every call so a retrain is picked
// up by the next request.
func loadArtifact(ctx context.Context, models repository.ModelRepository) (*model.Artifact, error) {
	artifact, err := models.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrModelNotFound) {
			return nil, ErrModelNotTrained
		}
		return nil, err
	}
	return artifact, nil
}

func toPredictionOutput(fb *entity.Feedback) *PredictionOutput {
	return &PredictionOutput{
		ID:         fb.ID,
		Feedback:   fb.Text,
		Sentiment:  fb.Sentiment,
		Confidence: entity.Round2(fb.Confidence),
		Emoji:      entity.Emoji(fb.Sentiment),
		Timestamp:  formatTime(fb.Timestamp),
	}
}
