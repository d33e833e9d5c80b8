package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/dataset"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/repository"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/infrastructure/metrics"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/ml/logreg"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/ml/model"
)

// TrainOutput describes a freshly trained model
type TrainOutput struct {
	SampleCount    int      `json:"sample_count"`
	Classes        []string `json:"classes"`
	VocabularySize int      `json:"vocabulary_size"`
	Iterations     int      `json:"iterations"`
	Converged      bool     `json:"converged"`
	TrainedAt      string   `json:"trained_at"`
	DurationMs     int64    `json:"duration_ms"`
}

// ModelInfoOutput describes the stored model
type ModelInfoOutput struct {
	Classes        []string       `json:"classes"`
	VocabularySize int            `json:"vocabulary_size"`
	SampleCount    int            `json:"sample_count"`
	ClassCounts    map[string]int `json:"class_counts"`
	Iterations     int            `json:"iterations"`
	Converged      bool           `json:"converged"`
	TrainedAt      string         `json:"trained_at"`
}

// TrainingUsecase defines the interface for model training
type TrainingUsecase interface {
	Train(ctx context.Context, table *dataset.Table) (*TrainOutput, error)
	TrainFile(ctx context.Context, path string) (*TrainOutput, error)
	ModelInfo(ctx context.Context) (*ModelInfoOutput, error)
}

type trainingUsecase struct {
	models repository.ModelRepository
	opts   logreg.Options
	logger *zap.Logger
}

// NewTrainingUsecase creates a new training usecase
func NewTrainingUsecase(models repository.ModelRepository, opts logreg.Options, logger *zap.Logger) TrainingUsecase {
	return &trainingUsecase{
		models: models,
		opts:   opts,
		logger: logger,
	}
}

// Train validates the table and replaces the stored model. Nothing is
// written unless every step succeeds.
func (u *trainingUsecase) Train(ctx context.Context, table *dataset.Table) (*TrainOutput, error) {
	start := time.Now()

	out, err := u.train(ctx, table)
	if err != nil {
		metrics.ObserveTraining(metrics.TrainingFailed, time.Since(start))
		u.logger.Warn("Training failed", zap.Error(err))
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.ObserveTraining(metrics.TrainingSucceeded, elapsed)
	out.DurationMs = elapsed.Milliseconds()

	u.logger.Info("Model trained",
		zap.Int("samples", out.SampleCount),
		zap.Strings("classes", out.Classes),
		zap.Int("vocabulary_size", out.VocabularySize),
		zap.Int("iterations", out.Iterations),
		zap.Bool("converged", out.Converged),
		zap.Duration("elapsed", elapsed),
	)

	return out, nil
}

func (u *trainingUsecase) train(ctx context.Context, table *dataset.Table) (*TrainOutput, error) {
	if table == nil || table.Len() == 0 {
		return nil, ErrEmptyDataset
	}

	normalized := &dataset.Table{
		Columns: dataset.NormalizeColumns(table.Columns),
		Rows:    table.Rows,
	}
	if err := normalized.Require(dataset.ColumnFeedback, dataset.ColumnSentiment); err != nil {
		return nil, err
	}

	texts, err := normalized.Column(dataset.ColumnFeedback)
	if err != nil {
		return nil, err
	}
	labels, err := normalized.Column(dataset.ColumnSentiment)
	if err != nil {
		return nil, err
	}

	artifact, err := model.Train(texts, labels, u.opts)
	if err != nil {
		return nil, err
	}

	if err := u.models.Save(ctx, artifact); err != nil {
		return nil, err
	}

	return &TrainOutput{
		SampleCount:    artifact.SampleCount,
		Classes:        artifact.Classes(),
		VocabularySize: artifact.Vectorizer.Dimensions(),
		Iterations:     artifact.Classifier.Iterations,
		Converged:      artifact.Classifier.Converged,
		TrainedAt:      formatTime(artifact.TrainedAt),
	}, nil
}

func (u *trainingUsecase) TrainFile(ctx context.Context, path string) (*TrainOutput, error) {
	table, err := dataset.Open(path)
	if err != nil {
		metrics.ObserveTraining(metrics.TrainingFailed, 0)
		u.logger.Warn("Failed to read training dataset", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	u.logger.Info("Training from dataset", zap.String("path", path), zap.Int("rows", table.Len()))

	return u.Train(ctx, table)
}

func (u *trainingUsecase) ModelInfo(ctx context.Context) (*ModelInfoOutput, error) {
	artifact, err := loadArtifact(ctx, u.models)
	if err != nil {
		return nil, err
	}

	return &ModelInfoOutput{
		Classes:        artifact.Classes(),
		VocabularySize: artifact.Vectorizer.Dimensions(),
		SampleCount:    artifact.SampleCount,
		ClassCounts:    artifact.ClassCounts,
		Iterations:     artifact.Classifier.Iterations,
		Converged:      artifact.Classifier.Converged,
		TrainedAt:      formatTime(artifact.TrainedAt),
	}, nil
}
