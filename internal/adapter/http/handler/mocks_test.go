package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/dataset"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/entity"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/usecase"
)

// MockTrainingUsecase is a mock implementation of TrainingUsecase
type MockTrainingUsecase struct {
	mock.Mock
}

func (m *MockTrainingUsecase) Train(ctx context.Context, table *dataset.Table) (*usecase.TrainOutput, error) {
	args := m.Called(ctx, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.TrainOutput), args.Error(1)
}

func (m *MockTrainingUsecase) TrainFile(ctx context.Context, path string) (*usecase.TrainOutput, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.TrainOutput), args.Error(1)
}

func (m *MockTrainingUsecase) ModelInfo(ctx context.Context) (*usecase.ModelInfoOutput, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ModelInfoOutput), args.Error(1)
}

// MockPredictionUsecase is a mock implementation of PredictionUsecase
type MockPredictionUsecase struct {
	mock.Mock
}

func (m *MockPredictionUsecase) Predict(ctx context.Context, input *usecase.PredictInput) (*usecase.PredictionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PredictionOutput), args.Error(1)
}

func (m *MockPredictionUsecase) PredictBatch(ctx context.Context, table *dataset.Table, opts ...usecase.BatchOption) (*entity.AggregateReport, error) {
	args := m.Called(ctx, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AggregateReport), args.Error(1)
}

func (m *MockPredictionUsecase) Evaluate(ctx context.Context, table *dataset.Table, opts ...usecase.BatchOption) (*entity.AggregateReport, error) {
	args := m.Called(ctx, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AggregateReport), args.Error(1)
}

// MockFeedbackUsecase is a mock implementation of FeedbackUsecase
type MockFeedbackUsecase struct {
	mock.Mock
}

func (m *MockFeedbackUsecase) List(ctx context.Context, limit, offset int) (*usecase.FeedbackListOutput, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.FeedbackListOutput), args.Error(1)
}

func (m *MockFeedbackUsecase) Stats(ctx context.Context) (*entity.AggregateReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AggregateReport), args.Error(1)
}
