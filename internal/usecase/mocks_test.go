package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/dataset"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/entity"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/ml/logreg"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/ml/model"
)

// MockModelRepository is a mock implementation of ModelRepository
type MockModelRepository struct {
	mock.Mock
}

func (m *MockModelRepository) Save(ctx context.Context, artifact *model.Artifact) error {
	args := m.Called(ctx, artifact)
	return args.Error(0)
}

func (m *MockModelRepository) Load(ctx context.Context) (*model.Artifact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artifact), args.Error(1)
}

func (m *MockModelRepository) Exists(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

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

func trainingTable() *dataset.Table {
	return &dataset.Table{
		Columns: []string{"feedback", "sentiment"},
		Rows: [][]string{
			{"excellent fantastic service", "positive"},
			{"fantastic staff excellent", "positive"},
			{"excellent delivery", "positive"},
			{"terrible awful delay", "negative"},
			{"awful refund terrible", "negative"},
			{"terrible delay", "negative"},
			{"average ordinary packaging", "neutral"},
			{"ordinary average", "neutral"},
			{"average delivery packaging", "neutral"},
		},
	}
}

func trainedArtifact(t *testing.T) *model.Artifact {
	t.Helper()
	table := trainingTable()
	texts, err := table.Column(dataset.ColumnFeedback)
	require.NoError(t, err)
	labels, err := table.Column(dataset.ColumnSentiment)
	require.NoError(t, err)

	artifact, err := model.Train(texts, labels, logreg.DefaultOptions())
	require.NoError(t, err)
	return artifact
}
