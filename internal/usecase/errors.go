package usecase

import (
	"errors"
	"time"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/dataset"
)

// Error definitions shared by the sentiment usecases
var (
	ErrEmptyDataset      = dataset.ErrEmpty
	ErrUnsupportedFormat = dataset.ErrUnsupportedFormat
	ErrModelNotTrained   = errors.New("model not trained: train a model before predicting")
	ErrInvalidRequest    = errors.New("invalid request")
)

// SchemaError names the required columns a dataset is missing
type SchemaError = dataset.SchemaError

// formatTime renders t in UTC. Drivers may hand back stored timestamps in
// the local zone.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
