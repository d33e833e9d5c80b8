package repository

import (
	"context"
	"errors"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/ml/model"
)

// ErrModelNotFound is returned by Load when no artifact has been saved
var ErrModelNotFound = errors.New("model artifact not found")

// ModelRepository persists the fitted artifact as a single named blob.
// Save must replace any previous artifact atomically: a concurrent Load sees
// either the old or the new artifact in full.
type ModelRepository interface {
	// Save replaces the stored artifact
	Save(ctx context.Context, artifact *model.Artifact) error

	// Load reads the stored artifact from durable storage
	Load(ctx context.Context) (*model.Artifact, error)

	// Exists reports whether an artifact has been saved
	Exists(ctx context.Context) bool
}
