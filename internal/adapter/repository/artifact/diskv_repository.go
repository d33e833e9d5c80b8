// Package artifact stores the fitted model as a single gzip-compressed blob.
package artifact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/repository"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/ml/model"
)

const tempDirName = ".tmp"

type diskvRepository struct {
	store *diskv.Diskv
	key   string
}

// NewDiskvRepository stores the artifact named name under dir. Writes go to
// a temp file inside dir and are renamed over the previous artifact, so
// readers never observe a partial write. Reads always hit the disk.
func NewDiskvRepository(dir, name string) (repository.ModelRepository, error) {
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid artifact name %q", name)
	}

	tempDir := filepath.Join(dir, tempDirName)
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}

	store := diskv.New(diskv.Options{
		BasePath:     dir,
		TempDir:      tempDir,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 0,
		Compression:  diskv.NewGzipCompression(),
	})

	return &diskvRepository{store: store, key: name}, nil
}

func (r *diskvRepository) Save(_ context.Context, a *model.Artifact) error {
	data, err := model.Encode(a)
	if err != nil {
		return err
	}
	if err := r.store.WriteStream(r.key, bytes.NewReader(data), true); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

func (r *diskvRepository) Load(_ context.Context) (*model.Artifact, error) {
	data, err := r.store.Read(r.key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, repository.ErrModelNotFound
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return model.Decode(data)
}

func (r *diskvRepository) Exists(_ context.Context) bool {
	return r.store.Has(r.key)
}
