// Package watcher retrains the model when dataset files change on disk.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/usecase"
)

// Trainer trains a model from a dataset file
type Trainer interface {
	TrainFile(ctx context.Context, path string) (*usecase.TrainOutput, error)
}

// DatasetWatcher watches a directory for .csv datasets. A burst of writes to
// the same file triggers one training run once the file has been quiet for
// the debounce interval. Runs are serialized.
type DatasetWatcher struct {
	watcher  *fsnotify.Watcher
	trainer  Trainer
	debounce time.Duration
	logger   *zap.Logger
}

// NewDatasetWatcher creates a new dataset watcher
func NewDatasetWatcher(trainer Trainer, debounce time.Duration, logger *zap.Logger) (*DatasetWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = 2 * time.Second
	}

	return &DatasetWatcher{
		watcher:  w,
		trainer:  trainer,
		debounce: debounce,
		logger:   logger,
	}, nil
}

// Watch monitors dir until ctx is cancelled. It returns an error only when
// dir cannot be watched.
func (w *DatasetWatcher) Watch(ctx context.Context, dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.logger.Info("Watching dataset directory", zap.String("dir", dir))

	ready := make(chan string, 16)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !isDataset(event.Name) || !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			path := event.Name
			if t, exists := timers[path]; exists {
				t.Stop()
			}
			timers[path] = time.AfterFunc(w.debounce, func() {
				select {
				case ready <- path:
				case <-ctx.Done():
				}
			})

		case path := <-ready:
			delete(timers, path)
			w.train(ctx, path)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Dataset watcher error", zap.Error(err))
		}
	}
}

// Close stops the underlying watcher
func (w *DatasetWatcher) Close() error {
	return w.watcher.Close()
}

func (w *DatasetWatcher) train(ctx context.Context, path string) {
	out, err := w.trainer.TrainFile(ctx, path)
	if err != nil {
		w.logger.Error("Retraining from dataset failed", zap.String("path", path), zap.Error(err))
		return
	}
	w.logger.Info("Retrained from dataset",
		zap.String("path", path),
		zap.Int("samples", out.SampleCount),
	)
}

func isDataset(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}
