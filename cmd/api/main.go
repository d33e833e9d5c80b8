package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/adapter/http/router"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/adapter/watcher"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/app"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/infrastructure/config"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/infrastructure/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Storage, cache and usecases
	a, err := app.New(cfg, log)
	if err != nil {
		log.Error("Failed to initialize application", zap.Error(err))
		return err
	}
	defer a.Close()

	// Stops the watcher and the server on SIGINT or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Train once from the configured dataset if no model exists yet
	if cfg.Training.DatasetPath != "" && !a.Models.Exists(ctx) {
		if _, err := a.Training.TrainFile(ctx, cfg.Training.DatasetPath); err != nil {
			log.Warn("Startup training failed, serving without a model", zap.Error(err))
		}
	}

	// Retrain when datasets change
	if cfg.Training.WatchDir != "" {
		w, err := watcher.NewDatasetWatcher(a.Training, cfg.Training.Debounce, log)
		if err != nil {
			return fmt.Errorf("failed to create dataset watcher: %w", err)
		}
		defer func() { _ = w.Close() }()

		go func() {
			if err := w.Watch(ctx, cfg.Training.WatchDir); err != nil {
				log.Error("Dataset watcher stopped", zap.Error(err))
			}
		}()
	}

	// Setup router
	r := router.Setup(&router.Dependencies{
		DB:             a.DB,
		Redis:          a.Redis,
		Models:         a.Models,
		Training:       a.Training,
		Prediction:     a.Prediction,
		Feedback:       a.Feedback,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		Logger:         log,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Starting server",
			zap.String("address", addr),
			zap.Bool("model_ready", a.Models.Exists(ctx)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	stop()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
