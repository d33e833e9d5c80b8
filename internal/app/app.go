// Package app wires storage, caches and usecases from configuration. Both
// the API server and the CLI build on it.
package app

import (
	"fmt"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/adapter/repository/artifact"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/adapter/repository/rediscache"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/adapter/repository/sqlstore"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/repository"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/infrastructure/cache"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/infrastructure/config"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/infrastructure/database"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/ml/logreg"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/usecase"
)

// App holds the wired components
type App struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Models     repository.ModelRepository
	Training   usecase.TrainingUsecase
	Prediction usecase.PredictionUsecase
	Feedback   usecase.FeedbackUsecase

	log *zap.Logger
}

// Option configures New
type Option func(*options)

type options struct {
	redis bool
}

// WithoutRedis skips the stats cache entirely
func WithoutRedis() Option {
	return func(o *options) {
		o.redis = false
	}
}

// New connects storage and builds the usecases. Redis is optional: when it
// cannot be reached the service runs without the stats cache.
func New(cfg *config.Config, log *zap.Logger, opts ...Option) (*App, error) {
	o := &options{redis: true}
	for _, opt := range opts {
		opt(o)
	}

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	if err := database.AutoMigrate(db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	models, err := artifact.NewDiskvRepository(cfg.Model.Dir, cfg.Model.Name)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to open model store: %w", err)
	}
	log.Info("Model store ready", zap.String("path", filepath.Join(cfg.Model.Dir, cfg.Model.Name)))

	a := &App{
		DB:     db,
		Models: models,
		log:    log,
	}

	feedbackRepo := sqlstore.NewFeedbackRepository(db)
	if o.redis {
		client, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
		} else {
			log.Info("Connected to Redis")
			a.Redis = client
			feedbackRepo = rediscache.NewCachedFeedbackRepository(feedbackRepo, client, cfg.Redis.StatsTTL, log)
		}
	}

	a.Training = usecase.NewTrainingUsecase(models, TrainingOptions(&cfg.Model), log)
	a.Prediction = usecase.NewPredictionUsecase(models, feedbackRepo, log)
	a.Feedback = usecase.NewFeedbackUsecase(feedbackRepo)

	return a, nil
}

// TrainingOptions maps model configuration onto optimizer options,
// falling back to defaults for unset values.
func TrainingOptions(cfg *config.ModelConfig) logreg.Options {
	opts := logreg.DefaultOptions()
	if cfg.MaxIterations > 0 {
		opts.MaxIterations = cfg.MaxIterations
	}
	if cfg.C > 0 {
		opts.C = cfg.C
	}
	if cfg.Tolerance > 0 {
		opts.Tolerance = cfg.Tolerance
	}
	return opts
}

// Close releases database and Redis connections
func (a *App) Close() {
	closeDB(a.DB)
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}
