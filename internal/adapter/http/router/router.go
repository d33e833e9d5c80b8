package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/adapter/http/handler"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/adapter/http/middleware"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/domain/repository"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/usecase"
)

// Dependencies are the components the router exposes. DB and Redis may be
// nil; health checks then report them as not configured.
type Dependencies struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Models         repository.ModelRepository
	Training       usecase.TrainingUsecase
	Prediction     usecase.PredictionUsecase
	Feedback       usecase.FeedbackUsecase
	MaxUploadBytes int64
	Logger         *zap.Logger
}

// Setup creates and configures the Gin router
func Setup(deps *Dependencies) *gin.Engine {
	router := gin.New()
	if deps.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = deps.MaxUploadBytes
	}

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.CORS())
	router.Use(middleware.BodyLimit(deps.MaxUploadBytes))

	// Health endpoints
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Redis, deps.Models)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	sentimentHandler := handler.NewSentimentHandler(deps.Training, deps.Prediction)
	feedbackHandler := handler.NewFeedbackHandler(deps.Feedback)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		m := v1.Group("/model")
		{
			m.GET("", sentimentHandler.ModelInfo)
			m.POST("/train", sentimentHandler.Train)
			m.POST("/evaluate", sentimentHandler.Evaluate)
		}

		predict := v1.Group("/predict")
		{
			predict.POST("", sentimentHandler.Predict)
			predict.POST("/batch", sentimentHandler.PredictBatch)
		}

		feedback := v1.Group("/feedback")
		{
			feedback.GET("", feedbackHandler.List)
			feedback.GET("/stats", feedbackHandler.Stats)
		}
	}

	return router
}
