package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/usecase"
)

// SentimentHandler handles training and prediction requests
type SentimentHandler struct {
	trainingUC   usecase.TrainingUsecase
	predictionUC usecase.PredictionUsecase
}

// NewSentimentHandler creates a new sentiment handler
func NewSentimentHandler(trainingUC usecase.TrainingUsecase, predictionUC usecase.PredictionUsecase) *SentimentHandler {
	return &SentimentHandler{
		trainingUC:   trainingUC,
		predictionUC: predictionUC,
	}
}

// Train handles POST /api/v1/model/train
func (h *SentimentHandler) Train(c *gin.Context) {
	table, err := ReadUploadedTable(c)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	output, err := h.trainingUC.Train(c.Request.Context(), table)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, output)
}

// ModelInfo handles GET /api/v1/model
func (h *SentimentHandler) ModelInfo(c *gin.Context) {
	output, err := h.trainingUC.ModelInfo(c.Request.Context())
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// Predict handles POST /api/v1/predict with a form or JSON body
func (h *SentimentHandler) Predict(c *gin.Context) {
	var input usecase.PredictInput
	if err := c.ShouldBind(&input); err != nil {
		if tooLarge := bodyTooLarge(err); tooLarge != nil {
			HandleUsecaseError(c, tooLarge)
			return
		}
		HandleInvalidRequest(c, "feedback is required")
		return
	}

	output, err := h.predictionUC.Predict(c.Request.Context(), &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// PredictBatch handles POST /api/v1/predict/batch
func (h *SentimentHandler) PredictBatch(c *gin.Context) {
	table, err := ReadUploadedTable(c)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	report, err := h.predictionUC.PredictBatch(c.Request.Context(), table)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, report)
}

// Evaluate handles POST /api/v1/model/evaluate
func (h *SentimentHandler) Evaluate(c *gin.Context) {
	table, err := ReadUploadedTable(c)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	report, err := h.predictionUC.Evaluate(c.Request.Context(), table)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, report)
}
