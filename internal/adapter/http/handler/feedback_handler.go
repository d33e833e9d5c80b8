package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/usecase"
)

// FeedbackHandler serves the prediction log
type FeedbackHandler struct {
	feedbackUC usecase.FeedbackUsecase
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackUC usecase.FeedbackUsecase) *FeedbackHandler {
	return &FeedbackHandler{feedbackUC: feedbackUC}
}

// List handles GET /api/v1/feedback
func (h *FeedbackHandler) List(c *gin.Context) {
	p := ParsePagination(c)

	output, err := h.feedbackUC.List(c.Request.Context(), p.Limit, p.Offset)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// Stats handles GET /api/v1/feedback/stats
func (h *FeedbackHandler) Stats(c *gin.Context) {
	report, err := h.feedbackUC.Stats(c.Request.Context())
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, report)
}
