package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/ml/model"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/ml/tfidf"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/usecase"
)

// Error codes returned in the response envelope
const (
	CodeSchemaError       = "SCHEMA_ERROR"
	CodeEmptyDataset      = "EMPTY_DATASET"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeModelNotTrained   = "MODEL_NOT_TRAINED"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodePayloadTooLarge   = "PAYLOAD_TOO_LARGE"
	CodeInternalError     = "INTERNAL_ERROR"
)

// ErrPayloadTooLarge is returned when a request body exceeds the upload limit
var ErrPayloadTooLarge = errors.New("request body too large")

// bodyTooLarge converts a body read error caused by the upload limit into
// ErrPayloadTooLarge. Other errors come back as nil.
func bodyTooLarge(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: limit is %d bytes", ErrPayloadTooLarge, maxErr.Limit)
	}
	return nil
}

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
}

// SchemaDetails lists the columns behind a schema error
type SchemaDetails struct {
	Expected []string `json:"expected"`
	Missing  []string `json:"missing"`
	Found    []string `json:"found"`
}

// MapUsecaseError maps usecase errors to HTTP error responses.
// Schema errors keep their message so the client sees which columns were found.
func MapUsecaseError(err error) ErrorResponse {
	var schemaErr *usecase.SchemaError

	switch {
	case errors.As(err, &schemaErr):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       CodeSchemaError,
			Message:    schemaErr.Error(),
			Details: &SchemaDetails{
				Expected: schemaErr.Expected,
				Missing:  schemaErr.Missing,
				Found:    schemaErr.Found,
			},
		}
	case errors.Is(err, ErrPayloadTooLarge):
		return ErrorResponse{
			StatusCode: http.StatusRequestEntityTooLarge,
			Code:       CodePayloadTooLarge,
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrEmptyDataset):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       CodeEmptyDataset,
			Message:    "dataset is empty",
		}
	case errors.Is(err, usecase.ErrUnsupportedFormat):
		return ErrorResponse{
			StatusCode: http.StatusUnsupportedMediaType,
			Code:       CodeUnsupportedFormat,
			Message:    "unsupported file format: upload a .csv file",
		}
	case errors.Is(err, usecase.ErrModelNotTrained):
		return ErrorResponse{
			StatusCode: http.StatusConflict,
			Code:       CodeModelNotTrained,
			Message:    "model not trained",
		}
	case errors.Is(err, tfidf.ErrEmptyVocabulary), errors.Is(err, tfidf.ErrEmptyCorpus):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       CodeInvalidRequest,
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrInvalidRequest):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       CodeInvalidRequest,
			Message:    "invalid request",
		}
	case errors.Is(err, model.ErrInvalidArtifact):
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       CodeInternalError,
			Message:    "stored model is invalid: retrain the model",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       CodeInternalError,
			Message:    "internal server error",
		}
	}
}

// HandleUsecaseError handles a usecase error by sending an appropriate HTTP response.
// Internal errors are attached to the context so the request logger records them.
func HandleUsecaseError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	if errResp.StatusCode >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	respondErrorInfo(c, errResp.StatusCode, &ErrorInfo{
		Code:    errResp.Code,
		Message: errResp.Message,
		Details: errResp.Details,
	})
}

// HandleInvalidRequest handles a generic invalid request error.
func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, CodeInvalidRequest, message)
}
