// Package client talks to a running sentiment service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/adapter/http/middleware"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/usecase"
)

// PredictRequest represents a request to label one text
type PredictRequest struct {
	Feedback string `json:"feedback"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// APIError is a structured error returned by the service
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("sentiment service returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("sentiment service returned status %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SentimentClient is an HTTP client for the sentiment service
type SentimentClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSentimentClient creates a new sentiment service client
func NewSentimentClient(baseURL string, timeout time.Duration) *SentimentClient {
	return &SentimentClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict labels a single text
func (c *SentimentClient) Predict(ctx context.Context, text, requestID string) (*usecase.PredictionOutput, error) {
	body, err := json.Marshal(PredictRequest{Feedback: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set(middleware.RequestIDHeader, requestID)
	}

	var result usecase.PredictionOutput
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ModelInfo describes the model the service is serving
func (c *SentimentClient) ModelInfo(ctx context.Context) (*usecase.ModelInfoOutput, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/model", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var result usecase.ModelInfoOutput
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health checks the service health
func (c *SentimentClient) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &result, &APIError{StatusCode: resp.StatusCode, Message: result.Status}
	}

	return &result, nil
}

func (c *SentimentClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
