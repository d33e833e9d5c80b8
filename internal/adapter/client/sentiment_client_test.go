package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, body map[string]interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestSentimentClient_Predict(t *testing.T) {
	t.Run("successful prediction", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/predict", r.URL.Path)
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "req-123", r.Header.Get("X-Request-ID"))

			var req PredictRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "excellent staff", req.Feedback)

			writeEnvelope(t, w, http.StatusOK, map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"id":         7,
					"feedback":   "excellent staff",
					"sentiment":  "positive",
					"confidence": 0.91,
					"emoji":      "😊",
				},
			})
		}))
		defer server.Close()

		client := NewSentimentClient(server.URL+"/", 5*time.Second)
		result, err := client.Predict(context.Background(), "excellent staff", "req-123")

		require.NoError(t, err)
		assert.Equal(t, uint64(7), result.ID)
		assert.Equal(t, "positive", result.Sentiment)
		assert.Equal(t, 0.91, result.Confidence)
		assert.Equal(t, "😊", result.Emoji)
	})

	t.Run("structured error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeEnvelope(t, w, http.StatusConflict, map[string]interface{}{
				"success": false,
				"error":   map[string]string{"code": "MODEL_NOT_TRAINED", "message": "model not trained"},
			})
		}))
		defer server.Close()

		client := NewSentimentClient(server.URL, 5*time.Second)
		_, err := client.Predict(context.Background(), "test", "")

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
		assert.Equal(t, "MODEL_NOT_TRAINED", apiErr.Code)
		assert.Contains(t, err.Error(), "409")
	})

	t.Run("plain text error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, err := w.Write([]byte("upstream down"))
			require.NoError(t, err)
		}))
		defer server.Close()

		client := NewSentimentClient(server.URL, 5*time.Second)
		_, err := client.Predict(context.Background(), "test", "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "upstream down")
	})

	t.Run("connection error", func(t *testing.T) {
		client := NewSentimentClient("http://localhost:99999", 1*time.Second)
		_, err := client.Predict(context.Background(), "test", "")

		assert.Error(t, err)
	})
}

func TestSentimentClient_ModelInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/model", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"classes":         []string{"negative", "positive"},
				"vocabulary_size": 12,
				"sample_count":    40,
			},
		})
	}))
	defer server.Close()

	client := NewSentimentClient(server.URL, 5*time.Second)
	info, err := client.ModelInfo(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"negative", "positive"}, info.Classes)
	assert.Equal(t, 12, info.VocabularySize)
	assert.Equal(t, 40, info.SampleCount)
}

func TestSentimentClient_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			writeEnvelope(t, w, http.StatusOK, map[string]interface{}{
				"status":     "healthy",
				"components": map[string]string{"database": "ok", "model": "ok"},
			})
		}))
		defer server.Close()

		client := NewSentimentClient(server.URL, 5*time.Second)
		health, err := client.Health(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, "ok", health.Components["model"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeEnvelope(t, w, http.StatusServiceUnavailable, map[string]interface{}{
				"status":     "unhealthy",
				"components": map[string]string{"database": "error: closed"},
			})
		}))
		defer server.Close()

		client := NewSentimentClient(server.URL, 5*time.Second)
		health, err := client.Health(context.Background())

		assert.Error(t, err)
		require.NotNil(t, health)
		assert.Equal(t, "error: closed", health.Components["database"])
	})
}
