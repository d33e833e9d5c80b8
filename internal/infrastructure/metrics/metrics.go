// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "feedback"

// Batch modes
const (
	BatchPredict  = "predict"
	BatchEvaluate = "evaluate"
)

// Training outcomes
const (
	TrainingSucceeded = "success"
	TrainingFailed    = "failure"
)

var (
	predictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Predictions made, by sentiment label.",
	}, []string{"sentiment"})

	trainingRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "training_runs_total",
		Help:      "Training runs, by outcome.",
	}, []string{"status"})

	trainingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "training_duration_seconds",
		Help:      "Time spent fitting the model.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
	})

	batchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_rows",
		Help:      "Rows per batch prediction or evaluation, by mode.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{"mode"})

	batches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batches_total",
		Help:      "Batch predictions and evaluations, by mode.",
	}, []string{"mode"})
)

// ObservePrediction counts one prediction
func ObservePrediction(sentiment string) {
	predictions.WithLabelValues(sentiment).Inc()
}

// ObserveTraining records a finished training run
func ObserveTraining(status string, elapsed time.Duration) {
	trainingRuns.WithLabelValues(status).Inc()
	if status == TrainingSucceeded {
		trainingDuration.Observe(elapsed.Seconds())
	}
}

// ObserveBatch records one batch request of the given mode and its size
func ObserveBatch(mode string, rows int) {
	batches.WithLabelValues(mode).Inc()
	batchSize.WithLabelValues(mode).Observe(float64(rows))
}
