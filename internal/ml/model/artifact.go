// Package model pairs a fitted vectorizer with the classifier trained on its
// output. The two halves are always fitted, serialized and loaded together.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/ml/logreg"
	"github.com/Abdulkalam-AIML/feedback-ai/internal/ml/tfidf"
)

// ErrInvalidArtifact is returned for artifacts whose halves do not match
var ErrInvalidArtifact = errors.New("invalid model artifact")

// Prediction is the label chosen for one text
type Prediction struct {
	Sentiment  string
	Confidence float64
}

// Artifact is the immutable fitted (vectorizer, classifier) pair.
type Artifact struct {
	Vectorizer  *tfidf.Vectorizer  `json:"vectorizer"`
	Classifier  *logreg.Classifier `json:"classifier"`
	TrainedAt   time.Time          `json:"trained_at"`
	SampleCount int                `json:"sample_count"`
	ClassCounts map[string]int     `json:"class_counts"`
}

// Train fits the vectorizer on texts and the classifier on the transformed rows.
func Train(texts, labels []string, opts logreg.Options) (*Artifact, error) {
	vec, err := tfidf.Fit(texts)
	if err != nil {
		return nil, err
	}

	clf, err := logreg.Fit(vec.Transform(texts), labels, vec.Dimensions(), opts)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, l := range labels {
		counts[l]++
	}

	return &Artifact{
		Vectorizer:  vec,
		Classifier:  clf,
		TrainedAt:   time.Now().UTC(),
		SampleCount: len(texts),
		ClassCounts: counts,
	}, nil
}

// Validate checks that the classifier was fitted on this vectorizer's
// feature space.
func (a *Artifact) Validate() error {
	if a.Vectorizer == nil || a.Classifier == nil {
		return fmt.Errorf("%w: missing vectorizer or classifier", ErrInvalidArtifact)
	}
	if a.Vectorizer.Dimensions() != a.Classifier.Features {
		return fmt.Errorf("%w: vectorizer has %d features, classifier expects %d",
			ErrInvalidArtifact, a.Vectorizer.Dimensions(), a.Classifier.Features)
	}
	if len(a.Vectorizer.Vocabulary) != a.Vectorizer.Dimensions() {
		return fmt.Errorf("%w: vocabulary size %d does not match %d idf weights",
			ErrInvalidArtifact, len(a.Vectorizer.Vocabulary), a.Vectorizer.Dimensions())
	}
	k := len(a.Classifier.Labels)
	if k == 0 || len(a.Classifier.Weights) != k || len(a.Classifier.Intercepts) != k {
		return fmt.Errorf("%w: inconsistent class parameters", ErrInvalidArtifact)
	}
	for _, w := range a.Classifier.Weights {
		if len(w) != a.Classifier.Features {
			return fmt.Errorf("%w: weight row has %d features, expected %d",
				ErrInvalidArtifact, len(w), a.Classifier.Features)
		}
	}
	return nil
}

// Predict labels a single text.
func (a *Artifact) Predict(text string) Prediction {
	label, confidence := a.Classifier.Predict(a.Vectorizer.TransformOne(text))
	return Prediction{Sentiment: label, Confidence: confidence}
}

// PredictProba returns per-class probabilities in Classes order.
func (a *Artifact) PredictProba(text string) []float64 {
	return a.Classifier.PredictProba(a.Vectorizer.TransformOne(text))
}

// Classes returns the classifier's class list
func (a *Artifact) Classes() []string {
	return a.Classifier.Classes()
}

// Encode serializes an artifact after validating it.
func Encode(a *Artifact) ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to encode artifact: %w", err)
	}
	return data, nil
}

// Decode deserializes and validates an artifact.
func Decode(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}
