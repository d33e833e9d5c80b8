// Package logreg implements multinomial (softmax) logistic regression over
// sparse TF-IDF rows.
package logreg

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/ml/tfidf"
)

// Default training parameters
const (
	DefaultMaxIterations = 1000
	DefaultC             = 1.0
	DefaultTolerance     = 1e-4
)

// Error definitions for fitting
var (
	ErrNoSamples      = errors.New("no training samples")
	ErrLengthMismatch = errors.New("features and labels differ in length")
	ErrInvalidOption  = errors.New("invalid training option")
)

// Options controls the optimizer
type Options struct {
	// MaxIterations caps full-batch gradient steps.
	MaxIterations int
	// C is the inverse L2 regularization strength; intercepts are not penalized.
	C float64
	// Tolerance stops training once every gradient component is below it.
	Tolerance float64
}

// DefaultOptions returns the reference training parameters
func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		C:             DefaultC,
		Tolerance:     DefaultTolerance,
	}
}

// Classifier is a fitted linear model with one weight row per class.
type Classifier struct {
	Labels     []string    `json:"classes"`
	Weights    [][]float64 `json:"weights"`
	Intercepts []float64   `json:"intercepts"`
	Features   int         `json:"features"`
	Iterations int         `json:"iterations"`
	Converged  bool        `json:"converged"`
}

// Fit trains a classifier on rows with the given feature dimensionality.
// Classes are the distinct labels in lexicographic order. A single distinct
// label yields a model that always predicts it with probability 1.
func Fit(rows []tfidf.SparseVector, labels []string, features int, opts Options) (*Classifier, error) {
	if len(rows) == 0 {
		return nil, ErrNoSamples
	}
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("%w: %d rows, %d labels", ErrLengthMismatch, len(rows), len(labels))
	}
	if opts.MaxIterations <= 0 || opts.C <= 0 || opts.Tolerance <= 0 {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidOption, opts)
	}

	classes := distinct(labels)
	clf := &Classifier{
		Labels:     classes,
		Weights:    make([][]float64, len(classes)),
		Intercepts: make([]float64, len(classes)),
		Features:   features,
	}
	for k := range clf.Weights {
		clf.Weights[k] = make([]float64, features)
	}

	if len(classes) == 1 {
		clf.Converged = true
		return clf, nil
	}

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	targets := make([]int, len(labels))
	for i, l := range labels {
		targets[i] = index[l]
	}

	clf.train(rows, targets, opts)
	return clf, nil
}

func (c *Classifier) train(rows []tfidf.SparseVector, targets []int, opts Options) {
	n := float64(len(rows))
	k := len(c.Labels)
	lambda := 1 / (opts.C * n)

	// Softmax loss curvature is bounded by ||x||^2 / 2 per sample, with the
	// intercept contributing a constant 1 to ||x||^2.
	var maxSq float64
	for _, row := range rows {
		sq := floats.Dot(row.Values, row.Values) + 1
		if sq > maxSq {
			maxSq = sq
		}
	}
	step := 1 / (maxSq/2 + lambda)

	gradW := make([][]float64, k)
	for j := range gradW {
		gradW[j] = make([]float64, c.Features)
	}
	gradB := make([]float64, k)
	probs := make([]float64, k)

	for iter := 1; iter <= opts.MaxIterations; iter++ {
		for j := range gradW {
			copy(gradW[j], c.Weights[j])
			floats.Scale(lambda, gradW[j])
		}
		for j := range gradB {
			gradB[j] = 0
		}

		for i, row := range rows {
			c.probabilities(row, probs)
			for j := 0; j < k; j++ {
				diff := probs[j]
				if j == targets[i] {
					diff--
				}
				diff /= n
				gradB[j] += diff
				for p, idx := range row.Indices {
					gradW[j][idx] += diff * row.Values[p]
				}
			}
		}

		maxGrad := floats.Norm(gradB, math.Inf(1))
		for j := range gradW {
			if g := floats.Norm(gradW[j], math.Inf(1)); g > maxGrad {
				maxGrad = g
			}
		}

		c.Iterations = iter
		if maxGrad < opts.Tolerance {
			c.Converged = true
			return
		}

		for j := 0; j < k; j++ {
			floats.AddScaled(c.Weights[j], -step, gradW[j])
		}
		floats.AddScaled(c.Intercepts, -step, gradB)
	}
}

// Classes returns the fit-time class list in model order.
func (c *Classifier) Classes() []string {
	out := make([]string, len(c.Labels))
	copy(out, c.Labels)
	return out
}

// PredictProba returns the posterior probability of every class.
func (c *Classifier) PredictProba(x tfidf.SparseVector) []float64 {
	probs := make([]float64, len(c.Labels))
	c.probabilities(x, probs)
	return probs
}

// Predict returns the most probable class and its probability.
func (c *Classifier) Predict(x tfidf.SparseVector) (string, float64) {
	probs := c.PredictProba(x)
	best := floats.MaxIdx(probs)
	return c.Labels[best], probs[best]
}

func (c *Classifier) probabilities(x tfidf.SparseVector, dst []float64) {
	if len(dst) == 1 {
		dst[0] = 1
		return
	}

	for j := range dst {
		score := c.Intercepts[j]
		w := c.Weights[j]
		for p, idx := range x.Indices {
			if idx < len(w) {
				score += w[idx] * x.Values[p]
			}
		}
		dst[j] = score
	}

	lse := floats.LogSumExp(dst)
	for j := range dst {
		dst[j] = math.Exp(dst[j] - lse)
	}
}

func distinct(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	var out []string
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
