// Package tfidf implements a fitted term-frequency / inverse-document-frequency
// vectorizer with a fixed vocabulary.
package tfidf

import (
	"errors"
	"math"
	"sort"

	"github.com/Abdulkalam-AIML/feedback-ai/internal/ml/textproc"
)

// Error definitions for fitting
var (
	ErrEmptyCorpus     = errors.New("cannot fit vectorizer on an empty corpus")
	ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain only stop words")
)

// SparseVector is a document row: Indices are strictly increasing column
// positions and Values the matching weights.
type SparseVector struct {
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
}

// Len returns the number of non-zero entries
func (v SparseVector) Len() int {
	return len(v.Indices)
}

// Vectorizer holds the vocabulary and IDF weights learned at fit time.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// Fit learns the vocabulary and smoothed IDF weights from texts.
func Fit(texts []string) (*Vectorizer, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyCorpus
	}

	df := make(map[string]int)
	for _, text := range texts {
		for term := range textproc.TermCounts(text) {
			df[term]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(texts))
	v := &Vectorizer{
		Vocabulary: make(map[string]int, len(terms)),
		IDF:        make([]float64, len(terms)),
	}
	for i, term := range terms {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return v, nil
}

// Dimensions returns the number of feature columns
func (v *Vectorizer) Dimensions() int {
	return len(v.IDF)
}

// Terms returns the vocabulary in column order.
func (v *Vectorizer) Terms() []string {
	terms := make([]string, len(v.IDF))
	for term, i := range v.Vocabulary {
		terms[i] = term
	}
	return terms
}

// TransformOne encodes a single document. Terms outside the vocabulary
// contribute nothing; a document with no known terms is the zero vector.
func (v *Vectorizer) TransformOne(text string) SparseVector {
	counts := textproc.TermCounts(text)

	tf := make(map[int]int, len(counts))
	indices := make([]int, 0, len(counts))
	for term, c := range counts {
		if idx, ok := v.Vocabulary[term]; ok {
			tf[idx] = c
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	var norm float64
	for i, idx := range indices {
		w := float64(tf[idx]) * v.IDF[idx]
		values[i] = w
		norm += w * w
	}

	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range values {
			values[i] /= norm
		}
	}

	return SparseVector{Indices: indices, Values: values}
}

// Transform encodes every document in order.
func (v *Vectorizer) Transform(texts []string) []SparseVector {
	rows := make([]SparseVector, len(texts))
	for i, text := range texts {
		rows[i] = v.TransformOne(text)
	}
	return rows
}
