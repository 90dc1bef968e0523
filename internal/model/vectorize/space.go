package vectorize

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

type Weighting string

const (
	Counts Weighting = "counts"
	TFIDF  Weighting = "tfidf"
)

func ParseWeighting(s string) (Weighting, error) {
	switch Weighting(s) {
	case Counts, TFIDF:
		return Weighting(s), nil
	}
	return "", fmt.Errorf("unknown weighting %q", s)
}

// Space is a frozen vocabulary with optional IDF weights. Terms are sorted so
// that column order does not depend on document order.
type Space struct {
	Weighting Weighting
	Terms     []string
	IDF       []float64

	index map[string]int
}

// Fit builds the vocabulary and document frequencies from tokenized docs.
func Fit(docs [][]string, w Weighting) *Space {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	var idf []float64
	if w == TFIDF {
		n := float64(len(docs))
		idf = make([]float64, len(terms))
		for i, term := range terms {
			idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
		}
	}
	return Restore(w, terms, idf)
}

// Restore rebuilds a Space from saved terms and IDF weights.
func Restore(w Weighting, terms []string, idf []float64) *Space {
	s := &Space{Weighting: w, Terms: terms, IDF: idf, index: make(map[string]int, len(terms))}
	for i, term := range terms {
		s.index[term] = i
	}
	return s
}

func (s *Space) Dim() int {
	return len(s.Terms)
}

// Transform maps tokens onto the vocabulary. Unknown tokens get no weight.
func (s *Space) Transform(tokens []string) []float64 {
	vec := make([]float64, len(s.Terms))
	for _, tok := range tokens {
		if idx, ok := s.index[tok]; ok {
			vec[idx]++
		}
	}
	if s.Weighting != TFIDF {
		return vec
	}

	floats.Mul(vec, s.IDF)
	if n := floats.Norm(vec, 2); n > 0 {
		floats.Scale(1/n, vec)
	}
	return vec
}

func (s *Space) TransformAll(docs [][]string) [][]float64 {
	out := make([][]float64, len(docs))
	for i, doc := range docs {
		out[i] = s.Transform(doc)
	}
	return out
}
