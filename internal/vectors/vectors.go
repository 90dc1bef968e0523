package vectors

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var ErrUnknownWord = errors.New("word not in vocabulary")

// Table is a read-only word embedding table.
type Table interface {
	Contains(word string) bool
	// Similarity is the cosine similarity of two in-vocabulary words.
	Similarity(a, b string) (float64, error)
	// Distance is the word mover's distance between two word sequences.
	// Out-of-vocabulary words are ignored; it is +Inf when either side has
	// no known word left.
	Distance(a, b []string) float64
}

type KeyedVectors struct {
	words   []string
	index   map[string]int
	vectors [][]float64
	norms   []float64
	dim     int
}

func NewKeyedVectors(dim int) *KeyedVectors {
	return &KeyedVectors{index: make(map[string]int), dim: dim}
}

// Add stores vec for word, replacing an existing entry.
func (kv *KeyedVectors) Add(word string, vec []float64) error {
	if kv.dim == 0 {
		kv.dim = len(vec)
	}
	if len(vec) != kv.dim || kv.dim == 0 {
		return fmt.Errorf("vector for %q has dimension %d, want %d", word, len(vec), kv.dim)
	}
	v := make([]float64, len(vec))
	copy(v, vec)

	if i, ok := kv.index[word]; ok {
		kv.vectors[i] = v
		kv.norms[i] = floats.Norm(v, 2)
		return nil
	}
	kv.index[word] = len(kv.words)
	kv.words = append(kv.words, word)
	kv.vectors = append(kv.vectors, v)
	kv.norms = append(kv.norms, floats.Norm(v, 2))
	return nil
}

func (kv *KeyedVectors) Dim() int {
	return kv.dim
}

func (kv *KeyedVectors) Len() int {
	return len(kv.words)
}

// Words returns the vocabulary in insertion order.
func (kv *KeyedVectors) Words() []string {
	return kv.words
}

func (kv *KeyedVectors) Vector(word string) ([]float64, bool) {
	i, ok := kv.index[word]
	if !ok {
		return nil, false
	}
	return kv.vectors[i], true
}

func (kv *KeyedVectors) Contains(word string) bool {
	_, ok := kv.index[word]
	return ok
}

func (kv *KeyedVectors) Similarity(a, b string) (float64, error) {
	i, ok := kv.index[a]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWord, a)
	}
	j, ok := kv.index[b]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWord, b)
	}
	if kv.norms[i] == 0 || kv.norms[j] == 0 {
		return 0, nil
	}
	return floats.Dot(kv.vectors[i], kv.vectors[j]) / (kv.norms[i] * kv.norms[j]), nil
}

func (kv *KeyedVectors) Distance(a, b []string) float64 {
	a, b = kv.known(a), kv.known(b)
	if len(a) == 0 || len(b) == 0 {
		return math.Inf(1)
	}

	wa, da := bow(a)
	wb, db := bow(b)
	if len(wa) == 1 && len(wb) == 1 && wa[0] == wb[0] {
		return 0
	}

	cost := make([][]float64, len(wa))
	for i, x := range wa {
		cost[i] = make([]float64, len(wb))
		vx, _ := kv.Vector(x)
		for j, y := range wb {
			vy, _ := kv.Vector(y)
			cost[i][j] = floats.Distance(vx, vy, 2)
		}
	}
	return transport(da, db, cost)
}

func (kv *KeyedVectors) known(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if kv.Contains(w) {
			out = append(out, w)
		}
	}
	return out
}

// bow returns distinct words in first-seen order with normalized frequencies.
func bow(words []string) ([]string, []float64) {
	index := make(map[string]int)
	var distinct []string
	var weights []float64
	for _, w := range words {
		i, ok := index[w]
		if !ok {
			i = len(distinct)
			index[w] = i
			distinct = append(distinct, w)
			weights = append(weights, 0)
		}
		weights[i]++
	}
	floats.Scale(1/float64(len(words)), weights)
	return distinct, weights
}
