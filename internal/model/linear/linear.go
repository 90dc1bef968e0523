package linear

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

const (
	KindLogistic      = "logistic"
	KindCalibratedSVM = "calibrated_svm"
)

// Classifier is a linear model over dense feature vectors. PredictProba
// returns one probability per class, aligned with Classes.
type Classifier interface {
	Fit(x [][]float64, y []string) error
	PredictProba(x []float64) []float64
	Classes() []string
	State() State
}

// Factory builds an untrained classifier.
type Factory func() Classifier

// State holds learned parameters. Sigmoids is only set for calibrated models.
type State struct {
	Kind     string      `json:"kind"`
	Classes  []string    `json:"classes"`
	Weights  [][]float64 `json:"weights"`
	Bias     []float64   `json:"bias"`
	Sigmoids []Sigmoid   `json:"sigmoids,omitempty"`
}

func Restore(s State) (Classifier, error) {
	if len(s.Weights) != len(s.Bias) {
		return nil, fmt.Errorf("corrupt %s state: %d weight rows, %d biases", s.Kind, len(s.Weights), len(s.Bias))
	}
	switch s.Kind {
	case KindLogistic:
		return &Logistic{params: params{classes: s.Classes, weights: s.Weights, bias: s.Bias}, opts: DefaultLogisticOptions()}, nil
	case KindCalibratedSVM:
		if len(s.Sigmoids) != len(s.Weights) {
			return nil, fmt.Errorf("corrupt %s state: %d sigmoids for %d classes", s.Kind, len(s.Sigmoids), len(s.Weights))
		}
		return &CalibratedSVM{params: params{classes: s.Classes, weights: s.Weights, bias: s.Bias}, sigmoids: s.Sigmoids, opts: DefaultSVMOptions()}, nil
	}
	return nil, fmt.Errorf("unknown classifier kind %q", s.Kind)
}

// FactoryFor returns the default factory for a classifier kind.
func FactoryFor(kind string) (Factory, error) {
	switch kind {
	case KindLogistic:
		return LogisticFactory, nil
	case KindCalibratedSVM:
		return CalibratedSVMFactory, nil
	}
	return nil, fmt.Errorf("unknown classifier kind %q", kind)
}

// Argmax returns the index of the largest value, the first one on ties.
func Argmax(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

type params struct {
	classes []string
	weights [][]float64
	bias    []float64
}

func (p *params) Classes() []string {
	return p.classes
}

func (p *params) decision(x []float64) []float64 {
	scores := make([]float64, len(p.weights))
	for k, w := range p.weights {
		scores[k] = floats.Dot(w, x) + p.bias[k]
	}
	return scores
}

func (p *params) state(kind string) State {
	return State{Kind: kind, Classes: p.classes, Weights: p.weights, Bias: p.bias}
}

func validate(x [][]float64, y []string) error {
	if len(x) == 0 {
		return errors.New("no training samples")
	}
	if len(x) != len(y) {
		return fmt.Errorf("got %d samples and %d labels", len(x), len(y))
	}
	return nil
}

// encode returns sorted distinct classes and each label's class index.
func encode(y []string) ([]string, []int) {
	seen := make(map[string]struct{})
	for _, label := range y {
		seen[label] = struct{}{}
	}
	classes := make([]string, 0, len(seen))
	for label := range seen {
		classes = append(classes, label)
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	targets := make([]int, len(y))
	for i, label := range y {
		targets[i] = index[label]
	}
	return classes, targets
}

func zeros(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}
