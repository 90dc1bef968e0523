package linear

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type LogisticOptions struct {
	// C is the inverse L2 regularization strength.
	C            float64
	LearningRate float64
	MaxIter      int
	Tolerance    float64
}

func DefaultLogisticOptions() LogisticOptions {
	return LogisticOptions{C: 1.0, LearningRate: 0.5, MaxIter: 500, Tolerance: 1e-6}
}

// Logistic is multinomial logistic regression trained with full-batch
// gradient descent, so training is deterministic.
type Logistic struct {
	params
	opts LogisticOptions
}

func NewLogistic(opts LogisticOptions) *Logistic {
	return &Logistic{opts: opts}
}

func LogisticFactory() Classifier {
	return NewLogistic(DefaultLogisticOptions())
}

func (m *Logistic) Fit(x [][]float64, y []string) error {
	if err := validate(x, y); err != nil {
		return err
	}
	classes, targets := encode(y)
	n, dim, k := len(x), len(x[0]), len(classes)

	m.classes = classes
	m.weights = zeros(k, dim)
	m.bias = make([]float64, k)
	if k == 1 {
		return nil
	}

	gradW := zeros(k, dim)
	gradB := make([]float64, k)
	l2 := 1 / (m.opts.C * float64(n))

	for iter := 0; iter < m.opts.MaxIter; iter++ {
		for c := range gradW {
			floats.ScaleTo(gradW[c], l2, m.weights[c])
		}
		for c := range gradB {
			gradB[c] = 0
		}

		for i, xi := range x {
			p := softmax(m.decision(xi))
			for c := 0; c < k; c++ {
				d := p[c]
				if targets[i] == c {
					d -= 1
				}
				d /= float64(n)
				floats.AddScaled(gradW[c], d, xi)
				gradB[c] += d
			}
		}

		step := 0.0
		for c := 0; c < k; c++ {
			floats.AddScaled(m.weights[c], -m.opts.LearningRate, gradW[c])
			m.bias[c] -= m.opts.LearningRate * gradB[c]
			step = math.Max(step, floats.Norm(gradW[c], math.Inf(1)))
			step = math.Max(step, math.Abs(gradB[c]))
		}
		if step < m.opts.Tolerance {
			break
		}
	}
	return nil
}

func (m *Logistic) PredictProba(x []float64) []float64 {
	if len(m.classes) == 1 {
		return []float64{1}
	}
	return softmax(m.decision(x))
}

func (m *Logistic) State() State {
	return m.state(KindLogistic)
}

func softmax(z []float64) []float64 {
	out := make([]float64, len(z))
	top := floats.Max(z)
	sum := 0.0
	for i, v := range z {
		out[i] = math.Exp(v - top)
		sum += out[i]
	}
	floats.Scale(1/sum, out)
	return out
}
