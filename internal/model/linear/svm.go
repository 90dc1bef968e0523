package linear

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

type SVMOptions struct {
	// Alpha is the L2 regularization strength.
	Alpha  float64
	Epochs int
	Seed   int64
}

func DefaultSVMOptions() SVMOptions {
	return SVMOptions{Alpha: 1e-3, Epochs: 15, Seed: 42}
}

// CalibratedSVM is a one-vs-rest linear SVM trained by hinge loss SGD. Its
// decision scores are mapped to probabilities by one Platt sigmoid per class,
// fitted in a second pass over the training vectors.
type CalibratedSVM struct {
	params
	sigmoids []Sigmoid
	opts     SVMOptions
}

func NewCalibratedSVM(opts SVMOptions) *CalibratedSVM {
	return &CalibratedSVM{opts: opts}
}

func CalibratedSVMFactory() Classifier {
	return NewCalibratedSVM(DefaultSVMOptions())
}

func (m *CalibratedSVM) Fit(x [][]float64, y []string) error {
	if err := validate(x, y); err != nil {
		return err
	}
	classes, targets := encode(y)
	dim, k := len(x[0]), len(classes)

	m.classes = classes
	m.weights = zeros(k, dim)
	m.bias = make([]float64, k)
	m.sigmoids = make([]Sigmoid, k)
	if k == 1 {
		return nil
	}

	for c := 0; c < k; c++ {
		labels := make([]float64, len(x))
		for i, t := range targets {
			labels[i] = -1
			if t == c {
				labels[i] = 1
			}
		}
		rng := rand.New(rand.NewSource(m.opts.Seed + int64(c)))
		m.bias[c] = m.sgd(m.weights[c], x, labels, rng)
	}

	scores := make([]float64, len(x))
	for c := 0; c < k; c++ {
		positives := make([]bool, len(x))
		for i, xi := range x {
			scores[i] = floats.Dot(m.weights[c], xi) + m.bias[c]
			positives[i] = targets[i] == c
		}
		m.sigmoids[c] = FitSigmoid(scores, positives)
	}
	return nil
}

// sgd trains w in place on a binary problem and returns the intercept. The
// step size follows the 1/(alpha*(t0+t)) schedule.
func (m *CalibratedSVM) sgd(w []float64, x [][]float64, labels []float64, rng *rand.Rand) float64 {
	alpha := m.opts.Alpha
	typw := math.Sqrt(1 / math.Sqrt(alpha))
	t0 := 1 / (alpha * typw)

	bias := 0.0
	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}

	t := 0.0
	for epoch := 0; epoch < m.opts.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, i := range order {
			eta := 1 / (alpha * (t0 + t))
			margin := labels[i] * (floats.Dot(w, x[i]) + bias)
			floats.Scale(1-eta*alpha, w)
			if margin < 1 {
				floats.AddScaled(w, eta*labels[i], x[i])
				bias += eta * labels[i]
			}
			t++
		}
	}
	return bias
}

func (m *CalibratedSVM) PredictProba(x []float64) []float64 {
	k := len(m.classes)
	if k == 1 {
		return []float64{1}
	}

	proba := make([]float64, k)
	for c, score := range m.decision(x) {
		proba[c] = m.sigmoids[c].Prob(score)
	}
	sum := floats.Sum(proba)
	if sum <= 0 {
		for c := range proba {
			proba[c] = 1 / float64(k)
		}
		return proba
	}
	floats.Scale(1/sum, proba)
	return proba
}

func (m *CalibratedSVM) State() State {
	s := m.state(KindCalibratedSVM)
	s.Sigmoids = m.sigmoids
	return s
}
