package linear

import "math"

// Sigmoid maps a decision score f to P(positive) = 1 / (1 + exp(A*f + B)).
type Sigmoid struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

func (s Sigmoid) Prob(f float64) float64 {
	z := s.A*f + s.B
	if z >= 0 {
		e := math.Exp(-z)
		return e / (1 + e)
	}
	return 1 / (1 + math.Exp(z))
}

// FitSigmoid fits A and B by Newton's method with backtracking on the
// regularized targets of Platt (1999), following Lin, Lin and Weng (2007).
func FitSigmoid(scores []float64, positives []bool) Sigmoid {
	const (
		maxIter = 100
		minStep = 1e-10
		sigma   = 1e-12
		eps     = 1e-5
	)

	var prior1, prior0 float64
	for _, p := range positives {
		if p {
			prior1++
		} else {
			prior0++
		}
	}
	hi := (prior1 + 1) / (prior1 + 2)
	lo := 1 / (prior0 + 2)
	targets := make([]float64, len(scores))
	for i, p := range positives {
		targets[i] = lo
		if p {
			targets[i] = hi
		}
	}

	objective := func(a, b float64) float64 {
		f := 0.0
		for i, s := range scores {
			z := s*a + b
			if z >= 0 {
				f += targets[i]*z + math.Log1p(math.Exp(-z))
			} else {
				f += (targets[i]-1)*z + math.Log1p(math.Exp(z))
			}
		}
		return f
	}

	a, b := 0.0, math.Log((prior0+1)/(prior1+1))
	fval := objective(a, b)

	for iter := 0; iter < maxIter; iter++ {
		h11, h22, h21 := sigma, sigma, 0.0
		g1, g2 := 0.0, 0.0
		for i, s := range scores {
			z := s*a + b
			var p, q float64
			if z >= 0 {
				e := math.Exp(-z)
				p = e / (1 + e)
				q = 1 / (1 + e)
			} else {
				e := math.Exp(z)
				p = 1 / (1 + e)
				q = e / (1 + e)
			}
			d2 := p * q
			h11 += s * s * d2
			h22 += d2
			h21 += s * d2
			d1 := targets[i] - p
			g1 += s * d1
			g2 += d1
		}
		if math.Abs(g1) < eps && math.Abs(g2) < eps {
			break
		}

		det := h11*h22 - h21*h21
		da := -(h22*g1 - h21*g2) / det
		db := -(-h21*g1 + h11*g2) / det
		gd := g1*da + g2*db

		step := 1.0
		for step >= minStep {
			na, nb := a+step*da, b+step*db
			nf := objective(na, nb)
			if nf < fval+1e-4*step*gd {
				a, b, fval = na, nb, nf
				break
			}
			step /= 2
		}
		if step < minStep {
			break
		}
	}
	return Sigmoid{A: a, B: b}
}
