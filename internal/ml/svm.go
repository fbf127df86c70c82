package ml

import (
	"log"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const (
	smoTolerance     = 1e-3
	smoMaxIterations = 10_000_000
	minCurvature     = 1e-12
)

// SVC is a soft-margin support vector classifier with an RBF kernel, trained
// with sequential minimal optimisation using maximal violating pair selection.
type SVC struct {
	// C bounds each dual coefficient.
	C float64
	// Gamma is the RBF width. Zero means 1 / (nFeatures * Var(X)).
	Gamma float64

	gamma   float64
	support [][]float64
	coef    []float64
	rho     float64
	width   int
	fitted  bool
}

// NewSVC returns an RBF classifier with C=1 and the scaled default gamma.
func NewSVC() *SVC {
	return &SVC{C: 1}
}

// Fit solves the dual problem and keeps the support vectors.
func (m *SVC) Fit(X [][]float64, y []float64) error {
	if err := validate(X, y, true); err != nil {
		return err
	}
	n := len(X)
	m.width = len(X[0])
	m.gamma = m.Gamma
	if m.gamma <= 0 {
		m.gamma = scaleGamma(X)
	}

	signs := make([]float64, n)
	for i, v := range y {
		if v == 1 {
			signs[i] = 1
		} else {
			signs[i] = -1
		}
	}

	kernel := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			kernel.SetSym(i, j, rbf(m.gamma, X[i], X[j]))
		}
	}
	q := func(i, j int) float64 { return signs[i] * signs[j] * kernel.At(i, j) }

	alpha := make([]float64, n)
	grad := make([]float64, n)
	for i := range grad {
		grad[i] = -1
	}

	iter := 0
	for ; iter < smoMaxIterations; iter++ {
		i, j, gap := m.selectPair(signs, alpha, grad)
		if i < 0 || j < 0 || gap < smoTolerance {
			break
		}
		oldI, oldJ := alpha[i], alpha[j]
		m.updatePair(i, j, signs, alpha, grad, q)

		di, dj := alpha[i]-oldI, alpha[j]-oldJ
		for k := 0; k < n; k++ {
			grad[k] += q(k, i)*di + q(k, j)*dj
		}
	}
	if iter == smoMaxIterations {
		log.Printf("Warning: SVC reached %d iterations without converging", smoMaxIterations)
	}

	m.rho = m.computeRho(signs, alpha, grad)
	m.support = m.support[:0]
	m.coef = m.coef[:0]
	for i, a := range alpha {
		if a > 0 {
			m.support = append(m.support, append([]float64(nil), X[i]...))
			m.coef = append(m.coef, a*signs[i])
		}
	}
	m.fitted = true
	return nil
}

// selectPair returns the maximal violating pair and the optimality gap.
func (m *SVC) selectPair(signs, alpha, grad []float64) (int, int, float64) {
	i, j := -1, -1
	gMax, gMin := math.Inf(-1), math.Inf(1)
	for t := range alpha {
		v := -signs[t] * grad[t]
		if m.inUpper(signs[t], alpha[t]) && v > gMax {
			gMax, i = v, t
		}
		if m.inLower(signs[t], alpha[t]) && v < gMin {
			gMin, j = v, t
		}
	}
	return i, j, gMax - gMin
}

func (m *SVC) inUpper(sign, a float64) bool {
	return (sign > 0 && a < m.C) || (sign < 0 && a > 0)
}

func (m *SVC) inLower(sign, a float64) bool {
	return (sign > 0 && a > 0) || (sign < 0 && a < m.C)
}

// updatePair solves the two-variable sub-problem analytically and clips the
// result to the box [0, C].
func (m *SVC) updatePair(i, j int, signs, alpha, grad []float64, q func(int, int) float64) {
	c := m.C
	if signs[i] != signs[j] {
		quad := q(i, i) + q(j, j) + 2*q(i, j)
		if quad <= 0 {
			quad = minCurvature
		}
		delta := (-grad[i] - grad[j]) / quad
		diff := alpha[i] - alpha[j]
		alpha[i] += delta
		alpha[j] += delta
		if diff > 0 {
			if alpha[j] < 0 {
				alpha[j], alpha[i] = 0, diff
			}
		} else if alpha[i] < 0 {
			alpha[i], alpha[j] = 0, -diff
		}
		if diff > 0 {
			if alpha[i] > c {
				alpha[i], alpha[j] = c, c-diff
			}
		} else if alpha[j] > c {
			alpha[j], alpha[i] = c, c+diff
		}
		return
	}

	quad := q(i, i) + q(j, j) - 2*q(i, j)
	if quad <= 0 {
		quad = minCurvature
	}
	delta := (grad[i] - grad[j]) / quad
	sum := alpha[i] + alpha[j]
	alpha[i] -= delta
	alpha[j] += delta
	if sum > c {
		if alpha[i] > c {
			alpha[i], alpha[j] = c, sum-c
		}
	} else if alpha[j] < 0 {
		alpha[j], alpha[i] = 0, sum
	}
	if sum > c {
		if alpha[j] > c {
			alpha[j], alpha[i] = c, sum-c
		}
	} else if alpha[i] < 0 {
		alpha[i], alpha[j] = 0, sum
	}
}

// computeRho averages y*G over free vectors, falling back to the midpoint of
// the feasible interval when every coefficient sits at a bound.
func (m *SVC) computeRho(signs, alpha, grad []float64) float64 {
	ub, lb := math.Inf(1), math.Inf(-1)
	var sum float64
	free := 0
	for i, a := range alpha {
		yg := signs[i] * grad[i]
		switch {
		case a >= m.C:
			if signs[i] < 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		case a <= 0:
			if signs[i] > 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		default:
			free++
			sum += yg
		}
	}
	if free > 0 {
		return sum / float64(free)
	}
	return (ub + lb) / 2
}

// Decision returns the signed distance proxy for a single row.
func (m *SVC) Decision(row []float64) float64 {
	var f float64
	for k, sv := range m.support {
		f += m.coef[k] * rbf(m.gamma, sv, row)
	}
	return f - m.rho
}

// Predict returns 1 for rows on the positive side of the boundary.
func (m *SVC) Predict(X [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if err := checkWidth(X, m.width); err != nil {
		return nil, err
	}
	out := make([]float64, len(X))
	for i, row := range X {
		if m.Decision(row) > 0 {
			out[i] = 1
		}
	}
	return out, nil
}

func rbf(gamma float64, a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return math.Exp(-gamma * d * d)
}

// scaleGamma computes 1 / (nFeatures * Var(X)) using the population variance
// over every element of X.
func scaleGamma(X [][]float64) float64 {
	flat := make([]float64, 0, len(X)*len(X[0]))
	for _, row := range X {
		flat = append(flat, row...)
	}
	_, variance := stat.MeanVariance(flat, nil)
	if n := float64(len(flat)); n > 1 {
		variance *= (n - 1) / n
	} else {
		variance = 0
	}
	if variance == 0 || math.IsNaN(variance) {
		return 1
	}
	return 1 / (float64(len(X[0])) * variance)
}
