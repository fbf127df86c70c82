package ml

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// LogisticRegression is an L2-regularised binary logistic regression with an
// unpenalised intercept, minimised with L-BFGS.
type LogisticRegression struct {
	// C is the inverse regularisation strength.
	C float64
	// MaxIterations bounds the number of L-BFGS major iterations.
	MaxIterations int

	weights   []float64
	intercept float64
	fitted    bool
}

// NewLogisticRegression returns a classifier with C=1 and 100 iterations.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{C: 1, MaxIterations: 100}
}

// Fit estimates the weights and intercept.
func (m *LogisticRegression) Fit(X [][]float64, y []float64) error {
	if err := validate(X, y, true); err != nil {
		return err
	}
	nFeatures := len(X[0])

	// Parameters are laid out as [w_0 .. w_{d-1}, b].
	objective := func(params []float64) float64 {
		w, b := params[:nFeatures], params[nFeatures]
		loss := 0.5 * floats.Dot(w, w)
		for i, row := range X {
			z := floats.Dot(w, row) + b
			loss += m.C * (softplus(z) - y[i]*z)
		}
		return loss
	}
	gradient := func(grad, params []float64) {
		w, b := params[:nFeatures], params[nFeatures]
		copy(grad[:nFeatures], w)
		grad[nFeatures] = 0
		for i, row := range X {
			r := m.C * (sigmoid(floats.Dot(w, row)+b) - y[i])
			floats.AddScaled(grad[:nFeatures], r, row)
			grad[nFeatures] += r
		}
	}

	problem := optimize.Problem{Func: objective, Grad: gradient}
	settings := &optimize.Settings{
		MajorIterations:   m.MaxIterations,
		GradientThreshold: 1e-4,
	}
	initial := make([]float64, nFeatures+1)

	res, err := optimize.Minimize(problem, initial, settings, &optimize.LBFGS{})
	if err != nil {
		if res == nil {
			return fmt.Errorf("logistic regression did not converge: %w", err)
		}
		log.Printf("Warning: logistic regression stopped early: %v", err)
	}

	m.weights = append([]float64(nil), res.X[:nFeatures]...)
	m.intercept = res.X[nFeatures]
	m.fitted = true
	return nil
}

// Predict returns 1 for rows with a positive decision value and 0 otherwise.
func (m *LogisticRegression) Predict(X [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if err := checkWidth(X, len(m.weights)); err != nil {
		return nil, err
	}
	out := make([]float64, len(X))
	for i, row := range X {
		if floats.Dot(m.weights, row)+m.intercept > 0 {
			out[i] = 1
		}
	}
	return out, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// softplus computes log(1+exp(z)) without overflow.
func softplus(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}
	return math.Log1p(math.Exp(z))
}
