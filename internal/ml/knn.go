package ml

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// KNN classifies by uniform majority vote among the K nearest training rows
// under Euclidean distance. Vote ties resolve to class 0.
type KNN struct {
	K int

	features [][]float64
	labels   []float64
	fitted   bool
}

// NewKNN returns a classifier that votes among four neighbours.
func NewKNN() *KNN {
	return &KNN{K: 4}
}

// Fit memorises the training set.
func (m *KNN) Fit(X [][]float64, y []float64) error {
	if err := validate(X, y, false); err != nil {
		return err
	}
	m.features = X
	m.labels = y
	m.fitted = true
	return nil
}

type neighbour struct {
	index    int
	distance float64
}

// Predict labels each row by its nearest neighbours. Equal distances keep
// training order.
func (m *KNN) Predict(X [][]float64) ([]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if err := checkWidth(X, len(m.features[0])); err != nil {
		return nil, err
	}
	k := m.K
	if k <= 0 || k > len(m.features) {
		k = len(m.features)
	}

	out := make([]float64, len(X))
	neighbours := make([]neighbour, len(m.features))
	for i, row := range X {
		for j, train := range m.features {
			neighbours[j] = neighbour{index: j, distance: floats.Distance(row, train, 2)}
		}
		sort.SliceStable(neighbours, func(a, b int) bool {
			return neighbours[a].distance < neighbours[b].distance
		})

		var positive int
		for _, nb := range neighbours[:k] {
			if m.labels[nb.index] == 1 {
				positive++
			}
		}
		if 2*positive > k {
			out[i] = 1
		}
	}
	return out, nil
}
