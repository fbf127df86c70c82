package ml

import (
	"fmt"
	"math"
	"math/rand"
)

// Split is a train/test partition of a labelled dataset.
type Split struct {
	TrainX [][]float64
	TrainY []float64
	TestX  [][]float64
	TestY  []float64
}

// TrainTestSplit shuffles row indices with a generator seeded by seed and
// holds out ceil(testSize*n) rows for evaluation. The same inputs always
// produce the same partition.
func TrainTestSplit(X [][]float64, y []float64, testSize float64, seed int64) (Split, error) {
	if len(X) != len(y) {
		return Split{}, ErrShapeMismatch
	}
	if testSize <= 0 || testSize >= 1 {
		return Split{}, fmt.Errorf("test size %v must be in (0, 1)", testSize)
	}
	n := len(X)
	nTest := int(math.Ceil(testSize * float64(n)))
	if n-nTest <= 0 {
		return Split{}, fmt.Errorf("%w: %d rows leave no training data at test size %v", ErrEmptyTrainingSet, n, testSize)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	s := Split{
		TrainX: make([][]float64, 0, n-nTest),
		TrainY: make([]float64, 0, n-nTest),
		TestX:  make([][]float64, 0, nTest),
		TestY:  make([]float64, 0, nTest),
	}
	for pos, idx := range perm {
		if pos < nTest {
			s.TestX = append(s.TestX, X[idx])
			s.TestY = append(s.TestY, y[idx])
			continue
		}
		s.TrainX = append(s.TrainX, X[idx])
		s.TrainY = append(s.TrainY, y[idx])
	}
	return s, nil
}
