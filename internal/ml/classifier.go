// Package ml implements the binary classifiers trained by the service along
// with the seeded train/test split and weighted evaluation metrics.
//
// Labels are 0/1 encoded as float64. Features are row-major [][]float64.
package ml

import "errors"

var (
	// ErrEmptyTrainingSet is returned when Fit receives no rows.
	ErrEmptyTrainingSet = errors.New("training set is empty")
	// ErrSingleClass is returned when the training labels contain one class only.
	ErrSingleClass = errors.New("training labels contain a single class")
	// ErrShapeMismatch is returned when features and labels disagree in length
	// or rows disagree in width.
	ErrShapeMismatch = errors.New("feature and label shapes do not match")
	// ErrNotFitted is returned by Predict before a successful Fit.
	ErrNotFitted = errors.New("classifier is not fitted")
)

// Classifier is a binary supervised model. Fit replaces any previous state.
type Classifier interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) ([]float64, error)
}

// validate checks the shape of a training set and that both classes occur.
func validate(X [][]float64, y []float64, needBothClasses bool) error {
	if len(X) == 0 {
		return ErrEmptyTrainingSet
	}
	if len(X) != len(y) {
		return ErrShapeMismatch
	}
	width := len(X[0])
	for _, row := range X {
		if len(row) != width {
			return ErrShapeMismatch
		}
	}
	if needBothClasses {
		var pos, neg bool
		for _, v := range y {
			if v == 1 {
				pos = true
			} else {
				neg = true
			}
		}
		if !pos || !neg {
			return ErrSingleClass
		}
	}
	return nil
}

func checkWidth(X [][]float64, width int) error {
	for _, row := range X {
		if len(row) != width {
			return ErrShapeMismatch
		}
	}
	return nil
}
