package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightedPrecisionRecallF1(t *testing.T) {
	tests := []struct {
		name  string
		yTrue []float64
		yPred []float64
		want  Scores
	}{
		{
			name:  "perfect predictions",
			yTrue: []float64{0, 1, 1, 0},
			yPred: []float64{0, 1, 1, 0},
			want:  Scores{Precision: 1, Recall: 1, F1: 1},
		},
		{
			// class 0: p=1 r=1/2 f=2/3, class 1: p=2/3 r=1 f=4/5, support 2 each
			name:  "one false positive",
			yTrue: []float64{0, 0, 1, 1},
			yPred: []float64{0, 1, 1, 1},
			want:  Scores{Precision: 5.0 / 6.0, Recall: 0.75, F1: 11.0 / 15.0},
		},
		{
			name:  "predicted label absent from truth carries no weight",
			yTrue: []float64{1, 1},
			yPred: []float64{0, 0},
			want:  Scores{},
		},
		{
			// class 0: p=1/2 r=1 f=2/3 support 1, class 1: p=1 r=2/3 f=4/5 support 3
			name:  "imbalanced support",
			yTrue: []float64{0, 1, 1, 1},
			yPred: []float64{0, 0, 1, 1},
			want:  Scores{Precision: 0.875, Recall: 0.75, F1: 0.7666666666666667},
		},
		{
			name: "empty input",
			want: Scores{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WeightedPrecisionRecallF1(tt.yTrue, tt.yPred)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.Precision, got.Precision, 1e-9)
			assert.InDelta(t, tt.want.Recall, got.Recall, 1e-9)
			assert.InDelta(t, tt.want.F1, got.F1, 1e-9)
		})
	}
}

func TestWeightedPrecisionRecallF1_LengthMismatch(t *testing.T) {
	_, err := WeightedPrecisionRecallF1([]float64{1}, []float64{1, 0})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestWeightedPrecisionRecallF1_BoundedScores(t *testing.T) {
	yTrue := []float64{0, 1, 0, 1, 1, 0, 0, 1, 0}
	yPred := []float64{1, 1, 0, 0, 1, 0, 1, 1, 0}

	got, err := WeightedPrecisionRecallF1(yTrue, yPred)
	require.NoError(t, err)
	for _, v := range []float64{got.Precision, got.Recall, got.F1} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}
