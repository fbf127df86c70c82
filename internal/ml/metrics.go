package ml

import "sort"

// Scores holds support-weighted averages of the per-class scores.
type Scores struct {
	Precision float64
	Recall    float64
	F1        float64
}

type classCounts struct {
	truePositive  int
	falsePositive int
	falseNegative int
}

// WeightedPrecisionRecallF1 computes precision, recall and F1 for every label
// present in either slice, then averages them weighted by the number of true
// instances of each label. Undefined ratios count as zero.
func WeightedPrecisionRecallF1(yTrue, yPred []float64) (Scores, error) {
	if len(yTrue) != len(yPred) {
		return Scores{}, ErrShapeMismatch
	}

	counts := make(map[float64]*classCounts)
	get := func(label float64) *classCounts {
		c, ok := counts[label]
		if !ok {
			c = &classCounts{}
			counts[label] = c
		}
		return c
	}
	for i := range yTrue {
		truth, pred := yTrue[i], yPred[i]
		if truth == pred {
			get(truth).truePositive++
			continue
		}
		get(pred).falsePositive++
		get(truth).falseNegative++
	}

	labels := make([]float64, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Float64s(labels)

	var scores Scores
	var total float64
	for _, label := range labels {
		c := counts[label]
		support := float64(c.truePositive + c.falseNegative)
		if support == 0 {
			continue
		}
		p := ratio(c.truePositive, c.truePositive+c.falsePositive)
		r := ratio(c.truePositive, c.truePositive+c.falseNegative)
		var f float64
		if p+r > 0 {
			f = 2 * p * r / (p + r)
		}
		scores.Precision += support * p
		scores.Recall += support * r
		scores.F1 += support * f
		total += support
	}
	if total == 0 {
		return Scores{}, nil
	}
	scores.Precision /= total
	scores.Recall /= total
	scores.F1 /= total
	return scores, nil
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
