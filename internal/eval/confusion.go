package eval

import (
	"fmt"
	"math"
)

// Counts is the confusion matrix for one (fold, cutoff) evaluation.
type Counts struct {
	TP int // citation predicted, citation observed
	TN int // warning predicted, warning observed
	FP int // citation predicted, warning observed
	FN int // warning predicted, citation observed
}

// Classify thresholds each prediction against cutoff and tallies it against
// the observed label.
//
// A prediction is positive when p >= cutoff, with one deliberate exception:
// at cutoff 1.0 a prediction of exactly 1.0 still counts as negative. The
// rule is inherited from the original analysis and is preserved verbatim so
// reported error rates and AUROC values stay comparable; "fixing" it would
// silently shift the top end of every ROC curve.
func Classify(predictions []float64, cutoff float64, observed []bool) (Counts, error) {
	if len(predictions) != len(observed) {
		return Counts{}, fmt.Errorf("eval: %d predictions for %d observations", len(predictions), len(observed))
	}

	var c Counts
	for i, p := range predictions {
		negative := p < cutoff || (p == 1 && cutoff == 1)
		switch {
		case !negative && observed[i]:
			c.TP++
		case !negative && !observed[i]:
			c.FP++
		case negative && observed[i]:
			c.FN++
		default:
			c.TN++
		}
	}
	return c, nil
}

// Size is the number of classified examples.
func (c Counts) Size() int {
	return c.TP + c.TN + c.FP + c.FN
}

// TPR is TP/(TP+FN). NaN when the fold holds no observed positives; the NaN
// propagates into fold averages rather than being coerced to zero, which
// would bias the ROC curve.
func (c Counts) TPR() float64 {
	if c.TP+c.FN == 0 {
		return math.NaN()
	}
	return float64(c.TP) / float64(c.TP+c.FN)
}

// FPR is FP/(FP+TN). NaN when the fold holds no observed negatives.
func (c Counts) FPR() float64 {
	if c.FP+c.TN == 0 {
		return math.NaN()
	}
	return float64(c.FP) / float64(c.FP+c.TN)
}

// ErrorRate is the misclassified fraction, 1 - (TP+TN)/size.
func (c Counts) ErrorRate() float64 {
	if c.Size() == 0 {
		return math.NaN()
	}
	return 1 - float64(c.TP+c.TN)/float64(c.Size())
}
