package eval

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Comparison is the outcome of a two-classifier mean-difference test.
type Comparison struct {
	MeanDiff float64 `json:"mean_diff"` // mean(A) - mean(B)
	TStat    float64 `json:"t_stat"`
	DF       float64 `json:"df"`
	PValue   float64 `json:"p_value"` // two-sided
}

// Compare runs Welch's two-sample t-test on the per-fold error rates of two
// classifiers. It does not assume equal variance or equal sample size.
// Each sample needs at least two values; otherwise ErrInsufficientSample.
func Compare(errorRatesA, errorRatesB []float64) (Comparison, error) {
	if len(errorRatesA) < 2 || len(errorRatesB) < 2 {
		return Comparison{}, fmt.Errorf("%w: need >= 2 error rates per classifier, got %d and %d",
			ErrInsufficientSample, len(errorRatesA), len(errorRatesB))
	}

	meanA, varA := stat.MeanVariance(errorRatesA, nil)
	meanB, varB := stat.MeanVariance(errorRatesB, nil)
	nA := float64(len(errorRatesA))
	nB := float64(len(errorRatesB))

	diff := meanA - meanB
	se := math.Sqrt(varA/nA + varB/nB)

	// Identical constant samples: no variance and no difference, so the
	// null hypothesis cannot be rejected at all.
	if se == 0 {
		p := 1.0
		if diff != 0 {
			p = 0.0
		}
		return Comparison{MeanDiff: diff, TStat: 0, DF: nA + nB - 2, PValue: p}, nil
	}

	t := diff / se

	// Welch-Satterthwaite degrees of freedom.
	num := math.Pow(varA/nA+varB/nB, 2)
	den := math.Pow(varA/nA, 2)/(nA-1) + math.Pow(varB/nB, 2)/(nB-1)
	df := num / den

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - dist.CDF(math.Abs(t)))

	return Comparison{MeanDiff: diff, TStat: t, DF: df, PValue: p}, nil
}
