package eval

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
)

// Point is one ROC coordinate: the false and true positive rates at a
// cutoff, each averaged across folds.
type Point struct {
	Cutoff float64 `json:"cutoff"`
	FPR    float64 `json:"fpr"`
	TPR    float64 `json:"tpr"`
}

// AUROC integrates the ROC curve with the trapezoidal rule after a stable
// sort by FPR ascending (ties keep their original order).
//
// The integral covers only the observed FPR range; when the points do not
// span [0,1] the result is a partial-curve approximation. Any NaN rate in
// the input makes the result NaN.
func AUROC(points []Point) float64 {
	if len(points) < 2 {
		return math.NaN()
	}
	for _, p := range points {
		if math.IsNaN(p.FPR) || math.IsNaN(p.TPR) {
			return math.NaN()
		}
	}

	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].FPR < sorted[j].FPR })

	fpr := make([]float64, len(sorted))
	tpr := make([]float64, len(sorted))
	for i, p := range sorted {
		fpr[i] = p.FPR
		tpr[i] = p.TPR
	}
	return integrate.Trapezoidal(fpr, tpr)
}
