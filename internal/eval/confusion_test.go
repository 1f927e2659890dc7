package eval

import (
	"math"
	"testing"
)

func TestClassify_Counts(t *testing.T) {
	predictions := []float64{0.9, 0.8, 0.4, 0.1, 0.6, 0.5}
	observed := []bool{true, false, true, false, true, false}

	counts, err := Classify(predictions, 0.5, observed)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	// 0.9/true TP, 0.8/false FP, 0.4/true FN, 0.1/false TN,
	// 0.6/true TP, 0.5/false FP (0.5 >= cutoff)
	if counts.TP != 2 || counts.FP != 2 || counts.FN != 1 || counts.TN != 1 {
		t.Errorf("Unexpected counts: %+v", counts)
	}
	if counts.Size() != len(predictions) {
		t.Errorf("Counts sum to %d, expected %d", counts.Size(), len(predictions))
	}
}

func TestClassify_CutoffOneBoundary(t *testing.T) {
	// A probability of exactly 1.0 is still negative at cutoff 1.0. The
	// rule is inherited behavior and must hold exactly.
	counts, err := Classify([]float64{1.0}, 1.0, []bool{true})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if counts.FN != 1 {
		t.Errorf("Expected p=1.0 at cutoff 1.0 to be classified negative, got %+v", counts)
	}

	// The same probability is positive at any lower cutoff.
	counts, err = Classify([]float64{1.0}, 0.9, []bool{true})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if counts.TP != 1 {
		t.Errorf("Expected p=1.0 at cutoff 0.9 to be classified positive, got %+v", counts)
	}
}

func TestClassify_CutoffZero(t *testing.T) {
	counts, err := Classify([]float64{0.0, 0.5, 1.0}, 0.0, []bool{false, false, true})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	// Everything is >= 0, so everything is positive.
	if counts.TP != 1 || counts.FP != 2 {
		t.Errorf("Expected all positive at cutoff 0, got %+v", counts)
	}
}

func TestClassify_LengthMismatch(t *testing.T) {
	if _, err := Classify([]float64{0.5}, 0.5, []bool{true, false}); err == nil {
		t.Error("Expected an error for mismatched lengths")
	}
}

func TestRates(t *testing.T) {
	counts := Counts{TP: 3, FN: 1, FP: 2, TN: 4}

	if got := counts.TPR(); got != 0.75 {
		t.Errorf("TPR = %v, expected 0.75", got)
	}
	if got := counts.FPR(); got != 2.0/6.0 {
		t.Errorf("FPR = %v, expected %v", got, 2.0/6.0)
	}
	// 1 - 7/10 is not exactly representable, so compare with a tolerance.
	if got := counts.ErrorRate(); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("ErrorRate = %v, expected 0.3", got)
	}
}

func TestRates_ExactErrorRate(t *testing.T) {
	counts := Counts{TP: 3, TN: 3, FP: 1, FN: 1}
	if got := counts.ErrorRate(); got != 0.25 {
		t.Errorf("ErrorRate = %v, expected exactly 0.25", got)
	}
}

func TestRates_UndefinedAreNaN(t *testing.T) {
	noPositives := Counts{FP: 2, TN: 3}
	if !math.IsNaN(noPositives.TPR()) {
		t.Error("Expected NaN TPR with no observed positives")
	}

	noNegatives := Counts{TP: 2, FN: 3}
	if !math.IsNaN(noNegatives.FPR()) {
		t.Error("Expected NaN FPR with no observed negatives")
	}

	if !math.IsNaN(Counts{}.ErrorRate()) {
		t.Error("Expected NaN error rate for empty counts")
	}
}
