package eval

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPartition reports a bad fold count or too few examples.
	ErrInvalidPartition = errors.New("eval: invalid partition")

	// ErrInsufficientSample reports a degenerate comparator input.
	ErrInsufficientSample = errors.New("eval: insufficient sample")
)

// TrainError reports a classifier training failure on one fold. Any fold
// failure aborts the whole sweep; per-cutoff averages are meaningless with
// folds missing.
type TrainError struct {
	Fold int
	Err  error
}

func (e *TrainError) Error() string {
	return fmt.Sprintf("eval: training failed on fold %d: %v", e.Fold, e.Err)
}

func (e *TrainError) Unwrap() error { return e.Err }

// PredictError reports a prediction failure on one fold.
type PredictError struct {
	Fold int
	Err  error
}

func (e *PredictError) Error() string {
	return fmt.Sprintf("eval: prediction failed on fold %d: %v", e.Fold, e.Err)
}

func (e *PredictError) Unwrap() error { return e.Err }
