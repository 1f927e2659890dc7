// Package classifier provides the binary classifiers evaluated by the
// cross-validation engine. Every classifier exposes the same train/predict
// contract so the evaluation code stays classifier-agnostic: training
// produces an opaque model, and the model scores each test example with a
// probability that the stop ends in a citation.
package classifier

import (
	"context"

	"stopeval/internal/dataset"
)

// Model is a trained artifact. It is scoped to the training set that
// produced it and is never shared across folds.
type Model interface {
	// Predict returns the probability of the positive (Citation) class for
	// each test example, in order. Every value is in [0, 1].
	Predict(test []dataset.Example) ([]float64, error)
}

// Classifier trains a Model from a labeled training set.
type Classifier interface {
	Name() string
	Train(ctx context.Context, train []dataset.Example) (Model, error)
}
