// Package eval implements the cross-validated classifier evaluation engine:
// k-fold partitioning, confusion-matrix rates, the cutoff threshold sweep,
// ROC curve integration, and the two-classifier significance comparison.
package eval

import (
	"fmt"
	"math/rand"

	"stopeval/internal/dataset"
)

// Partition shuffles examples with the given seed and splits them into k
// folds of size floor(n/k). The same seed always produces the same folds.
//
// When n is not divisible by k the trailing remainder examples are dropped
// rather than redistributed. That mirrors plain integer-division slicing and
// keeps historical results reproducible; callers that need every example
// retained should pad or trim the input to a multiple of k themselves.
func Partition(examples []dataset.Example, k int, seed int64) ([][]dataset.Example, error) {
	if k < 2 {
		return nil, fmt.Errorf("%w: need k >= 2, got %d", ErrInvalidPartition, k)
	}
	if len(examples) < k {
		return nil, fmt.Errorf("%w: %d examples cannot fill %d folds", ErrInvalidPartition, len(examples), k)
	}

	shuffled := make([]dataset.Example, len(examples))
	copy(shuffled, examples)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	size := len(shuffled) / k
	folds := make([][]dataset.Example, k)
	for i := 0; i < k; i++ {
		folds[i] = shuffled[i*size : (i+1)*size]
	}
	return folds, nil
}

// TrainTest assembles the train/test split for fold i: the test set is fold
// i and the training set is every other fold concatenated.
func TrainTest(folds [][]dataset.Example, i int) (train, test []dataset.Example) {
	test = folds[i]
	for j, fold := range folds {
		if j == i {
			continue
		}
		train = append(train, fold...)
	}
	return train, test
}
