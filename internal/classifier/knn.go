package classifier

import (
	"context"
	"fmt"
	"math"
	"sort"

	"stopeval/internal/dataset"
)

// KNN is a k-nearest-neighbor classifier over the numeric stop features.
// Distances are unweighted Euclidean; the predicted probability is the
// fraction of citation labels among the k nearest training examples.
type KNN struct {
	k int
}

// NewKNN creates a nearest-neighbor classifier with k neighbors.
// Values below 1 are clamped to 1.
func NewKNN(k int) *KNN {
	if k < 1 {
		k = 1
	}
	return &KNN{k: k}
}

func (c *KNN) Name() string {
	return fmt.Sprintf("knn-%d", c.k)
}

// Train stores a copy of the training set. The training set must contain at
// least k examples so every vote has a full neighborhood.
func (c *KNN) Train(ctx context.Context, train []dataset.Example) (Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(train) < c.k {
		return nil, fmt.Errorf("knn: need at least %d training examples, got %d", c.k, len(train))
	}
	m := &knnModel{k: c.k, train: make([]dataset.Example, len(train))}
	copy(m.train, train)
	return m, nil
}

type knnModel struct {
	k     int
	train []dataset.Example
}

func (m *knnModel) Predict(test []dataset.Example) ([]float64, error) {
	probs := make([]float64, len(test))
	dists := make([]neighbor, len(m.train))
	for i, q := range test {
		qf := q.Features()
		for j, t := range m.train {
			dists[j] = neighbor{dist: euclidean(qf, t.Features()), cited: t.Cited}
		}
		sort.Slice(dists, func(a, b int) bool { return dists[a].dist < dists[b].dist })

		positives := 0
		for _, n := range dists[:m.k] {
			if n.cited {
				positives++
			}
		}
		probs[i] = float64(positives) / float64(m.k)
	}
	return probs, nil
}

type neighbor struct {
	dist  float64
	cited bool
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
