package classifier

import (
	"context"
	"fmt"
	"sort"

	"stopeval/internal/dataset"
)

// Tree is a greedy binary decision tree using Gini impurity reduction to
// choose splits. Leaf predictions are the citation fraction of the training
// examples that reached the leaf.
type Tree struct {
	maxDepth int
	minLeaf  int
}

// NewTree creates a decision tree classifier. maxDepth bounds the tree
// height; minLeaf is the minimum number of training examples per leaf.
func NewTree(maxDepth, minLeaf int) *Tree {
	if maxDepth < 1 {
		maxDepth = 8
	}
	if minLeaf < 1 {
		minLeaf = 1
	}
	return &Tree{maxDepth: maxDepth, minLeaf: minLeaf}
}

func (c *Tree) Name() string {
	return "tree"
}

func (c *Tree) Train(ctx context.Context, train []dataset.Example) (Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(train) == 0 {
		return nil, fmt.Errorf("tree: empty training set")
	}
	root := c.build(train, 0)
	return &treeModel{root: root}, nil
}

// node is one splitting decision of the form "features[feature] < threshold".
// Leaves carry the positive-class fraction of their training examples.
type node struct {
	leaf      bool
	prob      float64
	feature   int
	threshold float64
	left      *node
	right     *node
}

func (c *Tree) build(examples []dataset.Example, depth int) *node {
	positives := 0
	for _, e := range examples {
		if e.Cited {
			positives++
		}
	}
	prob := float64(positives) / float64(len(examples))

	if depth >= c.maxDepth || len(examples) < 2*c.minLeaf || positives == 0 || positives == len(examples) {
		return &node{leaf: true, prob: prob}
	}

	feature, threshold, ok := c.bestSplit(examples)
	if !ok {
		return &node{leaf: true, prob: prob}
	}

	var left, right []dataset.Example
	for _, e := range examples {
		if e.Features()[feature] < threshold {
			left = append(left, e)
		} else {
			right = append(right, e)
		}
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      c.build(left, depth+1),
		right:     c.build(right, depth+1),
	}
}

// bestSplit scans every feature and the midpoints between consecutive
// distinct values for the split with the largest Gini impurity reduction.
func (c *Tree) bestSplit(examples []dataset.Example) (feature int, threshold float64, ok bool) {
	parent := gini(examples)
	bestGain := 0.0

	values := make([]float64, len(examples))
	for f := 0; f < dataset.FeatureCount; f++ {
		for i, e := range examples {
			values[i] = e.Features()[f]
		}
		sort.Float64s(values)

		for i := 1; i < len(values); i++ {
			if values[i] == values[i-1] {
				continue
			}
			thr := (values[i] + values[i-1]) / 2

			var nLeft, posLeft, nRight, posRight int
			for _, e := range examples {
				if e.Features()[f] < thr {
					nLeft++
					if e.Cited {
						posLeft++
					}
				} else {
					nRight++
					if e.Cited {
						posRight++
					}
				}
			}
			if nLeft < c.minLeaf || nRight < c.minLeaf {
				continue
			}

			n := float64(len(examples))
			child := float64(nLeft)/n*giniCounts(posLeft, nLeft) +
				float64(nRight)/n*giniCounts(posRight, nRight)
			if gain := parent - child; gain > bestGain {
				bestGain = gain
				feature = f
				threshold = thr
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func gini(examples []dataset.Example) float64 {
	positives := 0
	for _, e := range examples {
		if e.Cited {
			positives++
		}
	}
	return giniCounts(positives, len(examples))
}

func giniCounts(positives, total int) float64 {
	if total == 0 {
		return 0
	}
	p := float64(positives) / float64(total)
	return 2 * p * (1 - p)
}

type treeModel struct {
	root *node
}

func (m *treeModel) Predict(test []dataset.Example) ([]float64, error) {
	probs := make([]float64, len(test))
	for i, e := range test {
		cur := m.root
		features := e.Features()
		for !cur.leaf {
			if features[cur.feature] < cur.threshold {
				cur = cur.left
			} else {
				cur = cur.right
			}
		}
		probs[i] = cur.prob
	}
	return probs, nil
}
