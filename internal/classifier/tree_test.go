package classifier

import (
	"context"
	"testing"

	"stopeval/internal/dataset"
)

func separable(nPerClass int) []dataset.Example {
	var examples []dataset.Example
	for i := 0; i < nPerClass; i++ {
		examples = append(examples,
			dataset.Example{SpeedOver: 20 + float64(i), Cited: true},
			dataset.Example{SpeedOver: float64(i), Cited: false},
		)
	}
	return examples
}

func TestTree_SeparableData(t *testing.T) {
	train := separable(10)

	model, err := NewTree(8, 1).Train(context.Background(), train)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	probs, err := model.Predict([]dataset.Example{
		{SpeedOver: 25},
		{SpeedOver: 3},
	})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if probs[0] != 1 {
		t.Errorf("High differential: probability %v, expected 1", probs[0])
	}
	if probs[1] != 0 {
		t.Errorf("Low differential: probability %v, expected 0", probs[1])
	}
}

func TestTree_LeafProbabilityIsClassFraction(t *testing.T) {
	// Depth 0 is impossible, but a min leaf size covering the whole set
	// forces a single leaf whose probability is the citation fraction.
	train := []dataset.Example{
		{SpeedOver: 1, Cited: true},
		{SpeedOver: 2, Cited: true},
		{SpeedOver: 3, Cited: true},
		{SpeedOver: 4, Cited: false},
	}

	model, err := NewTree(8, 4).Train(context.Background(), train)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	probs, err := model.Predict([]dataset.Example{{SpeedOver: 100}})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if probs[0] != 0.75 {
		t.Errorf("Probability %v, expected 0.75", probs[0])
	}
}

func TestTree_PureNodeBecomesLeaf(t *testing.T) {
	train := []dataset.Example{
		{SpeedOver: 1, Cited: true},
		{SpeedOver: 2, Cited: true},
		{SpeedOver: 3, Cited: true},
	}

	model, err := NewTree(8, 1).Train(context.Background(), train)
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	tm := model.(*treeModel)
	if !tm.root.leaf {
		t.Error("Expected a pure training set to produce a single leaf")
	}
	if tm.root.prob != 1 {
		t.Errorf("Leaf probability %v, expected 1", tm.root.prob)
	}
}

func TestTree_DepthLimit(t *testing.T) {
	model, err := NewTree(1, 1).Train(context.Background(), separable(20))
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	tm := model.(*treeModel)
	if tm.root.leaf {
		t.Fatal("Expected a split at the root for separable data")
	}
	if !tm.root.left.leaf || !tm.root.right.leaf {
		t.Error("Depth 1 tree must have leaf children at the root")
	}
}

func TestTree_EmptyTrainingSet(t *testing.T) {
	if _, err := NewTree(8, 1).Train(context.Background(), nil); err == nil {
		t.Error("Expected an error for an empty training set")
	}
}

func TestTree_Name(t *testing.T) {
	if got := NewTree(8, 1).Name(); got != "tree" {
		t.Errorf("Name = %q", got)
	}
}
