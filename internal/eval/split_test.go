package eval

import (
	"errors"
	"testing"

	"stopeval/internal/dataset"
)

// numberedExamples builds n examples tagged by SpeedOver so individual
// examples can be tracked through a shuffle.
func numberedExamples(n int) []dataset.Example {
	examples := make([]dataset.Example, n)
	for i := range examples {
		examples[i] = dataset.Example{SpeedOver: float64(i), Cited: i%2 == 0}
	}
	return examples
}

func TestPartition_FoldSizes(t *testing.T) {
	examples := numberedExamples(103)

	folds, err := Partition(examples, 5, 1)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	if len(folds) != 5 {
		t.Fatalf("Expected 5 folds, got %d", len(folds))
	}
	for i, fold := range folds {
		if len(fold) != 20 {
			t.Errorf("Fold %d: expected 20 examples, got %d", i, len(fold))
		}
	}
}

func TestPartition_CoversRetainedExamplesOnce(t *testing.T) {
	examples := numberedExamples(40)

	folds, err := Partition(examples, 4, 7)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	seen := map[float64]int{}
	for _, fold := range folds {
		for _, e := range fold {
			seen[e.SpeedOver]++
		}
	}
	if len(seen) != 40 {
		t.Errorf("Expected 40 distinct examples across folds, got %d", len(seen))
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("Example %v appears %d times", id, count)
		}
	}
}

func TestPartition_TruncatesRemainder(t *testing.T) {
	// 10 examples into 3 folds: floor(10/3)=3 per fold, one dropped.
	folds, err := Partition(numberedExamples(10), 3, 1)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	total := 0
	for _, fold := range folds {
		total += len(fold)
	}
	if total != 9 {
		t.Errorf("Expected 9 retained examples, got %d", total)
	}
}

func TestPartition_DeterministicPerSeed(t *testing.T) {
	examples := numberedExamples(60)

	a, err := Partition(examples, 4, 42)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	b, err := Partition(examples, 4, 42)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("Fold %d differs between runs with the same seed", i)
			}
		}
	}

	c, err := Partition(examples, 4, 43)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	same := true
	for i := range a {
		for j := range a[i] {
			if a[i][j] != c[i][j] {
				same = false
			}
		}
	}
	if same {
		t.Error("Expected a different permutation for a different seed")
	}
}

func TestPartition_InputUnchanged(t *testing.T) {
	examples := numberedExamples(20)
	original := make([]dataset.Example, len(examples))
	copy(original, examples)

	if _, err := Partition(examples, 4, 3); err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	for i := range examples {
		if examples[i] != original[i] {
			t.Fatal("Partition mutated its input")
		}
	}
}

func TestPartition_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		n    int
		k    int
	}{
		{"k below 2", 10, 1},
		{"zero k", 10, 0},
		{"fewer examples than folds", 3, 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Partition(numberedExamples(tc.n), tc.k, 1)
			if !errors.Is(err, ErrInvalidPartition) {
				t.Errorf("Expected ErrInvalidPartition, got %v", err)
			}
		})
	}
}

func TestTrainTest(t *testing.T) {
	folds, err := Partition(numberedExamples(40), 4, 5)
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	train, test := TrainTest(folds, 2)
	if len(test) != 10 {
		t.Errorf("Expected test set of 10, got %d", len(test))
	}
	if len(train) != 30 {
		t.Errorf("Expected training set of 30, got %d", len(train))
	}

	inTest := map[float64]bool{}
	for _, e := range test {
		inTest[e.SpeedOver] = true
	}
	for _, e := range train {
		if inTest[e.SpeedOver] {
			t.Fatalf("Example %v is in both train and test", e.SpeedOver)
		}
	}
}
