package report

import (
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stopeval/internal/eval"
)

func sampleResults() []*eval.Result {
	return []*eval.Result{
		{
			Classifier: "knn-5",
			Points: []eval.Point{
				{Cutoff: 1.0, FPR: 0, TPR: 0},
				{Cutoff: 0.5, FPR: 0.1, TPR: 0.9},
				{Cutoff: 0.0, FPR: 1, TPR: 1},
			},
			FoldErrorRates:  []float64{0.1, 0.12, 0.09, 0.11},
			MeanErrorRate:   0.105,
			StdDevErrorRate: 0.0129,
			AUROC:           0.93,
		},
		{
			Classifier:      "tree",
			Points:          []eval.Point{{Cutoff: 0.5, FPR: 0.2, TPR: 0.8}},
			FoldErrorRates:  []float64{0.2, 0.21, 0.19, 0.2},
			MeanErrorRate:   0.2,
			StdDevErrorRate: 0.0082,
			AUROC:           0.8,
		},
	}
}

func TestGenerateReport_WritesAllArtifacts(t *testing.T) {
	outputPath := t.TempDir()
	comparison := &eval.Comparison{MeanDiff: -0.095, TStat: -11.2, DF: 5.8, PValue: 0.0001}

	reporter := NewReporter(sampleResults(), comparison, outputPath)
	if err := reporter.GenerateReport(); err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	for _, name := range []string{
		"evaluation_summary.txt",
		"roc_knn-5.csv",
		"roc_tree.csv",
		"results.json",
	} {
		if _, err := os.Stat(filepath.Join(outputPath, name)); err != nil {
			t.Errorf("Expected artifact %s: %v", name, err)
		}
	}
}

func TestGenerateReport_SummaryContent(t *testing.T) {
	outputPath := t.TempDir()
	comparison := &eval.Comparison{MeanDiff: -0.095, PValue: 0.0001}

	reporter := NewReporter(sampleResults(), comparison, outputPath)
	if err := reporter.GenerateReport(); err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outputPath, "evaluation_summary.txt"))
	if err != nil {
		t.Fatalf("Failed to read summary: %v", err)
	}
	summary := string(data)

	for _, want := range []string{"knn-5", "tree", "AUROC: 0.9300", "Mean Error Rate: 0.1050", "p-Value: 0.0001"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary missing %q", want)
		}
	}
}

func TestGenerateReport_ROCLog(t *testing.T) {
	outputPath := t.TempDir()

	reporter := NewReporter(sampleResults(), nil, outputPath)
	if err := reporter.GenerateReport(); err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	f, err := os.Open(filepath.Join(outputPath, "roc_knn-5.csv"))
	if err != nil {
		t.Fatalf("Failed to open ROC log: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse ROC log: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("Expected header + 3 points, got %d rows", len(records))
	}
	if records[0][0] != "cutoff" || records[0][1] != "fpr" || records[0][2] != "tpr" {
		t.Errorf("Unexpected header: %v", records[0])
	}
	if records[2][1] != "0.1" || records[2][2] != "0.9" {
		t.Errorf("Unexpected midpoint row: %v", records[2])
	}
}

func TestGenerateReport_JSONHandlesNaN(t *testing.T) {
	outputPath := t.TempDir()
	results := []*eval.Result{{
		Classifier:     "tree",
		Points:         []eval.Point{{Cutoff: 1, FPR: math.NaN(), TPR: math.NaN()}},
		FoldErrorRates: []float64{math.NaN()},
		AUROC:          math.NaN(),
	}}

	reporter := NewReporter(results, nil, outputPath)
	if err := reporter.GenerateReport(); err != nil {
		t.Fatalf("GenerateReport with NaN values failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outputPath, "results.json"))
	if err != nil {
		t.Fatalf("Failed to read JSON report: %v", err)
	}

	var payload struct {
		Results []eval.Result `json:"results"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("Failed to parse JSON report: %v", err)
	}
	if payload.Results[0].AUROC != -1 {
		t.Errorf("Expected NaN AUROC encoded as -1, got %v", payload.Results[0].AUROC)
	}
}

func TestGenerateReport_NilComparison(t *testing.T) {
	outputPath := t.TempDir()

	reporter := NewReporter(sampleResults()[:1], nil, outputPath)
	if err := reporter.GenerateReport(); err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outputPath, "evaluation_summary.txt"))
	if err != nil {
		t.Fatalf("Failed to read summary: %v", err)
	}
	if strings.Contains(string(data), "CLASSIFIER COMPARISON") {
		t.Error("Summary must omit the comparison section without a comparison")
	}
}
