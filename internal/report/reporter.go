// Package report writes evaluation artifacts: a human-readable summary, a
// ROC point CSV per classifier for the external plotting layer, and a JSON
// results file.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"

	"stopeval/internal/eval"
)

// Reporter generates evaluation reports.
type Reporter struct {
	results    []*eval.Result
	comparison *eval.Comparison
	outputPath string
}

// NewReporter creates a reporter. comparison may be nil when fewer than two
// classifiers were evaluated.
func NewReporter(results []*eval.Result, comparison *eval.Comparison, outputPath string) *Reporter {
	return &Reporter{
		results:    results,
		comparison: comparison,
		outputPath: outputPath,
	}
}

// GenerateReport generates all report formats.
func (r *Reporter) GenerateReport() error {
	if err := os.MkdirAll(r.outputPath, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := r.generateSummary(); err != nil {
		return err
	}

	for _, result := range r.results {
		if err := r.generateROCLog(result); err != nil {
			return err
		}
	}

	return r.generateJSONReport()
}

// generateSummary generates a human-readable summary.
func (r *Reporter) generateSummary() error {
	summaryPath := filepath.Join(r.outputPath, "evaluation_summary.txt")
	file, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "CLASSIFIER EVALUATION SUMMARY\n")
	fmt.Fprintf(file, "=============================\n\n")

	for _, result := range r.results {
		fmt.Fprintf(file, "CLASSIFIER: %s\n", result.Classifier)
		fmt.Fprintf(file, "-----------\n")
		fmt.Fprintf(file, "Folds: %d\n", len(result.FoldErrorRates))
		fmt.Fprintf(file, "Mean Error Rate: %.4f\n", result.MeanErrorRate)
		fmt.Fprintf(file, "Error Rate StdDev: %.4f\n", result.StdDevErrorRate)
		fmt.Fprintf(file, "AUROC: %.4f\n", result.AUROC)
		if math.IsNaN(result.AUROC) {
			fmt.Fprintf(file, "Note: AUROC is undefined; at least one fold held no positive or negative examples\n")
		}
		fmt.Fprintf(file, "\n")
	}

	if r.comparison != nil {
		fmt.Fprintf(file, "CLASSIFIER COMPARISON\n")
		fmt.Fprintf(file, "---------------------\n")
		fmt.Fprintf(file, "Mean Error Rate Difference: %+.4f\n", r.comparison.MeanDiff)
		fmt.Fprintf(file, "t Statistic: %.4f (df %.1f)\n", r.comparison.TStat, r.comparison.DF)
		fmt.Fprintf(file, "Two-Sided p-Value: %.4f\n", r.comparison.PValue)
	}

	log.Info().Str("file", summaryPath).Msg("Summary report generated")
	return nil
}

// generateROCLog generates a CSV of the classifier's ROC points, ordered by
// cutoff, ready for the plotting layer.
func (r *Reporter) generateROCLog(result *eval.Result) error {
	csvPath := filepath.Join(r.outputPath, fmt.Sprintf("roc_%s.csv", result.Classifier))
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create ROC log: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"cutoff", "fpr", "tpr"}); err != nil {
		return fmt.Errorf("failed to write ROC header: %w", err)
	}
	for _, p := range result.Points {
		record := []string{
			strconv.FormatFloat(p.Cutoff, 'f', -1, 64),
			strconv.FormatFloat(p.FPR, 'f', -1, 64),
			strconv.FormatFloat(p.TPR, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write ROC point: %w", err)
		}
	}

	log.Info().Str("file", csvPath).Msg("ROC log generated")
	return nil
}

// generateJSONReport generates a machine-readable results file.
func (r *Reporter) generateJSONReport() error {
	jsonPath := filepath.Join(r.outputPath, "results.json")

	sanitized := make([]*eval.Result, len(r.results))
	for i, result := range r.results {
		sanitized[i] = result.Sanitized()
	}
	payload := struct {
		Results    []*eval.Result   `json:"results"`
		Comparison *eval.Comparison `json:"comparison,omitempty"`
	}{
		Results:    sanitized,
		Comparison: r.comparison,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}

	log.Info().Str("file", jsonPath).Msg("JSON report generated")
	return nil
}
