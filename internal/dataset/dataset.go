// Package dataset loads and cleans traffic-stop records for classifier
// evaluation. It parses the raw stop CSV, extracts the traveling speed and
// posted limit from the free-text description, and collapses the violation
// type to a binary Citation/Warning label.
//
// Records that fail the cleaning rules (missing fields, unparseable
// date/time, a description without exactly two distinct speed tokens,
// implausible speed values) are dropped before they reach the evaluation
// engine.
package dataset

// Example is a single cleaned stop record: the numeric features used by the
// classifiers plus the binary outcome. Immutable once constructed.
type Example struct {
	Month     float64 // 1-12
	Day       float64 // day of month, 1-31
	Hour      float64 // hour of day, 0-23
	SpeedOver float64 // traveling speed minus posted limit, mph
	Cited     bool    // true = Citation, false = Warning
}

// FeatureCount is the length of the vector returned by Features.
const FeatureCount = 4

// Features returns the example's numeric feature vector in a fixed order.
func (e Example) Features() []float64 {
	return []float64{e.Month, e.Day, e.Hour, e.SpeedOver}
}

// Labels extracts the observed outcomes for a slice of examples, in order.
func Labels(examples []Example) []bool {
	labels := make([]bool, len(examples))
	for i, e := range examples {
		labels[i] = e.Cited
	}
	return labels
}
