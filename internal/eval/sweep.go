package eval

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"stopeval/internal/classifier"
	"stopeval/internal/dataset"
)

// CanonicalCutoff is the classifier's native decision threshold. Per-fold
// error rates are collected at this cutoff only.
const CanonicalCutoff = 0.5

// DefaultCutoffs returns 11 evenly spaced cutoffs spanning [1, 0].
func DefaultCutoffs() []float64 {
	return EvenCutoffs(11)
}

// EvenCutoffs returns n evenly spaced cutoffs from 1 down to 0. With an odd
// n the canonical 0.5 cutoff is a member of the sweep.
//
// The descending order matters: ROC points carry it into the stable
// AUROC sort, so among points tied on FPR the stricter cutoff comes first.
func EvenCutoffs(n int) []float64 {
	if n < 2 {
		n = 2
	}
	cutoffs := make([]float64, n)
	floats.Span(cutoffs, 1, 0)
	return cutoffs
}

// MetricsInterface defines the metrics hooks used by the sweeper.
type MetricsInterface interface {
	EvaluationsInc()
	FoldTrainObserve(seconds float64)
	FoldPredictObserve(seconds float64)
	TrainFailuresInc()
	PredictFailuresInc()
	AUROCSet(classifier string, v float64)
	ErrorRateSet(classifier string, v float64)
}

// Result summarizes one full threshold sweep for one classifier.
type Result struct {
	Classifier      string    `json:"classifier"`
	Points          []Point   `json:"roc_points"`
	FoldErrorRates  []float64 `json:"fold_error_rates"`
	MeanErrorRate   float64   `json:"mean_error_rate"`
	StdDevErrorRate float64   `json:"stddev_error_rate"`
	AUROC           float64   `json:"auroc"`
}

// Sanitized returns a copy of the result with every NaN replaced by -1.
// Undefined rates are legal in a Result but encoding/json rejects NaN, so
// persistence and reporting encode the sanitized form.
func (r *Result) Sanitized() *Result {
	clean := *r
	clean.Points = make([]Point, len(r.Points))
	for i, p := range r.Points {
		clean.Points[i] = Point{Cutoff: p.Cutoff, FPR: noNaN(p.FPR), TPR: noNaN(p.TPR)}
	}
	clean.FoldErrorRates = make([]float64, len(r.FoldErrorRates))
	for i, v := range r.FoldErrorRates {
		clean.FoldErrorRates[i] = noNaN(v)
	}
	clean.AUROC = noNaN(r.AUROC)
	clean.MeanErrorRate = noNaN(r.MeanErrorRate)
	clean.StdDevErrorRate = noNaN(r.StdDevErrorRate)
	return &clean
}

func noNaN(v float64) float64 {
	if math.IsNaN(v) {
		return -1
	}
	return v
}

// Sweeper runs k-fold cross-validation across a cutoff sweep. Each model is
// trained once per fold and its prediction vector re-thresholded for every
// cutoff; the model parameters do not depend on the cutoff, only the
// decision rule does.
type Sweeper struct {
	folds   int
	seed    int64
	cutoffs []float64
	metrics MetricsInterface
}

// NewSweeper creates a sweeper with the given fold count, shuffle seed, and
// cutoff sweep. A nil cutoffs slice uses DefaultCutoffs.
func NewSweeper(folds int, seed int64, cutoffs []float64) *Sweeper {
	if cutoffs == nil {
		cutoffs = DefaultCutoffs()
	}
	return &Sweeper{folds: folds, seed: seed, cutoffs: cutoffs}
}

// SetMetrics attaches metrics hooks to the sweeper.
func (s *Sweeper) SetMetrics(m MetricsInterface) {
	s.metrics = m
}

// Run evaluates one classifier. Folds are trained and predicted in
// parallel; the fold assignment is computed once and shared read-only, and
// every fold writes only its own output slot. A failure on any fold aborts
// the whole sweep with no partial results.
func (s *Sweeper) Run(ctx context.Context, examples []dataset.Example, c classifier.Classifier) (*Result, error) {
	folds, err := Partition(examples, s.folds, s.seed)
	if err != nil {
		return nil, err
	}

	foldPreds := make([][]float64, s.folds)
	foldObs := make([][]bool, s.folds)

	g, gctx := errgroup.WithContext(ctx)
	for i := range folds {
		i := i
		g.Go(func() error {
			train, test := TrainTest(folds, i)

			start := time.Now()
			model, err := c.Train(gctx, train)
			if err != nil {
				if s.metrics != nil {
					s.metrics.TrainFailuresInc()
				}
				return &TrainError{Fold: i, Err: err}
			}
			if s.metrics != nil {
				s.metrics.FoldTrainObserve(time.Since(start).Seconds())
			}

			start = time.Now()
			preds, err := model.Predict(test)
			if err != nil {
				if s.metrics != nil {
					s.metrics.PredictFailuresInc()
				}
				return &PredictError{Fold: i, Err: err}
			}
			if s.metrics != nil {
				s.metrics.FoldPredictObserve(time.Since(start).Seconds())
			}

			foldPreds[i] = preds
			foldObs[i] = dataset.Labels(test)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Classifier: c.Name(),
		Points:     make([]Point, 0, len(s.cutoffs)),
	}
	for _, cutoff := range s.cutoffs {
		var sumTPR, sumFPR float64
		for i := range folds {
			counts, err := Classify(foldPreds[i], cutoff, foldObs[i])
			if err != nil {
				return nil, err
			}
			sumTPR += counts.TPR()
			sumFPR += counts.FPR()

			if cutoff == CanonicalCutoff {
				result.FoldErrorRates = append(result.FoldErrorRates, counts.ErrorRate())
			}
		}
		result.Points = append(result.Points, Point{
			Cutoff: cutoff,
			TPR:    sumTPR / float64(s.folds),
			FPR:    sumFPR / float64(s.folds),
		})
	}

	result.AUROC = AUROC(result.Points)
	if len(result.FoldErrorRates) > 0 {
		result.MeanErrorRate = stat.Mean(result.FoldErrorRates, nil)
		result.StdDevErrorRate = stat.StdDev(result.FoldErrorRates, nil)
	} else {
		result.MeanErrorRate = math.NaN()
		result.StdDevErrorRate = math.NaN()
	}

	if s.metrics != nil {
		s.metrics.EvaluationsInc()
		s.metrics.AUROCSet(c.Name(), result.AUROC)
		s.metrics.ErrorRateSet(c.Name(), result.MeanErrorRate)
	}
	log.Info().
		Str("classifier", c.Name()).
		Int("folds", s.folds).
		Int("cutoffs", len(s.cutoffs)).
		Float64("auroc", result.AUROC).
		Float64("mean_error_rate", result.MeanErrorRate).
		Msg("Threshold sweep complete")

	return result, nil
}
