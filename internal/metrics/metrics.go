// Package metrics provides Prometheus metrics for the stop-evaluation
// pipeline: dataset loading volume, per-fold training and prediction
// timings, and the headline evaluation results per classifier.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the evaluation pipeline.
type Metrics struct {
	// Dataset metrics
	ExamplesLoaded   prometheus.Gauge   // Examples retained after cleaning
	ExamplesRejected prometheus.Counter // Records dropped by the cleaning rules

	// Evaluation metrics
	EvaluationsTotal    prometheus.Counter   // Completed threshold sweeps
	TrainFailures       prometheus.Counter   // Classifier training failures (abort the sweep)
	PredictFailures     prometheus.Counter   // Classifier prediction failures (abort the sweep)
	FoldTrainDuration   prometheus.Histogram // Per-fold training duration in seconds
	FoldPredictDuration prometheus.Histogram // Per-fold prediction duration in seconds

	// Result metrics, labeled by classifier name
	AUROC         *prometheus.GaugeVec // Last computed area under the ROC curve
	MeanErrorRate *prometheus.GaugeVec // Last mean cross-validated error rate at cutoff 0.5
}

// New creates and registers all metrics using the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates metrics with a custom registry (useful for testing).
func NewWithRegistry(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		ExamplesLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "examples_loaded",
			Help: "Number of examples retained after cleaning",
		}),
		ExamplesRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "examples_rejected_total",
			Help: "Total number of records dropped by the cleaning rules",
		}),
		EvaluationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "evaluations_total",
			Help: "Total number of completed threshold sweeps",
		}),
		TrainFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "train_failures_total",
			Help: "Total number of classifier training failures",
		}),
		PredictFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "predict_failures_total",
			Help: "Total number of classifier prediction failures",
		}),
		FoldTrainDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fold_train_duration_seconds",
			Help:    "Per-fold classifier training duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		FoldPredictDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fold_predict_duration_seconds",
			Help:    "Per-fold prediction duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		AUROC: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "auroc",
			Help: "Area under the ROC curve from the last sweep",
		}, []string{"classifier"}),
		MeanErrorRate: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mean_error_rate",
			Help: "Mean cross-validated error rate at the canonical cutoff",
		}, []string{"classifier"}),
	}
}
