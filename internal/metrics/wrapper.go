package metrics

// Wrapper adapts Metrics to the narrow method sets consumed by the dataset
// loader and the evaluation sweeper, keeping those packages free of a
// Prometheus dependency.
type Wrapper struct {
	m *Metrics
}

func NewWrapper(m *Metrics) *Wrapper {
	return &Wrapper{m: m}
}

func (w *Wrapper) ExamplesLoaded(count int) {
	w.m.ExamplesLoaded.Set(float64(count))
}

func (w *Wrapper) ExamplesRejectedInc() {
	w.m.ExamplesRejected.Inc()
}

func (w *Wrapper) EvaluationsInc() {
	w.m.EvaluationsTotal.Inc()
}

func (w *Wrapper) TrainFailuresInc() {
	w.m.TrainFailures.Inc()
}

func (w *Wrapper) PredictFailuresInc() {
	w.m.PredictFailures.Inc()
}

func (w *Wrapper) FoldTrainObserve(seconds float64) {
	w.m.FoldTrainDuration.Observe(seconds)
}

func (w *Wrapper) FoldPredictObserve(seconds float64) {
	w.m.FoldPredictDuration.Observe(seconds)
}

func (w *Wrapper) AUROCSet(classifier string, v float64) {
	w.m.AUROC.WithLabelValues(classifier).Set(v)
}

func (w *Wrapper) ErrorRateSet(classifier string, v float64) {
	w.m.MeanErrorRate.WithLabelValues(classifier).Set(v)
}
