package trainer

import "fmt"
import "time"

import "github.com/pkg/errors"
import "github.com/sirupsen/logrus"

import "github.com/neurlang/fidel/datasets"
import "github.com/neurlang/fidel/parallel"

// Prediction is the outcome of one test sample
type Prediction struct {
	Index     int
	Expected  int
	Predicted int
	Matched   bool
	Scores    []float64
}

// EvaluationReport summarizes a pass over a labeled test set
type EvaluationReport struct {
	Predictions []Prediction
	Hits        int
	Total       int
	Accuracy    float64

	// Labels orders the rows and columns of Confusion: the model labels,
	// then expected labels the model does not know, ascending
	Labels []int

	// Confusion[expected][predicted] counts outcomes, it sums to Total
	Confusion [][]int

	// Fingerprint digests the predicted labels in sample order
	Fingerprint [32]byte

	Duration time.Duration
}

// String renders the report as "Hits: h/t (p%)"
func (r EvaluationReport) String() string {
	return fmt.Sprintf("Hits: %d/%d (%.0f%%)", r.Hits, r.Total, 100*r.Accuracy)
}

// Mismatched returns the predictions that missed their expected label
func (r EvaluationReport) Mismatched() (o []Prediction) {
	for _, p := range r.Predictions {
		if !p.Matched {
			o = append(o, p)
		}
	}
	return
}

// Evaluate classifies every sample with the live model and compares the
// prediction against the sample label. The whole pass uses one model even if
// Train replaces it meanwhile.
func (p *Pipeline) Evaluate(samples datasets.Dataset) (EvaluationReport, error) {
	var mc = p.model.Load()
	if mc == nil {
		return EvaluationReport{}, ErrNotTrained
	}
	if len(samples) == 0 {
		return EvaluationReport{}, ErrEmptyTestSet
	}
	for i := range samples {
		if len(samples[i].Features) != mc.Inputs {
			return EvaluationReport{}, errors.Wrapf(ErrDimensionMismatch, "sample %d has %d values, model expects %d", i, len(samples[i].Features), mc.Inputs)
		}
	}

	var start = time.Now()
	var predictions = make([]Prediction, len(samples))
	var tally datasets.Tally
	tally.Init()
	defer tally.Free()
	var hasher = parallel.NewUint64Hasher(len(samples))

	parallel.ForEach(len(samples), p.h.Threads, func(i int) {
		label, scores := mc.Compute(samples[i].Features)
		predictions[i] = Prediction{
			Index:     i,
			Expected:  samples[i].Label,
			Predicted: label,
			Matched:   label == samples[i].Label,
			Scores:    scores,
		}
		tally.AddToMapping(samples[i].Label, label)
		hasher.MustPutUint64(i, uint64(label))
	})

	var labels = mc.Labels()
	for _, l := range tally.Labels() {
		if _, ok := mc.Class(l); !ok {
			labels = append(labels, l)
		}
	}

	var report = EvaluationReport{
		Predictions: predictions,
		Hits:        tally.Hits(),
		Total:       tally.Len(),
		Labels:      labels,
		Confusion:   tally.Matrix(labels),
		Fingerprint: hasher.Sum(),
		Duration:    time.Since(start),
	}
	report.Accuracy = float64(report.Hits) / float64(report.Total)

	p.log.WithFields(logrus.Fields{
		"hits":    report.Hits,
		"total":   report.Total,
		"elapsed": report.Duration,
	}).Info(report.String())
	return report, nil
}
