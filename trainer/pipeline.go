package trainer

import "sync/atomic"
import "time"

import "github.com/google/uuid"
import "github.com/pkg/errors"
import "github.com/sirupsen/logrus"

import "github.com/neurlang/fidel/datasets"
import "github.com/neurlang/fidel/datasets/letters"
import "github.com/neurlang/fidel/grid"
import "github.com/neurlang/fidel/inference"
import "github.com/neurlang/fidel/kernel"
import "github.com/neurlang/fidel/learning"
import "github.com/neurlang/fidel/svm"

var (
	// ErrEmptyTrainingSet is returned by Train when given no samples.
	ErrEmptyTrainingSet = errors.New("trainer: empty training set")

	// ErrEmptyTestSet is returned by Evaluate when given no samples.
	ErrEmptyTestSet = errors.New("trainer: empty test set")

	// ErrNotTrained is returned by Classify and Evaluate before the first successful Train.
	ErrNotTrained = errors.New("trainer: not trained")

	// ErrDimensionMismatch is returned when feature vectors differ in length
	// from each other or from the trained model.
	ErrDimensionMismatch = errors.New("trainer: feature vector length mismatch")

	// ErrNegativeLabel is returned by Train for samples labeled below zero.
	ErrNegativeLabel = errors.New("trainer: negative label")
)

// DefaultKernel is the similarity function of every pairwise machine: (x·y)².
var DefaultKernel kernel.Kernel = kernel.Polynomial{Degree: 2, Constant: 0}

// Surface is a drawing surface that renders its content as a grid feature vector.
type Surface interface {
	FeatureVector() grid.FeatureVector
}

// Pipeline trains, evaluates and applies a one-vs-one support vector classifier.
type Pipeline struct {
	model atomic.Pointer[svm.Multiclass]

	h       learning.HyperParameters
	kernel  kernel.Kernel
	method  svm.Method
	classes int
	log     logrus.FieldLogger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithThreads bounds the goroutines used by Train and Evaluate.
func WithThreads(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.h.Threads = n
		}
	}
}

// WithMethod selects how pairwise decisions are combined.
func WithMethod(m svm.Method) Option {
	return func(p *Pipeline) {
		p.method = m
	}
}

// WithClasses sets the labels 0..n-1 every trained model carries, in that
// order, whether or not they occur in the training set. Other labels get
// classes after them in ascending order.
func WithClasses(n int) Option {
	return func(p *Pipeline) {
		p.classes = n
	}
}

// WithKernel replaces DefaultKernel.
func WithKernel(k kernel.Kernel) Option {
	return func(p *Pipeline) {
		if k != nil {
			p.kernel = k
		}
	}
}

// WithLogger replaces the default logrus standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		p.log = l
	}
}

// WithHyperParameters overrides the optimization settings. The thread count
// is kept when h.Threads is zero.
func WithHyperParameters(h learning.HyperParameters) Option {
	return func(p *Pipeline) {
		if h.Threads <= 0 {
			h.Threads = p.h.Threads
		}
		p.h = h
	}
}

// New returns an untrained pipeline.
func New(opts ...Option) *Pipeline {
	var p = &Pipeline{
		h:       learning.Default(),
		kernel:  DefaultKernel,
		method:  svm.Voting,
		classes: letters.Classes,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TrainResult describes a completed training pass.
type TrainResult struct {
	ID             uuid.UUID
	Error          float64
	Duration       time.Duration
	Samples        int
	Classes        int
	Machines       int
	SupportVectors int
}

// Trained reports whether a model is live.
func (p *Pipeline) Trained() bool {
	return p.model.Load() != nil
}

// Model returns the live model, or nil before the first successful Train.
func (p *Pipeline) Model() *svm.Multiclass {
	return p.model.Load()
}

// Train fits a new model to samples and makes it live. On failure the
// previous model, if any, stays in place.
func (p *Pipeline) Train(samples datasets.Dataset) (TrainResult, error) {
	if len(samples) == 0 {
		return TrainResult{}, ErrEmptyTrainingSet
	}
	var dim = len(samples[0].Features)
	if dim == 0 {
		return TrainResult{}, errors.Wrap(ErrDimensionMismatch, "sample 0 has no features")
	}
	for i := range samples {
		if len(samples[i].Features) != dim {
			return TrainResult{}, errors.Wrapf(ErrDimensionMismatch, "sample %d has %d values, want %d", i, len(samples[i].Features), dim)
		}
		if samples[i].Label < 0 {
			return TrainResult{}, errors.Wrapf(ErrNegativeLabel, "sample %d has label %d", i, samples[i].Label)
		}
	}
	var labels = p.labels(datasets.SplitDataset(samples))

	var result = TrainResult{
		ID:      uuid.New(),
		Samples: len(samples),
		Classes: len(labels),
	}
	var log = p.log.WithFields(logrus.Fields{
		"run":     result.ID,
		"samples": result.Samples,
		"classes": result.Classes,
	})
	log.Info("training started")

	mc, err := svm.NewLabeled(p.kernel, dim, labels)
	if err != nil {
		return TrainResult{}, err
	}
	mc.Method = p.method

	var start = time.Now()
	result.Error, err = svm.Learn(mc, samples.Vectors(), samples.Labels(), learning.Algorithm(p.h), p.h.Threads)
	result.Duration = time.Since(start)
	if err != nil {
		log.WithError(err).Error("training failed")
		return TrainResult{}, err
	}
	result.Machines = mc.Pairs()
	result.SupportVectors = mc.SupportVectors()

	p.model.Store(mc)

	log.WithFields(logrus.Fields{
		"elapsed":         result.Duration,
		"error":           result.Error,
		"support_vectors": result.SupportVectors,
	}).Info("training complete")
	return result, nil
}

// labels lists the class labels of a model trained on split: the fixed
// labels first, then the others in ascending order
func (p *Pipeline) labels(split datasets.SplittedDataset) []int {
	var fixed = max(p.classes, 2)
	var o = make([]int, fixed, fixed+len(split))
	for i := range o {
		o[i] = i
	}
	for _, l := range split.Labels() {
		if l >= fixed {
			o = append(o, l)
		}
	}
	return o
}

// live returns the live model after checking it accepts n features
func (p *Pipeline) live(n int) (*svm.Multiclass, error) {
	var mc = p.model.Load()
	if mc == nil {
		return nil, ErrNotTrained
	}
	if n != mc.Inputs {
		return nil, errors.Wrapf(ErrDimensionMismatch, "got %d values, model expects %d", n, mc.Inputs)
	}
	return mc, nil
}

// Classify predicts the label of one feature vector and returns the raw
// score of every class alongside, in the order of Model().Labels().
func (p *Pipeline) Classify(x []float64) (int, []float64, error) {
	mc, err := p.live(len(x))
	if err != nil {
		return 0, nil, err
	}
	label, scores := mc.Compute(x)
	return label, scores, nil
}

// Infer is Classify with the scores min-max scaled into a confidence profile
func (p *Pipeline) Infer(x []float64) (int, inference.Profile, error) {
	mc, err := p.live(len(x))
	if err != nil {
		return 0, nil, err
	}
	label, profile := inference.Infer(mc, x)
	return label, profile, nil
}

// ClassifySurface classifies the current content of a drawing surface.
func (p *Pipeline) ClassifySurface(s Surface) (int, []float64, error) {
	return p.Classify(s.FeatureVector())
}
