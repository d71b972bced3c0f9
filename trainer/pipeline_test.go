package trainer

import "math"
import "testing"

import "github.com/sirupsen/logrus"
import "github.com/sirupsen/logrus/hooks/test"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/neurlang/fidel/datasets"
import "github.com/neurlang/fidel/grid"
import "github.com/neurlang/fidel/kernel"
import "github.com/neurlang/fidel/svm"

// oneHot returns one sample per label, sample i has a single 1 at position i
func oneHot(labels ...int) datasets.Dataset {
	var o = make(datasets.Dataset, len(labels))
	for i, l := range labels {
		o[i].Features = make([]float64, len(labels))
		o[i].Features[i] = 1
		o[i].Label = l
	}
	return o
}

// stripe returns a grid whose row is fully inked
func stripe(row int) *grid.Grid {
	var g grid.Grid
	for j := 0; j < grid.Size; j++ {
		g[row][j] = true
	}
	return &g
}

func quiet() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

func newPipeline(opts ...Option) *Pipeline {
	logger, _ := quiet()
	return New(append([]Option{WithLogger(logger), WithThreads(2)}, opts...)...)
}

func TestNotTrained(t *testing.T) {
	p := newPipeline()
	require.False(t, p.Trained())
	require.Nil(t, p.Model())

	_, _, err := p.Classify(make([]float64, 5))
	require.ErrorIs(t, err, ErrNotTrained)

	_, err = p.Evaluate(oneHot(0, 1))
	require.ErrorIs(t, err, ErrNotTrained)
}

func TestTrainInvalid(t *testing.T) {
	p := newPipeline()

	_, err := p.Train(nil)
	require.ErrorIs(t, err, ErrEmptyTrainingSet)

	var ragged = oneHot(0, 1)
	ragged[1].Features = ragged[1].Features[:1]
	_, err = p.Train(ragged)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = p.Train(oneHot(0, -1))
	require.ErrorIs(t, err, ErrNegativeLabel)

	require.False(t, p.Trained())
}

func TestEndToEnd(t *testing.T) {
	p := newPipeline()
	train := oneHot(0, 1, 2, 3, 4)

	result, err := p.Train(train)
	require.NoError(t, err)
	assert.Zero(t, result.Error)
	assert.Equal(t, 5, result.Samples)
	assert.Equal(t, 5, result.Classes)
	assert.Equal(t, 10, result.Machines)
	assert.NotEmpty(t, result.ID.String())
	require.True(t, p.Trained())

	for i, s := range train {
		label, scores, err := p.Classify(s.Features)
		require.NoError(t, err)
		assert.Equal(t, i, label)
		assert.Len(t, scores, 5)
	}

	report, err := p.Evaluate(train)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Hits)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 1.0, report.Accuracy)
	assert.Equal(t, "Hits: 5/5 (100%)", report.String())
	assert.Empty(t, report.Mismatched())
	for i := range report.Confusion {
		assert.Equal(t, 1, report.Confusion[i][i])
	}

	again, err := p.Evaluate(train)
	require.NoError(t, err)
	assert.Equal(t, report.Fingerprint, again.Fingerprint)
}

func TestEvaluateMiss(t *testing.T) {
	p := newPipeline()
	_, err := p.Train(oneHot(0, 1, 2, 3, 4))
	require.NoError(t, err)

	set := oneHot(0, 1, 2, 3, 4)
	set[3].Label = 1
	report, err := p.Evaluate(set)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Hits)
	assert.Equal(t, "Hits: 4/5 (80%)", report.String())
	require.Len(t, report.Mismatched(), 1)
	assert.Equal(t, 3, report.Mismatched()[0].Index)
	assert.Equal(t, 3, report.Mismatched()[0].Predicted)
	assert.Equal(t, 1, report.Confusion[1][3])

	_, err = p.Evaluate(nil)
	require.ErrorIs(t, err, ErrEmptyTestSet)

	_, err = p.Evaluate(datasets.Dataset{{Features: []float64{1}}})
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestClassifyDimension(t *testing.T) {
	p := newPipeline()
	_, _, err := p.Infer(make([]float64, 5))
	require.ErrorIs(t, err, ErrNotTrained)

	_, err = p.Train(oneHot(0, 1, 2, 3, 4))
	require.NoError(t, err)
	_, _, err = p.Classify(make([]float64, 4))
	require.ErrorIs(t, err, ErrDimensionMismatch)
	_, _, err = p.Infer(make([]float64, 6))
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestInferProfile(t *testing.T) {
	p := newPipeline()
	train := oneHot(0, 1, 2, 3, 4)
	_, err := p.Train(train)
	require.NoError(t, err)

	label, profile, err := p.Infer(train[2].Features)
	require.NoError(t, err)
	assert.Equal(t, 2, label)
	require.Len(t, profile, 5)
	assert.Equal(t, 1.0, profile[2])
	for _, v := range profile {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestRetrainReplacesModel(t *testing.T) {
	p := newPipeline()
	_, err := p.Train(oneHot(0, 1, 2, 3, 4))
	require.NoError(t, err)
	first := p.Model()

	var stripes datasets.Dataset
	for l := 0; l < 5; l++ {
		stripes = append(stripes, datasets.NewSample(*stripe(4*l), l))
	}
	_, err = p.Train(stripes)
	require.NoError(t, err)
	require.NotSame(t, first, p.Model())

	_, _, err = p.Classify(make([]float64, 5))
	require.ErrorIs(t, err, ErrDimensionMismatch)

	label, _, err := p.ClassifySurface(stripe(8))
	require.NoError(t, err)
	assert.Equal(t, 2, label)

	second := p.Model()
	_, err = p.Train(oneHot(0, -1))
	require.Error(t, err)
	require.Same(t, second, p.Model())
}

func TestLabelsBeyondAlphabet(t *testing.T) {
	p := newPipeline()
	result, err := p.Train(oneHot(0, 6))
	require.NoError(t, err)
	assert.Equal(t, 6, result.Classes)
	assert.Equal(t, 15, result.Machines)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 6}, p.Model().Labels())

	label, _, err := p.Classify([]float64{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 6, label)
}

func TestSparseLargeLabels(t *testing.T) {
	for _, big := range []int{1_000_000, math.MaxInt} {
		p := newPipeline()
		result, err := p.Train(oneHot(0, big))
		require.NoError(t, err)
		assert.Equal(t, 6, result.Classes)
		assert.Equal(t, 15, result.Machines)

		label, scores, err := p.Classify([]float64{0, 1})
		require.NoError(t, err)
		assert.Equal(t, big, label)
		assert.Len(t, scores, 6)

		label, _, err = p.Classify([]float64{1, 0})
		require.NoError(t, err)
		assert.Equal(t, 0, label)

		report, err := p.Evaluate(oneHot(0, big))
		require.NoError(t, err)
		assert.Equal(t, 2, report.Hits)
		assert.Equal(t, big, report.Labels[5])
		assert.Equal(t, 1, report.Confusion[5][5])
	}
}

func TestConfusionCoversUnknownLabels(t *testing.T) {
	p := newPipeline()
	_, err := p.Train(oneHot(0, 1, 2, 3, 4))
	require.NoError(t, err)

	set := oneHot(0, 1, 2, 3, 4)
	set[2].Label = 7
	report, err := p.Evaluate(set)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Hits)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 7}, report.Labels)
	require.Len(t, report.Confusion, 6)
	assert.Equal(t, 1, report.Confusion[5][2])

	var sum int
	for _, row := range report.Confusion {
		require.Len(t, row, 6)
		for _, n := range row {
			sum += n
		}
	}
	assert.Equal(t, report.Total, sum)
}

func TestGaussianKernel(t *testing.T) {
	p := newPipeline(WithKernel(kernel.Gaussian{Sigma: 1}), WithKernel(nil))
	train := oneHot(0, 1, 2, 3, 4)
	_, err := p.Train(train)
	require.NoError(t, err)
	require.Equal(t, kernel.Gaussian{Sigma: 1}, p.Model().Kernel)

	for i, s := range train {
		label, _, err := p.Classify(s.Features)
		require.NoError(t, err)
		assert.Equal(t, i, label)
	}
}

func TestEndToEndGrids(t *testing.T) {
	var set datasets.Dataset
	for l := 0; l < 5; l++ {
		var g grid.Grid
		g[3*l][5*l+1] = true
		set = append(set, datasets.NewSample(g, l))
	}
	p := newPipeline()
	result, err := p.Train(set)
	require.NoError(t, err)
	assert.Equal(t, grid.Size*grid.Size, p.Model().Inputs)
	assert.Equal(t, 10, result.Machines)

	for _, s := range set {
		label, _, err := p.Classify(s.Features)
		require.NoError(t, err)
		assert.Equal(t, s.Label, label)
	}

	report, err := p.Evaluate(set)
	require.NoError(t, err)
	assert.Equal(t, "Hits: 5/5 (100%)", report.String())
}

func TestEliminationAgrees(t *testing.T) {
	voting := newPipeline()
	elimination := newPipeline(WithMethod(svm.Elimination))
	train := oneHot(0, 1, 2, 3, 4)
	_, err := voting.Train(train)
	require.NoError(t, err)
	_, err = elimination.Train(train)
	require.NoError(t, err)
	require.Equal(t, svm.Elimination, elimination.Model().Method)

	for _, s := range train {
		a, _, err := voting.Classify(s.Features)
		require.NoError(t, err)
		b, _, err := elimination.Classify(s.Features)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestTrainLogs(t *testing.T) {
	logger, hook := quiet()
	p := New(WithLogger(logger))
	_, err := p.Train(oneHot(0, 1))
	require.NoError(t, err)
	require.NotEmpty(t, hook.Entries)
	assert.Equal(t, "training complete", hook.LastEntry().Message)
	assert.Equal(t, 2, hook.LastEntry().Data["samples"])
}

func TestSingleSample(t *testing.T) {
	p := newPipeline()
	var g grid.Grid
	g[0][0] = true
	s := datasets.NewSample(g, 3)
	_, err := p.Train(datasets.Dataset{s})
	require.NoError(t, err)

	label, _, err := p.Classify(s.Features)
	require.NoError(t, err)
	assert.Equal(t, 3, label)

	report, err := p.Evaluate(datasets.Dataset{s})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Hits)
}
