package learning

import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/neurlang/fidel/kernel"
import "github.com/neurlang/fidel/svm"

func TestSMOTwoPoints(t *testing.T) {
	m := svm.NewMachine(kernel.Polynomial{Degree: 2})
	inputs := [][]float64{{1, 0}, {0, 1}}
	e, err := NewSMO(m, inputs, []int{1, -1}, Default()).Run()
	require.NoError(t, err)
	assert.Zero(t, e)
	assert.InDelta(t, 1, m.Compute(inputs[0]), 1e-9)
	assert.InDelta(t, -1, m.Compute(inputs[1]), 1e-9)
	assert.Equal(t, 2, m.Len())
}

func TestSMOSeparable(t *testing.T) {
	// two clusters on either side of x = y
	var inputs [][]float64
	var outputs []int
	for i := 0; i < 10; i++ {
		d := float64(i) / 10
		inputs = append(inputs, []float64{2 + d, d}, []float64{d, 2 + d})
		outputs = append(outputs, 1, -1)
	}
	m := svm.NewMachine(kernel.Linear{})
	h := Default()
	h.Tolerance = 0.001
	e, err := NewSMO(m, inputs, outputs, h).Run()
	require.NoError(t, err)
	assert.Zero(t, e)
	for i, x := range inputs {
		assert.Equal(t, outputs[i] > 0, m.Compute(x) > 0, "sample %d", i)
	}
	assert.Positive(t, m.Compute([]float64{5, 0}))
	assert.Negative(t, m.Compute([]float64{0, 5}))
}

func TestSMOSingleClass(t *testing.T) {
	m := svm.NewMachine(kernel.Linear{})
	e, err := NewSMO(m, [][]float64{{1}, {2}}, []int{-1, -1}, Default()).Run()
	require.NoError(t, err)
	assert.Zero(t, e)
	assert.Equal(t, -1.0, m.Compute([]float64{3}))
}

func TestSMOInvalid(t *testing.T) {
	m := svm.NewMachine(kernel.Linear{})
	_, err := NewSMO(m, nil, nil, Default()).Run()
	require.ErrorIs(t, err, ErrEmpty)

	_, err = NewSMO(m, [][]float64{{1}}, []int{1, -1}, Default()).Run()
	require.ErrorIs(t, err, svm.ErrLength)

	_, err = NewSMO(m, [][]float64{{1}, {2}}, []int{1, 0}, Default()).Run()
	require.ErrorIs(t, err, ErrOutput)
}

func TestDefault(t *testing.T) {
	h := Default()
	assert.Equal(t, 1.0, h.Complexity)
	assert.Equal(t, 0.001, h.Epsilon)
	assert.Equal(t, 0.2, h.Tolerance)
	assert.Positive(t, h.Threads)
	assert.Equal(t, DefaultMaxPasses, h.maxPasses())
}
