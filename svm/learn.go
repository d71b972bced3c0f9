package svm

import "github.com/pkg/errors"

import "github.com/neurlang/fidel/datasets"
import "github.com/neurlang/fidel/parallel"

// ErrLength is returned when inputs and outputs disagree in count or dimension
var ErrLength = errors.New("svm: input length mismatch")

// ErrLabel is returned when an output label belongs to no class
var ErrLabel = errors.New("svm: label out of range")

// Learner trains one binary machine and reports its training error
type Learner interface {
	Run() (float64, error)
}

// Algorithm creates the learner of the pairwise machine for classes i and j.
// Outputs are +1 for class i and -1 for class j.
type Algorithm func(m *Machine, inputs [][]float64, outputs []int, i, j int) Learner

// Learn trains every pairwise machine of mc on up to threads goroutines.
// Outputs are labels of mc. It returns the training error averaged over the
// pairwise problems, weighted by their size. Pairs where only one class has samples always pick that class.
// The machines of mc are replaced only when every pair succeeds.
func Learn(mc *Multiclass, inputs [][]float64, outputs []int, algorithm Algorithm, threads int) (float64, error) {
	if len(inputs) != len(outputs) {
		return 0, errors.Wrapf(ErrLength, "%d inputs, %d outputs", len(inputs), len(outputs))
	}
	for n, label := range outputs {
		if _, ok := mc.index[label]; !ok {
			return 0, errors.Wrapf(ErrLabel, "sample %d has label %d", n, label)
		}
		if len(inputs[n]) != mc.Inputs {
			return 0, errors.Wrapf(ErrLength, "sample %d has %d values, want %d", n, len(inputs[n]), mc.Inputs)
		}
	}
	var byLabel = datasets.SplitLabels(outputs)

	var machines = make([][]*Machine, mc.classes-1)
	for i := range machines {
		machines[i] = make([]*Machine, i+1)
	}
	var pairErrors = make([]float64, mc.Pairs())
	var pairSizes = make([]int, mc.Pairs())

	err := parallel.ForEachErr(mc.Pairs(), threads, func(n int) error {
		var i, j = mc.Pair(n)
		var pos, neg = byLabel[mc.labels[i]], byLabel[mc.labels[j]]
		if len(pos) == 0 && len(neg) == 0 {
			return nil
		}
		var m = NewMachine(mc.Kernel)
		machines[i-1][j] = m
		if len(neg) == 0 {
			m.Threshold = 1
			return nil
		}
		if len(pos) == 0 {
			m.Threshold = -1
			return nil
		}

		var subInputs = make([][]float64, 0, len(pos)+len(neg))
		var subOutputs = make([]int, 0, len(pos)+len(neg))
		for _, k := range pos {
			subInputs = append(subInputs, inputs[k])
			subOutputs = append(subOutputs, 1)
		}
		for _, k := range neg {
			subInputs = append(subInputs, inputs[k])
			subOutputs = append(subOutputs, -1)
		}

		e, err := algorithm(m, subInputs, subOutputs, i, j).Run()
		if err != nil {
			return errors.Wrapf(err, "pair %d-%d", i, j)
		}
		pairErrors[n] = e
		pairSizes[n] = len(subInputs)
		return nil
	})
	if err != nil {
		return 0, err
	}

	var sum float64
	var total int
	for n := range pairErrors {
		sum += pairErrors[n] * float64(pairSizes[n])
		total += pairSizes[n]
	}
	mc.machines = machines
	if total == 0 {
		return 0, nil
	}
	return sum / float64(total), nil
}
