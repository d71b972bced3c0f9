// Package learning implements the training stage of the pairwise support vector machines
package learning

import "math"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/mat"

import "github.com/neurlang/fidel/svm"

// ErrEmpty is returned when a machine is trained on no samples
var ErrEmpty = errors.New("learning: no samples")

// ErrOutput is returned when an output is neither +1 nor -1
var ErrOutput = errors.New("learning: outputs must be +1 or -1")

// SMO trains a binary machine by sequential minimal optimization: it
// repeatedly picks two Lagrange multipliers violating the KKT conditions and
// solves their two-variable problem analytically.
type SMO struct {
	HyperParameters

	machine *svm.Machine
	inputs  [][]float64
	outputs []float64

	gram   *mat.SymDense
	alpha  []float64
	errors []float64 // cached u(x) - y, where u(x) = Σ αy·K - b
	b      float64
}

// NewSMO prepares the optimization of machine m over inputs labeled +1 / -1
func NewSMO(m *svm.Machine, inputs [][]float64, outputs []int, h HyperParameters) *SMO {
	var s = &SMO{
		HyperParameters: h,
		machine:         m,
		inputs:          inputs,
		outputs:         make([]float64, len(outputs)),
	}
	for i, y := range outputs {
		s.outputs[i] = float64(y)
	}
	return s
}

// Algorithm returns a svm.Algorithm training each pair with SMO under h
func Algorithm(h HyperParameters) svm.Algorithm {
	return func(m *svm.Machine, inputs [][]float64, outputs []int, i, j int) svm.Learner {
		return NewSMO(m, inputs, outputs, h)
	}
}

// Run optimizes the machine and returns the fraction of training samples it misclassifies
func (s *SMO) Run() (float64, error) {
	var n = len(s.inputs)
	if n == 0 {
		return 0, ErrEmpty
	}
	if len(s.outputs) != n {
		return 0, errors.Wrapf(svm.ErrLength, "%d inputs, %d outputs", n, len(s.outputs))
	}
	var positive, negative bool
	for i, y := range s.outputs {
		switch y {
		case 1:
			positive = true
		case -1:
			negative = true
		default:
			return 0, errors.Wrapf(ErrOutput, "sample %d has %v", i, y)
		}
	}
	if !positive || !negative {
		s.machine.SupportVectors = nil
		s.machine.Weights = nil
		s.machine.Threshold = s.outputs[0]
		return 0, nil
	}

	s.gram = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.gram.SetSym(i, j, s.machine.Kernel.Function(s.inputs[i], s.inputs[j]))
		}
	}
	s.alpha = make([]float64, n)
	s.errors = make([]float64, n)
	s.b = 0
	for i := range s.errors {
		s.errors[i] = -s.outputs[i]
	}

	var numChanged = 0
	var examineAll = true
	for passes := 0; (numChanged > 0 || examineAll) && passes < s.maxPasses(); passes++ {
		numChanged = 0
		for i := 0; i < n; i++ {
			if (examineAll || !s.bound(i)) && s.examine(i) {
				numChanged++
			}
		}
		if examineAll {
			examineAll = false
		} else if numChanged == 0 {
			examineAll = true
		}
	}

	s.finalize()

	var miss int
	for i := range s.outputs {
		if (s.errors[i]+s.outputs[i])*s.outputs[i] <= 0 {
			miss++
		}
	}
	return float64(miss) / float64(n), nil
}

// bound reports whether alpha i sits on a box constraint
func (s *SMO) bound(i int) bool {
	return s.alpha[i] <= 0 || s.alpha[i] >= s.Complexity
}

// examine tries to make progress on sample i2, choosing its partner by the
// largest error difference, then any unbound sample, then any sample.
func (s *SMO) examine(i2 int) bool {
	var y2, a2, e2 = s.outputs[i2], s.alpha[i2], s.errors[i2]
	var r2 = e2 * y2
	if !((r2 < -s.Tolerance && a2 < s.Complexity) || (r2 > s.Tolerance && a2 > 0)) {
		return false
	}

	var n = len(s.alpha)
	var i1 = -1
	var best float64
	for k := 0; k < n; k++ {
		if s.bound(k) {
			continue
		}
		if d := math.Abs(s.errors[k] - e2); d > best {
			best, i1 = d, k
		}
	}
	if i1 >= 0 && s.step(i1, i2) {
		return true
	}
	for k := 1; k < n; k++ {
		if i1 = (i2 + k) % n; !s.bound(i1) && s.step(i1, i2) {
			return true
		}
	}
	for k := 1; k < n; k++ {
		if i1 = (i2 + k) % n; s.step(i1, i2) {
			return true
		}
	}
	return false
}

// step jointly optimizes alphas i1 and i2
func (s *SMO) step(i1, i2 int) bool {
	if i1 == i2 {
		return false
	}
	var c = s.Complexity
	var a1, a2 = s.alpha[i1], s.alpha[i2]
	var y1, y2 = s.outputs[i1], s.outputs[i2]
	var e1, e2 = s.errors[i1], s.errors[i2]
	var sign = y1 * y2

	var lo, hi float64
	if y1 != y2 {
		lo, hi = math.Max(0, a2-a1), math.Min(c, c+a2-a1)
	} else {
		lo, hi = math.Max(0, a1+a2-c), math.Min(c, a1+a2)
	}
	if lo == hi {
		return false
	}

	var k11, k12, k22 = s.gram.At(i1, i1), s.gram.At(i1, i2), s.gram.At(i2, i2)
	var eta = k11 + k22 - 2*k12

	var a2new float64
	if eta > 0 {
		a2new = math.Min(hi, math.Max(lo, a2+y2*(e1-e2)/eta))
	} else {
		// objective at both ends of the segment
		var f1 = y1*(e1+s.b) - a1*k11 - sign*a2*k12
		var f2 = y2*(e2+s.b) - sign*a1*k12 - a2*k22
		var l1 = a1 + sign*(a2-lo)
		var h1 = a1 + sign*(a2-hi)
		var lobj = l1*f1 + lo*f2 + l1*l1*k11/2 + lo*lo*k22/2 + sign*lo*l1*k12
		var hobj = h1*f1 + hi*f2 + h1*h1*k11/2 + hi*hi*k22/2 + sign*hi*h1*k12
		switch {
		case lobj < hobj-s.Epsilon:
			a2new = lo
		case lobj > hobj+s.Epsilon:
			a2new = hi
		default:
			a2new = a2
		}
	}
	if math.Abs(a2new-a2) < s.Epsilon*(a2new+a2+s.Epsilon) {
		return false
	}

	var a1new = a1 + sign*(a2-a2new)
	if a1new < 0 {
		a2new += sign * a1new
		a1new = 0
	} else if a1new > c {
		a2new += sign * (a1new - c)
		a1new = c
	}

	var d1, d2 = y1 * (a1new - a1), y2 * (a2new - a2)
	var b1 = e1 + d1*k11 + d2*k12 + s.b
	var b2 = e2 + d1*k12 + d2*k22 + s.b
	var bnew float64
	switch {
	case a1new > 0 && a1new < c:
		bnew = b1
	case a2new > 0 && a2new < c:
		bnew = b2
	default:
		bnew = (b1 + b2) / 2
	}

	var db = bnew - s.b
	for k := range s.errors {
		s.errors[k] += d1*s.gram.At(i1, k) + d2*s.gram.At(i2, k) - db
	}
	s.alpha[i1], s.alpha[i2] = a1new, a2new
	s.b = bnew
	return true
}

// finalize copies the support vectors into the machine
func (s *SMO) finalize() {
	s.machine.SupportVectors = s.machine.SupportVectors[:0]
	s.machine.Weights = s.machine.Weights[:0]
	for i, a := range s.alpha {
		if a > 0 {
			s.machine.SupportVectors = append(s.machine.SupportVectors, s.inputs[i])
			s.machine.Weights = append(s.machine.Weights, a*s.outputs[i])
		}
	}
	s.machine.Threshold = -s.b
}
