package svm

import "strings"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/floats"

import "github.com/neurlang/fidel/kernel"

// ErrNoClasses is returned when a multiclass machine is asked for fewer than two classes
var ErrNoClasses = errors.New("svm: at least two classes are required")

// ErrDuplicateLabel is returned when a label is given to more than one class
var ErrDuplicateLabel = errors.New("svm: duplicate class label")

// ErrUnknownMethod is returned by ParseMethod
var ErrUnknownMethod = errors.New("svm: unknown compute method")

// Method selects how pairwise decisions are combined
type Method byte

const (
	// Voting gives one vote per pairwise decision to its winner
	Voting Method = iota
	// Elimination walks a decision DAG, dropping the loser of each comparison
	Elimination
)

// String implements fmt.Stringer
func (m Method) String() string {
	switch m {
	case Voting:
		return "voting"
	case Elimination:
		return "elimination"
	default:
		return "unknown"
	}
}

// ParseMethod parses the String form of a Method
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "voting":
		return Voting, nil
	case "elimination", "ddag":
		return Elimination, nil
	}
	return Voting, errors.Wrapf(ErrUnknownMethod, "%q", s)
}

// Multiclass combines one binary machine per unordered class pair. Classes
// are dense indices 0..Classes()-1, each standing for one label. The machine
// of pair (i, j), i > j, outputs positive values for class i.
type Multiclass struct {
	Kernel kernel.Kernel
	Inputs int
	Method Method

	classes  int
	labels   []int
	index    map[int]int
	machines [][]*Machine
}

// New creates an untrained multiclass machine for vectors of length inputs,
// labeled 0..classes-1
func New(k kernel.Kernel, inputs, classes int) (*Multiclass, error) {
	if classes < 2 {
		return nil, errors.Wrapf(ErrNoClasses, "got %d", classes)
	}
	var labels = make([]int, classes)
	for i := range labels {
		labels[i] = i
	}
	return NewLabeled(k, inputs, labels)
}

// NewLabeled creates an untrained multiclass machine whose class i carries
// labels[i]. Labels may be any distinct integers.
func NewLabeled(k kernel.Kernel, inputs int, labels []int) (*Multiclass, error) {
	if len(labels) < 2 {
		return nil, errors.Wrapf(ErrNoClasses, "got %d", len(labels))
	}
	var index = make(map[int]int, len(labels))
	for i, l := range labels {
		if _, ok := index[l]; ok {
			return nil, errors.Wrapf(ErrDuplicateLabel, "label %d", l)
		}
		index[l] = i
	}
	var machines = make([][]*Machine, len(labels)-1)
	for i := range machines {
		machines[i] = make([]*Machine, i+1)
	}
	return &Multiclass{
		Kernel:   k,
		Inputs:   inputs,
		classes:  len(labels),
		labels:   append([]int(nil), labels...),
		index:    index,
		machines: machines,
	}, nil
}

// Labels returns the label of every class, in class order
func (mc *Multiclass) Labels() []int {
	return append([]int(nil), mc.labels...)
}

// Label returns the label of class i
func (mc *Multiclass) Label(i int) int {
	return mc.labels[i]
}

// Class returns the class carrying label l
func (mc *Multiclass) Class(l int) (int, bool) {
	i, ok := mc.index[l]
	return i, ok
}

// Classes returns the number of classes
func (mc *Multiclass) Classes() int {
	return mc.classes
}

// Pairs returns the number of pairwise machines
func (mc *Multiclass) Pairs() int {
	return mc.classes * (mc.classes - 1) / 2
}

// Pair returns the classes (i, j), i > j, of the n-th pairwise machine
func (mc *Multiclass) Pair(n int) (i, j int) {
	i = 1
	for n >= i {
		n -= i
		i++
	}
	return i, n
}

// Machine returns the machine deciding between classes i and j. It is nil
// when neither class had training samples.
func (mc *Multiclass) Machine(i, j int) *Machine {
	if i < j {
		i, j = j, i
	}
	return mc.machines[i-1][j]
}

// SupportVectors returns the total number of support vectors
func (mc *Multiclass) SupportVectors() (n int) {
	for _, row := range mc.machines {
		for _, m := range row {
			if m != nil {
				n += m.Len()
			}
		}
	}
	return
}

// Compute classifies x, returning the label of the winning class and one
// score per class in class order. The winner is the first class holding the
// highest score.
func (mc *Multiclass) Compute(x []float64) (int, []float64) {
	var scores []float64
	if mc.Method == Elimination {
		scores = mc.eliminate(x)
	} else {
		scores = mc.vote(x)
	}
	return mc.labels[floats.MaxIdx(scores)], scores
}

// vote counts pairwise wins per class
func (mc *Multiclass) vote(x []float64) []float64 {
	var votes = make([]float64, mc.classes)
	for i := 1; i < mc.classes; i++ {
		for j := 0; j < i; j++ {
			var m = mc.machines[i-1][j]
			if m == nil {
				continue
			}
			if m.Compute(x) > 0 {
				votes[i]++
			} else {
				votes[j]++
			}
		}
	}
	return votes
}

// eliminate scores each class by the round it was dropped in, the survivor
// scores classes-1
func (mc *Multiclass) eliminate(x []float64) []float64 {
	var scores = make([]float64, mc.classes)
	var round float64
	var i, j = mc.classes - 1, 0
	for i > j {
		var m = mc.machines[i-1][j]
		if m != nil && m.Compute(x) > 0 {
			scores[j] = round
			j++
		} else {
			scores[i] = round
			i--
		}
		round++
	}
	scores[i] = round
	return scores
}
