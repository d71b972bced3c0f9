package learning

import "github.com/neurlang/fidel/parallel"

// HyperParameters configure the sequential minimal optimization of each pairwise machine
type HyperParameters struct {
	Threads int // number of pairwise machines trained concurrently

	Complexity float64 // cost of margin violations (C)
	Epsilon    float64 // smallest relative alpha change accepted as progress
	Tolerance  float64 // slack allowed on the KKT conditions

	MaxPasses int // bound on optimization sweeps, 0 selects DefaultMaxPasses
}

// DefaultMaxPasses bounds the sweeps of a single optimization
const DefaultMaxPasses = 10000

// Default returns the fixed hyperparameters of the letter recognizer
func Default() HyperParameters {
	return HyperParameters{
		Threads:    parallel.Threads(),
		Complexity: 1.0,
		Epsilon:    0.001,
		Tolerance:  0.2,
	}
}

func (h *HyperParameters) maxPasses() int {
	if h.MaxPasses <= 0 {
		return DefaultMaxPasses
	}
	return h.MaxPasses
}
