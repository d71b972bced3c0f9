// Package svm implements kernel support vector machines and their pairwise
// (one-vs-one) combination into a multiclass classifier
package svm

import "github.com/neurlang/fidel/kernel"

// Machine is a binary kernel support vector machine. A positive output
// selects the first class of its pair.
type Machine struct {
	Kernel         kernel.Kernel
	SupportVectors [][]float64
	Weights        []float64
	Threshold      float64
}

// NewMachine creates an untrained machine which outputs zero everywhere
func NewMachine(k kernel.Kernel) *Machine {
	return &Machine{Kernel: k}
}

// Compute returns the decision value Σ wᵢ·K(svᵢ, x) + Threshold
func (m *Machine) Compute(x []float64) float64 {
	var sum = m.Threshold
	for i, sv := range m.SupportVectors {
		sum += m.Weights[i] * m.Kernel.Function(sv, x)
	}
	return sum
}

// Len returns the number of support vectors
func (m *Machine) Len() int {
	return len(m.SupportVectors)
}
