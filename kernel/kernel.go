// Package kernel implements the similarity functions used by support vector machines
package kernel

import "math"
import "strings"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/floats"

// ErrUnknown is returned by Parse for names of no kernel
var ErrUnknown = errors.New("kernel: unknown kernel")

// ErrSigma is returned by Parse for a Gaussian of non-positive width
var ErrSigma = errors.New("kernel: gaussian sigma must be positive")

// Kernel computes the similarity of two equally long vectors
type Kernel interface {
	Function(x, y []float64) float64
}

// Linear is the plain dot product
type Linear struct{}

// Function implements Kernel
func (Linear) Function(x, y []float64) float64 {
	return floats.Dot(x, y)
}

// Polynomial is (x·y + Constant)^Degree
type Polynomial struct {
	Degree   int
	Constant float64
}

// Function implements Kernel
func (p Polynomial) Function(x, y []float64) float64 {
	var base = floats.Dot(x, y) + p.Constant
	var out = 1.0
	for i := 0; i < p.Degree; i++ {
		out *= base
	}
	return out
}

// Gaussian is exp(-|x-y|² / 2σ²)
type Gaussian struct {
	Sigma float64
}

// Function implements Kernel
func (g Gaussian) Function(x, y []float64) float64 {
	var d = floats.Distance(x, y, 2)
	return math.Exp(-d * d / (2 * g.Sigma * g.Sigma))
}

// Parse returns the kernel called name: "polynomial" (the quadratic (x·y)²,
// also ""), "linear" or "gaussian" of width sigma.
func Parse(name string, sigma float64) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "polynomial", "quadratic":
		return Polynomial{Degree: 2}, nil
	case "linear":
		return Linear{}, nil
	case "gaussian", "rbf":
		if sigma <= 0 {
			return nil, errors.Wrapf(ErrSigma, "got %v", sigma)
		}
		return Gaussian{Sigma: sigma}, nil
	}
	return nil, errors.Wrapf(ErrUnknown, "%q", name)
}
