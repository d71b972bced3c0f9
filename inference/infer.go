// Package inference turns the raw per-class scores of a classifier into a
// presentable confidence profile
package inference

import "gonum.org/v1/gonum/floats"

// Model is a trained multiclass classifier
type Model interface {
	Compute(x []float64) (int, []float64)
}

// Profile holds one min-max scaled score in [0,1] per class. It is not a
// probability distribution.
type Profile []float64

// Scale maps the lowest raw score to 0 and the highest to 1. When all scores
// are equal every class gets 0.5.
func Scale(raw []float64) Profile {
	if len(raw) == 0 {
		return Profile{}
	}
	var lo, hi = floats.Min(raw), floats.Max(raw)
	var o = make(Profile, len(raw))
	for i, s := range raw {
		if hi == lo {
			o[i] = 0.5
		} else {
			o[i] = (s - lo) / (hi - lo)
		}
	}
	return o
}

// Percent returns the profile scaled to 0..100
func (p Profile) Percent() []float64 {
	var o = make([]float64, len(p))
	copy(o, p)
	floats.Scale(100, o)
	return o
}

// Infer classifies x and scales the raw scores
func Infer(m Model, x []float64) (int, Profile) {
	label, raw := m.Compute(x)
	return label, Scale(raw)
}
