// Package datasets implements the labeled sample types shared by the corpus
// parsers and the training pipeline
package datasets

import "math/rand"
import "sort"

import "github.com/neurlang/fidel/grid"

// Sample is one labeled feature vector. Grid is kept for display when the
// sample came from a corpus or a drawing.
type Sample struct {
	Features []float64
	Label    int
	Grid     *grid.Grid
}

// NewSample builds a sample from a grid, using the full 1024-value encoding
func NewSample(g grid.Grid, label int) Sample {
	return Sample{
		Features: g.FeatureVector(),
		Label:    label,
		Grid:     &g,
	}
}

// Dataset is an ordered list of samples
type Dataset []Sample

// Vectors returns the feature vectors in dataset order
func (d Dataset) Vectors() [][]float64 {
	var o = make([][]float64, len(d))
	for i := range d {
		o[i] = d[i].Features
	}
	return o
}

// Labels returns the labels in dataset order
func (d Dataset) Labels() []int {
	var o = make([]int, len(d))
	for i := range d {
		o[i] = d[i].Label
	}
	return o
}

// Downsampled returns a copy of the dataset with each sample encoded as its
// 8x8 block histogram. Samples without a grid keep their features.
func (d Dataset) Downsampled() Dataset {
	var o = make(Dataset, len(d))
	for i := range d {
		o[i] = d[i]
		if d[i].Grid != nil {
			o[i].Features = d[i].Grid.Downsample()
		}
	}
	return o
}

// Shuffle shuffles the dataset in place
func (d Dataset) Shuffle(r *rand.Rand) {
	r.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// SplittedDataset holds the indices of the samples of each label
type SplittedDataset map[int][]int

// SplitDataset groups sample indices by label, keeping dataset order within a label
func SplitDataset(d Dataset) SplittedDataset {
	return SplitLabels(d.Labels())
}

// SplitLabels groups the positions of labels by value, keeping order within a label
func SplitLabels(labels []int) (o SplittedDataset) {
	o = make(SplittedDataset)
	for i, l := range labels {
		o[l] = append(o[l], i)
	}
	return
}

// Labels returns the distinct labels in ascending order
func (s SplittedDataset) Labels() []int {
	var o = make([]int, 0, len(s))
	for l := range s {
		o = append(o, l)
	}
	sort.Ints(o)
	return o
}
