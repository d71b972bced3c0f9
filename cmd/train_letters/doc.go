// Package main trains the handwritten Amharic letter recognizer on a window of
// the training corpus and reports its accuracy on a window of the test corpus.
// One support vector machine is trained per pair of letters and the pairwise
// decisions are combined by voting or by elimination.
//
// Usage:
//
//	train_letters [-config settings.yaml] [-train path] [-test path]
//	              [-method voting|elimination] [-kernel polynomial|linear|gaussian] [-sigma w]
//	              [-seed n] [-downsample] [-mismatched dir] [-v] [-pgo]
package main
