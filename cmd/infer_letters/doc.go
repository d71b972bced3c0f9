// Package main trains the letter recognizer and classifies one handwritten
// letter, given either as a 32x32 grid text file or as pen strokes drawn on a
// headless canvas. It prints the predicted letter with the relative response
// of every class and can render that response as a bar chart.
//
// The strokes file is JSON: a list of strokes, each a list of [x, y] points
// in canvas pixels.
//
//	[[[40, 60], [200, 60]], [[120, 60], [120, 220]]]
package main
