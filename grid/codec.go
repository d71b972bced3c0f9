// Package grid implements the 32x32 binary pixel grid of a handwritten letter
// and its conversions to text, feature vectors and bitmaps.
package grid

import "strings"

import "github.com/pkg/errors"

// Size is the width and height of a grid in cells.
const Size = 32

// Cells is the number of cells in a grid and the length of a FeatureVector.
const Cells = Size * Size

// ErrMalformedSample is returned when a textual or bitmap sample is not a 32x32 grid.
var ErrMalformedSample = errors.New("grid: malformed sample")

// ErrVectorLength is returned when a vector does not hold exactly one value per cell.
var ErrVectorLength = errors.New("grid: vector length mismatch")

// Grid is a 32x32 binary pixel grid. A true cell is foreground (ink).
type Grid [Size][Size]bool

// FeatureVector holds one value per cell in row-major order, 1.0 for foreground.
type FeatureVector []float64

// Decode parses the textual form of a grid. Empty lines are skipped, the
// remaining first 32 lines must carry at least 32 characters (runes) each.
// '0' is background, any other character is foreground.
func Decode(text string) (g Grid, err error) {
	var lines = make([]string, 0, Size)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == Size {
			break
		}
	}
	if len(lines) < Size {
		return g, errors.Wrapf(ErrMalformedSample, "%d lines, want %d", len(lines), Size)
	}
	for i, line := range lines {
		var cells = []rune(line)
		if len(cells) < Size {
			return g, errors.Wrapf(ErrMalformedSample, "line %d has %d characters, want %d", i+1, len(cells), Size)
		}
		for j := 0; j < Size; j++ {
			g[i][j] = cells[j] != '0'
		}
	}
	return g, nil
}

// Encode renders the grid in the corpus record form: 32 lines of '0' and '1',
// each terminated by "\r\n".
func (g *Grid) Encode() string {
	var b strings.Builder
	b.Grow(Size * (Size + 2))
	for i := range g {
		for _, cell := range g[i] {
			if cell {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteString("\r\n")
	}
	return b.String()
}

// String implements fmt.Stringer.
func (g Grid) String() string {
	return g.Encode()
}

// At reports whether the cell at row, col is foreground.
func (g *Grid) At(row, col int) bool {
	return g[row][col]
}

// Foreground counts the foreground cells.
func (g *Grid) Foreground() (n int) {
	for i := range g {
		for _, cell := range g[i] {
			if cell {
				n++
			}
		}
	}
	return
}

// FeatureVector flattens the grid row by row into 0.0 (background) and 1.0 (foreground).
func (g *Grid) FeatureVector() FeatureVector {
	var v = make(FeatureVector, Cells)
	for i := range g {
		for j, cell := range g[i] {
			if cell {
				v[i*Size+j] = 1
			}
		}
	}
	return v
}

// FromFeatureVector rebuilds a grid from a flattened vector, values of 0.5
// and above are foreground.
func FromFeatureVector(v FeatureVector) (g Grid, err error) {
	if len(v) != Cells {
		return g, errors.Wrapf(ErrVectorLength, "got %d values, want %d", len(v), Cells)
	}
	for n, value := range v {
		g[n/Size][n%Size] = value >= 0.5
	}
	return g, nil
}
