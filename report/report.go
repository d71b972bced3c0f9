// Package report renders classification results as images
package report

import "image"
import "io"

import "github.com/pkg/errors"
import "github.com/wcharczuk/go-chart/v2"
import "golang.org/x/image/bmp"

import "github.com/neurlang/fidel/grid"
import "github.com/neurlang/fidel/inference"

// ErrNoClasses is returned when a chart is requested for an empty profile
var ErrNoClasses = errors.New("report: no classes to chart")

// ErrNames is returned when the class names do not match the profile
var ErrNames = errors.New("report: class name count mismatch")

// Chart dimensions in pixels
const (
	ChartWidth  = 640
	ChartHeight = 400
)

// WriteProfileChart renders the relative class response as a PNG bar chart,
// one bar per class labeled by names, scaled to 0-100%.
func WriteProfileChart(w io.Writer, p inference.Profile, names []string) error {
	if len(p) == 0 {
		return ErrNoClasses
	}
	if len(names) != len(p) {
		return errors.Wrapf(ErrNames, "%d names for %d classes", len(names), len(p))
	}
	var bars = make([]chart.Value, len(p))
	for i, v := range p.Percent() {
		bars[i] = chart.Value{Value: v, Label: names[i]}
	}
	var graph = chart.BarChart{
		Title:      "Class response",
		Width:      ChartWidth,
		Height:     ChartHeight,
		BarWidth:   ChartWidth / (2*len(bars) + 1),
		BarSpacing: ChartWidth / (2*len(bars) + 1),
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis: chart.YAxis{
			Name:  "%",
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}
	return errors.Wrap(graph.Render(chart.PNG, w), "report: render chart")
}

// WriteBitmap encodes img as BMP
func WriteBitmap(w io.Writer, img image.Image) error {
	return errors.Wrap(bmp.Encode(w, img), "report: encode bitmap")
}

// WriteGridBitmap encodes the grid as a black on white 32x32 BMP
func WriteGridBitmap(w io.Writer, g *grid.Grid) error {
	return WriteBitmap(w, g.Bitmap())
}
