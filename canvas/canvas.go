// Package canvas is a headless drawing surface: it records pen strokes and
// renders them as a 32x32 letter grid.
package canvas

import "image"
import "math"
import "sync"

import "golang.org/x/image/draw"
import "golang.org/x/image/vector"

import "github.com/neurlang/fidel/grid"

// DefaultSize is the side of the surface in pixels when New is given none
const DefaultSize = 256

// Threshold is the smallest alpha of a scaled pixel counted as ink (25%)
const Threshold = 0x40

// discSides is the number of polygon sides approximating the round pen tip
const discSides = 16

// Point is a pen position in surface pixels, origin top left
type Point struct {
	X, Y float32
}

type stroke struct {
	width  float32
	points []Point
}

// Canvas is a square drawing surface. It is safe for concurrent use.
type Canvas struct {
	mut     sync.Mutex
	size    int
	pen     float32
	strokes []stroke
}

// New returns an empty canvas of size x size pixels
func New(size int) *Canvas {
	if size <= 0 {
		size = DefaultSize
	}
	return &Canvas{
		size: size,
		pen:  float32(size) / 16,
	}
}

// Size returns the side of the surface in pixels
func (c *Canvas) Size() int {
	return c.size
}

// SetPenWidth sets the width of subsequent strokes
func (c *Canvas) SetPenWidth(w float32) {
	if w <= 0 {
		return
	}
	c.mut.Lock()
	c.pen = w
	c.mut.Unlock()
}

// PenWidth returns the current pen width
func (c *Canvas) PenWidth() float32 {
	c.mut.Lock()
	defer c.mut.Unlock()
	return c.pen
}

// Stroke draws a polyline through points with the current pen
func (c *Canvas) Stroke(points ...Point) {
	if len(points) == 0 {
		return
	}
	c.mut.Lock()
	c.strokes = append(c.strokes, stroke{
		width:  c.pen,
		points: append([]Point(nil), points...),
	})
	c.mut.Unlock()
}

// Strokes returns the number of strokes drawn since the last Clear
func (c *Canvas) Strokes() int {
	c.mut.Lock()
	defer c.mut.Unlock()
	return len(c.strokes)
}

// Clear erases the surface
func (c *Canvas) Clear() {
	c.mut.Lock()
	c.strokes = nil
	c.mut.Unlock()
}

// Image renders the strokes at full resolution as ink coverage
func (c *Canvas) Image() *image.Alpha {
	c.mut.Lock()
	defer c.mut.Unlock()

	var dst = image.NewAlpha(image.Rect(0, 0, c.size, c.size))
	var z = vector.NewRasterizer(c.size, c.size)
	var fill = func() {
		z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
		z.Reset(c.size, c.size)
	}
	for _, s := range c.strokes {
		var r = s.width / 2
		for i, p := range s.points {
			disc(z, p, r)
			fill()
			if i > 0 && segment(z, s.points[i-1], p, r) {
				fill()
			}
		}
	}
	return dst
}

// disc adds a polygon approximating a circle of radius r around p
func disc(z *vector.Rasterizer, p Point, r float32) {
	for k := 0; k < discSides; k++ {
		var a = 2 * math.Pi * float64(k) / discSides
		var x = p.X + r*float32(math.Cos(a))
		var y = p.Y + r*float32(math.Sin(a))
		if k == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

// segment adds the rectangle of half width r between a and b
func segment(z *vector.Rasterizer, a, b Point, r float32) bool {
	var dx, dy = b.X - a.X, b.Y - a.Y
	var l = float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return false
	}
	var nx, ny = -dy / l * r, dx / l * r
	z.MoveTo(a.X+nx, a.Y+ny)
	z.LineTo(b.X+nx, b.Y+ny)
	z.LineTo(b.X-nx, b.Y-ny)
	z.LineTo(a.X-nx, a.Y-ny)
	z.ClosePath()
	return true
}

// Grid scales the surface down to 32x32 and marks every cell whose
// coverage reaches Threshold as ink
func (c *Canvas) Grid() (g grid.Grid) {
	var src = c.Image()
	var small = image.NewAlpha(image.Rect(0, 0, grid.Size, grid.Size))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), src, src.Bounds(), draw.Src, nil)
	for i := 0; i < grid.Size; i++ {
		for j := 0; j < grid.Size; j++ {
			g[i][j] = small.AlphaAt(j, i).A >= Threshold
		}
	}
	return
}

// FeatureVector renders the surface as a grid feature vector
func (c *Canvas) FeatureVector() grid.FeatureVector {
	var g = c.Grid()
	return g.FeatureVector()
}
