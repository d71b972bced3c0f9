package grid

import "image"
import "image/color"
import "math"

import "github.com/pkg/errors"

// Bitmap draws the grid as a 32x32 image, white background and black ink.
func (g *Grid) Bitmap() *image.RGBA {
	var img = image.NewRGBA(image.Rect(0, 0, Size, Size))
	for i := range g {
		for j, cell := range g[i] {
			if cell {
				img.SetRGBA(j, i, color.RGBA{0, 0, 0, 0xff})
			} else {
				img.SetRGBA(j, i, color.RGBA{0xff, 0xff, 0xff, 0xff})
			}
		}
	}
	return img
}

// FromBitmap reads a grid back from a 32x32 image. A pixel whose red channel
// is fully saturated is background, everything else is ink.
func FromBitmap(img image.Image) (g Grid, err error) {
	var b = img.Bounds()
	if b.Dx() != Size || b.Dy() != Size {
		return g, errors.Wrapf(ErrMalformedSample, "bitmap is %dx%d, want %dx%d", b.Dx(), b.Dy(), Size, Size)
	}
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			r, _, _, _ := img.At(b.Min.X+j, b.Min.Y+i).RGBA()
			g[i][j] = r>>8 != 0xff
		}
	}
	return g, nil
}

// VectorBitmap renders any 1024-value vector as inverse intensity: 0 is white,
// magnitudes of 1 and above are black. Only {0,1} vectors map back to a grid exactly.
func VectorBitmap(v []float64) (*image.Gray, error) {
	if len(v) != Cells {
		return nil, errors.Wrapf(ErrVectorLength, "got %d values, want %d", len(v), Cells)
	}
	var img = image.NewGray(image.Rect(0, 0, Size, Size))
	for n, value := range v {
		var level = 255 - math.Max(0, math.Min(255, math.Abs(value)*255))
		img.SetGray(n%Size, n/Size, color.Gray{Y: uint8(level)})
	}
	return img, nil
}
