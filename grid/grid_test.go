package grid

import "errors"
import "strings"
import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

// diagonal returns a grid with the main diagonal and the first row set
func diagonal() (g Grid) {
	for i := 0; i < Size; i++ {
		g[i][i] = true
		g[0][i] = true
	}
	return
}

func TestDecodeRoundTrip(t *testing.T) {
	g := diagonal()
	decoded, err := Decode(g.Encode())
	require.NoError(t, err)
	require.Equal(t, g, decoded)
}

func TestDecodeOtherSymbolsAreForeground(t *testing.T) {
	var lines []string
	for i := 0; i < Size; i++ {
		lines = append(lines, "x"+strings.Repeat("0", Size-1))
	}
	g, err := Decode(strings.Join(lines, "\n"))
	require.NoError(t, err)
	for i := 0; i < Size; i++ {
		assert.True(t, g.At(i, 0))
		assert.False(t, g.At(i, 1))
	}
	assert.Equal(t, Size, g.Foreground())
}

func TestDecodeCountsCharacters(t *testing.T) {
	var lines []string
	for i := 0; i < Size; i++ {
		lines = append(lines, "ሀ"+strings.Repeat("0", Size-1))
	}
	g, err := Decode(strings.Join(lines, "\r\n"))
	require.NoError(t, err)
	assert.Equal(t, Size, g.Foreground())
	assert.True(t, g.At(0, 0))
	assert.False(t, g.At(0, 1))
	assert.False(t, g.At(0, 2))

	// 31 characters but more than 32 bytes
	short := strings.Repeat("ሀ", Size-1)
	_, err = Decode(strings.Repeat(short+"\r\n", Size))
	require.ErrorIs(t, err, ErrMalformedSample)
}

func TestDecodeSkipsEmptyLines(t *testing.T) {
	g := diagonal()
	text := "\r\n\r\n" + strings.ReplaceAll(g.Encode(), "\r\n", "\r\n\r\n")
	decoded, err := Decode(text)
	require.NoError(t, err)
	require.Equal(t, g, decoded)
}

func TestDecodeMalformed(t *testing.T) {
	row := strings.Repeat("0", Size) + "\r\n"
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"too few lines", strings.Repeat(row, Size-1)},
		{"short line", strings.Repeat(row, Size-1) + strings.Repeat("0", Size-1) + "\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.text)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrMalformedSample))
		})
	}
}

func TestDecodeIgnoresExtraText(t *testing.T) {
	row := strings.Repeat("1", Size+5) + "\r\n"
	g, err := Decode(strings.Repeat(row, Size+3))
	require.NoError(t, err)
	require.Equal(t, Cells, g.Foreground())
}

func TestFeatureVector(t *testing.T) {
	g := diagonal()
	v := g.FeatureVector()
	require.Len(t, v, Cells)
	require.Equal(t, v, g.FeatureVector())
	for n, value := range v {
		row, col := n/Size, n%Size
		if row == col || row == 0 {
			assert.Equal(t, 1.0, value, "cell %d", n)
		} else {
			assert.Equal(t, 0.0, value, "cell %d", n)
		}
	}

	back, err := FromFeatureVector(v)
	require.NoError(t, err)
	require.Equal(t, g, back)

	_, err = FromFeatureVector(v[1:])
	require.ErrorIs(t, err, ErrVectorLength)
}

func TestBitmapRoundTrip(t *testing.T) {
	g := diagonal()
	img := g.Bitmap()
	r, gg, b, _ := img.At(5, 5).RGBA()
	require.Zero(t, r|gg|b)
	r, _, _, _ = img.At(5, 6).RGBA()
	require.Equal(t, uint32(0xffff), r)

	back, err := FromBitmap(img)
	require.NoError(t, err)
	require.Equal(t, g, back)
}

func TestVectorBitmap(t *testing.T) {
	g := diagonal()
	img, err := VectorBitmap(g.FeatureVector())
	require.NoError(t, err)
	require.Equal(t, uint8(0), img.GrayAt(3, 3).Y)
	require.Equal(t, uint8(255), img.GrayAt(3, 4).Y)

	back, err := FromBitmap(img)
	require.NoError(t, err)
	require.Equal(t, g, back)

	v := make([]float64, Cells)
	v[1] = -0.5
	v[2] = 7
	img, err = VectorBitmap(v)
	require.NoError(t, err)
	require.Equal(t, uint8(127), img.GrayAt(1, 0).Y)
	require.Equal(t, uint8(0), img.GrayAt(2, 0).Y)

	_, err = VectorBitmap(v[:10])
	require.ErrorIs(t, err, ErrVectorLength)
}

func TestDownsample(t *testing.T) {
	var g Grid
	// fill the top-left block completely and one cell of the last block
	for i := 0; i < Block; i++ {
		for j := 0; j < Block; j++ {
			g[i][j] = true
		}
	}
	g[Size-1][Size-1] = true
	g[5][9] = true // block row 1, block col 2

	v := g.Downsample()
	require.Len(t, v, Blocks*Blocks)
	assert.Equal(t, 16.0, v[0])
	assert.Equal(t, 1.0, v[1*Blocks+2])
	assert.Equal(t, 1.0, v[Blocks*Blocks-1])

	var sum float64
	for _, c := range v {
		sum += c
	}
	assert.Equal(t, float64(g.Foreground()), sum)
}

func FuzzGridRoundTrip(f *testing.F) {
	f.Add([]byte{1, 2, 3, 4})
	f.Add([]byte{0xff, 0, 0x80})
	f.Fuzz(func(t *testing.T, buffer []byte) {
		var g Grid
		for n := 0; n < Cells && n/8 < len(buffer); n++ {
			g[n/Size][n%Size] = buffer[n/8]&(1<<(n%8)) != 0
		}
		decoded, err := Decode(g.Encode())
		if err != nil {
			t.Fatal(err)
		}
		if decoded != g {
			t.Fatalf("round trip mismatch:\n%s\n%s", g, decoded)
		}
	})
}
