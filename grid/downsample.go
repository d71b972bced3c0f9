package grid

// Block is the edge of the square cell block counted by Downsample.
const Block = 4

// Blocks is the number of blocks along one edge of the grid.
const Blocks = Size / Block

// DownsampledVector holds the foreground count of each 4x4 block, in row-major block order.
type DownsampledVector []float64

// Downsample reduces the grid to an 8x8 histogram of foreground cells.
func (g *Grid) Downsample() DownsampledVector {
	var v = make(DownsampledVector, Blocks*Blocks)
	for m := 0; m < Blocks; m++ {
		for n := 0; n < Blocks; n++ {
			var c = m*Blocks + n
			for i := m * Block; i < m*Block+Block; i++ {
				for j := n * Block; j < n*Block+Block; j++ {
					if g[i][j] {
						v[c]++
					}
				}
			}
		}
	}
	return v
}
