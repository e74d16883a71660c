package dither

// Matrix is an immutable square threshold pattern with cells in (0,1),
// tiled across the image by modulo indexing.
type Matrix struct {
	size  int
	cells []float64
}

var (
	bayer4Ranks = [][]int{
		{0, 8, 2, 10},
		{12, 4, 14, 6},
		{3, 11, 1, 9},
		{15, 7, 13, 5},
	}
	bayer8Ranks = [][]int{
		{0, 32, 8, 40, 2, 34, 10, 42},
		{48, 16, 56, 24, 50, 18, 58, 26},
		{12, 44, 4, 36, 14, 46, 6, 38},
		{60, 28, 52, 20, 62, 30, 54, 22},
		{3, 35, 11, 43, 1, 33, 9, 41},
		{51, 19, 59, 27, 49, 17, 57, 25},
		{15, 47, 7, 39, 13, 45, 5, 37},
		{63, 31, 55, 23, 61, 29, 53, 21},
	}

	bayer4 = newMatrix(bayer4Ranks)
	bayer8 = newMatrix(bayer8Ranks)
)

// newMatrix normalizes rank k of an N×N table to (k+0.5)/N².
func newMatrix(ranks [][]int) Matrix {
	n := len(ranks)
	m := Matrix{size: n, cells: make([]float64, n*n)}
	for y, row := range ranks {
		for x, k := range row {
			m.cells[y*n+x] = (float64(k) + 0.5) / float64(n*n)
		}
	}
	return m
}

// Bayer4 returns the 4×4 ordered dither matrix.
func Bayer4() Matrix { return bayer4 }

// Bayer8 returns the 8×8 ordered dither matrix.
func Bayer8() Matrix { return bayer8 }

// Size is the side length of the matrix.
func (m Matrix) Size() int { return m.size }

// At returns the threshold for image position (x,y), i.e. cell
// [y mod size][x mod size]. x and y must not be negative.
func (m Matrix) At(x, y int) float64 {
	return m.cells[(y%m.size)*m.size+x%m.size]
}
