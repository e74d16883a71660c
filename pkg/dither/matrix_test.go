package dither

import (
	"sort"
	"testing"
)

func TestBayerMatricesNormalized(t *testing.T) {
	for _, m := range []Matrix{Bayer4(), Bayer8()} {
		n := m.Size()
		var cells []float64
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				v := m.At(x, y)
				if v <= 0 || v >= 1 {
					t.Fatalf("size %d cell (%d,%d) = %v outside (0,1)", n, x, y, v)
				}
				cells = append(cells, v)
			}
		}
		// every rank 0..N²-1 appears exactly once
		sort.Float64s(cells)
		for k, v := range cells {
			want := (float64(k) + 0.5) / float64(n*n)
			if v != want {
				t.Fatalf("size %d rank %d = %v, want %v", n, k, v, want)
			}
		}
	}
}

func TestMatrixTiles(t *testing.T) {
	m := Bayer4()
	if m.At(0, 0) != 0.5/16 {
		t.Fatalf("At(0,0) = %v", m.At(0, 0))
	}
	if m.At(1, 0) != 8.5/16 {
		t.Fatalf("At(1,0) = %v", m.At(1, 0))
	}
	for _, p := range [][2]int{{5, 2}, {13, 6}, {4, 4}} {
		if m.At(p[0], p[1]) != m.At(p[0]%4, p[1]%4) {
			t.Fatalf("At(%d,%d) does not tile", p[0], p[1])
		}
	}
	if Bayer8().At(7, 7) != 21.5/64 {
		t.Fatalf("Bayer8 At(7,7) = %v", Bayer8().At(7, 7))
	}
}
