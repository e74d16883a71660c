package dither

import (
	"image"
	"math"
)

// errBuffer holds the residual pushed onto each pixel, indexed y*w+x.
// Writes outside the grid are dropped; coordinates never wrap or clamp.
type errBuffer struct {
	w, h int
	v    []float64
}

func newErrBuffer(w, h int) *errBuffer {
	return &errBuffer{w: w, h: h, v: make([]float64, w*h)}
}

func (e *errBuffer) at(x, y int) float64 {
	return e.v[y*e.w+x]
}

func (e *errBuffer) add(x, y int, v float64) {
	if x < 0 || y < 0 || x >= e.w || y >= e.h {
		return
	}
	e.v[y*e.w+x] += v
}

// renderDiffusion walks the image in raster order; each pixel's residual
// feeds pixels after it, so this loop cannot be split across goroutines.
func renderDiffusion(src *image.NRGBA, curve *toneCurve, levels int, pal Palette, k Kernel) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(b)
	errs := newErrBuffer(w, h)
	n := float64(levels - 1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gray := luma(curve.apply(pixelAt(src, x, y))) + errs.at(x, y)
			gray = clampFloat(gray, 0, 255)
			q := math.Round(gray/255*n) / n * 255
			residual := gray - q
			setOpaque(out, x, y, pal.Nearest(q, q, q))
			for _, t := range k.Taps {
				errs.add(x+t.DX, y+t.DY, residual*t.Weight)
			}
		}
	}
	return out
}
