package dither

import (
	"image"
	"math"
)

// quantizeLevel snaps v in [0,1] to the nearest of levels evenly spaced steps.
func quantizeLevel(v float64, levels int) float64 {
	n := float64(levels - 1)
	return math.Round(v*n) / n
}

// grayOut maps a quantized gray in [0,1] through the palette.
func grayOut(pal Palette, q float64) RGB {
	g := math.Round(q * 255)
	return pal.Nearest(g, g, g)
}

func renderThreshold(src *image.NRGBA, curve *toneCurve, levels int, pal Palette) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			v := luma(curve.apply(pixelAt(src, x, y))) / 255
			setOpaque(out, x, y, grayOut(pal, quantizeLevel(v, levels)))
		}
	}
	return out
}

// renderOrdered perturbs the normalized luma by (m-0.5)/levels before
// rounding, then clamps the level index into range.
func renderOrdered(src *image.NRGBA, curve *toneCurve, levels int, pal Palette, m Matrix) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	n := float64(levels - 1)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			v := luma(curve.apply(pixelAt(src, x, y))) / 255
			v += (m.At(x, y) - 0.5) / float64(levels)
			idx := clampFloat(math.Round(v*n), 0, n)
			setOpaque(out, x, y, grayOut(pal, idx/n))
		}
	}
	return out
}
