package dither

import (
	"image"
)

// renderPosterize maps every adjusted pixel straight to its nearest palette
// entry, in full color and without dithering.
func renderPosterize(src *image.NRGBA, curve *toneCurve, pal Palette) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := curve.apply(pixelAt(src, x, y))
			setOpaque(out, x, y, pal.Nearest(float64(c.R), float64(c.G), float64(c.B)))
		}
	}
	return out
}
