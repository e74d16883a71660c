package dither

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// halftoneDots samples the adjusted pixel at the top-left of every
// cell×cell block and sizes a dot so its area tracks the ink amount.
func halftoneDots(src *image.NRGBA, curve *toneCurve, cell int) []Dot {
	b := src.Bounds()
	half := float64(cell) / 2
	var dots []Dot
	for y := 0; y < b.Dy(); y += cell {
		for x := 0; x < b.Dx(); x += cell {
			ink := 1 - luma(curve.apply(pixelAt(src, x, y)))/255
			dots = append(dots, Dot{
				X:      float64(x) + half,
				Y:      float64(y) + half,
				Radius: half * math.Sqrt(clampFloat(ink, 0, 1)),
			})
		}
	}
	return dots
}

// circleK places cubic Bézier control points to approximate a quarter circle.
const circleK = 0.5522847498

// rasterizeDots draws the dots in black over a white w×h canvas.
func rasterizeDots(w, h int, dots []Dot) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	fillNRGBA(out, color.NRGBA{255, 255, 255, 255})
	z := vector.NewRasterizer(w, h)
	drawn := 0
	for _, d := range dots {
		if d.Radius <= 0 {
			continue
		}
		addCircle(z, float32(d.X), float32(d.Y), float32(d.Radius))
		drawn++
	}
	if drawn == 0 {
		return out
	}
	z.Draw(out, out.Bounds(), image.NewUniform(color.Black), image.Point{})
	return out
}

func addCircle(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * circleK
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}
