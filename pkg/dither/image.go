package dither

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// toNRGBA converts src to a fresh *image.NRGBA whose bounds start at (0,0),
// so grid coordinates and error buffer indices line up.
func toNRGBA(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		copy(out.Pix, n.Pix)
		return out
	}
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	return out
}

// clampFloat clamps v to [lo,hi].
func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampInt clamps v to [lo,hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// luma returns the Rec. 709 weighted gray value of c in [0,255].
func luma(c RGB) float64 {
	return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
}

// pixelAt reads the RGB part of the pixel at (x,y); alpha is ignored.
func pixelAt(img *image.NRGBA, x, y int) RGB {
	i := img.PixOffset(x, y)
	return RGB{R: img.Pix[i+0], G: img.Pix[i+1], B: img.Pix[i+2]}
}

// setOpaque writes c at (x,y) with alpha forced to 255.
func setOpaque(img *image.NRGBA, x, y int, c RGB) {
	i := img.PixOffset(x, y)
	img.Pix[i+0] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
	img.Pix[i+3] = 255
}

func fillNRGBA(img *image.NRGBA, c color.NRGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}
