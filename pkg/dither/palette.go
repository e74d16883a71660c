package dither

import (
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// NRGBA returns c as an opaque color.NRGBA.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex formats c as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette is an ordered list of output colors. Order matters: the matcher
// resolves ties in favor of the earlier entry.
type Palette []RGB

var hexToken = regexp.MustCompile(`^#?([0-9a-fA-F]{6})$`)

// ParsePalette parses a comma separated list of 6-digit hex colors such as
// "#000000, ffffff". Tokens that are not 6 hex digits (with an optional
// leading '#') are skipped and returned in dropped. The palette is nil when
// no token was valid.
func ParsePalette(s string) (p Palette, dropped []string) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		m := hexToken.FindStringSubmatch(tok)
		if m == nil {
			dropped = append(dropped, tok)
			continue
		}
		v, err := strconv.ParseUint(m[1], 16, 32)
		if err != nil {
			dropped = append(dropped, tok)
			continue
		}
		p = append(p, RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)})
	}
	return p, dropped
}

// GrayRamp returns levels evenly spaced grays from black to white.
func GrayRamp(levels int) (Palette, error) {
	if levels < 2 {
		return nil, configErrorf("levels", "%d is below the minimum of 2", levels)
	}
	p := make(Palette, levels)
	for i := 0; i < levels; i++ {
		v := uint8(math.Round(255 * float64(i) / float64(levels-1)))
		p[i] = RGB{v, v, v}
	}
	return p, nil
}

// BuildPalette returns the custom palette when custom contains at least one
// valid color, and the gray ramp of levels entries otherwise. Malformed
// custom tokens are reported in dropped either way.
func BuildPalette(custom string, levels int) (p Palette, dropped []string, err error) {
	p, dropped = ParsePalette(custom)
	if len(p) > 0 {
		return p, dropped, nil
	}
	p, err = GrayRamp(levels)
	if err != nil {
		return nil, dropped, err
	}
	return p, dropped, nil
}

// Index returns the position of the entry closest to (r,g,b) by squared
// Euclidean distance, or -1 for an empty palette.
func (p Palette) Index(r, g, b float64) int {
	best := -1
	bestD := math.Inf(1)
	for i, c := range p {
		dr := r - float64(c.R)
		dg := g - float64(c.G)
		db := b - float64(c.B)
		d := dr*dr + dg*dg + db*db
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best
}

// Nearest returns the entry closest to (r,g,b). p must not be empty.
func (p Palette) Nearest(r, g, b float64) RGB {
	return p[p.Index(r, g, b)]
}

// Contains reports whether c is one of the entries.
func (p Palette) Contains(c RGB) bool {
	for _, e := range p {
		if e == c {
			return true
		}
	}
	return false
}

// Color converts p for use with image.Paletted and encoders like image/gif.
func (p Palette) Color() color.Palette {
	out := make(color.Palette, len(p))
	for i, c := range p {
		out[i] = c.NRGBA()
	}
	return out
}

// String joins the entries as a palette string ParsePalette accepts.
func (p Palette) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.Hex()
	}
	return strings.Join(parts, ",")
}
