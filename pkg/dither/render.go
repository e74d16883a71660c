package dither

import (
	"image"
)

// DefaultCellSize is the halftone cell edge in pixels when Config.CellSize is 0.
const DefaultCellSize = 6

// MaxLevels bounds Config.Levels; more steps than 8-bit values change nothing.
const MaxLevels = 256

// Config is everything one render needs. It is passed by value and never
// retained, so callers may reuse and modify it between renders.
type Config struct {
	Algorithm Algorithm
	// Levels is the number of gray steps for threshold, ordered and
	// diffusion rendering, and the size of the gray ramp palette.
	Levels int
	// Palette is an optional comma separated list of hex colors. When it
	// yields no valid color the gray ramp of Levels entries is used.
	Palette     string
	Adjustments Adjustments
	// CellSize is the halftone cell edge; 0 selects DefaultCellSize.
	CellSize int
}

// DefaultConfig returns a two-level Floyd–Steinberg configuration with
// neutral adjustments.
func DefaultConfig() Config {
	return Config{
		Algorithm:   AlgoFloydSteinberg,
		Levels:      2,
		Adjustments: DefaultAdjustments(),
		CellSize:    DefaultCellSize,
	}
}

// Validate reports the first setting Render would refuse.
func (c Config) Validate() error {
	if _, ok := c.Algorithm.Spec(); !ok {
		return configErrorf("algorithm", "unknown algorithm %q", string(c.Algorithm))
	}
	if c.Levels < 2 {
		return configErrorf("levels", "%d is below the minimum of 2", c.Levels)
	}
	if c.Levels > MaxLevels {
		return configErrorf("levels", "%d is above the maximum of %d", c.Levels, MaxLevels)
	}
	if c.CellSize < 0 {
		return configErrorf("cell size", "%d must not be negative", c.CellSize)
	}
	return c.Adjustments.Validate()
}

func (c Config) cellSize() int {
	if c.CellSize == 0 {
		return DefaultCellSize
	}
	return c.CellSize
}

// Dot is one filled halftone disk: black ink on a white background.
type Dot struct {
	X, Y   float64 // center in pixels
	Radius float64
}

// Result is the output of one render.
type Result struct {
	Algorithm Algorithm
	// Image has the source dimensions, origin (0,0) and opaque pixels.
	// For halftone it is the rasterized dot pattern.
	Image *image.NRGBA
	// Palette is the working palette of this render.
	Palette Palette
	// Dropped lists custom palette tokens that were not 6-digit hex colors.
	Dropped []string
	// Dots and CellSize are only set for halftone.
	Dots     []Dot
	CellSize int
}

// Render converts src with the algorithm and settings in cfg. It fails
// before touching any pixel when cfg is invalid or src is empty.
func Render(src image.Image, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, configErrorf("image", "source image is nil")
	}
	if src.Bounds().Empty() {
		return nil, configErrorf("image", "source image has no pixels")
	}
	pal, dropped, err := BuildPalette(cfg.Palette, cfg.Levels)
	if err != nil {
		return nil, err
	}

	img := toNRGBA(src)
	curve := cfg.Adjustments.curve()
	res := &Result{Algorithm: cfg.Algorithm, Palette: pal, Dropped: dropped}

	switch cfg.Algorithm.Family() {
	case FamilyPosterize:
		res.Image = renderPosterize(img, curve, pal)
	case FamilyThreshold:
		res.Image = renderThreshold(img, curve, cfg.Levels, pal)
	case FamilyOrdered:
		m := bayer4
		if cfg.Algorithm == AlgoBayer8 {
			m = bayer8
		}
		res.Image = renderOrdered(img, curve, cfg.Levels, pal, m)
	case FamilyDiffusion:
		k := kernels[cfg.Algorithm]
		res.Image = renderDiffusion(img, curve, cfg.Levels, pal, k)
	case FamilyHalftone:
		cell := cfg.cellSize()
		res.Dots = halftoneDots(img, curve, cell)
		res.Image = rasterizeDots(img.Rect.Dx(), img.Rect.Dy(), res.Dots)
		res.CellSize = cell
		res.Palette = Palette{{0, 0, 0}, {255, 255, 255}}
	}
	return res, nil
}
