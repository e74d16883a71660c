package dither

import (
	ditherlib "github.com/makeworld-the-better-one/dither/v2"
)

// Tap is one error diffusion target relative to the current pixel.
// DY is never negative and DX is positive when DY is zero, so error only
// flows to pixels that come later in raster order.
type Tap struct {
	DX, DY int
	Weight float64
}

// Kernel is a named list of diffusion taps. Weights need not sum to one;
// whatever is missing is discarded, never redistributed.
type Kernel struct {
	Name string
	Taps []Tap
}

// Sum returns the fraction of the residual a kernel passes on.
func (k Kernel) Sum() float64 {
	s := 0.0
	for _, t := range k.Taps {
		s += t.Weight
	}
	return s
}

var (
	floydSteinberg = Kernel{
		Name: "floyd-steinberg",
		Taps: []Tap{
			{DX: 1, DY: 0, Weight: 7.0 / 16},
			{DX: -1, DY: 1, Weight: 3.0 / 16},
			{DX: 0, DY: 1, Weight: 5.0 / 16},
			{DX: 1, DY: 1, Weight: 1.0 / 16},
		},
	}

	// atkinson passes on 6/8 of the residual; the remaining 2/8 is lost.
	atkinson = Kernel{
		Name: "atkinson",
		Taps: []Tap{
			{DX: 1, DY: 0, Weight: 1.0 / 8},
			{DX: 2, DY: 0, Weight: 1.0 / 8},
			{DX: -1, DY: 1, Weight: 1.0 / 8},
			{DX: 0, DY: 1, Weight: 1.0 / 8},
			{DX: 1, DY: 1, Weight: 1.0 / 8},
			{DX: 0, DY: 2, Weight: 1.0 / 8},
		},
	}
)

// KernelFromMatrix converts an error diffusion matrix from the dither
// library into taps. The current pixel is the right-most zero of the
// leading zeros in the first row, matching the library's convention.
func KernelFromMatrix(name string, m ditherlib.ErrorDiffusionMatrix) Kernel {
	k := Kernel{Name: name}
	if len(m) == 0 {
		return k
	}
	cur := -1
	for x, w := range m[0] {
		if w != 0 {
			break
		}
		cur = x
	}
	for y, row := range m {
		for x, w := range row {
			if w == 0 {
				continue
			}
			k.Taps = append(k.Taps, Tap{DX: x - cur, DY: y, Weight: float64(w)})
		}
	}
	return k
}

// kernels maps each diffusion algorithm to its taps. Floyd–Steinberg and
// Atkinson are spelled out; the others come from the dither library tables.
var kernels = map[Algorithm]Kernel{
	AlgoFloydSteinberg: floydSteinberg,
	AlgoAtkinson:       atkinson,
	AlgoStucki:         KernelFromMatrix(string(AlgoStucki), ditherlib.Stucki),
	AlgoBurkes:         KernelFromMatrix(string(AlgoBurkes), ditherlib.Burkes),
	AlgoSierra:         KernelFromMatrix(string(AlgoSierra), ditherlib.Sierra),
	AlgoSierra2:        KernelFromMatrix(string(AlgoSierra2), ditherlib.TwoRowSierra),
	AlgoSierraLite:     KernelFromMatrix(string(AlgoSierraLite), ditherlib.SierraLite),
	AlgoJarvis:         KernelFromMatrix(string(AlgoJarvis), ditherlib.JarvisJudiceNinke),
}

// KernelFor returns a copy of the diffusion kernel used by a.
func KernelFor(a Algorithm) (Kernel, bool) {
	k, ok := kernels[a]
	if !ok {
		return Kernel{}, false
	}
	taps := make([]Tap, len(k.Taps))
	copy(taps, k.Taps)
	return Kernel{Name: k.Name, Taps: taps}, true
}
