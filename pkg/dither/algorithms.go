// Package dither: authoritative registry of rendering algorithms.
//
// Render dispatches on the Family of the selected algorithm. Keep the
// Algorithms list in sync with the constants below so callers (CLI, help
// text, presets) can read a single source of truth.

package dither

import (
	"fmt"
	"strings"
)

// Algorithm names one rendering algorithm.
type Algorithm string

const (
	AlgoNone           Algorithm = "none"
	AlgoThreshold      Algorithm = "threshold"
	AlgoBayer4         Algorithm = "bayer4"
	AlgoBayer8         Algorithm = "bayer8"
	AlgoFloydSteinberg Algorithm = "floyd-steinberg"
	AlgoAtkinson       Algorithm = "atkinson"
	AlgoStucki         Algorithm = "stucki"
	AlgoBurkes         Algorithm = "burkes"
	AlgoSierra         Algorithm = "sierra"
	AlgoSierra2        Algorithm = "sierra2"
	AlgoSierraLite     Algorithm = "sierra-lite"
	AlgoJarvis         Algorithm = "jarvis"
	AlgoHalftone       Algorithm = "halftone"
)

// Family groups algorithms that share a rendering strategy.
type Family int

const (
	FamilyPosterize Family = iota
	FamilyThreshold
	FamilyOrdered
	FamilyDiffusion
	FamilyHalftone
)

func (f Family) String() string {
	switch f {
	case FamilyPosterize:
		return "posterize"
	case FamilyThreshold:
		return "threshold"
	case FamilyOrdered:
		return "ordered"
	case FamilyDiffusion:
		return "diffusion"
	case FamilyHalftone:
		return "halftone"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// AlgorithmSpec describes one algorithm for help and selection UIs.
type AlgorithmSpec struct {
	Name        Algorithm
	Family      Family
	Description string
}

// Algorithms is the authoritative list of algorithms Render understands.
var Algorithms = []AlgorithmSpec{
	{AlgoNone, FamilyPosterize, "Posterize: map each adjusted pixel to the nearest palette color, no dithering."},
	{AlgoThreshold, FamilyThreshold, "Flat threshold of luma into evenly spaced levels."},
	{AlgoBayer4, FamilyOrdered, "Ordered dither with the 4x4 Bayer matrix."},
	{AlgoBayer8, FamilyOrdered, "Ordered dither with the 8x8 Bayer matrix."},
	{AlgoFloydSteinberg, FamilyDiffusion, "Floyd-Steinberg error diffusion (7/16, 3/16, 5/16, 1/16)."},
	{AlgoAtkinson, FamilyDiffusion, "Atkinson error diffusion; diffuses 6/8 of the error."},
	{AlgoStucki, FamilyDiffusion, "Stucki error diffusion (12 neighbours, /42)."},
	{AlgoBurkes, FamilyDiffusion, "Burkes error diffusion (7 neighbours, /32)."},
	{AlgoSierra, FamilyDiffusion, "Sierra (three-row) error diffusion."},
	{AlgoSierra2, FamilyDiffusion, "Two-row Sierra error diffusion."},
	{AlgoSierraLite, FamilyDiffusion, "Sierra Lite error diffusion (2/4, 1/4, 1/4)."},
	{AlgoJarvis, FamilyDiffusion, "Jarvis-Judice-Ninke error diffusion (/48)."},
	{AlgoHalftone, FamilyHalftone, "Circular dot halftone, one dot per cell on white."},
}

var algorithmAliases = map[string]Algorithm{
	"posterize":      AlgoNone,
	"ordered":        AlgoBayer4,
	"fs":             AlgoFloydSteinberg,
	"floyd":          AlgoFloydSteinberg,
	"floydsteinberg": AlgoFloydSteinberg,
	"sierra3":        AlgoSierra,
	"two-row-sierra": AlgoSierra2,
	"sierralite":     AlgoSierraLite,
	"jjn":            AlgoJarvis,
	"dots":           AlgoHalftone,
}

// ParseAlgorithm resolves a name or alias, ignoring case and surrounding space.
func ParseAlgorithm(s string) (Algorithm, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if a, ok := algorithmAliases[name]; ok {
		return a, nil
	}
	for _, spec := range Algorithms {
		if string(spec.Name) == name {
			return spec.Name, nil
		}
	}
	return "", configErrorf("algorithm", "unknown algorithm %q", s)
}

// Spec returns the registry entry for a.
func (a Algorithm) Spec() (AlgorithmSpec, bool) {
	for _, spec := range Algorithms {
		if spec.Name == a {
			return spec, true
		}
	}
	return AlgorithmSpec{}, false
}

// Family returns the family of a; unknown algorithms report FamilyPosterize
// and are rejected by Config.Validate.
func (a Algorithm) Family() Family {
	spec, _ := a.Spec()
	return spec.Family
}

func (a Algorithm) String() string { return string(a) }
