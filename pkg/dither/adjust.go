package dither

import "math"

// Adjustments are the tone controls applied to every source pixel before
// quantization. Brightness and Contrast are signed percentages in
// [-100,100]; Gamma must be positive (1 is neutral).
type Adjustments struct {
	Brightness int
	Contrast   int
	Gamma      float64
	Invert     bool
}

// DefaultAdjustments returns the neutral adjustment set.
func DefaultAdjustments() Adjustments {
	return Adjustments{Gamma: 1}
}

// Validate rejects settings that have no defined numeric behavior.
func (a Adjustments) Validate() error {
	if a.Brightness < -100 || a.Brightness > 100 {
		return configErrorf("brightness", "%d is outside [-100,100]", a.Brightness)
	}
	if a.Contrast < -100 || a.Contrast > 100 {
		return configErrorf("contrast", "%d is outside [-100,100]", a.Contrast)
	}
	if a.Gamma <= 0 || math.IsNaN(a.Gamma) || math.IsInf(a.Gamma, 0) {
		return configErrorf("gamma", "%v must be a positive finite number", a.Gamma)
	}
	return nil
}

// Apply returns c after contrast/brightness, gamma and invert, in that order.
// Each channel is clamped to [0,255] after every step. Apply does not check
// the settings; call Validate first.
func (a Adjustments) Apply(c RGB) RGB {
	return RGB{R: a.channel(c.R), G: a.channel(c.G), B: a.channel(c.B)}
}

func (a Adjustments) channel(v uint8) uint8 {
	ct := float64(a.Contrast)/100 + 1
	br := float64(a.Brightness) / 100 * 255
	f := clampFloat((float64(v)-128)*ct+128+br, 0, 255)
	f = clampFloat(math.Round(255*math.Pow(f/255, 1/a.Gamma)), 0, 255)
	out := uint8(f)
	if a.Invert {
		out = 255 - out
	}
	return out
}

// toneCurve is a per-channel lookup table equivalent to Adjustments.Apply.
// The adjustment treats channels independently, so one table serves all three.
type toneCurve [256]uint8

func (a Adjustments) curve() *toneCurve {
	var t toneCurve
	for v := 0; v < 256; v++ {
		t[v] = a.channel(uint8(v))
	}
	return &t
}

func (t *toneCurve) apply(c RGB) RGB {
	return RGB{R: t[c.R], G: t[c.G], B: t[c.B]}
}
