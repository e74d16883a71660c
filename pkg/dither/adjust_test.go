package dither

import (
	"errors"
	"math"
	"testing"
)

func TestAdjustmentsNeutral(t *testing.T) {
	a := DefaultAdjustments()
	for v := 0; v < 256; v++ {
		c := RGB{uint8(v), uint8(255 - v), uint8(v / 2)}
		if got := a.Apply(c); got != c {
			t.Fatalf("neutral adjustments changed %v to %v", c, got)
		}
	}
}

func TestAdjustmentsSteps(t *testing.T) {
	tests := []struct {
		name string
		adj  Adjustments
		in   uint8
		want uint8
	}{
		{"contrast clamps high", Adjustments{Contrast: 100, Gamma: 1}, 200, 255},
		{"contrast clamps low", Adjustments{Contrast: 100, Gamma: 1}, 50, 0},
		{"negative contrast pulls to mid", Adjustments{Contrast: -100, Gamma: 1}, 10, 128},
		{"brightness half", Adjustments{Brightness: 50, Gamma: 1}, 0, 128},
		{"brightness clamps", Adjustments{Brightness: 100, Gamma: 1}, 10, 255},
		{"gamma two", Adjustments{Gamma: 2}, 64, 128},
		{"gamma half", Adjustments{Gamma: 0.5}, 128, 64},
		{"invert after brightness", Adjustments{Brightness: 50, Gamma: 1, Invert: true}, 0, 127},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.adj.Apply(RGB{tc.in, tc.in, tc.in})
			if got.R != tc.want || got.G != tc.want || got.B != tc.want {
				t.Fatalf("Apply(%d) = %v, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestInvertTwiceRestores(t *testing.T) {
	a := Adjustments{Gamma: 1, Invert: true}
	for v := 0; v < 256; v++ {
		c := RGB{uint8(v), uint8((v * 7) % 256), uint8(255 - v)}
		if got := a.Apply(a.Apply(c)); got != c {
			t.Fatalf("double invert of %v gave %v", c, got)
		}
	}
}

func TestAdjustmentsChannelsIndependent(t *testing.T) {
	a := Adjustments{Brightness: 10, Contrast: 30, Gamma: 1.4}
	got := a.Apply(RGB{10, 120, 240})
	if got.R != a.Apply(RGB{10, 10, 10}).R ||
		got.G != a.Apply(RGB{120, 120, 120}).G ||
		got.B != a.Apply(RGB{240, 240, 240}).B {
		t.Fatalf("channels influenced each other: %v", got)
	}
}

func TestToneCurveMatchesApply(t *testing.T) {
	a := Adjustments{Brightness: -20, Contrast: 45, Gamma: 2.2, Invert: true}
	curve := a.curve()
	for v := 0; v < 256; v++ {
		c := RGB{uint8(v), uint8(v), uint8(v)}
		if got, want := curve.apply(c), a.Apply(c); got != want {
			t.Fatalf("curve(%d) = %v, Apply = %v", v, got, want)
		}
	}
}

func TestAdjustmentsValidate(t *testing.T) {
	bad := []Adjustments{
		{Gamma: 0},
		{Gamma: -1},
		{Gamma: math.NaN()},
		{Gamma: math.Inf(1)},
		{Gamma: 1, Brightness: 101},
		{Gamma: 1, Contrast: -101},
	}
	for _, a := range bad {
		err := a.Validate()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Validate(%+v) = %v, want ErrInvalidConfig", a, err)
		}
	}
	if err := (Adjustments{Gamma: 0.01, Brightness: -100, Contrast: 100}).Validate(); err != nil {
		t.Fatalf("boundary adjustments rejected: %v", err)
	}
}
