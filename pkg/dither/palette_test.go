package dither

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePaletteDropsMalformed(t *testing.T) {
	p, dropped := ParsePalette("zzzzzz,#abc,#112233")
	if d := cmp.Diff(Palette{{17, 34, 51}}, p); d != "" {
		t.Fatalf("palette mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"zzzzzz", "#abc"}, dropped); d != "" {
		t.Fatalf("dropped mismatch (-want +got):\n%s", d)
	}
}

func TestParsePaletteForms(t *testing.T) {
	p, dropped := ParsePalette(" #FF0000 , 00ff00,,#0000Ff ")
	want := Palette{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}}
	if d := cmp.Diff(want, p); d != "" {
		t.Fatalf("palette mismatch (-want +got):\n%s", d)
	}
	if len(dropped) != 0 {
		t.Fatalf("unexpected dropped tokens: %v", dropped)
	}
	if p, _ := ParsePalette("   "); p != nil {
		t.Fatalf("blank string should give nil palette, got %v", p)
	}
}

func TestBuildPaletteFallsBackToRamp(t *testing.T) {
	p, dropped, err := BuildPalette("zzzzzz", 3)
	if err != nil {
		t.Fatalf("BuildPalette: %v", err)
	}
	if d := cmp.Diff(Palette{{0, 0, 0}, {128, 128, 128}, {255, 255, 255}}, p); d != "" {
		t.Fatalf("ramp mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"zzzzzz"}, dropped); d != "" {
		t.Fatalf("dropped mismatch (-want +got):\n%s", d)
	}

	p, _, err = BuildPalette("#000000,#ffffff", 1)
	if err != nil {
		t.Fatalf("custom palette should not need valid levels: %v", err)
	}
	if len(p) != 2 {
		t.Fatalf("expected custom palette, got %v", p)
	}
}

func TestGrayRamp(t *testing.T) {
	p, err := GrayRamp(2)
	if err != nil {
		t.Fatalf("GrayRamp(2): %v", err)
	}
	if d := cmp.Diff(Palette{{0, 0, 0}, {255, 255, 255}}, p); d != "" {
		t.Fatalf("two-level ramp mismatch (-want +got):\n%s", d)
	}
	p, _ = GrayRamp(4)
	if d := cmp.Diff(Palette{{0, 0, 0}, {85, 85, 85}, {170, 170, 170}, {255, 255, 255}}, p); d != "" {
		t.Fatalf("four-level ramp mismatch (-want +got):\n%s", d)
	}
	if _, err := GrayRamp(1); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("GrayRamp(1) error = %v, want ErrInvalidConfig", err)
	}
}

func TestNearestTieBreaksOnFirst(t *testing.T) {
	p := Palette{{0, 0, 0}, {100, 100, 100}, {100, 100, 100}, {200, 200, 200}}
	if i := p.Index(50, 50, 50); i != 0 {
		t.Fatalf("equidistant black/gray should pick index 0, got %d", i)
	}
	if i := p.Index(100, 100, 100); i != 1 {
		t.Fatalf("duplicate entries should resolve to the first, got %d", i)
	}
	if c := p.Nearest(190, 210, 205); c != (RGB{200, 200, 200}) {
		t.Fatalf("Nearest = %v", c)
	}
	if i := (Palette{}).Index(1, 2, 3); i != -1 {
		t.Fatalf("empty palette index = %d, want -1", i)
	}
}

func TestPaletteStringRoundTrip(t *testing.T) {
	p := Palette{{17, 34, 51}, {255, 0, 128}}
	if got := p.String(); got != "#112233,#ff0080" {
		t.Fatalf("String() = %q", got)
	}
	back, _ := ParsePalette(p.String())
	if d := cmp.Diff(p, back); d != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", d)
	}
}
