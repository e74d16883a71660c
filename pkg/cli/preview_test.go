package cli

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"strings"
	"testing"
)

func inlineTerminal(t *testing.T) {
	t.Setenv("TERM_PROGRAM", "WezTerm")
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("KITTY_WINDOW_ID", "")
	t.Setenv("KONSOLE_VERSION", "")
	t.Setenv("NO_CHAFA", "1")
}

// TestPreviewInlineSequence verifies that Show emits an inline-image OSC
// sequence carrying a PNG when TERM_PROGRAM indicates an inline-capable terminal.
func TestPreviewInlineSequence(t *testing.T) {
	inlineTerminal(t)
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 1, color.NRGBA{0, 0, 255, 255})

	var buf bytes.Buffer
	p := &Previewer{Out: &buf}
	if err := p.Show(img); err != nil {
		t.Fatalf("Show error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\x1b]1337;File=name=preview.png;inline=1;") {
		t.Fatalf("expected inline 1337 sequence, got: %q", out)
	}
	payload := out[strings.Index(out, ":")+1:]
	payload = payload[:strings.Index(payload, "\a")]
	dec, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("base64 decode failed: %v", err)
	}
	if !bytes.HasPrefix(dec, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("expected PNG signature, got: %x", dec[:8])
	}
}

func TestPreviewKittyChunks(t *testing.T) {
	t.Setenv("TERM_PROGRAM", "")
	t.Setenv("ITERM_SESSION_ID", "")
	t.Setenv("TERM", "xterm-kitty")
	t.Setenv("NO_CHAFA", "1")

	// Noise so the PNG payload spans several chunks.
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	seed := uint32(7)
	for i := range img.Pix {
		seed = seed*1664525 + 1013904223
		img.Pix[i] = uint8(seed >> 24)
	}

	var buf bytes.Buffer
	p := &Previewer{Out: &buf, Backend: BackendKitty}
	if err := p.Show(img); err != nil {
		t.Fatalf("Show error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\x1b_Ga=T,f=100,t=d,q=2,") {
		t.Fatalf("first chunk missing placement header: %q", out[:40])
	}
	if n := strings.Count(out, "\x1b_Gm=1;"); n == 0 {
		t.Fatalf("expected continuation chunks")
	}
	if !strings.Contains(out, "\x1b_Gm=0;") {
		t.Fatalf("expected a final chunk with m=0")
	}
}

func TestPreviewSizeFitsBounds(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		maxCols  int
		wantCols int
		wantRows int
	}{
		{"small image is not enlarged", 80, 32, 0, 10, 3},
		{"wide image clamps to 80 cols", 2000, 100, 0, 80, 3},
		{"terminal width bounds cols", 2000, 100, 40, 40, 3},
		{"tall image clamps rows", 100, 5000, 0, 6, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Previewer{MaxCols: tt.maxCols}
			got := p.size(image.Rect(0, 0, tt.w, tt.h))
			if got.Cols != tt.wantCols || got.Rows != tt.wantRows {
				t.Fatalf("size = %dx%d, want %dx%d", got.Cols, got.Rows, tt.wantCols, tt.wantRows)
			}
			if got.PixelWidth != got.Cols*charW || got.PixelHeight != got.Rows*charH {
				t.Fatalf("pixel size inconsistent: %+v", got)
			}
		})
	}
}
