package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

// Terminal preview for rendered images.
//
// Backends, in detection order:
//   - inline: iTerm2-style OSC 1337 file sequence (iTerm2, WezTerm, Warp, VSCode, ...)
//   - kitty: kitty graphics protocol, base64 payload chunked inside ESC _G ... ESC \
//   - sixel: PNG piped through img2sixel
//   - chafa: block-symbol approximation for everything else
//
// PREVIEW_BACKEND forces one backend first; NO_CHAFA=1 disables chafa.

// Backend names accepted by PREVIEW_BACKEND.
const (
	BackendInline = "inline"
	BackendKitty  = "kitty"
	BackendSixel  = "sixel"
	BackendChafa  = "chafa"
)

// PreviewSize conveys a target placement for terminal preview backends.
type PreviewSize struct {
	Cols        int // terminal character columns
	Rows        int // terminal character rows
	PixelWidth  int // approximate pixel width (Cols * cellWidth)
	PixelHeight int // approximate pixel height (Rows * cellHeight)
}

// Previewer writes images to a terminal stream.
type Previewer struct {
	Out     io.Writer
	MaxCols int    // upper bound on columns; 0 uses the default
	Backend string // preferred backend; empty means detect
}

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	t := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(t, "kitty") || strings.Contains(t, "ghostty") {
		return true
	}
	return os.Getenv("KONSOLE_VERSION") != ""
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "VSCode", "Tabby", "Bobcat":
		return true
	}
	t := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(t, "wezterm") || strings.Contains(t, "warp") || strings.Contains(t, "tabby") || strings.Contains(t, "vscode") {
		return true
	}
	return os.Getenv("ITERM_SESSION_ID") != ""
}

func isSixelCapable() bool {
	if os.Getenv("SIXEL_PREVIEW") == "1" {
		return true
	}
	t := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(t, "foot") || strings.Contains(t, "mlterm") || strings.Contains(t, "yaft") {
		return true
	}
	return os.Getenv("WT_SESSION") != ""
}

func hasChafa() bool {
	if os.Getenv("NO_CHAFA") == "1" {
		return false
	}
	_, err := exec.LookPath("chafa")
	return err == nil
}

// detectBackends lists the usable backends, preferred first.
func detectBackends(preferred string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(b string) {
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	switch strings.ToLower(preferred) {
	case BackendKitty:
		add(BackendKitty)
	case BackendInline, "iterm", "wezterm":
		add(BackendInline)
	case BackendSixel:
		add(BackendSixel)
	case BackendChafa:
		add(BackendChafa)
	case "":
	default:
		logger(ComponentPreview).Debug("unknown PREVIEW_BACKEND", "value", preferred)
	}
	if isInlineImageCapable() {
		add(BackendInline)
	}
	if isKitty() {
		add(BackendKitty)
	}
	if isSixelCapable() {
		add(BackendSixel)
	}
	if hasChafa() {
		add(BackendChafa)
	}
	return out
}

// PreviewSupported reports whether stdout is a terminal with at least one
// usable backend.
func PreviewSupported() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	return len(detectBackends(Getenv("PREVIEW_BACKEND", ""))) > 0
}

// PreviewImage shows img on stdout when it is a terminal. The terminal width
// bounds the preview size.
func PreviewImage(img image.Image) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("stdout is not a terminal")
	}
	p := &Previewer{Out: os.Stdout, Backend: Getenv("PREVIEW_BACKEND", "")}
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		p.MaxCols = w - 2
	}
	return p.Show(img)
}

// Show encodes img as PNG and sends it through the first backend that works.
func (p *Previewer) Show(img image.Image) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	size := p.size(img.Bounds())
	log := logger(ComponentPreview)
	var lastErr error
	for _, b := range detectBackends(p.Backend) {
		log.Debug("trying backend", "backend", b, "cols", size.Cols, "rows", size.Rows)
		if lastErr = p.send(b, buf.Bytes(), size); lastErr == nil {
			return nil
		}
		log.Debug("backend failed", "backend", b, "err", lastErr)
	}
	if lastErr != nil {
		return fmt.Errorf("preview failed: %w", lastErr)
	}
	return fmt.Errorf("no preview protocol matched")
}

func (p *Previewer) send(backend string, blob []byte, size PreviewSize) error {
	switch backend {
	case BackendInline:
		return p.sendInline(blob, size)
	case BackendKitty:
		return p.sendKitty(blob, size)
	case BackendSixel:
		return p.pipeTo(blob, size, "img2sixel", "-")
	case BackendChafa:
		return p.pipeTo(blob, size, "chafa", "--fill=block", "--symbols=block", "-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows), "-")
	}
	return fmt.Errorf("unknown backend %q", backend)
}

// Character cell pixel assumptions.
const (
	charW   = 8
	charH   = 16
	minCols = 6
	minRows = 3
	maxCols = 80
	maxRows = 40
)

// size maps the image's pixel dimensions into terminal cells, preserving
// the aspect ratio and never scaling up.
func (p *Previewer) size(b image.Rectangle) PreviewSize {
	colsCap := maxCols
	if p.MaxCols > 0 && p.MaxCols < colsCap {
		colsCap = p.MaxCols
	}
	if colsCap < minCols {
		colsCap = minCols
	}
	w, h := b.Dx(), b.Dy()
	scale := math.Min(1, math.Min(float64(colsCap*charW)/float64(w), float64(maxRows*charH)/float64(h)))
	cols := int(math.Round(float64(w) * scale / charW))
	rows := int(math.Round(float64(h) * scale / charH))
	cols = max(minCols, min(cols, colsCap))
	rows = max(minRows, min(rows, maxRows))
	return PreviewSize{Cols: cols, Rows: rows, PixelWidth: cols * charW, PixelHeight: rows * charH}
}

// postImageNewlines picks a small gap after an image so the prompt lands
// directly below it.
func postImageNewlines(rows int) int {
	switch {
	case rows <= 2:
		return 1
	case rows <= 6:
		return 2
	case rows <= 20:
		return 3
	}
	return 4
}

func (p *Previewer) newlines(rows int) {
	fmt.Fprint(p.Out, strings.Repeat("\n", postImageNewlines(rows)))
}

func (p *Previewer) sendInline(blob []byte, size PreviewSize) error {
	enc := base64.StdEncoding.EncodeToString(blob)
	meta := fmt.Sprintf("size=%d;width=%dpx;height=%dpx;", len(blob), size.PixelWidth, size.PixelHeight)
	if _, err := io.WriteString(p.Out, "\x1b]1337;File=name=preview.png;inline=1;"+meta+":"+enc+"\a"); err != nil {
		return err
	}
	p.newlines(0)
	return nil
}

// sendKitty chunks the base64 payload into 4096-byte pieces. The first
// chunk carries the placement; q=2 suppresses terminal responses.
func (p *Previewer) sendKitty(blob []byte, size PreviewSize) error {
	const chunkSize = 4096
	enc := base64.StdEncoding.EncodeToString(blob)
	for pos := 0; pos < len(enc); pos += chunkSize {
		end := min(pos+chunkSize, len(enc))
		more := "0"
		if end < len(enc) {
			more = "1"
		}
		var seq string
		if pos == 0 {
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;", size.Cols, size.Rows, more)
		} else {
			seq = "\x1b_Gm=" + more + ";"
		}
		if _, err := io.WriteString(p.Out, seq+enc[pos:end]+"\x1b\\"); err != nil {
			return err
		}
	}
	p.newlines(size.Rows)
	return nil
}

func (p *Previewer) pipeTo(blob []byte, size PreviewSize, name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", name, err)
	}
	cmd := exec.Command(name, args...)
	cmd.Stdin = bytes.NewReader(blob)
	cmd.Stdout = p.Out
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	p.newlines(size.Rows)
	return nil
}
