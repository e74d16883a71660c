package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Fepozopo/ditherforge/pkg/dither"
)

// stdin is shared by every prompt so no buffered input is lost between reads.
var stdin = bufio.NewReader(os.Stdin)

// PromptLine displays a prompt and reads a full line of input from the user.
// The returned string is trimmed of surrounding whitespace (including the newline).
func PromptLine(prompt string) (string, error) {
	return promptFrom(stdin, prompt)
}

func promptFrom(r *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// PromptLineOrFzf reads a full line and treats a lone "/" as a request to
// pick an image with fzf. If fzf is unavailable or cancelled, the prompt is
// shown again for typed input.
func PromptLineOrFzf(prompt string) (string, error) {
	input, err := PromptLine(prompt)
	if err != nil {
		return "", err
	}
	if input == "/" {
		sel, selErr := SelectFileWithFzf(".")
		if selErr == nil && sel != "" {
			fmt.Printf(" [fzf] %s\n", sel)
			return sel, nil
		}
		return PromptLine(prompt)
	}
	return input, nil
}

// LoadImage decodes an image file. PNG, JPEG and GIF come from the standard
// library; BMP, TIFF and WebP from golang.org/x/image.
func LoadImage(path string) (image.Image, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, format, nil
}

// FormatForPath maps a file extension to an encoder name. Unknown
// extensions encode as PNG.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	default:
		return "png"
	}
}

// EncodeImage writes img to w in the named format. pal is used for GIF
// output so the quantized colors survive exactly; a nil palette falls back
// to the encoder's own quantizer.
func EncodeImage(w io.Writer, img image.Image, format string, pal dither.Palette) error {
	switch format {
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 92})
	case "gif":
		return encodeGIF(w, img, pal)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return png.Encode(w, img)
	}
}

func encodeGIF(w io.Writer, img image.Image, pal dither.Palette) error {
	if len(pal) == 0 || len(pal) > 256 {
		return gif.Encode(w, img, nil)
	}
	b := img.Bounds()
	cp := pal.Color()
	pm := image.NewPaletted(b, cp)
	// Every pixel is already a palette entry; draw.Src maps them exactly.
	draw.Draw(pm, b, img, b.Min, draw.Src)
	return gif.Encode(w, pm, &gif.Options{NumColors: len(cp)})
}

// SaveImage saves an image.Image to disk using the format inferred from the
// filename extension.
func SaveImage(path string, img image.Image, pal dither.Palette) error {
	if img == nil {
		return fmt.Errorf("no image to save")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeImage(f, img, FormatForPath(path), pal); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Upscale enlarges img by an integer factor using nearest-neighbour sampling
// so dithered pixels stay crisp. A factor of 1 or less returns img unchanged.
func Upscale(img image.Image, factor int) image.Image {
	if img == nil || factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// GetImageInfoImage returns a short info string for an image.Image.
func GetImageInfoImage(img image.Image, format string) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}
	if format == "" {
		format = "unknown"
	}
	b := img.Bounds()
	return fmt.Sprintf("Format: %s, Width: %d, Height: %d", strings.ToUpper(format), b.Dx(), b.Dy()), nil
}

// paletteSwatch renders the palette as a row of 24-bit color blocks.
func paletteSwatch(p dither.Palette) string {
	var sb strings.Builder
	for _, c := range p {
		n := c.NRGBA()
		sb.WriteString(swatch(n))
	}
	return sb.String()
}

func swatch(c color.NRGBA) string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", c.R, c.G, c.B)
}
