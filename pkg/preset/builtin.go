package preset

const builtinYAML = `
presets:
  - name: mono
    description: Two-level flat threshold
    algorithm: threshold
  - name: mac
    description: Classic 1-bit Atkinson look
    algorithm: atkinson
  - name: gameboy
    description: Four greens with Floyd-Steinberg
    algorithm: floyd-steinberg
    levels: 4
    palette: "#0f380f,#306230,#8bac0f,#9bbc0f"
  - name: newsprint
    description: Coarse dot halftone with a contrast boost
    algorithm: halftone
    cell_size: 8
    contrast: 20
  - name: bayer-gray
    description: Four-level gray ordered dither
    algorithm: bayer8
    levels: 4
`

// Builtin returns the presets that ship with the binary.
func Builtin() *Set {
	s, err := Parse([]byte(builtinYAML))
	if err != nil {
		panic("preset: invalid builtin presets: " + err.Error())
	}
	return s
}
