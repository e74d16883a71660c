package cli

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/Fepozopo/ditherforge/pkg/dither"
	"github.com/Fepozopo/ditherforge/pkg/preset"
)

func usage() {
	fmt.Println("Commands available:")
	fmt.Println("  /  - select rendering algorithm")
	fmt.Println("  e  - edit a setting")
	fmt.Println("  l  - load a preset")
	fmt.Println("  r  - render and preview")
	fmt.Println("  s  - save rendered image")
	fmt.Println("  o  - open another image")
	fmt.Println("  i  - show current settings")
	fmt.Println("  u  - check for updates")
	fmt.Println("  h  - show this help message")
	fmt.Println("  q  - quit")
}

func batchUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: ditherforge [input [output [key=value ...]]]")
	fmt.Fprintln(w, "settings:")
	for _, s := range Settings {
		fmt.Fprintln(w, "  "+GenerateTooltip(s))
	}
	fmt.Fprintln(w, "  preset=<name> applies a preset before later pairs")
}

// session holds the interactive state: the loaded source, the settings and
// the last render.
type session struct {
	state   *State
	presets *preset.Set

	src     image.Image
	srcPath string
	format  string

	result *dither.Result
}

func newSession(state *State, presets *preset.Set) *session {
	return &session{state: state, presets: presets}
}

func (s *session) open(path string) error {
	img, format, err := LoadImage(path)
	if err != nil {
		return err
	}
	s.src, s.srcPath, s.format = img, path, format
	s.result = nil
	logger(ComponentCLI).Debug("opened image", "path", path, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}

// render runs the engine on the loaded image. A failed render leaves the
// previous result in place.
func (s *session) render() error {
	if s.src == nil {
		return errors.New("no image loaded")
	}
	res, err := dither.Render(s.src, s.state.Config)
	if err != nil {
		return err
	}
	log := logger(ComponentRender)
	if len(res.Dropped) > 0 {
		log.Warn("ignored malformed palette entries", "entries", strings.Join(res.Dropped, ","))
	}
	log.Debug("rendered", "algorithm", res.Algorithm, "colors", len(res.Palette), "dots", len(res.Dots))
	s.result = res
	return nil
}

// output is the last render upscaled by the scale setting.
func (s *session) output() image.Image {
	if s.result == nil {
		return nil
	}
	return Upscale(s.result.Image, s.state.Scale)
}

func (s *session) save(path string) error {
	if s.result == nil {
		if err := s.render(); err != nil {
			return err
		}
	}
	return SaveImage(path, s.output(), s.result.Palette)
}

func (s *session) showResult() {
	out := s.output()
	if out == nil {
		return
	}
	if PreviewSupported() {
		if err := PreviewImage(out); err != nil {
			logger(ComponentPreview).Debug("preview failed", "err", err)
		}
	}
	if info, err := GetImageInfoImage(out, s.format); err == nil {
		fmt.Println(info)
	}
	fmt.Printf("Algorithm: %s, Palette: %s\n", s.result.Algorithm, paletteSwatch(s.result.Palette))
}

// loadPresets returns the built-in presets merged with DITHER_PRESETS.
func loadPresets() (*preset.Set, error) {
	set := preset.Builtin()
	path := Getenv("DITHER_PRESETS", "")
	if path == "" {
		return set, nil
	}
	user, err := preset.Load(path)
	if err != nil {
		return set, err
	}
	logger(ComponentPresets).Debug("loaded presets", "path", path, "names", user.Names())
	return set.Merge(user), nil
}

func setupFromEnv() {
	loadDotEnv()
	level := Getenv("DITHER_LOG_LEVEL", "info")
	if GetBool("PREVIEW_DEBUG", false) {
		level = "debug"
	}
	SetupLogging(os.Stderr, level)
}

// RunBatch renders args[0] to args[1] using the environment settings
// refined by any key=value pairs that follow.
func RunBatch(args []string, presets *preset.Set) error {
	if len(args) < 2 {
		return errors.New("batch mode needs an input and an output path")
	}
	state, err := StateFromEnv(presets)
	if err != nil {
		return err
	}
	if err := state.ApplyOverrides(args[2:], presets); err != nil {
		return err
	}
	s := newSession(state, presets)
	if err := s.open(args[0]); err != nil {
		return fmt.Errorf("failed to read image %s: %w", args[0], err)
	}
	if err := s.render(); err != nil {
		return err
	}
	if err := s.save(args[1]); err != nil {
		return fmt.Errorf("failed to write image %s: %w", args[1], err)
	}
	logger(ComponentCLI).Info("saved", "path", args[1], "algorithm", s.result.Algorithm, "scale", state.Scale)
	return nil
}

func RunCLI() {
	setupFromEnv()
	log := logger(ComponentCLI)

	presets, err := loadPresets()
	if err != nil {
		log.Error("failed to load presets", "err", err)
	}

	args := os.Args[1:]
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		batchUsage(os.Stdout)
		return
	}
	if len(args) >= 2 {
		if err := RunBatch(args, presets); err != nil {
			log.Error("batch render failed", "err", err)
			var cerr *dither.ConfigError
			if errors.As(err, &cerr) || strings.Contains(err.Error(), "key=value") {
				batchUsage(os.Stderr)
			}
			os.Exit(1)
		}
		return
	}

	state, err := StateFromEnv(presets)
	if err != nil {
		log.Warn("ignoring environment settings", "err", err)
		state = NewState()
	}
	s := newSession(state, presets)
	if len(args) == 1 {
		if err := s.open(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", args[0], err)
			os.Exit(1)
		}
		s.renderAndShow()
	}

	fmt.Println("Terminal Dithering Studio")
	usage()
	for {
		line, err := PromptLine("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			fmt.Fprintf(os.Stderr, "read input error: %v\n", err)
			continue
		}
		if line == "" {
			continue
		}
		if quit := s.dispatch(rune(line[0])); quit {
			return
		}
	}
}

func (s *session) renderAndShow() {
	if s.src == nil {
		return
	}
	if err := s.render(); err != nil {
		fmt.Fprintf(os.Stderr, "render error: %v\n", err)
		return
	}
	s.showResult()
}

// dispatch runs one interactive command and reports whether to quit.
func (s *session) dispatch(key rune) bool {
	switch key {
	case '/':
		a, err := SelectAlgorithmWithFzf()
		if err != nil {
			name, cerr := chooseFromList("Algorithm selection (fallback):", algorithmLines())
			if cerr != nil {
				fmt.Println(cerr)
				return false
			}
			if a, err = dither.ParseAlgorithm(name); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return false
			}
		}
		s.state.Config.Algorithm = a
		fmt.Printf("Algorithm: %s\n", a)
		s.renderAndShow()

	case 'e':
		s.editSetting()

	case 'l':
		names := s.presets.Names()
		name, err := SelectPresetWithFzf(names)
		if err != nil {
			if name, err = chooseFromList("Presets:", names); err != nil {
				fmt.Println(err)
				return false
			}
		}
		p, ok := s.presets.Lookup(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown preset: %s\n", name)
			return false
		}
		if err := s.state.ApplyPreset(p); err != nil {
			fmt.Fprintf(os.Stderr, "preset %s: %v\n", name, err)
			return false
		}
		fmt.Printf("Loaded preset %s\n", p.Name)
		s.renderAndShow()

	case 'r':
		if s.src == nil {
			fmt.Println("No image loaded. Press 'o' to open an image first, or provide an image path as the first argument.")
			return false
		}
		s.renderAndShow()

	case 's':
		if s.src == nil {
			fmt.Println("No image loaded.")
			return false
		}
		out, _ := PromptLine("Enter output filename: ")
		if out == "" {
			fmt.Println("no filename provided")
			return false
		}
		if err := s.save(out); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write image: %v\n", err)
			return false
		}
		fmt.Printf("Saved to %s\n", out)

	case 'o':
		path, err := SelectFileWithFzf(".")
		if err != nil || path == "" {
			path, _ = PromptLineOrFzf("Enter path to image to open (leave empty to cancel): ")
			if path == "" {
				fmt.Println("open cancelled")
				return false
			}
		}
		if err := s.open(path); err != nil {
			fmt.Fprintf(os.Stderr, "failed to read image %s: %v\n", path, err)
			return false
		}
		fmt.Printf("Opened %s\n", path)
		s.renderAndShow()

	case 'i':
		fmt.Println(s.state.Describe())
		if s.srcPath != "" {
			fmt.Printf("  %-11s %s\n", "image", s.srcPath)
		}

	case 'u':
		if err := CheckForUpdates(); err != nil {
			fmt.Fprintf(os.Stderr, "update check error: %v\n", err)
		}

	case 'h':
		usage()

	case 'q':
		fmt.Println("Exiting...")
		return true
	}
	return false
}

func (s *session) editSetting() {
	for _, spec := range Settings {
		cur, _ := s.state.Get(spec.Name)
		fmt.Printf("  %-11s = %-16s %s\n", spec.Name, cur, spec.Description)
	}
	name, err := PromptLine("Setting (leave empty to cancel): ")
	if err != nil || name == "" {
		fmt.Println("edit cancelled")
		return
	}
	spec, ok := LookupSetting(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown setting: %s\n", name)
		return
	}
	fmt.Println("\n" + GenerateTooltip(spec) + "\n")
	val, err := PromptLine(fmt.Sprintf("%s (%s): ", spec.Name, spec.Type))
	if err != nil {
		fmt.Fprintf(os.Stderr, "input error: %v\n", err)
		return
	}
	if err := s.state.Set(spec.Name, val); err != nil {
		fmt.Fprintf(os.Stderr, "input validation error: %v\n", err)
		return
	}
	s.state.Preset = ""
	got, _ := s.state.Get(spec.Name)
	fmt.Printf("%s = %s\n", spec.Name, got)
	s.renderAndShow()
}
