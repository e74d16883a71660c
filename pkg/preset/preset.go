// Package preset loads named render configurations from YAML.
//
// A preset file looks like:
//
//	presets:
//	  - name: gameboy
//	    algorithm: floyd-steinberg
//	    palette: "#0f380f,#306230,#8bac0f,#9bbc0f"
//	  - name: newsprint
//	    algorithm: halftone
//	    cell_size: 8
//	    contrast: 20
//
// Omitted levels default to 2 and omitted gamma to 1.
package preset

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Fepozopo/ditherforge/pkg/dither"
)

// Preset is one named configuration bundle.
type Preset struct {
	Name        string  `yaml:"name" validate:"required"`
	Description string  `yaml:"description,omitempty"`
	Algorithm   string  `yaml:"algorithm" validate:"required,algorithm"`
	Levels      int     `yaml:"levels,omitempty" validate:"omitempty,min=2,max=256"`
	Palette     string  `yaml:"palette,omitempty"`
	Invert      bool    `yaml:"invert,omitempty"`
	Contrast    int     `yaml:"contrast,omitempty" validate:"min=-100,max=100"`
	Brightness  int     `yaml:"brightness,omitempty" validate:"min=-100,max=100"`
	Gamma       float64 `yaml:"gamma,omitempty" validate:"omitempty,gt=0"`
	CellSize    int     `yaml:"cell_size,omitempty" validate:"omitempty,min=1,max=512"`
}

type file struct {
	Presets []Preset `yaml:"presets" validate:"dive"`
}

// Set is an immutable collection of presets keyed by lower-cased name.
type Set struct {
	byName map[string]Preset
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("algorithm", func(fl validator.FieldLevel) bool {
		_, err := dither.ParseAlgorithm(fl.Field().String())
		return err == nil
	})
	return v
}

// Parse decodes and validates a YAML preset document.
func Parse(data []byte) (*Set, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode presets: %w", err)
	}
	if err := validate.Struct(f); err != nil {
		return nil, describe(err)
	}
	s := &Set{byName: make(map[string]Preset, len(f.Presets))}
	for _, p := range f.Presets {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if _, dup := s.byName[key]; dup {
			return nil, fmt.Errorf("duplicate preset name %q", p.Name)
		}
		s.byName[key] = p
	}
	return s, nil
}

// Load reads and parses the preset file at path.
func Load(path string) (*Set, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// describe turns validator errors into one readable message.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid presets: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}
	return fmt.Errorf("invalid presets: %s", strings.Join(msgs, "; "))
}

// Lookup finds a preset by name, ignoring case.
func (s *Set) Lookup(name string) (Preset, bool) {
	if s == nil {
		return Preset{}, false
	}
	p, ok := s.byName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Names returns the preset names in sorted order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.byName))
	for _, p := range s.byName {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new set holding s and other; other wins on name clashes.
func (s *Set) Merge(other *Set) *Set {
	out := &Set{byName: map[string]Preset{}}
	for _, src := range []*Set{s, other} {
		if src == nil {
			continue
		}
		for k, p := range src.byName {
			out.byName[k] = p
		}
	}
	return out
}

// Config converts p into a render configuration, filling the defaults for
// omitted levels, gamma and cell size.
func (p Preset) Config() (dither.Config, error) {
	algo, err := dither.ParseAlgorithm(p.Algorithm)
	if err != nil {
		return dither.Config{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	cfg := dither.DefaultConfig()
	cfg.Algorithm = algo
	cfg.Palette = p.Palette
	if p.Levels != 0 {
		cfg.Levels = p.Levels
	}
	if p.Gamma != 0 {
		cfg.Adjustments.Gamma = p.Gamma
	}
	if p.CellSize != 0 {
		cfg.CellSize = p.CellSize
	}
	cfg.Adjustments.Invert = p.Invert
	cfg.Adjustments.Contrast = p.Contrast
	cfg.Adjustments.Brightness = p.Brightness
	if err := cfg.Validate(); err != nil {
		return dither.Config{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return cfg, nil
}
