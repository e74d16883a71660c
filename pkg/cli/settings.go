package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Fepozopo/ditherforge/pkg/dither"
	"github.com/Fepozopo/ditherforge/pkg/preset"
)

// ParamType is a small enum for setting types used in metadata.
type ParamType string

const (
	ParamTypeInt    ParamType = "int"
	ParamTypeFloat  ParamType = "float"
	ParamTypeBool   ParamType = "bool"
	ParamTypeString ParamType = "string"
	ParamTypeEnum   ParamType = "enum"
)

// SettingSpec describes one editable render setting.
type SettingSpec struct {
	Name        string
	Type        ParamType
	Min         *float64
	Max         *float64
	Default     string // textual default (for help only)
	Env         string // environment variable providing the startup value
	Description string
}

func bound(v float64) *float64 { return &v }

// MaxScale bounds the export upscaling factor.
const MaxScale = 16

// Settings is the authoritative list of editable settings.
var Settings = []SettingSpec{
	{Name: "algorithm", Type: ParamTypeEnum, Default: "floyd-steinberg", Env: "DITHER_ALGORITHM", Description: "rendering algorithm"},
	{Name: "levels", Type: ParamTypeInt, Min: bound(2), Max: bound(dither.MaxLevels), Default: "2", Env: "DITHER_LEVELS", Description: "gray levels for threshold, ordered and diffusion"},
	{Name: "palette", Type: ParamTypeString, Default: "", Env: "DITHER_PALETTE", Description: "comma separated hex colors; empty uses a gray ramp"},
	{Name: "invert", Type: ParamTypeBool, Default: "false", Env: "DITHER_INVERT", Description: "invert after the other adjustments"},
	{Name: "contrast", Type: ParamTypeInt, Min: bound(-100), Max: bound(100), Default: "0", Env: "DITHER_CONTRAST", Description: "contrast percent"},
	{Name: "brightness", Type: ParamTypeInt, Min: bound(-100), Max: bound(100), Default: "0", Env: "DITHER_BRIGHTNESS", Description: "brightness percent"},
	{Name: "gamma", Type: ParamTypeFloat, Min: bound(0.01), Max: bound(4), Default: "1.00", Env: "DITHER_GAMMA", Description: "gamma (0.01-4.00)"},
	{Name: "cell", Type: ParamTypeInt, Min: bound(1), Max: bound(512), Default: "6", Env: "DITHER_CELL_SIZE", Description: "halftone cell size in pixels"},
	{Name: "scale", Type: ParamTypeInt, Min: bound(1), Max: bound(MaxScale), Default: "1", Env: "DITHER_SCALE", Description: "pixelated upscaling factor for preview and save"},
}

var settingAliases = map[string]string{
	"algo":       "algorithm",
	"level":      "levels",
	"cell_size":  "cell",
	"cellsize":   "cell",
	"cell-size":  "cell",
	"bright":     "brightness",
	"pal":        "palette",
	"scale_size": "scale",
}

// LookupSetting finds a setting by name or alias, ignoring case.
func LookupSetting(name string) (SettingSpec, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := settingAliases[n]; ok {
		n = alias
	}
	for _, s := range Settings {
		if s.Name == n {
			return s, true
		}
	}
	return SettingSpec{}, false
}

// parseBoolLikeToString accepts common truthy/falsy forms and returns "true"/"false" string.
func parseBoolLikeToString(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return "true", nil
	case "0", "f", "false", "n", "no", "off":
		return "false", nil
	default:
		return "", fmt.Errorf("invalid boolean: %q", s)
	}
}

// GenerateTooltip produces a one-paragraph help string for a setting.
func GenerateTooltip(s SettingSpec) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%s)", s.Name, s.Type))
	if s.Description != "" {
		sb.WriteString(": " + s.Description)
	}
	if s.Min != nil && s.Max != nil {
		sb.WriteString(fmt.Sprintf(" [%v..%v]", *s.Min, *s.Max))
	}
	if s.Type == ParamTypeEnum {
		names := make([]string, len(dither.Algorithms))
		for i, a := range dither.Algorithms {
			names[i] = string(a.Name)
		}
		sb.WriteString(" one of " + strings.Join(names, ", "))
	}
	if s.Default != "" {
		sb.WriteString(" (default: " + s.Default + ")")
	}
	return sb.String()
}

// NormalizeSetting validates raw against the setting metadata and returns
// its canonical text form.
func NormalizeSetting(name, raw string) (string, error) {
	s, ok := LookupSetting(name)
	if !ok {
		return "", fmt.Errorf("unknown setting: %s", name)
	}
	raw = strings.TrimSpace(raw)
	switch s.Type {
	case ParamTypeInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return "", fmt.Errorf("setting %s: expected integer, got %q", s.Name, raw)
		}
		if s.Min != nil && float64(v) < *s.Min {
			return "", fmt.Errorf("setting %s: %d < min %v", s.Name, v, *s.Min)
		}
		if s.Max != nil && float64(v) > *s.Max {
			return "", fmt.Errorf("setting %s: %d > max %v", s.Name, v, *s.Max)
		}
		return strconv.FormatInt(v, 10), nil
	case ParamTypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", fmt.Errorf("setting %s: expected float, got %q", s.Name, raw)
		}
		if s.Min != nil && f < *s.Min {
			return "", fmt.Errorf("setting %s: %v < min %v", s.Name, f, *s.Min)
		}
		if s.Max != nil && f > *s.Max {
			return "", fmt.Errorf("setting %s: %v > max %v", s.Name, f, *s.Max)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case ParamTypeBool:
		return parseBoolLikeToString(raw)
	case ParamTypeEnum:
		a, err := dither.ParseAlgorithm(raw)
		if err != nil {
			return "", fmt.Errorf("setting %s: %w", s.Name, err)
		}
		return string(a), nil
	case ParamTypeString:
		return raw, nil
	default:
		return "", fmt.Errorf("setting %s: unsupported type %q", s.Name, s.Type)
	}
}

// State is the editable session: the render configuration plus the export scale.
type State struct {
	Config dither.Config
	Scale  int
	Preset string
}

// NewState returns the defaults before any environment or preset is applied.
func NewState() *State {
	return &State{Config: dither.DefaultConfig(), Scale: 1}
}

// Set validates and applies one setting.
func (s *State) Set(name, raw string) error {
	spec, ok := LookupSetting(name)
	if !ok {
		return fmt.Errorf("unknown setting: %s", name)
	}
	val, err := NormalizeSetting(spec.Name, raw)
	if err != nil {
		return err
	}
	switch spec.Name {
	case "algorithm":
		s.Config.Algorithm = dither.Algorithm(val)
	case "levels":
		s.Config.Levels, _ = strconv.Atoi(val)
	case "palette":
		s.Config.Palette = val
	case "invert":
		s.Config.Adjustments.Invert = val == "true"
	case "contrast":
		s.Config.Adjustments.Contrast, _ = strconv.Atoi(val)
	case "brightness":
		s.Config.Adjustments.Brightness, _ = strconv.Atoi(val)
	case "gamma":
		s.Config.Adjustments.Gamma, _ = strconv.ParseFloat(val, 64)
	case "cell":
		s.Config.CellSize, _ = strconv.Atoi(val)
	case "scale":
		s.Scale, _ = strconv.Atoi(val)
	}
	return nil
}

// Get returns the current value of a setting in the form Set accepts.
func (s *State) Get(name string) (string, error) {
	spec, ok := LookupSetting(name)
	if !ok {
		return "", fmt.Errorf("unknown setting: %s", name)
	}
	c := s.Config
	switch spec.Name {
	case "algorithm":
		return string(c.Algorithm), nil
	case "levels":
		return strconv.Itoa(c.Levels), nil
	case "palette":
		return c.Palette, nil
	case "invert":
		return strconv.FormatBool(c.Adjustments.Invert), nil
	case "contrast":
		return strconv.Itoa(c.Adjustments.Contrast), nil
	case "brightness":
		return strconv.Itoa(c.Adjustments.Brightness), nil
	case "gamma":
		return strconv.FormatFloat(c.Adjustments.Gamma, 'f', 2, 64), nil
	case "cell":
		return strconv.Itoa(c.CellSize), nil
	case "scale":
		return strconv.Itoa(s.Scale), nil
	}
	return "", fmt.Errorf("unknown setting: %s", name)
}

// ApplyPreset replaces the render configuration with p, keeping the scale.
func (s *State) ApplyPreset(p preset.Preset) error {
	cfg, err := p.Config()
	if err != nil {
		return err
	}
	s.Config = cfg
	s.Preset = p.Name
	return nil
}

// ApplyOverrides applies key=value pairs in order. The key "preset" loads
// a preset from set before later pairs are applied.
func (s *State) ApplyOverrides(pairs []string, set *preset.Set) error {
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", kv)
		}
		if strings.EqualFold(strings.TrimSpace(k), "preset") {
			p, found := set.Lookup(v)
			if !found {
				return fmt.Errorf("unknown preset: %s", v)
			}
			if err := s.ApplyPreset(p); err != nil {
				return err
			}
			continue
		}
		if err := s.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

// StateFromEnv builds the startup state from DITHER_* variables. A
// DITHER_PRESET is applied first so individual variables can refine it.
func StateFromEnv(set *preset.Set) (*State, error) {
	s := NewState()
	if name := Getenv("DITHER_PRESET", ""); name != "" {
		p, ok := set.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("DITHER_PRESET: unknown preset %q", name)
		}
		if err := s.ApplyPreset(p); err != nil {
			return nil, err
		}
	}
	for _, spec := range Settings {
		raw := Getenv(spec.Env, "")
		if raw == "" {
			continue
		}
		if err := s.Set(spec.Name, raw); err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Env, err)
		}
	}
	return s, nil
}

// Describe renders the current settings as an aligned table.
func (s *State) Describe() string {
	var sb strings.Builder
	if s.Preset != "" {
		sb.WriteString(fmt.Sprintf("  %-11s %s\n", "preset", s.Preset))
	}
	for _, spec := range Settings {
		v, _ := s.Get(spec.Name)
		if spec.Name == "palette" && v == "" {
			v = "(gray ramp)"
		}
		sb.WriteString(fmt.Sprintf("  %-11s %s\n", spec.Name, v))
	}
	return strings.TrimRight(sb.String(), "\n")
}
