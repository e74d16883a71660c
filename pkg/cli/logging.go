package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Component names attached to log records.
const (
	ComponentCLI     = "cli"
	ComponentRender  = "render"
	ComponentPreview = "preview"
	ComponentPresets = "presets"
	ComponentUpdate  = "update"
)

// SetupLogging installs a tint handler on w as the default slog logger.
// Colors are only used when w is a terminal.
func SetupLogging(w io.Writer, level string) *slog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}
	l := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      parseLevel(level),
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
	slog.SetDefault(l)
	return l
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func logger(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
