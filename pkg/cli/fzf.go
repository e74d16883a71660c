package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Fepozopo/ditherforge/pkg/dither"
)

// fzfSelect feeds lines to fzf and returns the text before the first ':' of
// the chosen line.
func fzfSelect(lines []string, prompt string) (string, error) {
	cmd := exec.Command("fzf", "--prompt="+prompt, "--height=40%", "--border")
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running fzf: %w", err)
	}
	name, _, _ := strings.Cut(strings.TrimSpace(out.String()), ":")
	if name = strings.TrimSpace(name); name == "" {
		return "", fmt.Errorf("nothing selected")
	}
	return name, nil
}

// algorithmLines formats the registry as "name: family - description".
func algorithmLines() []string {
	lines := make([]string, len(dither.Algorithms))
	for i, a := range dither.Algorithms {
		lines[i] = fmt.Sprintf("%s: %s - %s", a.Name, a.Family, a.Description)
	}
	return lines
}

// SelectAlgorithmWithFzf lets the user pick an algorithm in fzf.
func SelectAlgorithmWithFzf() (dither.Algorithm, error) {
	name, err := fzfSelect(algorithmLines(), "Algorithm> ")
	if err != nil {
		return "", err
	}
	return dither.ParseAlgorithm(name)
}

// SelectPresetWithFzf lets the user pick one of names in fzf.
func SelectPresetWithFzf(names []string) (string, error) {
	return fzfSelect(names, "Preset> ")
}

// SelectFileWithFzf lists image files under startDir in fzf with a
// terminal-aware preview pane. Requires find and fzf on PATH.
func SelectFileWithFzf(startDir string) (string, error) {
	chafa := "chafa --fill=block --symbols=block -s 80x40 {} 2>/dev/null"
	var previewCmd string
	switch {
	case isKitty():
		previewCmd = "printf \"\\x1b_Ga=d\\x1b\\\\\"; kitty +kitten icat --silent {} 2>/dev/null || " + chafa
	case isInlineImageCapable():
		previewCmd = "imgcat {} 2>/dev/null || " + chafa
	case isSixelCapable():
		previewCmd = "img2sixel {} 2>/dev/null || " + chafa
	default:
		previewCmd = chafa
	}

	cmdStr := fmt.Sprintf(
		"find %s -type f \\( -iname '*.jpg' -o -iname '*.jpeg' -o -iname '*.png' -o -iname '*.gif' -o -iname '*.bmp' -o -iname '*.tif' -o -iname '*.tiff' -o -iname '*.webp' \\) | fzf --height 100%% --border --prompt='Files> ' --ansi --preview=%q --preview-window='right:60%%'",
		strconv.Quote(startDir),
		previewCmd,
	)
	cmd := exec.Command("bash", "-lc", cmdStr)
	var out bytes.Buffer
	cmd.Stdout = &out
	err := cmd.Run()
	clearKittyImages()
	if err != nil {
		return "", fmt.Errorf("error running fzf for files: %w", err)
	}
	selection := strings.TrimSpace(out.String())
	if selection == "" {
		return "", fmt.Errorf("no file selected")
	}
	return selection, nil
}

// clearKittyImages emits the kitty graphics "delete" control sequence.
// Terminals that don't understand it will ignore it.
func clearKittyImages() {
	if isKitty() {
		fmt.Fprint(os.Stdout, "\x1b_Ga=d\x1b\\")
	}
}

// chooseFromList prints a numbered fallback menu and resolves the answer by
// number, exact name or unique prefix. An empty answer cancels.
func chooseFromList(title string, lines []string) (string, error) {
	fmt.Println(title)
	for i, l := range lines {
		fmt.Printf("  %d) %s\n", i+1, l)
	}
	sel, err := PromptLine("Enter number or name (leave empty to cancel): ")
	if err != nil {
		return "", err
	}
	return resolveChoice(sel, lines)
}

func resolveChoice(sel string, lines []string) (string, error) {
	if sel == "" {
		return "", fmt.Errorf("selection cancelled")
	}
	names := make([]string, len(lines))
	for i, l := range lines {
		n, _, _ := strings.Cut(l, ":")
		names[i] = strings.TrimSpace(n)
	}
	if idx, err := strconv.Atoi(sel); err == nil {
		if idx < 1 || idx > len(names) {
			return "", fmt.Errorf("invalid selection %d", idx)
		}
		return names[idx-1], nil
	}
	lower := strings.ToLower(sel)
	var matches []string
	for _, n := range names {
		if strings.ToLower(n) == lower {
			return n, nil
		}
		if strings.HasPrefix(strings.ToLower(n), lower) {
			matches = append(matches, n)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return sel, nil
	}
	return "", fmt.Errorf("ambiguous selection, candidates: %s", strings.Join(matches, ", "))
}
