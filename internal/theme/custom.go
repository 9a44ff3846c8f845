package theme

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	tint "github.com/lrstanley/bubbletint/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// defaultThemeFg and defaultThemeBg stand in for a card theme that
	// leaves its base colors out.
	defaultThemeFg = "#e2e8f0"
	defaultThemeBg = "#0f172a"

	// borderMix is how far an inactive border sits from the background
	// toward the foreground.
	borderMix = 0.35
)

// customPalettes maps custom theme IDs to the palette their file set.
var customPalettes = map[string]string{}

// CardTheme is a custom theme file: a bubbletint theme plus the palette
// cards draw their pixels from.
type CardTheme struct {
	Tint *tint.Tint
	// Palette is the comma-joined pixel palette. It is derived from the
	// theme's accents when the file gives none.
	Palette string
}

// cardThemeExtras holds the fields a card theme adds to bubbletint's.
type cardThemeExtras struct {
	Palette []string `json:"palette"`
}

// ThemesDir returns the directory custom card themes are read from,
// creating it if needed.
func ThemesDir() (string, error) {
	dir := filepath.Join(xdg.ConfigHome, "pixelcard", "themes")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create themes directory: %w", err)
	}
	return dir, nil
}

// LoadCustomThemes registers every *.json card theme in dir and returns the
// IDs that loaded. Bad files are logged and skipped.
func LoadCustomThemes(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	var loaded []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		ct, err := LoadThemeFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Warn("skipping custom theme", "file", entry.Name(), "err", err)
			continue
		}
		tint.Register(ct.Tint)
		customPalettes[ct.Tint.ID] = ct.Palette
		loaded = append(loaded, ct.Tint.ID)
	}
	return loaded, nil
}

// LoadThemeFile reads one card theme. The ID defaults to the lowercased
// file name. Colors the cards need but the file leaves out are derived
// from the palette and the base colors.
func LoadThemeFile(path string) (*CardTheme, error) {
	// #nosec G304 - path is from the user's themes directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var (
		t      tint.Tint
		extras cardThemeExtras
	)
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse theme JSON: %w", err)
	}
	if err := json.Unmarshal(data, &extras); err != nil {
		return nil, fmt.Errorf("failed to parse theme palette: %w", err)
	}

	if t.ID == "" {
		base := filepath.Base(path)
		t.ID = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if t.DisplayName == "" {
		t.DisplayName = t.ID
	}

	palette := make([]color.Color, 0, len(extras.Palette))
	for _, hex := range extras.Palette {
		c, ok := ParseColor(hex)
		if !ok {
			return nil, fmt.Errorf("invalid palette color %q", hex)
		}
		palette = append(palette, c)
	}

	completeCardSlots(&t, palette)
	ct := &CardTheme{Tint: &t, Palette: joinColors(palette)}
	if ct.Palette == "" {
		ct.Palette = accentPalette(&t)
	}
	return ct, nil
}

// completeCardSlots fills every nil color. Accent slots take palette colors
// in turn, or the foreground without a palette. The inactive border
// (BrightBlack) is mixed from the base colors.
func completeCardSlots(t *tint.Tint, palette []color.Color) {
	if t.Fg == nil {
		t.Fg = tint.FromHex(defaultThemeFg)
	}
	if t.Bg == nil {
		t.Bg = tint.FromHex(defaultThemeBg)
	}

	accents := []**tint.Color{
		&t.BrightBlue, &t.Blue, &t.BrightPurple, &t.Cyan,
		&t.BrightCyan, &t.Purple, &t.Green, &t.BrightGreen,
		&t.Yellow, &t.BrightYellow, &t.Red, &t.BrightRed,
	}
	for i, slot := range accents {
		if *slot != nil {
			continue
		}
		if len(palette) > 0 {
			*slot = toTint(palette[i%len(palette)])
		} else {
			*slot = toTint(t.Fg)
		}
	}

	if t.BrightBlack == nil {
		fg, _ := colorful.MakeColor(t.Fg)
		bg, _ := colorful.MakeColor(t.Bg)
		t.BrightBlack = toTint(bg.BlendLab(fg, borderMix).Clamped())
	}
	if t.Black == nil {
		t.Black = toTint(t.Bg)
	}
	for _, slot := range []**tint.Color{&t.White, &t.BrightWhite, &t.Cursor} {
		if *slot == nil {
			*slot = toTint(t.Fg)
		}
	}
}

// accentPalette is the default pixel palette of a theme.
func accentPalette(t *tint.Tint) string {
	return joinColors([]color.Color{t.BrightBlue, t.Blue, t.BrightPurple, t.Cyan})
}

func joinColors(colors []color.Color) string {
	hexes := make([]string, 0, len(colors))
	for _, c := range colors {
		hexes = append(hexes, ColorToString(c))
	}
	return strings.Join(hexes, ",")
}

// toTint returns a fresh tint color, so slots never alias each other.
func toTint(c color.Color) *tint.Color {
	return tint.FromHex(ColorToString(c))
}
