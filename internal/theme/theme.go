// Package theme provides the palettes and card chrome colors for pixelcard.
//
// Theming is optional. Without a theme the cards use their variant colors on
// the terminal's own background. With a bubbletint theme the chrome follows
// the theme and a "theme" palette derived from it becomes available.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// An empty name disables theming.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	tint.NewDefaultRegistry()
	if themesDir, err := ThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			log.Warn("error loading custom themes", "err", err)
		}
	}

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		enabled = true
		return fmt.Errorf("unknown theme %q, using default", themeName)
	}
	enabled = true
	return nil
}

// IsEnabled reports whether a theme is active.
func IsEnabled() bool {
	return enabled
}

// Current returns the active theme, or nil when theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// IDs lists every registered theme, including custom ones.
func IDs() []string {
	tint.NewDefaultRegistry()
	if themesDir, err := ThemesDir(); err == nil {
		_, _ = LoadCustomThemes(themesDir)
	}
	return tint.TintIDs()
}

// Palette returns the active theme's accent colors as a comma-joined palette,
// or "" when theming is disabled.
func Palette() string {
	t := Current()
	if t == nil {
		return ""
	}
	if p := customPalettes[t.ID]; p != "" {
		return p
	}
	return accentPalette(t)
}

// Background returns the color unpainted dots are drawn with. Nil keeps the
// terminal background.
func Background() color.Color {
	t := Current()
	if t == nil {
		return nil
	}
	return t.Bg
}

// CardBorder returns the border color of an inactive card.
func CardBorder() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#475569")
	}
	return t.BrightBlack
}

// CardBorderActive returns the border color of an active card whose variant
// has no accent of its own.
func CardBorderActive() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#f8fafc")
	}
	return t.Fg
}

// LabelFg returns the color of card labels.
func LabelFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e2e8f0")
	}
	return t.Fg
}

// LabelSelected returns the color of a selected card's label.
func LabelSelected() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#7dd3fc")
	}
	return t.BrightCyan
}

// HelpFg returns the color of the key hint line.
func HelpFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("8")
	}
	return t.BrightBlack
}

// ColorToString converts a color to a #rrggbb hex string.
func ColorToString(c color.Color) string {
	if tc, ok := c.(*tint.Color); c == nil || (ok && tc == nil) {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
