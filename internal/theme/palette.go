package theme

import (
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// FallbackColor is used when a palette has no valid colors.
const FallbackColor = "#f8fafc"

// ParseColor parses a #rgb or #rrggbb color. The leading # is optional.
func ParseColor(s string) (color.Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, false
	}
	return c, true
}

// ParsePalette splits a comma-joined color list. Invalid entries are
// skipped; a list with no valid entries yields the fallback color alone.
func ParsePalette(colors string) []color.Color {
	var palette []color.Color
	for part := range strings.SplitSeq(colors, ",") {
		if c, ok := ParseColor(part); ok {
			palette = append(palette, c)
		}
	}
	if len(palette) == 0 {
		c, _ := colorful.Hex(FallbackColor)
		palette = []color.Color{c}
	}
	return palette
}

// ValidPalette reports whether colors holds at least one entry and every
// entry parses.
func ValidPalette(colors string) bool {
	if strings.TrimSpace(colors) == "" {
		return false
	}
	for part := range strings.SplitSeq(colors, ",") {
		if _, ok := ParseColor(part); !ok {
			return false
		}
	}
	return true
}
