package theme

import (
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestParsePalette(t *testing.T) {
	tests := []struct {
		name   string
		colors string
		want   []string
	}{
		{"default variant", "#f8fafc,#f1f5f9,#cbd5e1", []string{"#f8fafc", "#f1f5f9", "#cbd5e1"}},
		{"short hex and spaces", " #fff , #000", []string{"#ffffff", "#000000"}},
		{"missing hash", "e0f2fe", []string{"#e0f2fe"}},
		{"invalid entries skipped", "#e11d48,nope,#zzzzzz", []string{"#e11d48"}},
		{"empty falls back", "", []string{FallbackColor}},
		{"all invalid falls back", "red,blue", []string{FallbackColor}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePalette(tt.colors)
			if len(got) != len(tt.want) {
				t.Fatalf("ParsePalette(%q) returned %d colors, want %d", tt.colors, len(got), len(tt.want))
			}
			for i, c := range got {
				hex := c.(colorful.Color).Hex()
				if hex != tt.want[i] {
					t.Errorf("color %d = %s, want %s", i, hex, tt.want[i])
				}
			}
		})
	}
}

func TestValidPalette(t *testing.T) {
	tests := []struct {
		colors string
		want   bool
	}{
		{"#fecdd3,#fda4af,#e11d48", true},
		{"#fff", true},
		{"", false},
		{"   ", false},
		{"#fff,", false},
		{"#fff,banana", false},
	}
	for _, tt := range tests {
		if got := ValidPalette(tt.colors); got != tt.want {
			t.Errorf("ValidPalette(%q) = %v, want %v", tt.colors, got, tt.want)
		}
	}
}

func TestColorToString(t *testing.T) {
	c, _ := colorful.Hex("#0ea5e9")
	if got := ColorToString(c); got != "#0ea5e9" {
		t.Errorf("ColorToString = %s, want #0ea5e9", got)
	}
	if got := ColorToString(nil); got != "#000000" {
		t.Errorf("ColorToString(nil) = %s, want #000000", got)
	}
}

func TestDisabledThemeChrome(t *testing.T) {
	if err := Initialize(""); err != nil {
		t.Fatal(err)
	}
	if IsEnabled() || Current() != nil {
		t.Fatal("empty theme name should disable theming")
	}
	if Palette() != "" {
		t.Error("disabled theme should have no palette")
	}
	if Background() != nil {
		t.Error("disabled theme should keep the terminal background")
	}
	if CardBorder() == nil || CardBorderActive() == nil || LabelFg() == nil {
		t.Error("chrome colors must have fallbacks")
	}
}
