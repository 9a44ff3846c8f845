package config

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/pixelcard/internal/theme"
)

// Overrides contains CLI flag values that can override user config.
// Zero values and nil pointers mean the flag was not set.
type Overrides struct {
	// Variant replaces every card's variant
	Variant string

	// Gap overrides every card's cell stride
	Gap *int

	// Speed overrides every card's shimmer speed
	Speed *int

	// Colors overrides every card's palette
	Colors string

	// NoFocus stops every card from responding to keyboard focus
	NoFocus bool

	// ReducedMotion disables the ripple delay and the shimmer
	ReducedMotion bool

	// BorderStyle overrides the card border style
	BorderStyle string

	// HideHelp hides the key hint line
	HideHelp bool

	// ThemeName is the theme to load
	ThemeName string
}

// ApplyOverrides resolves the global runtime settings from CLI flags, the
// environment and the user config, in that order of precedence.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig != nil && userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	ReducedMotion = overrides.ReducedMotion || ReducedMotionFromEnv()
	if !ReducedMotion && userConfig != nil && userConfig.Appearance.ReducedMotion != nil {
		ReducedMotion = *userConfig.Appearance.ReducedMotion
	}

	ShowHelp = !overrides.HideHelp
	if ShowHelp && userConfig != nil && userConfig.Appearance.ShowHelp != nil {
		ShowHelp = *userConfig.Appearance.ShowHelp
	}

	themeName := overrides.ThemeName
	if themeName == "" && userConfig != nil {
		themeName = userConfig.Appearance.Theme
	}
	if err := theme.Initialize(themeName); err != nil {
		log.Warn("failed to load theme", "theme", themeName, "err", err)
	}
}

// ReducedMotionFromEnv reports whether the environment asks for reduced motion.
func ReducedMotionFromEnv() bool {
	for _, key := range []string{"PIXELCARD_REDUCED_MOTION", "REDUCE_MOTION"} {
		switch os.Getenv(key) {
		case "1", "true", "yes", "on":
			return true
		}
	}
	return false
}

// Card applies the per-card flag overrides to spec.
func (o Overrides) Card(spec CardSpec) CardSpec {
	if o.Variant != "" {
		spec.Variant = o.Variant
	}
	if o.Gap != nil {
		gap := *o.Gap
		spec.Gap = &gap
	}
	if o.Speed != nil {
		speed := *o.Speed
		spec.Speed = &speed
	}
	if o.Colors != "" {
		colors := o.Colors
		spec.Colors = &colors
	}
	if o.NoFocus {
		no := false
		spec.RespondToFocus = &no
	}
	return spec
}

// Cards returns the configured deck with overrides applied.
func (o Overrides) Cards(userConfig *UserConfig) []CardSpec {
	specs := DefaultCards()
	if userConfig != nil && len(userConfig.Cards) > 0 {
		specs = userConfig.Cards
	}
	out := make([]CardSpec, len(specs))
	for i, s := range specs {
		out[i] = o.Card(s)
	}
	return out
}

// BuildRegistry builds the variant registry for userConfig, adding the theme
// variant when a theme is active.
func BuildRegistry(userConfig *UserConfig) *Registry {
	var custom map[string]VariantConfig
	if userConfig != nil {
		custom = userConfig.Variants
	}
	reg := NewRegistry(custom)
	if palette := theme.Palette(); palette != "" {
		accent := ""
		if t := theme.Current(); t != nil {
			accent = theme.ColorToString(t.Fg)
		}
		reg.Register(Variant{
			Name:           VariantTheme,
			Gap:            5,
			Speed:          35,
			Colors:         palette,
			ActiveColor:    accent,
			RespondToFocus: true,
		})
	}
	return reg
}
