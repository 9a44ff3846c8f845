package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Gaurav-Gosain/pixelcard/internal/theme"
)

// ValidationIssue is one problem found in the config.
type ValidationIssue struct {
	Field   string // config section
	Key     string
	Message string
}

func (i ValidationIssue) Error() string {
	return fmt.Sprintf("[%s] %s: %s", i.Field, i.Key, i.Message)
}

// ValidationResult collects config problems. Errors abort loading, warnings
// are logged.
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasErrors reports whether any error was found.
func (r *ValidationResult) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether any warning was found.
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *ValidationResult) errorf(field, key, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field, key, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

// ValidLogLevels lists the accepted log.level values.
var ValidLogLevels = []string{"off", "debug", "info", "warn", "error"}

// ValidateConfig checks cfg without modifying it.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	r := &ValidationResult{}

	if !slices.Contains(BorderStyles, cfg.Appearance.BorderStyle) {
		r.warnf("appearance", "border_style", "unknown style %q, using rounded", cfg.Appearance.BorderStyle)
	}
	if !slices.Contains(ValidLogLevels, strings.ToLower(cfg.Log.Level)) {
		r.errorf("log", "level", "must be one of %s", strings.Join(ValidLogLevels, ", "))
	}

	for name, vc := range cfg.Variants {
		field := "variants." + name
		if name == "" {
			r.errorf("variants", name, "variant name must not be empty")
		}
		if slices.ContainsFunc(BuiltinVariants(), func(v Variant) bool { return v.Name == name }) {
			r.warnf(field, "", "overrides the built-in variant")
		}
		if vc.Base != "" && !isBuiltin(vc.Base) {
			r.errorf(field, "base", "base must be a built-in variant, got %q", vc.Base)
		}
		validateGap(r, field, vc.Gap)
		validateSpeed(r, field, vc.Speed)
		if vc.Colors != "" && !theme.ValidPalette(vc.Colors) {
			r.errorf(field, "colors", "invalid palette %q", vc.Colors)
		}
		if vc.ActiveColor != "" {
			if _, ok := theme.ParseColor(vc.ActiveColor); !ok {
				r.errorf(field, "active_color", "invalid color %q", vc.ActiveColor)
			}
		}
	}

	for i, card := range cfg.Cards {
		field := fmt.Sprintf("cards.%d", i)
		if strings.TrimSpace(card.Label) == "" {
			r.errorf(field, "label", "label must not be empty")
		}
		for key, variant := range map[string]string{"variant": card.Variant, "selected_variant": card.SelectedVariant} {
			if variant == "" || variant == VariantTheme || isBuiltin(variant) {
				continue
			}
			if _, ok := cfg.Variants[variant]; !ok {
				r.warnf(field, key, "unknown variant %q, using default", variant)
			}
		}
		validateGap(r, field, card.Gap)
		validateSpeed(r, field, card.Speed)
		if card.Colors != nil && !theme.ValidPalette(*card.Colors) {
			r.errorf(field, "colors", "invalid palette %q", *card.Colors)
		}
	}

	for action := range cfg.Keybindings {
		if !slices.Contains(Actions, action) {
			r.warnf("keybindings", action, "unknown action")
		}
	}

	return r
}

func validateGap(r *ValidationResult, field string, gap *int) {
	if gap != nil && *gap < 1 {
		r.errorf(field, "gap", "gap must be at least 1, got %d", *gap)
	}
}

func validateSpeed(r *ValidationResult, field string, speed *int) {
	if speed != nil && (*speed < 0 || *speed > 100) {
		r.warnf(field, "speed", "speed %d is clamped to 0-100", *speed)
	}
}

func isBuiltin(name string) bool {
	for _, v := range BuiltinVariants() {
		if v.Name == name {
			return true
		}
	}
	return false
}
