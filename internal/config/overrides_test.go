package config

import "testing"

func resetRuntime(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		BorderStyle = "rounded"
		ReducedMotion = false
		ShowHelp = true
	})
}

func TestReducedMotionFromEnv(t *testing.T) {
	tests := []struct {
		key, value string
		want       bool
	}{
		{"PIXELCARD_REDUCED_MOTION", "1", true},
		{"REDUCE_MOTION", "true", true},
		{"REDUCE_MOTION", "0", false},
		{"PIXELCARD_REDUCED_MOTION", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv("PIXELCARD_REDUCED_MOTION", "")
			t.Setenv("REDUCE_MOTION", "")
			t.Setenv(tt.key, tt.value)
			if got := ReducedMotionFromEnv(); got != tt.want {
				t.Errorf("ReducedMotionFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyOverridesPrecedence(t *testing.T) {
	resetRuntime(t)
	t.Setenv("PIXELCARD_REDUCED_MOTION", "")
	t.Setenv("REDUCE_MOTION", "")

	uc := DefaultConfig()
	uc.Appearance.BorderStyle = "double"
	uc.Appearance.ReducedMotion = boolPtr(true)
	uc.Appearance.ShowHelp = boolPtr(false)

	ApplyOverrides(Overrides{BorderStyle: "thick"}, uc)
	if BorderStyle != "thick" {
		t.Errorf("BorderStyle = %q, want flag value", BorderStyle)
	}
	if !ReducedMotion {
		t.Error("reduced motion from config not applied")
	}
	if ShowHelp {
		t.Error("show_help=false from config not applied")
	}

	ApplyOverrides(Overrides{}, nil)
	if BorderStyle != "thick" || ReducedMotion || !ShowHelp {
		t.Errorf("nil config: border=%q reduced=%v help=%v", BorderStyle, ReducedMotion, ShowHelp)
	}

	t.Setenv("REDUCE_MOTION", "1")
	ApplyOverrides(Overrides{}, nil)
	if !ReducedMotion {
		t.Error("environment reduced motion not applied")
	}
}

func TestOverridesCards(t *testing.T) {
	o := Overrides{Variant: VariantYellow, Gap: intPtr(7), Colors: "#000", NoFocus: true}
	specs := o.Cards(nil)
	if len(specs) != len(DefaultCards()) {
		t.Fatalf("cards = %d", len(specs))
	}

	reg := NewRegistry(nil)
	for _, s := range specs {
		c := Resolve(s, reg)
		if c.Variant != VariantYellow || c.Gap != 7 || c.Colors != "#000" || c.RespondToFocus {
			t.Errorf("resolved %+v", c)
		}
		if c.Speed != 20 {
			t.Errorf("unset speed override changed speed: %d", c.Speed)
		}
	}

	*o.Gap = 99
	if *specs[0].Gap != 7 {
		t.Error("override pointer aliased into specs")
	}
}

func TestBuildRegistryWithoutTheme(t *testing.T) {
	ApplyOverrides(Overrides{}, nil)
	reg := BuildRegistry(&UserConfig{Variants: map[string]VariantConfig{"x": {Gap: intPtr(2)}}})
	if reg.Has(VariantTheme) {
		t.Error("theme variant registered without a theme")
	}
	if !reg.Has("x") {
		t.Error("custom variant missing")
	}
}
