package config

import (
	"maps"
	"slices"
)

// Built-in variant names.
const (
	VariantDefault = "default"
	VariantBlue    = "blue"
	VariantYellow  = "yellow"
	VariantPink    = "pink"

	// VariantTheme is registered when a theme is active. Its palette comes
	// from the theme's accent colors.
	VariantTheme = "theme"

	// DefaultSelectedVariant is what a card switches to when selected,
	// unless it names its own.
	DefaultSelectedVariant = VariantBlue
)

// Variant is a named card preset.
type Variant struct {
	Name string
	Gap  int
	// Speed is the raw 0-100 shimmer dial.
	Speed int
	// Colors is a comma-joined palette.
	Colors string
	// ActiveColor tints the card border while active. Empty means none.
	ActiveColor    string
	RespondToFocus bool
	BuiltIn        bool
}

// BuiltinVariants returns the four stock presets.
func BuiltinVariants() []Variant {
	return []Variant{
		{Name: VariantDefault, Gap: 5, Speed: 35, Colors: "#f8fafc,#f1f5f9,#cbd5e1", RespondToFocus: true, BuiltIn: true},
		{Name: VariantBlue, Gap: 10, Speed: 25, Colors: "#e0f2fe,#7dd3fc,#0ea5e9", ActiveColor: "#e0f2fe", RespondToFocus: true, BuiltIn: true},
		{Name: VariantYellow, Gap: 3, Speed: 20, Colors: "#fef08a,#fde047,#eab308", ActiveColor: "#fef08a", RespondToFocus: true, BuiltIn: true},
		{Name: VariantPink, Gap: 6, Speed: 80, Colors: "#fecdd3,#fda4af,#e11d48", ActiveColor: "#fecdd3", RespondToFocus: false, BuiltIn: true},
	}
}

// VariantConfig is a user-defined variant in the config file. Unset fields
// are inherited from Base, or from the default variant.
type VariantConfig struct {
	Base           string `toml:"base,omitempty"`
	Gap            *int   `toml:"gap,omitempty"`
	Speed          *int   `toml:"speed,omitempty"`
	Colors         string `toml:"colors,omitempty"`
	ActiveColor    string `toml:"active_color,omitempty"`
	RespondToFocus *bool  `toml:"respond_to_focus,omitempty"`
}

// Registry holds the variants cards can name.
type Registry struct {
	variants map[string]Variant
	order    []string
}

// NewRegistry builds a registry of the built-in variants plus custom ones.
// Custom variants may shadow built-ins.
func NewRegistry(custom map[string]VariantConfig) *Registry {
	r := &Registry{variants: make(map[string]Variant)}
	for _, v := range BuiltinVariants() {
		r.Register(v)
	}
	for _, name := range slices.Sorted(maps.Keys(custom)) {
		vc := custom[name]
		base := r.Lookup(vc.Base)
		v := Variant{
			Name:           name,
			Gap:            base.Gap,
			Speed:          base.Speed,
			Colors:         base.Colors,
			ActiveColor:    base.ActiveColor,
			RespondToFocus: base.RespondToFocus,
		}
		if vc.Gap != nil {
			v.Gap = *vc.Gap
		}
		if vc.Speed != nil {
			v.Speed = *vc.Speed
		}
		if vc.Colors != "" {
			v.Colors = vc.Colors
		}
		if vc.ActiveColor != "" {
			v.ActiveColor = vc.ActiveColor
		}
		if vc.RespondToFocus != nil {
			v.RespondToFocus = *vc.RespondToFocus
		}
		r.Register(v)
	}
	return r
}

// Register adds or replaces a variant.
func (r *Registry) Register(v Variant) {
	if _, ok := r.variants[v.Name]; !ok {
		r.order = append(r.order, v.Name)
	}
	r.variants[v.Name] = v
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.variants[name]
	return ok
}

// Lookup returns the named variant, or the default variant when the name is
// unknown.
func (r *Registry) Lookup(name string) Variant {
	if v, ok := r.variants[name]; ok {
		return v
	}
	return r.variants[VariantDefault]
}

// All returns the variants in registration order.
func (r *Registry) All() []Variant {
	out := make([]Variant, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.variants[name])
	}
	return out
}

// Names returns the variant names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// CardSpec describes one card: a variant plus optional per-card overrides.
type CardSpec struct {
	Label           string  `toml:"label"`
	Variant         string  `toml:"variant,omitempty"`
	SelectedVariant string  `toml:"selected_variant,omitempty"`
	Gap             *int    `toml:"gap,omitempty"`
	Speed           *int    `toml:"speed,omitempty"`
	Colors          *string `toml:"colors,omitempty"`
	RespondToFocus  *bool   `toml:"respond_to_focus,omitempty"`
}

// Selected returns the spec with its variant switched to the selected
// variant. Selecting again switches back. Overrides carry over.
func (s CardSpec) Selected() CardSpec {
	sel := s.SelectedVariant
	if sel == "" {
		sel = DefaultSelectedVariant
	}
	base := s.Variant
	if base == "" {
		base = VariantDefault
	}
	s.Variant, s.SelectedVariant = sel, base
	return s
}

// Card is a fully resolved card configuration.
type Card struct {
	Label          string
	Variant        string
	Gap            int
	Speed          int
	Colors         string
	ActiveColor    string
	RespondToFocus bool
}

// Resolve merges a spec over its variant. Explicit overrides win; an
// unknown variant resolves as the default one.
func Resolve(spec CardSpec, reg *Registry) Card {
	v := reg.Lookup(spec.Variant)
	c := Card{
		Label:          spec.Label,
		Variant:        v.Name,
		Gap:            v.Gap,
		Speed:          v.Speed,
		Colors:         v.Colors,
		ActiveColor:    v.ActiveColor,
		RespondToFocus: v.RespondToFocus,
	}
	if spec.Gap != nil {
		c.Gap = *spec.Gap
	}
	if spec.Speed != nil {
		c.Speed = *spec.Speed
	}
	if spec.Colors != nil {
		c.Colors = *spec.Colors
	}
	if spec.RespondToFocus != nil {
		c.RespondToFocus = *spec.RespondToFocus
	}
	return c
}

// DefaultCards is the deck shown when the config names none.
func DefaultCards() []CardSpec {
	return []CardSpec{
		{Label: "Mercury", Variant: VariantDefault},
		{Label: "Neptune", Variant: VariantBlue},
		{Label: "Venus", Variant: VariantYellow},
		{Label: "Mars", Variant: VariantPink},
	}
}
