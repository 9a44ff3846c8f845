package app

import (
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/pixelcard/internal/config"
	"github.com/Gaurav-Gosain/pixelcard/internal/pixel"
	"github.com/Gaurav-Gosain/pixelcard/internal/surface"
	"github.com/Gaurav-Gosain/pixelcard/internal/theme"
)

// CardOptions are shared by every card of a deck.
type CardOptions struct {
	Registry *config.Registry
	// Scheduler returns the frame scheduler for a new card.
	Scheduler func(cardID string) pixel.Scheduler
	Clock     pixel.Clock
	// Rand returns the random source for a new card. Nil seeds randomly.
	Rand          func() pixel.Rand
	ReducedMotion bool
	Logger        *log.Logger
}

// Card is one pixel card: a bordered raster animated by its own engine.
type Card struct {
	ID     string
	Spec   config.CardSpec
	Config config.Card

	// Bounds in terminal cells, border included.
	X, Y, Width, Height int

	Raster *surface.Raster
	Engine *pixel.Engine

	registry *config.Registry
	hovered  bool
	focused  bool
	selected bool
}

// NewCard creates a card for spec. The engine has no surface until the
// first Layout.
func NewCard(spec config.CardSpec, opts CardOptions) *Card {
	if opts.Registry == nil {
		opts.Registry = config.NewRegistry(nil)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	c := &Card{
		ID:       uuid.NewString(),
		Spec:     spec,
		Config:   config.Resolve(spec, opts.Registry),
		registry: opts.Registry,
	}

	engineOpts := pixel.Options{
		Clock:         opts.Clock,
		ReducedMotion: opts.ReducedMotion,
		Logger:        opts.Logger.With("card", spec.Label),
	}
	if opts.Scheduler != nil {
		engineOpts.Scheduler = opts.Scheduler(c.ID)
	}
	if opts.Rand != nil {
		engineOpts.Rand = opts.Rand()
	}
	c.Engine = pixel.NewEngine(nil, engineOpts)
	return c
}

// Layout places the card and rebuilds its grid for the new inner area.
func (c *Card) Layout(x, y, width, height int) {
	c.X, c.Y, c.Width, c.Height = x, y, width, height
	c.Raster = surface.NewRaster(max(width-2, 0), max(height-2, 0))
	c.Raster.Background = theme.Background()
	c.Engine.Attach(c.Raster)
	c.rebuild()
}

func (c *Card) rebuild() {
	if c.Raster == nil {
		return
	}
	w, h := c.Raster.Size()
	c.Engine.Rebuild(w, h, c.PixelConfig())
}

// PixelConfig converts the resolved card configuration for the engine.
func (c *Card) PixelConfig() pixel.Config {
	return pixel.Config{
		Gap:     c.Config.Gap,
		Speed:   c.Config.Speed,
		Palette: theme.ParsePalette(c.Config.Colors),
	}
}

// Contains reports whether the cell (x, y) lies on the card.
func (c *Card) Contains(x, y int) bool {
	return x >= c.X && x < c.X+c.Width && y >= c.Y && y < c.Y+c.Height
}

// Focusable reports whether keyboard focus reaches the card.
func (c *Card) Focusable() bool {
	return c.Config.RespondToFocus
}

// SetHovered records pointer enter or leave and animates accordingly. It
// reports whether anything changed.
func (c *Card) SetHovered(hovered bool) bool {
	if c.hovered == hovered {
		return false
	}
	c.hovered = hovered
	c.animate(hovered)
	return true
}

// SetFocused records focus in or out. Cards that do not respond to focus
// ignore it entirely.
func (c *Card) SetFocused(focused bool) bool {
	if !c.Focusable() || c.focused == focused {
		return false
	}
	c.focused = focused
	c.animate(focused)
	return true
}

func (c *Card) animate(in bool) {
	if in {
		c.Engine.Trigger(pixel.Materializing)
	} else {
		c.Engine.Trigger(pixel.Dematerializing)
	}
}

// Select toggles between the card's variant and its selected variant and
// rebuilds the grid. A card that stops responding to focus loses it.
func (c *Card) Select() {
	c.selected = !c.selected
	spec := c.Spec
	if c.selected {
		spec = spec.Selected()
	}
	c.Config = config.Resolve(spec, c.registry)
	if c.focused && !c.Focusable() {
		c.focused = false
		c.animate(false)
	}
	c.rebuild()
}

// Hovered reports whether the pointer is over the card.
func (c *Card) Hovered() bool { return c.hovered }

// Focused reports whether the card has keyboard focus.
func (c *Card) Focused() bool { return c.focused }

// Selected reports whether the card shows its selected variant.
func (c *Card) Selected() bool { return c.selected }

// Active reports whether the card is hovered or focused.
func (c *Card) Active() bool { return c.hovered || c.focused }

// BorderColor returns the border color for the card's current state.
func (c *Card) BorderColor() color.Color {
	if !c.Active() {
		return theme.CardBorder()
	}
	if accent, ok := theme.ParseColor(c.Config.ActiveColor); ok {
		return accent
	}
	return theme.CardBorderActive()
}

// Teardown stops the card's animation and releases its grid.
func (c *Card) Teardown() {
	c.Engine.Teardown()
	c.Raster = nil
}
