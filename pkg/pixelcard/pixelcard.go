// Package pixelcard provides the animated pixel card deck as a Bubble Tea
// model that can be embedded in other applications or run standalone.
//
// # Basic Usage
//
// Create a deck with the default cards:
//
//	model := pixelcard.New()
//	p := tea.NewProgram(model, pixelcard.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
// Use options to choose the cards and their look:
//
//	model := pixelcard.New(
//		pixelcard.WithCards(
//			pixelcard.Card("Docs", "blue"),
//			pixelcard.Card("Ship it", "pink"),
//		),
//		pixelcard.WithTheme("dracula"),
//		pixelcard.WithReducedMotion(true),
//	)
package pixelcard

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/pixelcard/internal/app"
	"github.com/Gaurav-Gosain/pixelcard/internal/config"
	"github.com/Gaurav-Gosain/pixelcard/internal/input"
)

// Model is the deck model. It implements tea.Model.
type Model = app.Model

// CardSpec describes one card: its label, variant and optional overrides.
type CardSpec = config.CardSpec

// Variant names of the built-in presets.
const (
	VariantDefault = config.VariantDefault
	VariantBlue    = config.VariantBlue
	VariantYellow  = config.VariantYellow
	VariantPink    = config.VariantPink
)

// Options configures a deck.
type Options struct {
	// Cards are the cards in display order. Empty uses the default deck.
	Cards []CardSpec

	// Theme is the bubbletint theme name. Leave empty for the variant
	// colors on the terminal's own background.
	Theme string

	// BorderStyle sets the card border style.
	// Valid values: "rounded", "normal", "thick", "double", "hidden", "block", "ascii"
	BorderStyle string

	// ReducedMotion disables the ripple delay and the shimmer.
	ReducedMotion bool

	// HideHelp hides the key hint line.
	HideHelp bool

	// UserConfig is a custom user configuration. If nil, the user's config
	// file is loaded, falling back to defaults.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring a deck.
type Option func(*Options)

// Card is shorthand for a spec with only a label and a variant.
func Card(label, variant string) CardSpec {
	return CardSpec{Label: label, Variant: variant}
}

// WithCards sets the cards.
func WithCards(cards ...CardSpec) Option {
	return func(o *Options) {
		o.Cards = cards
	}
}

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithBorderStyle sets the card border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithReducedMotion turns reduced motion on or off.
func WithReducedMotion(enabled bool) Option {
	return func(o *Options) {
		o.ReducedMotion = enabled
	}
}

// WithHelp shows or hides the key hint line.
func WithHelp(show bool) Option {
	return func(o *Options) {
		o.HideHelp = !show
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// New creates a deck model with the given options.
func New(opts ...Option) *Model {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	app.SetInputHandler(input.HandleInput)

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			userConfig = config.DefaultConfig()
		}
	}

	config.ApplyOverrides(config.Overrides{
		ReducedMotion: options.ReducedMotion,
		BorderStyle:   options.BorderStyle,
		HideHelp:      options.HideHelp,
		ThemeName:     options.Theme,
	}, userConfig)

	cards := options.Cards
	if len(cards) == 0 {
		cards = config.Overrides{}.Cards(userConfig)
	}

	return app.New(app.Options{
		Cards:         cards,
		Registry:      config.BuildRegistry(userConfig),
		Keys:          config.NewKeybindRegistry(userConfig.Keybindings),
		ReducedMotion: config.ReducedMotion,
		ShowHelp:      config.ShowHelp,
	})
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// the deck:
//
//	p := tea.NewProgram(model, pixelcard.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return app.ProgramOptions()
}

// FilterMouseMotion is a tea.WithFilter function that drops mouse motion
// that neither enters nor leaves a card.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	return app.FilterMouseMotion(model, msg)
}

// Config re-exports the config package for customization.
// This allows users to access configuration types without importing internal packages.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
