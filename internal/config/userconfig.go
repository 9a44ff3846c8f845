package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

// configRelPath is the config file location relative to the XDG config home.
const configRelPath = "pixelcard/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig         `toml:"appearance"`
	Keybindings KeybindingsConfig        `toml:"keybindings"`
	Log         LogConfig                `toml:"log"`
	Variants    map[string]VariantConfig `toml:"variants,omitempty"`
	Cards       []CardSpec               `toml:"cards"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	BorderStyle   string `toml:"border_style"`   // Card border style: rounded, normal, thick, double, block, ascii, hidden
	Theme         string `toml:"theme"`          // bubbletint theme name; empty uses the terminal's colors
	ReducedMotion *bool  `toml:"reduced_motion"` // Disable ripple delay and shimmer (default: false)
	ShowHelp      *bool  `toml:"show_help"`      // Show the key hint line (default: true)
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level"` // off, debug, info, warn, error (default: off)
	File  string `toml:"file"`  // Log file; empty uses $XDG_STATE_HOME/pixelcard/pixelcard.log
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle: "rounded",
		},
		Keybindings: DefaultKeybindings(),
		Log: LogConfig{
			Level: "off",
		},
		Cards: DefaultCards(),
	}
}

// LoadUserConfig loads the user configuration from the XDG config directory,
// creating a default file on first run.
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return createDefaultConfig()
	}
	return LoadUserConfigFrom(configPath)
}

// LoadUserConfigFrom loads, fills and validates the config file at path.
func LoadUserConfigFrom(path string) (*UserConfig, error) {
	// #nosec G304 - path is the user's own config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingLog(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)
	if len(cfg.Cards) == 0 {
		cfg.Cards = defaultCfg.Cards
	}

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		for _, issue := range validation.Errors {
			log.Error("config error", "section", issue.Field, "key", issue.Key, "msg", issue.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s): %w", len(validation.Errors), validation.Errors[0])
	}
	for _, issue := range validation.Warnings {
		log.Warn("config warning", "section", issue.Field, "key", issue.Key, "msg", issue.Message)
	}

	return &cfg, nil
}

func createDefaultConfig() (*UserConfig, error) {
	configPath, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	if err := WriteDefaultConfig(configPath); err != nil {
		return nil, err
	}
	return DefaultConfig(), nil
}

// WriteDefaultConfig writes the default configuration with a commented
// header to path, creating parent directories.
func WriteDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# pixelcard configuration\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n")
	sb.WriteString("# Reset with: pixelcard config reset\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# border_style: rounded, normal, thick, double, block, ascii, hidden\n")
	sb.WriteString("# theme: bubbletint theme name (e.g. dracula, nord). Adds the \"theme\" variant.\n")
	sb.WriteString("# reduced_motion: true disables the ripple delay and the shimmer\n")
	sb.WriteString("#   (also --reduced-motion, PIXELCARD_REDUCED_MOTION=1 or REDUCE_MOTION=1)\n")
	sb.WriteString("# show_help: false hides the key hint line\n")
	sb.WriteString("#\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# VARIANTS\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# Built-in: default, blue, yellow, pink. Define your own:\n")
	sb.WriteString("#\n")
	sb.WriteString("# [variants.mint]\n")
	sb.WriteString("# base = \"blue\"\n")
	sb.WriteString("# gap = 4\n")
	sb.WriteString("# speed = 60\n")
	sb.WriteString("# colors = \"#d1fae5,#6ee7b7,#059669\"\n")
	sb.WriteString("# active_color = \"#d1fae5\"\n")
	sb.WriteString("#\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# CARDS\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# Each [[cards]] entry names a variant and may override gap, speed,\n")
	sb.WriteString("# colors and respond_to_focus. selected_variant (default: blue) is\n")
	sb.WriteString("# applied while the card is selected.\n")
	sb.WriteString("# ============================================================================\n\n")

	sb.Write(data)

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ResetConfig overwrites the config file with defaults and returns its path.
func ResetConfig() (string, error) {
	path, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to remove old config: %w", err)
	}
	return path, WriteDefaultConfig(path)
}

func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
}

func fillMissingLog(cfg, defaultCfg *UserConfig) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultCfg.Log.Level
	}
}

func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings == nil {
		cfg.Keybindings = make(KeybindingsConfig)
	}
	for action, keys := range defaultCfg.Keybindings {
		if _, ok := cfg.Keybindings[action]; !ok {
			cfg.Keybindings[action] = keys
		}
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}
