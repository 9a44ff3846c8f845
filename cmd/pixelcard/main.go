// Package main implements pixelcard, a terminal deck of animated pixel cards.
// Hovering or focusing a card grows its pixel grid as a ripple from the
// center; leaving it shrinks the grid away again.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/pixelcard/internal/config"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode     bool
	themeName     string
	listThemes    bool
	previewTheme  string
	borderStyle   string
	variantName   string
	gapFlag       int
	speedFlag     int
	colorsFlag    string
	noFocus       bool
	reducedMotion bool
	hideHelp      bool
	backend       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pixelcard",
		Short: "Animated pixel cards for the terminal",
		Long: `pixelcard - animated pixel cards for the terminal

Shows a deck of cards whose backgrounds are grids of shimmering pixels.
Hover a card with the mouse or focus it with Tab and its grid ripples in
from the center; move away and it dissolves.`,
		Example: `  # Run the default deck
  pixelcard

  # Every card in the blue preset with a finer grid
  pixelcard --variant blue --gap 4

  # Custom palette, no ripple or shimmer
  pixelcard --colors "#fecdd3,#e11d48" --reduced-motion

  # Draw with tcell instead of Bubble Tea
  pixelcard --backend tcell

  # Use a theme
  pixelcard --theme dracula

  # Serve the deck over SSH
  pixelcard ssh --port 2323

  # Print one card
  pixelcard snapshot --variant pink --frames 120

  # Serve renders over HTTP
  pixelcard serve --addr :8080`,
		Version: version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if previewTheme != "" {
				return previewThemeColors(previewTheme)
			}
			if listThemes {
				return printThemes()
			}
			switch backend {
			case "", "bubbletea":
				return runLocal(cmd)
			case "tcell":
				return runTcell(cmd)
			}
			return fmt.Errorf("unknown backend %q (want bubbletea or tcell)", backend)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use the variant colors on the terminal background")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&previewTheme, "preview-theme", "", "Preview a theme's 16 ANSI colors")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Card border style: rounded, normal, thick, double, hidden, block, ascii (default: from config or rounded)")
	rootCmd.PersistentFlags().StringVar(&variantName, "variant", "", "Use this variant for every card: default, blue, yellow, pink, theme, or a custom one")
	rootCmd.PersistentFlags().IntVar(&gapFlag, "gap", 0, "Pixel stride in dots for every card (default: from variant)")
	rootCmd.PersistentFlags().IntVar(&speedFlag, "speed", 0, "Shimmer speed 0-100 for every card (default: from variant)")
	rootCmd.PersistentFlags().StringVar(&colorsFlag, "colors", "", "Comma-separated hex palette for every card (default: from variant)")
	rootCmd.PersistentFlags().BoolVar(&noFocus, "no-focus", false, "Cards ignore keyboard focus; only hover animates them")
	rootCmd.PersistentFlags().BoolVar(&reducedMotion, "reduced-motion", false, "Disable the ripple delay and the shimmer")
	rootCmd.PersistentFlags().BoolVar(&hideHelp, "hide-help", false, "Hide the key hint line")
	rootCmd.Flags().StringVar(&backend, "backend", "bubbletea", "Terminal backend: bubbletea or tcell")

	var sshPort, sshHost, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve the deck over SSH",
		Long: `Serve the deck over SSH

Every session gets its own deck sized to the session's terminal. A host
key is generated on first start if none is given.`,
		Example: `  # Start SSH server on default port
  pixelcard ssh

  # Start on custom port
  pixelcard ssh --port 2222

  # Use a specific host key
  pixelcard ssh --key-path /path/to/host_key`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSSHServer(cmd, sshHost, sshPort, sshKeyPath)
		},
	}
	sshCmd.Flags().StringVar(&sshPort, "port", config.DefaultSSHPort, "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", config.DefaultSSHHost, "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	var serveAddr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve card renders over HTTP",
		Long: `Serve headless card renders over HTTP

Routes:
  GET /healthz
  GET /variants                 JSON list of variants
  GET /cards/{variant}.txt      ANSI text render
  GET /cards/{variant}.png      PNG render

Query parameters: width, height, frames, direction (in|out), gap, speed,
colors, seed, label, reduced_motion, scale (png only).`,
		Example: `  pixelcard serve --addr :8080
  curl 'localhost:8080/cards/blue.txt?width=30&height=6&seed=1'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, serveAddr)
		},
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", config.DefaultHTTPAddr, "Listen address")

	var snap snapshotFlags

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print one card after a number of frames",
		Long: `Render one card off-screen and print it

The card is advanced frame by frame without waiting, so the output is
the same for the same seed. Colors are reduced to what the terminal
supports.`,
		Example: `  # Materialize the pink card for two seconds
  pixelcard snapshot --variant pink --frames 120

  # Halfway through dissolving
  pixelcard snapshot --direction out --frames 8

  # Write a PNG instead
  pixelcard snapshot --png card.png --seed 7`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshot(cmd, snap)
		},
	}
	snapshotCmd.Flags().IntVar(&snap.width, "width", 0, "Card width in cells (default: terminal width)")
	snapshotCmd.Flags().IntVar(&snap.height, "height", config.DefaultSnapshotHeight, "Card height in cells")
	snapshotCmd.Flags().IntVar(&snap.frames, "frames", config.DefaultSnapshotFrames, "Frames to advance (60 per second)")
	snapshotCmd.Flags().StringVar(&snap.direction, "direction", "in", "Animation direction: in or out")
	snapshotCmd.Flags().Uint64Var(&snap.seed, "seed", 0, "Random seed (0 picks one)")
	snapshotCmd.Flags().StringVar(&snap.label, "label", "", "Card label")
	snapshotCmd.Flags().BoolVar(&snap.bare, "bare", false, "Print the pixels without border or label")
	snapshotCmd.Flags().StringVar(&snap.png, "png", "", "Write a PNG to this path instead of printing")
	snapshotCmd.Flags().IntVar(&snap.scale, "scale", config.DefaultPNGScale, "PNG pixels per dot")

	variantsCmd := &cobra.Command{
		Use:   "variants",
		Short: "List card variants",
		Long:  `List the built-in and user-defined card variants`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listVariants()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pixelcard configuration",
		Long:  `Manage pixelcard configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the pixelcard configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the pixelcard configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi and nano in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long:  `Overwrite the pixelcard configuration file with default settings`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults()
		},
	}

	configValidateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file",
		Long:  `Report errors and warnings in the pixelcard configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return validateConfigFile()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd, configValidateCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "List keybindings",
		Long:    `Display the configured keybindings`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	rootCmd.AddCommand(sshCmd, serveCmd, snapshotCmd, variantsCmd, configCmd, keybindsCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
