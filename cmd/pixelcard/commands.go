package main

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	tint "github.com/lrstanley/bubbletint/v2"

	"github.com/Gaurav-Gosain/pixelcard/internal/config"
	"github.com/Gaurav-Gosain/pixelcard/internal/theme"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CardBorder())).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// swatches renders each palette color as a colored block.
func swatches(colors string) string {
	var sb strings.Builder
	for _, c := range theme.ParsePalette(colors) {
		sb.WriteString(lipgloss.NewStyle().Foreground(c).Render("██"))
	}
	return sb.String()
}

func printThemes() error {
	if err := theme.Initialize("default"); err != nil {
		return fmt.Errorf("failed to initialize themes: %w", err)
	}
	for _, id := range theme.IDs() {
		fmt.Println(id)
	}
	return nil
}

func previewThemeColors(name string) error {
	if err := theme.Initialize(name); err != nil {
		return err
	}
	t := theme.Current()
	colors := []struct {
		name string
		c    *tint.Color
	}{
		{"black", t.Black}, {"red", t.Red}, {"green", t.Green}, {"yellow", t.Yellow},
		{"blue", t.Blue}, {"purple", t.Purple}, {"cyan", t.Cyan}, {"white", t.White},
		{"bright black", t.BrightBlack}, {"bright red", t.BrightRed}, {"bright green", t.BrightGreen}, {"bright yellow", t.BrightYellow},
		{"bright blue", t.BrightBlue}, {"bright purple", t.BrightPurple}, {"bright cyan", t.BrightCyan}, {"bright white", t.BrightWhite},
	}

	fmt.Println(headerStyle.Render(t.DisplayName))
	for _, c := range colors {
		hex := theme.ColorToString(c.c)
		block := lipgloss.NewStyle().Background(c.c).Render("    ")
		lipgloss.Println(fmt.Sprintf("%s %-14s %s", block, c.name, hex))
	}
	lipgloss.Println("\ntheme palette: " + swatches(theme.Palette()))
	return nil
}

func listVariants() error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		userConfig = config.DefaultConfig()
	}
	config.ApplyOverrides(config.Overrides{ThemeName: themeName}, userConfig)
	reg := config.BuildRegistry(userConfig)

	t := newTable("NAME", "GAP", "SPEED", "FOCUS", "PALETTE", "SOURCE")
	for _, v := range reg.All() {
		source := "config"
		if v.BuiltIn {
			source = "built-in"
		} else if v.Name == config.VariantTheme {
			source = "theme"
		}
		t.Row(v.Name, strconv.Itoa(v.Gap), strconv.Itoa(v.Speed), strconv.FormatBool(v.RespondToFocus), swatches(v.Colors), source)
	}
	lipgloss.Println(t.Render())
	return nil
}

func listKeybindings() error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		userConfig = config.DefaultConfig()
	}
	keys := config.NewKeybindRegistry(userConfig.Keybindings)

	t := newTable("ACTION", "KEYS")
	for _, action := range config.Actions {
		t.Row(action, keys.GetKeysForDisplay(action))
	}
	lipgloss.Println(t.Render())
	return nil
}

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func resetConfigToDefaults() error {
	path, err := config.ResetConfig()
	if err != nil {
		return err
	}
	fmt.Printf("Configuration reset: %s\n", path)
	return nil
}

func validateConfigFile() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	if _, err := config.LoadUserConfigFrom(path); err != nil {
		return err
	}
	fmt.Printf("%s: ok\n", path)
	return nil
}

func editConfigFile() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found; set $EDITOR")
	}
	args := strings.Fields(editor)
	// #nosec G204 - editor comes from the user's environment
	c := exec.Command(args[0], append(args[1:], path)...)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}
	return nil
}

func findEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := strings.TrimSpace(os.Getenv(env)); e != "" {
			return e
		}
	}
	for _, e := range []string{"vim", "vi", "nano"} {
		if _, err := exec.LookPath(e); err == nil {
			return e
		}
	}
	return ""
}
