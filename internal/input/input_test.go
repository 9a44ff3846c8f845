package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/pixelcard/internal/app"
	"github.com/Gaurav-Gosain/pixelcard/internal/config"
	"github.com/Gaurav-Gosain/pixelcard/internal/pixel"
)

func newModel(t *testing.T) *app.Model {
	t.Helper()
	m := app.New(app.Options{
		Registry: config.NewRegistry(nil),
		Clock:    pixel.NewManualClock(pixel.SystemClock{}.Now()),
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	return m
}

func focusedLabel(m *app.Model) string {
	if card := m.Deck.Focused(); card != nil {
		return card.Config.Label
	}
	return ""
}

func TestKeyPressActions(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyPressMsg
		want string
	}{
		{
			name: "tab moves forward",
			keys: []tea.KeyPressMsg{{Code: tea.KeyTab}},
			want: "Mercury",
		},
		{
			name: "vim keys",
			keys: []tea.KeyPressMsg{{Code: 'l', Text: "l"}, {Code: 'l', Text: "l"}, {Code: 'h', Text: "h"}},
			want: "Mercury",
		},
		{
			name: "shift+tab wraps backwards past the pink card",
			keys: []tea.KeyPressMsg{{Code: tea.KeyTab, Mod: tea.ModShift}},
			want: "Venus",
		},
		{
			name: "arrows",
			keys: []tea.KeyPressMsg{{Code: tea.KeyRight}, {Code: tea.KeyRight}, {Code: tea.KeyRight}, {Code: tea.KeyLeft}},
			want: "Neptune",
		},
		{
			name: "unbound key is ignored",
			keys: []tea.KeyPressMsg{{Code: 'x', Text: "x"}},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t)
			for _, k := range tt.keys {
				if _, cmd := HandleInput(k, m); cmd != nil {
					t.Fatalf("%s returned a command", k.String())
				}
			}
			if got := focusedLabel(m); got != tt.want {
				t.Errorf("focused = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyPressSelect(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeySpace, Text: " "}} {
		t.Run(key.String(), func(t *testing.T) {
			m := newModel(t)
			HandleInput(tea.KeyPressMsg{Code: tea.KeyTab}, m)
			HandleInput(key, m)

			card := m.Deck.Cards[0]
			if !card.Selected() || card.Config.Variant != config.VariantBlue {
				t.Errorf("selected=%v variant=%s", card.Selected(), card.Config.Variant)
			}
		})
	}
}

func TestKeyPressQuit(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{{Code: 'q', Text: "q"}, {Code: 'c', Mod: tea.ModCtrl}} {
		t.Run(key.String(), func(t *testing.T) {
			m := newModel(t)
			_, cmd := HandleInput(key, m)
			if cmd == nil || !m.Quitting {
				t.Error("quit key did not quit")
			}
		})
	}
}

func TestCustomKeybindings(t *testing.T) {
	m := newModel(t)
	m.Keys = config.NewKeybindRegistry(config.KeybindingsConfig{
		config.ActionFocusNext: {"n"},
	})

	HandleInput(tea.KeyPressMsg{Code: tea.KeyTab}, m)
	if got := focusedLabel(m); got != "" {
		t.Fatalf("default binding still active, focused %q", got)
	}
	HandleInput(tea.KeyPressMsg{Code: 'n', Text: "n"}, m)
	if got := focusedLabel(m); got != "Mercury" {
		t.Errorf("focused = %q, want Mercury", got)
	}
}

func TestMouseMotionHovers(t *testing.T) {
	m := newModel(t)
	neptune := m.Deck.Cards[1]

	HandleInput(tea.MouseMotionMsg{X: neptune.X + 2, Y: neptune.Y + 2}, m)
	if !neptune.Hovered() {
		t.Fatal("motion over card did not hover it")
	}
	if neptune.Engine.Direction() != pixel.Materializing {
		t.Error("hover did not materialize")
	}

	HandleInput(tea.MouseMotionMsg{X: 99, Y: 19}, m)
	if neptune.Hovered() || m.Deck.Hovered() != nil {
		t.Error("moving off the cards did not clear hover")
	}
}

func TestMouseClick(t *testing.T) {
	tests := []struct {
		name         string
		button       tea.MouseButton
		wantSelected bool
	}{
		{"left click selects", tea.MouseLeft, true},
		{"right click ignored", tea.MouseRight, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t)
			venus := m.Deck.Cards[2]
			HandleInput(tea.MouseClickMsg{X: venus.X + 1, Y: venus.Y + 1, Button: tt.button}, m)

			if venus.Selected() != tt.wantSelected || venus.Focused() != tt.wantSelected {
				t.Errorf("selected=%v focused=%v, want %v", venus.Selected(), venus.Focused(), tt.wantSelected)
			}
		})
	}
}

func TestTerminalFocusEvents(t *testing.T) {
	m := newModel(t)
	HandleInput(tea.KeyPressMsg{Code: tea.KeyTab}, m)
	card := m.Deck.Focused()

	HandleInput(tea.BlurMsg{}, m)
	if card.Focused() || card.Engine.Direction() != pixel.Dematerializing {
		t.Error("blur did not release focus")
	}
	HandleInput(tea.FocusMsg{}, m)
	if !card.Focused() || card.Engine.Direction() != pixel.Materializing {
		t.Error("focus did not restore the card")
	}
}

func TestModelRoutesThroughHandler(t *testing.T) {
	app.SetInputHandler(HandleInput)
	defer app.SetInputHandler(nil)

	m := newModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if focusedLabel(m) != "Mercury" {
		t.Fatal("Update did not route keys to the handler")
	}
	if cmd == nil {
		t.Error("focus animation scheduled no frame tick")
	}
}
