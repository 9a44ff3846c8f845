package pixelcard

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/pixelcard/internal/config"
)

func newTestModel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	t.Setenv("PIXELCARD_REDUCED_MOTION", "")
	t.Setenv("REDUCE_MOTION", "")
	opts = append([]Option{WithUserConfig(config.DefaultConfig())}, opts...)
	m := New(opts...)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 16})
	return m
}

func TestNewWithCards(t *testing.T) {
	m := newTestModel(t,
		WithCards(Card("Docs", VariantBlue), Card("Ship", VariantPink)),
		WithHelp(false),
		WithReducedMotion(true),
	)
	if len(m.Deck.Cards) != 2 {
		t.Fatalf("cards = %d, want 2", len(m.Deck.Cards))
	}
	if got := m.Deck.Cards[1].Config.Variant; got != VariantPink {
		t.Errorf("variant = %s, want pink", got)
	}
	if m.ShowHelp || !config.ReducedMotion {
		t.Errorf("ShowHelp=%v ReducedMotion=%v", m.ShowHelp, config.ReducedMotion)
	}
}

func TestNewDefaultsToConfiguredDeck(t *testing.T) {
	m := newTestModel(t, WithBorderStyle("double"))
	if len(m.Deck.Cards) != len(config.DefaultCards()) {
		t.Errorf("cards = %d", len(m.Deck.Cards))
	}
	if config.BorderStyle != "double" {
		t.Errorf("border style = %q", config.BorderStyle)
	}
	if !m.ShowHelp {
		t.Error("help hidden by default")
	}
}

func TestFilterMouseMotion(t *testing.T) {
	m := newTestModel(t, WithCards(Card("a", VariantDefault), Card("b", VariantBlue)))
	a := m.Deck.Cards[0]

	enter := tea.MouseMotionMsg{X: a.X + 1, Y: a.Y + 1}
	if FilterMouseMotion(m, enter) == nil {
		t.Fatal("entering a card was filtered")
	}
	m.Deck.PointerMove(enter.X, enter.Y)

	if FilterMouseMotion(m, tea.MouseMotionMsg{X: a.X + 2, Y: a.Y + 1}) != nil {
		t.Error("motion within the hovered card passed")
	}
	if FilterMouseMotion(m, tea.MouseMotionMsg{X: 79, Y: 15}) == nil {
		t.Error("leaving the card was filtered")
	}

	key := tea.KeyPressMsg{Code: tea.KeyTab}
	if FilterMouseMotion(m, key) == nil {
		t.Error("non-motion message filtered")
	}
}
