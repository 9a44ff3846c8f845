// Package input routes Bubble Tea key, mouse and focus messages to the deck.
package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/pixelcard/internal/app"
)

// HandleInput is the main input coordinator that routes messages to appropriate handlers.
func HandleInput(msg tea.Msg, m *app.Model) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, m)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, m)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, m)
	case tea.FocusMsg:
		m.Deck.Focus()
	case tea.BlurMsg:
		m.Deck.Blur()
	}
	return m, nil
}
