package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/pixelcard/internal/app"
	"github.com/Gaurav-Gosain/pixelcard/internal/config"
)

// HandleKeyPress maps a key through the keybindings to a deck action.
// Unbound keys are ignored.
func HandleKeyPress(msg tea.KeyPressMsg, m *app.Model) (tea.Model, tea.Cmd) {
	switch m.Keys.Action(msg.String()) {
	case config.ActionFocusNext:
		m.Deck.FocusNext()
	case config.ActionFocusPrev:
		m.Deck.FocusPrev()
	case config.ActionSelect:
		m.Deck.Select()
	case config.ActionQuit:
		return m, m.Quit()
	}
	return m, nil
}
