package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/pixelcard/internal/app"
)

// handleMouseClick focuses and selects the card under a left click.
func handleMouseClick(msg tea.MouseClickMsg, m *app.Model) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return m, nil
	}
	m.Deck.Click(mouse.X, mouse.Y)
	return m, nil
}

// handleMouseMotion tracks the pointer for hover enter and leave.
func handleMouseMotion(msg tea.MouseMotionMsg, m *app.Model) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	m.Deck.PointerMove(mouse.X, mouse.Y)
	return m, nil
}
