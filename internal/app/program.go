package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/pixelcard/internal/config"
)

// ProgramOptions returns the tea.ProgramOption values every host of a Model
// runs with, local or over SSH.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.SchedulerFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops mouse motion
// that neither enters nor leaves a card.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	motion, ok := msg.(tea.MouseMotionMsg)
	if !ok {
		return msg
	}
	m, ok := model.(*Model)
	if !ok {
		return msg
	}
	mouse := motion.Mouse()
	if m.Deck.HoverChanges(mouse.X, mouse.Y) {
		return msg
	}
	return nil
}
