package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/pixelcard/internal/config"
	"github.com/Gaurav-Gosain/pixelcard/internal/theme"
)

// Z order of the view layers.
const (
	zCard = iota
	zLabel
	zHelp
)

// GetCanvas composes the cards, their labels and the help line.
func (m *Model) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(max(m.Width, 1), max(m.Height, 1))
	border := config.GetBorderForStyle(config.BorderStyle)

	for _, card := range m.Deck.Cards {
		if card.Raster == nil || card.Width < 3 || card.Height < 3 {
			continue
		}
		box := lipgloss.NewStyle().
			Border(border).
			BorderForeground(card.BorderColor()).
			Render(card.Raster.Render())
		canvas.Compose(lipgloss.NewLayer(box).X(card.X).Y(card.Y).Z(zCard).ID(card.ID))

		if label := m.renderLabel(card); label != "" {
			x := card.X + (card.Width-ansi.StringWidth(label))/2
			canvas.Compose(lipgloss.NewLayer(label).X(x).Y(card.Y + card.Height/2).Z(zLabel))
		}
	}

	if m.ShowHelp && m.Height > 0 {
		help := ansi.Truncate(m.Keys.HelpLine(), m.Width, "…")
		help = lipgloss.NewStyle().Foreground(theme.HelpFg()).Render(help)
		canvas.Compose(lipgloss.NewLayer(help).X(0).Y(m.Height - 1).Z(zHelp))
	}
	return canvas
}

func (m *Model) renderLabel(card *Card) string {
	text := card.Config.Label
	if card.Selected() {
		text = "✓ " + text
	}
	text = ansi.Truncate(text, card.Width-4, "…")
	if text == "" {
		return ""
	}
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(theme.LabelFg())
	if card.Selected() {
		style = style.Foreground(theme.LabelSelected())
	}
	if bg := theme.Background(); bg != nil {
		style = style.Background(bg)
	}
	return style.Render(text)
}

// View renders the deck.
func (m *Model) View() tea.View {
	var view tea.View
	if m.Quitting {
		view.SetContent("")
		return view
	}
	view.SetContent(lipgloss.Sprint(m.GetCanvas().Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}
