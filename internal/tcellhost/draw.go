package tcellhost

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Gaurav-Gosain/pixelcard/internal/app"
	"github.com/Gaurav-Gosain/pixelcard/internal/config"
	"github.com/Gaurav-Gosain/pixelcard/internal/theme"
)

// tcellColor converts c to a true color, or the terminal default for nil.
func tcellColor(c color.Color) tcell.Color {
	if c == nil {
		return tcell.ColorDefault
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return tcell.ColorDefault
	}
	r, g, b := cf.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Draw redraws the whole deck and shows it.
func (h *Host) Draw() {
	h.screen.Clear()
	border := config.GetBorderForStyle(config.BorderStyle)
	for _, card := range h.Deck.Cards {
		h.drawCard(card, border)
	}
	if h.ShowHelp && h.height > 0 {
		style := tcell.StyleDefault.Foreground(tcellColor(theme.HelpFg()))
		h.drawText(0, h.height-1, ansi.Truncate(h.Keys.HelpLine(), h.width, "…"), style)
	}
	h.screen.Show()
}

func (h *Host) drawCard(card *app.Card, border lipgloss.Border) {
	if card.Raster == nil || card.Width < 3 || card.Height < 3 {
		return
	}
	bg := tcellColor(theme.Background())
	cols, rows := card.Raster.Cells()
	for row := range rows {
		for col := range cols {
			glyph, fg, cellBg := card.Raster.CellAt(col, row)
			style := tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(cellBg))
			h.screen.SetContent(card.X+1+col, card.Y+1+row, firstRune(glyph, ' '), nil, style)
		}
	}

	style := tcell.StyleDefault.Foreground(tcellColor(card.BorderColor())).Background(bg)
	x0, y0 := card.X, card.Y
	x1, y1 := card.X+card.Width-1, card.Y+card.Height-1
	for x := x0 + 1; x < x1; x++ {
		h.screen.SetContent(x, y0, firstRune(border.Top, '─'), nil, style)
		h.screen.SetContent(x, y1, firstRune(border.Bottom, '─'), nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		h.screen.SetContent(x0, y, firstRune(border.Left, '│'), nil, style)
		h.screen.SetContent(x1, y, firstRune(border.Right, '│'), nil, style)
	}
	h.screen.SetContent(x0, y0, firstRune(border.TopLeft, '┌'), nil, style)
	h.screen.SetContent(x1, y0, firstRune(border.TopRight, '┐'), nil, style)
	h.screen.SetContent(x0, y1, firstRune(border.BottomLeft, '└'), nil, style)
	h.screen.SetContent(x1, y1, firstRune(border.BottomRight, '┘'), nil, style)

	label := card.Config.Label
	if card.Selected() {
		label = "✓ " + label
	}
	label = ansi.Truncate(label, card.Width-4, "…")
	if label == "" {
		return
	}
	label = " " + label + " "
	labelStyle := tcell.StyleDefault.Bold(true).Background(bg).Foreground(tcellColor(theme.LabelFg()))
	if card.Selected() {
		labelStyle = labelStyle.Foreground(tcellColor(theme.LabelSelected()))
	}
	x := card.X + (card.Width-ansi.StringWidth(label))/2
	h.drawText(x, card.Y+card.Height/2, label, labelStyle)
}

func (h *Host) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}
