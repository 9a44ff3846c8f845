package app

import (
	"github.com/Gaurav-Gosain/pixelcard/internal/config"
)

// Deck is an ordered set of cards laid out in a grid. It turns pointer,
// focus and resize events into card transitions.
type Deck struct {
	Cards []*Card

	// Reserved is the number of rows kept free below the cards.
	Reserved int

	width, height int
	focus         int
	hover         int
}

// NewDeck creates a card for every spec.
func NewDeck(specs []config.CardSpec, opts CardOptions) *Deck {
	d := &Deck{focus: -1, hover: -1}
	for _, spec := range specs {
		d.Cards = append(d.Cards, NewCard(spec, opts))
	}
	return d
}

// Size returns the last laid out dimensions.
func (d *Deck) Size() (width, height int) {
	return d.width, d.height
}

// Resize lays the cards out in a grid and rebuilds every card.
func (d *Deck) Resize(width, height int) {
	d.width, d.height = width, height
	n := len(d.Cards)
	if n == 0 {
		return
	}

	cols := min(n, max(1, width/config.MinCardWidth))
	rows := (n + cols - 1) / cols
	cardW := max((width-(cols-1)*config.CardMargin)/cols, 0)
	avail := max(height-d.Reserved, 0)
	cardH := (avail - (rows-1)*config.CardMargin) / rows
	cardH = min(max(cardH, config.MinCardHeight), config.MaxCardHeight)

	for i, card := range d.Cards {
		col, row := i%cols, i/cols
		card.Layout(col*(cardW+config.CardMargin), row*(cardH+config.CardMargin), cardW, cardH)
	}
}

// CardAt returns the index of the card under (x, y), or -1.
func (d *Deck) CardAt(x, y int) int {
	for i, card := range d.Cards {
		if card.Contains(x, y) {
			return i
		}
	}
	return -1
}

// HoverChanges reports whether moving the pointer to (x, y) would enter or
// leave a card.
func (d *Deck) HoverChanges(x, y int) bool {
	return d.CardAt(x, y) != d.hover
}

// PointerMove moves the pointer to (x, y). Leaving one card for another
// emits leave before enter; moving within a card changes nothing.
func (d *Deck) PointerMove(x, y int) bool {
	idx := d.CardAt(x, y)
	if idx == d.hover {
		return false
	}
	if d.hover >= 0 {
		d.Cards[d.hover].SetHovered(false)
	}
	d.hover = idx
	if idx >= 0 {
		d.Cards[idx].SetHovered(true)
	}
	return true
}

// PointerLeave is called when the pointer leaves the deck.
func (d *Deck) PointerLeave() bool {
	if d.hover < 0 {
		return false
	}
	d.Cards[d.hover].SetHovered(false)
	d.hover = -1
	return true
}

// FocusNext moves focus to the next focusable card, wrapping around.
func (d *Deck) FocusNext() bool {
	return d.moveFocus(1)
}

// FocusPrev moves focus to the previous focusable card, wrapping around.
func (d *Deck) FocusPrev() bool {
	return d.moveFocus(-1)
}

func (d *Deck) moveFocus(step int) bool {
	n := len(d.Cards)
	if n == 0 {
		return false
	}
	start := d.focus
	if start < 0 {
		start = -1
		if step < 0 {
			start = n
		}
	}
	for i := 1; i <= n; i++ {
		idx := ((start+step*i)%n + n) % n
		if d.Cards[idx].Focusable() {
			return d.FocusCard(idx)
		}
	}
	return false
}

// FocusCard moves focus to card idx. Refocusing the focused card is
// ignored. A card that does not respond to focus takes focus away from the
// others without gaining it; idx < 0 clears focus.
func (d *Deck) FocusCard(idx int) bool {
	if idx == d.focus {
		return false
	}
	if d.focus >= 0 {
		d.Cards[d.focus].SetFocused(false)
	}
	d.focus = -1
	if idx >= 0 && idx < len(d.Cards) && d.Cards[idx].Focusable() {
		d.focus = idx
		d.Cards[idx].SetFocused(true)
	}
	return true
}

// Focused returns the focused card, or nil.
func (d *Deck) Focused() *Card {
	if d.focus < 0 {
		return nil
	}
	return d.Cards[d.focus]
}

// Hovered returns the card under the pointer, or nil.
func (d *Deck) Hovered() *Card {
	if d.hover < 0 {
		return nil
	}
	return d.Cards[d.hover]
}

// Blur is called when the terminal loses focus. The focused card plays its
// focus-out and the hovered card its leave; the focus position is kept.
func (d *Deck) Blur() {
	if card := d.Focused(); card != nil {
		card.SetFocused(false)
	}
	d.PointerLeave()
}

// Focus is called when the terminal regains focus.
func (d *Deck) Focus() {
	if card := d.Focused(); card != nil {
		card.SetFocused(true)
	}
}

// Select selects the focused card, or the hovered one, and returns it.
func (d *Deck) Select() *Card {
	card := d.Focused()
	if card == nil {
		card = d.Hovered()
	}
	if card == nil {
		return nil
	}
	d.selectCard(card)
	return card
}

// Click focuses and selects the card under (x, y) and returns it.
func (d *Deck) Click(x, y int) *Card {
	idx := d.CardAt(x, y)
	d.FocusCard(idx)
	if idx < 0 {
		return nil
	}
	card := d.Cards[idx]
	d.selectCard(card)
	return card
}

func (d *Deck) selectCard(card *Card) {
	card.Select()
	if d.focus >= 0 && d.Cards[d.focus] == card && !card.Focused() {
		d.focus = -1
	}
}

// Teardown stops every card.
func (d *Deck) Teardown() {
	for _, card := range d.Cards {
		card.Teardown()
	}
}
