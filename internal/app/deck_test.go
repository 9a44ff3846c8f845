package app

import (
	"testing"
	"time"

	"github.com/Gaurav-Gosain/pixelcard/internal/config"
	"github.com/Gaurav-Gosain/pixelcard/internal/pixel"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

type deckHarness struct {
	deck   *Deck
	clock  *pixel.ManualClock
	scheds map[string]*pixel.ManualScheduler
}

func newDeckHarness(t *testing.T, specs []config.CardSpec) *deckHarness {
	t.Helper()
	h := &deckHarness{
		clock:  pixel.NewManualClock(t0),
		scheds: make(map[string]*pixel.ManualScheduler),
	}
	h.deck = NewDeck(specs, CardOptions{
		Registry: config.NewRegistry(nil),
		Scheduler: func(id string) pixel.Scheduler {
			s := pixel.NewManualScheduler()
			h.scheds[id] = s
			return s
		},
		Clock: h.clock,
		Rand:  func() pixel.Rand { return fixedRand(0.5) },
	})
	return h
}

func (h *deckHarness) sched(i int) *pixel.ManualScheduler {
	return h.scheds[h.deck.Cards[i].ID]
}

func (h *deckHarness) tick() {
	h.clock.Advance(pixel.FrameInterval)
	for _, s := range h.scheds {
		s.Fire(h.clock.Now())
	}
}

func TestDeckResizeLayout(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantCols      int
		wantW, wantH  int
	}{
		{"wide", 100, 20, 4, 24, 14},
		{"narrow", 30, 20, 1, 30, 5},
		{"two columns", 50, 30, 2, 24, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newDeckHarness(t, config.DefaultCards())
			h.deck.Resize(tt.width, tt.height)

			for i, card := range h.deck.Cards {
				if card.Width != tt.wantW || card.Height != tt.wantH {
					t.Errorf("card %d size = %dx%d, want %dx%d", i, card.Width, card.Height, tt.wantW, tt.wantH)
				}
				col, row := i%tt.wantCols, i/tt.wantCols
				wantX := col * (tt.wantW + config.CardMargin)
				wantY := row * (tt.wantH + config.CardMargin)
				if card.X != wantX || card.Y != wantY {
					t.Errorf("card %d at (%d,%d), want (%d,%d)", i, card.X, card.Y, wantX, wantY)
				}
				dw, dh := card.Raster.Size()
				if dw != tt.wantW-2 || dh != 2*(tt.wantH-2) {
					t.Errorf("card %d raster = %dx%d dots", i, dw, dh)
				}
				if ew, eh := card.Engine.Size(); ew != dw || eh != dh {
					t.Errorf("card %d engine grid = %dx%d, want %dx%d", i, ew, eh, dw, dh)
				}
			}
		})
	}
}

func TestDeckPointerTransitions(t *testing.T) {
	h := newDeckHarness(t, config.DefaultCards())
	h.deck.Resize(100, 20)
	a, b := h.deck.Cards[0], h.deck.Cards[1]

	if !h.deck.PointerMove(a.X+2, a.Y+2) {
		t.Fatal("entering a card is a transition")
	}
	if !a.Hovered() || a.Engine.Direction() != pixel.Materializing || h.sched(0).Outstanding() != 1 {
		t.Fatal("enter did not materialize the card")
	}
	if h.deck.PointerMove(a.X+5, a.Y+3) {
		t.Error("moving within a card must not transition")
	}

	h.deck.PointerMove(b.X+1, b.Y+1)
	if a.Hovered() || a.Engine.Direction() != pixel.Dematerializing {
		t.Error("leaving card did not dematerialize")
	}
	if !b.Hovered() || b.Engine.Direction() != pixel.Materializing {
		t.Error("entered card did not materialize")
	}
	if h.deck.Hovered() != b {
		t.Error("deck lost track of the hovered card")
	}

	if !h.deck.PointerLeave() || b.Hovered() {
		t.Error("pointer leave did not clear hover")
	}
	if h.deck.PointerLeave() {
		t.Error("second pointer leave should be a no-op")
	}
}

func TestDeckFocusCycleSkipsUnfocusable(t *testing.T) {
	h := newDeckHarness(t, config.DefaultCards()) // Mars (pink) is not focusable
	h.deck.Resize(100, 20)

	var order []string
	for range 4 {
		h.deck.FocusNext()
		order = append(order, h.deck.Focused().Config.Label)
	}
	want := []string{"Mercury", "Neptune", "Venus", "Mercury"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("focus order = %v, want %v", order, want)
		}
	}

	h.deck.FocusPrev()
	if got := h.deck.Focused().Config.Label; got != "Venus" {
		t.Errorf("FocusPrev from Mercury = %s, want Venus", got)
	}
	if h.deck.Cards[0].Focused() {
		t.Error("previous card kept focus")
	}

	fresh := newDeckHarness(t, config.DefaultCards())
	fresh.deck.FocusPrev()
	if got := fresh.deck.Focused().Config.Label; got != "Venus" {
		t.Errorf("FocusPrev with no focus = %s, want Venus", got)
	}
}

func TestDeckRefocusIsIgnored(t *testing.T) {
	h := newDeckHarness(t, config.DefaultCards())
	h.deck.Resize(100, 20)
	h.deck.FocusCard(0)
	before := h.sched(0).Outstanding()

	if h.deck.FocusCard(0) {
		t.Error("refocusing the focused card reported a change")
	}
	if h.sched(0).Outstanding() != before || h.deck.Cards[0].Engine.Direction() != pixel.Materializing {
		t.Error("refocus disturbed the animation")
	}

	only := newDeckHarness(t, []config.CardSpec{{Label: "solo"}, {Label: "x", Variant: config.VariantPink}})
	only.deck.FocusNext()
	if only.deck.FocusNext() {
		t.Error("cycling onto the only focusable card should be ignored")
	}
}

func TestDeckUnfocusableCardIgnoresFocus(t *testing.T) {
	h := newDeckHarness(t, config.DefaultCards())
	h.deck.Resize(100, 20)
	mars := h.deck.Cards[3]

	if mars.SetFocused(true) || mars.Focused() {
		t.Fatal("pink card accepted focus")
	}
	if h.sched(3).Pending() {
		t.Error("ignored focus scheduled a frame")
	}

	h.deck.FocusCard(0)
	h.deck.FocusCard(3)
	if h.deck.Focused() != nil || h.deck.Cards[0].Focused() {
		t.Error("clicking an unfocusable card should clear focus")
	}
}

func TestDeckSelectTogglesVariant(t *testing.T) {
	h := newDeckHarness(t, config.DefaultCards())
	h.deck.Resize(100, 20)
	h.deck.FocusNext()

	card := h.deck.Select()
	if card != h.deck.Cards[0] || !card.Selected() {
		t.Fatal("Select did not select the focused card")
	}
	if card.Config.Variant != config.VariantBlue || card.Engine.Config().Gap != 10 {
		t.Errorf("selected card variant=%s gap=%d, want blue/10", card.Config.Variant, card.Engine.Config().Gap)
	}
	if !card.Engine.Scheduled() {
		t.Error("rebuild of an animating card stopped its loop")
	}

	h.deck.Select()
	if card.Selected() || card.Config.Variant != config.VariantDefault || card.Engine.Config().Gap != 5 {
		t.Errorf("second select = %s gap %d", card.Config.Variant, card.Engine.Config().Gap)
	}
}

func TestDeckSelectHoveredWhenUnfocused(t *testing.T) {
	h := newDeckHarness(t, config.DefaultCards())
	h.deck.Resize(100, 20)
	if h.deck.Select() != nil {
		t.Fatal("select with nothing focused or hovered returned a card")
	}

	mars := h.deck.Cards[3]
	h.deck.PointerMove(mars.X+1, mars.Y+1)
	if got := h.deck.Select(); got != mars || mars.Config.Variant != config.VariantBlue {
		t.Errorf("hover select returned %v variant %s", got, mars.Config.Variant)
	}
	if !mars.Focusable() {
		t.Error("blue variant should be focusable")
	}
}

func TestDeckSelectDropsFocusWhenUnfocusable(t *testing.T) {
	h := newDeckHarness(t, []config.CardSpec{{Label: "answer", SelectedVariant: config.VariantPink}})
	h.deck.Resize(40, 10)
	h.deck.FocusNext()

	card := h.deck.Select()
	if card.Config.Variant != config.VariantPink {
		t.Fatalf("variant = %s, want pink", card.Config.Variant)
	}
	if card.Focused() || h.deck.Focused() != nil {
		t.Error("card kept focus after becoming unfocusable")
	}
	if card.Engine.Direction() != pixel.Dematerializing {
		t.Error("losing focus should dematerialize")
	}
}

func TestDeckClick(t *testing.T) {
	h := newDeckHarness(t, config.DefaultCards())
	h.deck.Resize(100, 20)
	venus := h.deck.Cards[2]

	if got := h.deck.Click(venus.X+3, venus.Y+3); got != venus {
		t.Fatalf("Click returned %v", got)
	}
	if !venus.Focused() || !venus.Selected() {
		t.Error("click should focus and select")
	}
	if h.deck.Click(-1, -1) != nil || h.deck.Focused() != nil {
		t.Error("clicking outside should clear focus")
	}
}

func TestDeckBlurAndFocus(t *testing.T) {
	h := newDeckHarness(t, config.DefaultCards())
	h.deck.Resize(100, 20)
	card := h.deck.Cards[1]
	h.deck.FocusCard(1)
	h.deck.PointerMove(h.deck.Cards[0].X+1, 1)

	h.deck.Blur()
	if card.Focused() || card.Engine.Direction() != pixel.Dematerializing {
		t.Error("blur did not dematerialize the focused card")
	}
	if h.deck.Cards[0].Hovered() {
		t.Error("blur did not clear hover")
	}

	h.deck.Focus()
	if !card.Focused() || card.Engine.Direction() != pixel.Materializing {
		t.Error("focus did not restore the focused card")
	}
}

func TestDeckTeardownStopsEveryLoop(t *testing.T) {
	h := newDeckHarness(t, config.DefaultCards())
	h.deck.Resize(100, 20)
	for i := range h.deck.Cards {
		h.deck.Cards[i].SetHovered(true)
	}
	h.tick()

	h.deck.Teardown()
	for i := range h.deck.Cards {
		if n := h.sched(i).Outstanding(); n != 0 {
			t.Errorf("card %d has %d outstanding frames", i, n)
		}
	}
}

func TestDeckResizeMidAnimationRebuilds(t *testing.T) {
	h := newDeckHarness(t, config.DefaultCards())
	h.deck.Resize(100, 20)
	card := h.deck.Cards[0]
	card.SetHovered(true)
	for range 10 {
		h.tick()
	}

	h.deck.Resize(30, 20)
	dw, dh := card.Raster.Size()
	for _, c := range card.Engine.Cells() {
		if c.Size != 0 || int(c.X) >= dw || int(c.Y) >= dh {
			t.Fatalf("stale cell after resize: %+v", c)
		}
	}
	if h.sched(0).Outstanding() != 1 {
		t.Error("animation should continue on the rebuilt grid")
	}
}
