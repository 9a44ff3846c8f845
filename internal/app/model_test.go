package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/pixelcard/internal/config"
	"github.com/Gaurav-Gosain/pixelcard/internal/pixel"
)

func newTestModel(showHelp bool) *Model {
	return New(Options{
		Registry: config.NewRegistry(nil),
		ShowHelp: showHelp,
		Clock:    pixel.NewManualClock(t0),
		Rand:     func() pixel.Rand { return fixedRand(0.5) },
	})
}

func TestModelResizeLaysOutDeck(t *testing.T) {
	m := newTestModel(true)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})

	if m.Width != 100 || m.Height != 20 {
		t.Fatalf("size = %dx%d", m.Width, m.Height)
	}
	if m.Deck.Reserved != config.HelpHeight {
		t.Errorf("reserved = %d, want help height", m.Deck.Reserved)
	}
	for _, card := range m.Deck.Cards {
		if card.Raster == nil {
			t.Fatalf("card %s not laid out", card.Config.Label)
		}
	}
}

func TestModelFramesFlowThroughTicks(t *testing.T) {
	m := newTestModel(false)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	card := m.Deck.Cards[0]
	sched := m.Scheduler(card.ID)

	card.SetHovered(true)
	if m.FrameCmds() == nil {
		t.Fatal("hover produced no tick")
	}
	if m.FrameCmds() != nil {
		t.Error("frame ticked twice")
	}

	live := sched.Live()
	m.Update(FrameMsg{CardID: card.ID, Handle: live + 7, Time: t0.Add(pixel.FrameInterval)})
	if sched.Live() != live || card.Engine.Frames() != 0 {
		t.Fatal("stale tick advanced the engine")
	}

	_, cmd := m.Update(FrameMsg{CardID: card.ID, Handle: live, Time: t0.Add(pixel.FrameInterval)})
	if card.Engine.Frames() != 1 {
		t.Fatalf("frames = %d, want 1", card.Engine.Frames())
	}
	if sched.Live() == 0 || sched.Live() == live {
		t.Error("engine did not request its next frame")
	}
	if cmd == nil {
		t.Error("Update returned no tick for the next frame")
	}
}

func TestModelUnknownCardFrameIgnored(t *testing.T) {
	m := newTestModel(false)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m.Update(FrameMsg{CardID: "missing", Handle: 1})
}

func TestModelCanvasShowsLabelsAndHelp(t *testing.T) {
	m := newTestModel(true)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	m.Deck.Cards[1].Select()

	out := ansi.Strip(m.GetCanvas().Render())
	for _, label := range []string{"Mercury", "✓ Neptune", "Venus", "Mars"} {
		if !strings.Contains(out, label) {
			t.Errorf("canvas missing %q", label)
		}
	}
	if !strings.Contains(out, "tab next") {
		t.Error("canvas missing help line")
	}
	if !strings.Contains(out, "╭") {
		t.Error("canvas missing rounded borders")
	}
}

func TestModelQuitTearsDown(t *testing.T) {
	m := newTestModel(false)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	card := m.Deck.Cards[0]
	card.SetHovered(true)

	if m.Quit() == nil {
		t.Fatal("Quit returned no command")
	}
	if !m.Quitting || card.Engine.Scheduled() || m.Scheduler(card.ID).Live() != 0 {
		t.Error("quit left the deck running")
	}
}
