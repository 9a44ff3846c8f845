// Package tcellhost runs the card deck on a tcell screen instead of Bubble
// Tea. Frames are timer-driven interrupt events handled on the event loop.
package tcellhost

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/Gaurav-Gosain/pixelcard/internal/app"
	"github.com/Gaurav-Gosain/pixelcard/internal/config"
	"github.com/Gaurav-Gosain/pixelcard/internal/pixel"
)

// quitEvent asks the event loop to stop.
type quitEvent struct{}

// Options configures a Host.
type Options struct {
	Cards         []config.CardSpec
	Registry      *config.Registry
	Keys          *config.KeybindRegistry
	ReducedMotion bool
	ShowHelp      bool
	Logger        *log.Logger
}

// Host owns a tcell screen and the deck drawn on it.
type Host struct {
	Deck     *app.Deck
	Keys     *config.KeybindRegistry
	ShowHelp bool

	screen     tcell.Screen
	schedulers map[string]*TimerScheduler
	logger     *log.Logger
	pressed    bool
	width      int
	height     int
}

// New creates a host drawing on screen. The screen is initialized by Init.
func New(screen tcell.Screen, opts Options) *Host {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Keys == nil {
		opts.Keys = config.NewKeybindRegistry(config.DefaultKeybindings())
	}
	if len(opts.Cards) == 0 {
		opts.Cards = config.DefaultCards()
	}
	h := &Host{
		Keys:       opts.Keys,
		ShowHelp:   opts.ShowHelp,
		screen:     screen,
		schedulers: make(map[string]*TimerScheduler),
		logger:     opts.Logger,
	}
	h.Deck = app.NewDeck(opts.Cards, app.CardOptions{
		Registry: opts.Registry,
		Scheduler: func(cardID string) pixel.Scheduler {
			s := NewTimerScheduler(cardID, screen, config.FrameTick)
			h.schedulers[cardID] = s
			return s
		},
		ReducedMotion: opts.ReducedMotion,
		Logger:        opts.Logger,
	})
	if h.ShowHelp {
		h.Deck.Reserved = config.HelpHeight
	}
	return h
}

// Init initializes the screen and lays out the deck.
func (h *Host) Init() error {
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.screen.EnableFocus()
	h.screen.HideCursor()
	h.resize(h.screen.Size())
	h.Draw()
	return nil
}

// Run processes events until a quit key, ctx cancellation, or screen
// shutdown. The screen is finalized on return.
func (h *Host) Run(ctx context.Context) error {
	defer h.screen.Fini()
	defer h.Deck.Teardown()

	stop := context.AfterFunc(ctx, func() {
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(quitEvent{}))
	})
	defer stop()

	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if h.HandleEvent(ev) {
			return nil
		}
		h.Draw()
	}
}

// HandleEvent applies one event to the deck and reports whether the host
// should quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case frameEvent:
			if s, ok := h.schedulers[data.cardID]; ok && !s.Fire(data, ev.When()) {
				h.logger.Debug("dropped stale frame", "card", data.cardID, "handle", data.handle)
			}
		case quitEvent:
			return true
		}

	case *tcell.EventResize:
		h.resize(ev.Size())
		h.screen.Sync()

	case *tcell.EventKey:
		switch h.Keys.Action(keyString(ev)) {
		case config.ActionFocusNext:
			h.Deck.FocusNext()
		case config.ActionFocusPrev:
			h.Deck.FocusPrev()
		case config.ActionSelect:
			h.Deck.Select()
		case config.ActionQuit:
			return true
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		h.Deck.PointerMove(x, y)
		// tcell reports button state, not clicks; select on the press edge.
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !h.pressed {
			h.Deck.Click(x, y)
		}
		h.pressed = down

	case *tcell.EventFocus:
		if ev.Focused {
			h.Deck.Focus()
		} else {
			h.Deck.Blur()
		}
	}
	return false
}

func (h *Host) resize(width, height int) {
	h.width, h.height = width, height
	h.Deck.Resize(width, height)
	h.logger.Debug("resized", "width", width, "height", height)
}
