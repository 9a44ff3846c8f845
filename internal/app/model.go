// Package app implements the interactive pixel card deck: cards, their
// layout and input rules, and the Bubble Tea model that hosts them.
package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/pixelcard/internal/config"
	"github.com/Gaurav-Gosain/pixelcard/internal/pixel"
)

// InputHandler handles key, mouse and focus messages.
// This allows Update to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, m *Model) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
// This will be set by the main package to break the circular dependency.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Options configures a Model.
type Options struct {
	Cards         []config.CardSpec
	Registry      *config.Registry
	Keys          *config.KeybindRegistry
	ReducedMotion bool
	ShowHelp      bool
	Logger        *log.Logger
	Clock         pixel.Clock
	Rand          func() pixel.Rand
}

// Model is the Bubble Tea model of a deck.
type Model struct {
	Deck     *Deck
	Keys     *config.KeybindRegistry
	ShowHelp bool
	Width    int
	Height   int
	Quitting bool

	schedulers map[string]*TeaScheduler
	logger     *log.Logger
}

// New creates a model for opts.
func New(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Keys == nil {
		opts.Keys = config.NewKeybindRegistry(config.DefaultKeybindings())
	}
	if len(opts.Cards) == 0 {
		opts.Cards = config.DefaultCards()
	}
	m := &Model{
		Keys:       opts.Keys,
		ShowHelp:   opts.ShowHelp,
		schedulers: make(map[string]*TeaScheduler),
		logger:     opts.Logger,
	}
	m.Deck = NewDeck(opts.Cards, CardOptions{
		Registry: opts.Registry,
		Scheduler: func(cardID string) pixel.Scheduler {
			s := NewTeaScheduler(cardID)
			m.schedulers[cardID] = s
			return s
		},
		Clock:         opts.Clock,
		Rand:          opts.Rand,
		ReducedMotion: opts.ReducedMotion,
		Logger:        opts.Logger,
	})
	if m.ShowHelp {
		m.Deck.Reserved = config.HelpHeight
	}
	return m
}

// Init starts with no frames pending; cards animate on interaction.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case FrameMsg:
		if s, ok := m.schedulers[msg.CardID]; ok && !s.Fire(msg) {
			m.logger.Debug("dropped stale frame", "card", msg.CardID, "handle", msg.Handle)
		}

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.Deck.Resize(msg.Width, msg.Height)
		m.logger.Debug("resized", "width", msg.Width, "height", msg.Height)

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseMotionMsg, tea.FocusMsg, tea.BlurMsg:
		if inputHandler != nil {
			_, cmd = inputHandler(msg, m)
		}
	}

	return m, tea.Batch(cmd, m.FrameCmds())
}

// FrameCmds collects the tick commands for newly requested frames.
func (m *Model) FrameCmds() tea.Cmd {
	var cmds []tea.Cmd
	for _, card := range m.Deck.Cards {
		if s, ok := m.schedulers[card.ID]; ok {
			if c := s.Cmd(); c != nil {
				cmds = append(cmds, c)
			}
		}
	}
	return tea.Batch(cmds...)
}

// Scheduler returns the frame scheduler of a card.
func (m *Model) Scheduler(cardID string) *TeaScheduler {
	return m.schedulers[cardID]
}

// Quit tears the deck down and quits the program.
func (m *Model) Quit() tea.Cmd {
	m.Quitting = true
	m.Deck.Teardown()
	return tea.Quit
}
