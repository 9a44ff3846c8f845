package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/pixelcard/internal/config"
	"github.com/Gaurav-Gosain/pixelcard/internal/pixel"
)

// FrameMsg delivers a requested frame to one card's engine.
type FrameMsg struct {
	CardID string
	Handle pixel.FrameHandle
	Time   time.Time
}

// TeaScheduler schedules engine frames as Bubble Tea ticks. Requests made
// during Update are turned into commands by Cmd; a tick whose handle is no
// longer live is dropped when it arrives.
type TeaScheduler struct {
	cardID string
	next   pixel.FrameHandle
	live   pixel.FrameHandle
	fn     func(time.Time)
	armed  bool
}

// NewTeaScheduler creates a scheduler for one card.
func NewTeaScheduler(cardID string) *TeaScheduler {
	return &TeaScheduler{cardID: cardID}
}

// RequestFrame makes fn the live frame and returns its handle.
func (s *TeaScheduler) RequestFrame(fn func(now time.Time)) pixel.FrameHandle {
	s.next++
	s.live = s.next
	s.fn = fn
	s.armed = false
	return s.live
}

// CancelFrame invalidates h if it is the live frame.
func (s *TeaScheduler) CancelFrame(h pixel.FrameHandle) {
	if h != 0 && h == s.live {
		s.live = 0
		s.fn = nil
		s.armed = false
	}
}

// Live returns the live handle, or 0.
func (s *TeaScheduler) Live() pixel.FrameHandle {
	return s.live
}

// Cmd returns the tick command for a live frame that has none in flight.
func (s *TeaScheduler) Cmd() tea.Cmd {
	if s.live == 0 || s.armed {
		return nil
	}
	s.armed = true
	id, h := s.cardID, s.live
	return tea.Tick(config.FrameTick, func(t time.Time) tea.Msg {
		return FrameMsg{CardID: id, Handle: h, Time: t}
	})
}

// Fire runs the live frame if msg carries its handle. Stale ticks report
// false.
func (s *TeaScheduler) Fire(msg FrameMsg) bool {
	if msg.Handle == 0 || msg.Handle != s.live || s.fn == nil {
		return false
	}
	fn := s.fn
	s.live, s.fn, s.armed = 0, nil, false
	fn(msg.Time)
	return true
}
