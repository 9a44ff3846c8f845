package tcellhost

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Gaurav-Gosain/pixelcard/internal/pixel"
)

// poster is the part of tcell.Screen the scheduler needs.
type poster interface {
	PostEvent(ev tcell.Event) error
}

// frameEvent is the payload of the interrupt that delivers a frame.
type frameEvent struct {
	cardID string
	handle pixel.FrameHandle
}

// minRetry bounds how often a frame is reposted while the event queue is full.
const minRetry = time.Millisecond

// pendingFrame is one armed timer. stopped is set from the loop goroutine
// and read by the timer goroutine.
type pendingFrame struct {
	timer   *time.Timer
	stopped atomic.Bool
}

// TimerScheduler schedules frames with timers that post interrupt events to
// the screen. The callback runs when the event loop receives the interrupt,
// so engines are only touched from the loop goroutine. A post rejected
// because the event queue is full is retried until it lands or the frame
// is cancelled.
type TimerScheduler struct {
	cardID string
	post   poster
	delay  time.Duration

	next    pixel.FrameHandle
	live    pixel.FrameHandle
	fn      func(time.Time)
	pending *pendingFrame
}

// NewTimerScheduler creates a scheduler for one card.
func NewTimerScheduler(cardID string, post poster, delay time.Duration) *TimerScheduler {
	return &TimerScheduler{cardID: cardID, post: post, delay: delay}
}

// RequestFrame arms a timer for fn and returns its handle.
func (s *TimerScheduler) RequestFrame(fn func(now time.Time)) pixel.FrameHandle {
	s.stop()
	s.next++
	s.live = s.next
	s.fn = fn

	p := &pendingFrame{}
	ev := frameEvent{cardID: s.cardID, handle: s.live}
	p.timer = time.AfterFunc(s.delay, func() { s.deliver(p, ev) })
	s.pending = p
	return s.live
}

// deliver posts ev, backing off while the queue is full.
func (s *TimerScheduler) deliver(p *pendingFrame, ev frameEvent) {
	retry := max(s.delay, minRetry)
	for !p.stopped.Load() {
		err := s.post.PostEvent(tcell.NewEventInterrupt(ev))
		if !errors.Is(err, tcell.ErrEventQFull) {
			return
		}
		time.Sleep(retry)
	}
}

// CancelFrame stops h if it is the live frame.
func (s *TimerScheduler) CancelFrame(h pixel.FrameHandle) {
	if h == 0 || h != s.live {
		return
	}
	s.stop()
	s.live = 0
	s.fn = nil
}

func (s *TimerScheduler) stop() {
	if s.pending != nil {
		s.pending.stopped.Store(true)
		s.pending.timer.Stop()
		s.pending = nil
	}
}

// Live returns the live handle, or 0.
func (s *TimerScheduler) Live() pixel.FrameHandle {
	return s.live
}

// Fire runs the live frame if ev carries its handle.
func (s *TimerScheduler) Fire(ev frameEvent, now time.Time) bool {
	if ev.handle == 0 || ev.handle != s.live || s.fn == nil {
		return false
	}
	fn := s.fn
	s.live, s.fn, s.pending = 0, nil, nil
	fn(now)
	return true
}
