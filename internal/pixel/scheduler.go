package pixel

import (
	"image/color"
	"sync"
	"time"
)

// Surface is the drawing target of an engine. Coordinates are in surface
// pixels.
type Surface interface {
	Size() (width, height int)
	Clear()
	FillRect(x, y, w, h float64, c color.Color)
}

// FrameHandle identifies a requested frame. The zero handle means none.
type FrameHandle uint64

// Scheduler delivers frame callbacks on the host's event loop. A handle
// returned by RequestFrame stays live until its callback runs or it is
// cancelled.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameHandle
	CancelFrame(h FrameHandle)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// Rand is the uniform source used to randomize cells. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a controllable clock for tests and headless rendering.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock creates a clock reading start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current mocked time.
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// ManualScheduler holds requested frames until Fire is called. It tracks
// every live handle so tests can assert that at most one is outstanding.
type ManualScheduler struct {
	next      FrameHandle
	callbacks map[FrameHandle]func(time.Time)
	order     []FrameHandle
}

// NewManualScheduler creates an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{callbacks: make(map[FrameHandle]func(time.Time))}
}

// RequestFrame records fn and returns its handle.
func (s *ManualScheduler) RequestFrame(fn func(now time.Time)) FrameHandle {
	s.next++
	s.callbacks[s.next] = fn
	s.order = append(s.order, s.next)
	return s.next
}

// CancelFrame drops h if it is still live.
func (s *ManualScheduler) CancelFrame(h FrameHandle) {
	delete(s.callbacks, h)
}

// Outstanding returns the number of live handles.
func (s *ManualScheduler) Outstanding() int {
	return len(s.callbacks)
}

// Pending reports whether any frame is waiting.
func (s *ManualScheduler) Pending() bool {
	return len(s.callbacks) > 0
}

// Fire runs every frame that was live when Fire was called, oldest first,
// and reports how many ran. Frames requested by those callbacks wait for
// the next Fire.
func (s *ManualScheduler) Fire(now time.Time) int {
	due := s.order
	s.order = nil
	fired := 0
	for _, h := range due {
		fn, ok := s.callbacks[h]
		if !ok {
			continue
		}
		delete(s.callbacks, h)
		fn(now)
		fired++
	}
	return fired
}
