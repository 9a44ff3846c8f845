package pixel

import (
	"image/color"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// FrameInterval is the minimum wall-clock time between two state advances.
	FrameInterval = time.Second / 60

	// maxSpeedDial is the top of the raw 0-100 speed dial.
	maxSpeedDial = 100

	// speedThrottle converts the raw dial into a per-tick size delta.
	speedThrottle = 0.001

	// FallbackColor paints cells when a palette is empty.
	FallbackColor = "#f8fafc"
)

// Config is the per-rebuild grid configuration. It is copied on rebuild.
type Config struct {
	// Gap is the stride between cell origins in surface pixels.
	Gap int
	// Speed is the raw 0-100 shimmer dial.
	Speed int
	// Palette holds the colors cells are drawn from.
	Palette []color.Color
}

// Options configures an Engine.
type Options struct {
	Scheduler     Scheduler
	Clock         Clock
	Rand          Rand
	ReducedMotion bool
	Logger        *log.Logger
}

// Engine owns the cells of one surface and the loop that animates them.
// It is not safe for concurrent use; hosts call it from their event loop.
type Engine struct {
	surface       Surface
	scheduler     Scheduler
	clock         Clock
	rng           Rand
	logger        *log.Logger
	reducedMotion bool

	width, height int
	cfg           Config
	cells         []Cell

	direction Direction
	lastFrame time.Time
	handle    FrameHandle
	frames    uint64
}

// NewEngine creates an engine drawing on surface, which may be nil until
// Attach is called. Reduced motion is fixed for the engine's lifetime.
func NewEngine(surface Surface, opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewManualScheduler()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Engine{
		surface:       surface,
		scheduler:     opts.Scheduler,
		clock:         opts.Clock,
		rng:           opts.Rand,
		logger:        opts.Logger,
		reducedMotion: opts.ReducedMotion,
		lastFrame:     opts.Clock.Now(),
	}
}

// EffectiveSpeed maps the raw 0-100 dial onto the per-tick shimmer unit.
func EffectiveSpeed(speed int, reducedMotion bool) float64 {
	switch {
	case speed <= 0 || reducedMotion:
		return 0
	case speed >= maxSpeedDial:
		return maxSpeedDial * speedThrottle
	default:
		return float64(speed) * speedThrottle
	}
}

// Attach sets the drawing surface. A nil surface detaches.
func (e *Engine) Attach(s Surface) {
	e.surface = s
}

// Rebuild replaces every cell with a fresh grid for a width x height surface.
// In-flight animation state of the old grid is discarded. If a loop was
// running it continues on the new grid. Without a surface the pending frame
// is still cancelled and the old cells are dropped.
func (e *Engine) Rebuild(width, height int, cfg Config) {
	wasScheduled := e.Scheduled()
	e.Cancel()
	if e.surface == nil {
		e.cells = nil
		return
	}

	cfg.Palette = slices.Clone(cfg.Palette)
	if len(cfg.Palette) == 0 {
		cfg.Palette = []color.Color{fallbackColor()}
	}
	gap := max(cfg.Gap, 1)
	speed := EffectiveSpeed(cfg.Speed, e.reducedMotion)
	cx, cy := float64(width)/2, float64(height)/2

	cells := make([]Cell, 0, ceilDiv(width, gap)*ceilDiv(height, gap))
	for x := 0; x < width; x += gap {
		for y := 0; y < height; y += gap {
			c := cfg.Palette[int(e.rng.Float64()*float64(len(cfg.Palette)))%len(cfg.Palette)]
			delay := 0.0
			if !e.reducedMotion {
				delay = math.Hypot(float64(x)-cx, float64(y)-cy)
			}
			counterStep := e.rng.Float64()*4 + float64(width+height)*0.01
			cells = append(cells, newCell(float64(x), float64(y), c, speed, delay, counterStep, e.rng))
		}
	}

	e.width, e.height = width, height
	e.cfg = cfg
	e.cells = cells
	e.logger.Debug("grid rebuilt", "width", width, "height", height, "gap", gap, "cells", len(cells))

	if wasScheduled {
		e.handle = e.scheduler.RequestFrame(e.runFrame)
	}
}

// Trigger starts or redirects the animation loop. Any pending frame is
// cancelled first so exactly one loop runs.
func (e *Engine) Trigger(dir Direction) {
	e.direction = dir
	e.Cancel()
	e.handle = e.scheduler.RequestFrame(e.runFrame)
}

// Cancel drops the pending frame, if any.
func (e *Engine) Cancel() {
	if e.handle == 0 {
		return
	}
	e.scheduler.CancelFrame(e.handle)
	e.handle = 0
}

// Teardown stops all scheduled work and releases the cells and surface.
func (e *Engine) Teardown() {
	e.Cancel()
	e.cells = nil
	e.surface = nil
}

func (e *Engine) runFrame(now time.Time) {
	e.handle = e.scheduler.RequestFrame(e.runFrame)

	elapsed := now.Sub(e.lastFrame)
	if elapsed < FrameInterval {
		return
	}
	e.lastFrame = now.Add(-(elapsed % FrameInterval))

	if e.surface == nil {
		return
	}
	e.surface.Clear()

	allIdle := true
	for i := range e.cells {
		c := &e.cells[i]
		c.Step(e.direction)
		c.Draw(e.surface)
		if !c.Idle() {
			allIdle = false
		}
	}
	e.frames++

	if allIdle {
		e.logger.Debug("grid quiescent", "direction", e.direction, "frames", e.frames)
		e.Cancel()
	}
}

// Scheduled reports whether a frame is pending.
func (e *Engine) Scheduled() bool {
	return e.handle != 0
}

// Direction returns the direction the loop applies.
func (e *Engine) Direction() Direction {
	return e.direction
}

// Frames returns the number of frames that advanced state.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// Size returns the surface dimensions of the current grid.
func (e *Engine) Size() (width, height int) {
	return e.width, e.height
}

// Config returns the snapshot taken at the last rebuild.
func (e *Engine) Config() Config {
	return e.cfg
}

// Cells returns a copy of the current cell sequence.
func (e *Engine) Cells() []Cell {
	return slices.Clone(e.cells)
}

func fallbackColor() color.Color {
	c, _ := colorful.Hex(FallbackColor)
	return c
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
