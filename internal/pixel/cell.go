// Package pixel implements the animated pixel-grid engine that backs a card.
//
// A grid is a set of independently animated cells laid out at a fixed stride
// across a surface. Each cell grows in after a distance-based delay, shimmers
// once fully grown, and shrinks out when the card is deactivated. The engine
// drives every cell from a single frame-capped loop owned by a Scheduler.
package pixel

import (
	"image/color"
	"math"
)

const (
	// MinCellSize is the lower bound of the shimmer oscillation.
	MinCellSize = 0.5

	// MaxCellEdge is the largest edge a cell may reach. Cells are centered
	// within a square of this edge so growth expands from the middle.
	MaxCellEdge = 2.0

	// ShrinkStep is the fixed per-tick size decrement while dematerializing.
	ShrinkStep = 0.1

	// sizeEpsilon absorbs float drift when shrinking towards zero.
	sizeEpsilon = 1e-9
)

// Direction selects which per-cell rule a frame applies.
type Direction int

const (
	// None leaves every cell untouched.
	None Direction = iota
	// Materializing grows cells in, then shimmers them.
	Materializing
	// Dematerializing shrinks cells out until idle.
	Dematerializing
)

func (d Direction) String() string {
	switch d {
	case Materializing:
		return "materializing"
	case Dematerializing:
		return "dematerializing"
	default:
		return "none"
	}
}

// Cell is one grid unit. Position, color and timing are fixed at creation;
// Size and the animation flags change every tick.
type Cell struct {
	X, Y  float64
	Color color.Color

	Size         float64
	GrowthStep   float64
	MinSize      float64
	MaxSize      float64
	ShimmerSpeed float64
	Delay        float64

	counter     float64
	counterStep float64
	shimmering  bool
	reverse     bool
	idle        bool
}

// newCell randomizes the per-cell parameters from rng. speed is the already
// effective shimmer unit and counterStep the delay accumulation rate.
func newCell(x, y float64, c color.Color, speed, delay, counterStep float64, rng Rand) Cell {
	return Cell{
		X:            x,
		Y:            y,
		Color:        c,
		Size:         0,
		GrowthStep:   rng.Float64() * 0.4,
		MinSize:      MinCellSize,
		MaxSize:      randomBetween(rng, MinCellSize, MaxCellEdge),
		ShimmerSpeed: randomBetween(rng, 0.1, 0.9) * speed,
		Delay:        delay,
		counterStep:  counterStep,
		idle:         true,
	}
}

func randomBetween(rng Rand, lo, hi float64) float64 {
	return rng.Float64()*(hi-lo) + lo
}

// Step advances the cell by one tick in the given direction.
func (c *Cell) Step(dir Direction) {
	switch dir {
	case Materializing:
		c.appear()
	case Dematerializing:
		c.disappear()
	}
}

func (c *Cell) appear() {
	c.idle = false
	if c.counter < c.Delay {
		c.counter += c.counterStep
		return
	}
	if c.Size >= c.MaxSize {
		c.shimmering = true
	}
	if c.shimmering {
		c.shimmer()
		return
	}
	c.Size = math.Min(c.Size+c.GrowthStep, c.MaxSize)
}

func (c *Cell) shimmer() {
	if c.Size >= c.MaxSize {
		c.reverse = true
	} else if c.Size <= c.MinSize {
		c.reverse = false
	}
	if c.reverse {
		c.Size -= c.ShimmerSpeed
	} else {
		c.Size += c.ShimmerSpeed
	}
	c.Size = math.Max(0, math.Min(c.Size, c.MaxSize))
}

func (c *Cell) disappear() {
	c.shimmering = false
	c.counter = 0
	if c.Size <= 0 {
		c.Size = 0
		c.idle = true
		return
	}
	c.Size -= ShrinkStep
	if c.Size <= sizeEpsilon {
		c.Size = 0
		c.idle = true
	}
}

// Idle reports whether the cell has fully dematerialized.
func (c *Cell) Idle() bool {
	return c.idle
}

// Shimmering reports whether the cell has latched into shimmer this cycle.
func (c *Cell) Shimmering() bool {
	return c.shimmering
}

// Draw paints the cell centered within its MaxCellEdge square. Zero-sized
// cells are not drawn.
func (c *Cell) Draw(s Surface) {
	if c.Size <= 0 || s == nil {
		return
	}
	offset := (MaxCellEdge - c.Size) * 0.5
	s.FillRect(c.X+offset, c.Y+offset, c.Size, c.Size, c.Color)
}
