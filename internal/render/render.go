// Package render advances a card's engine off-screen and exports the result
// as ANSI text or PNG.
package render

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/pixelcard/internal/config"
	"github.com/Gaurav-Gosain/pixelcard/internal/pixel"
	"github.com/Gaurav-Gosain/pixelcard/internal/surface"
	"github.com/Gaurav-Gosain/pixelcard/internal/theme"
)

// Errors returned for out of range requests.
var (
	ErrInvalidSize   = errors.New("invalid size")
	ErrInvalidFrames = errors.New("invalid frame count")
	ErrInvalidGap    = errors.New("invalid gap")
	ErrTooLarge      = errors.New("render too large")
)

// epoch is the manual clock's start. Headless renders never read the wall
// clock, so identical requests produce identical output.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Request describes one headless render.
type Request struct {
	Card config.Card
	// Width and Height are the raster size in terminal cells.
	Width, Height int
	// Frames is the number of frames to advance in Direction.
	Frames    int
	Direction pixel.Direction
	// Warmup frames materialize the grid before a dematerialize run.
	Warmup int
	// Seed drives cell randomization. Zero picks a random seed.
	Seed          uint64
	ReducedMotion bool
	Logger        *log.Logger
}

// Result is a finished render.
type Result struct {
	Card   config.Card
	Raster *surface.Raster
	// Frames is the number of frames the engine actually drew.
	Frames uint64
	// Settled reports whether the grid went idle before the frame budget ran out.
	Settled bool
}

// Validate checks the request against the render limits.
func (r Request) Validate() error {
	if r.Width < 1 || r.Height < 1 || r.Width > config.MaxRenderDimension || r.Height > config.MaxRenderDimension {
		return fmt.Errorf("%w: %dx%d (want 1..%d)", ErrInvalidSize, r.Width, r.Height, config.MaxRenderDimension)
	}
	if r.Frames < 0 || r.Frames > config.MaxRenderFrames || r.Warmup < 0 || r.Warmup > config.MaxRenderFrames {
		return fmt.Errorf("%w: %d (want 0..%d)", ErrInvalidFrames, r.Frames, config.MaxRenderFrames)
	}
	if r.Card.Gap < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidGap, r.Card.Gap)
	}
	if work := r.Work(); work > config.MaxRenderWork {
		return fmt.Errorf("%w: %d cell frames (max %d)", ErrTooLarge, work, config.MaxRenderWork)
	}
	return nil
}

// Work returns the number of cell steps the request may run: cells times
// frames, warmup included.
func (r Request) Work() int64 {
	gap := max(r.Card.Gap, 1)
	cells := int64(ceilDiv(r.Width, gap)) * int64(ceilDiv(r.Height*2, gap))
	frames := int64(r.Frames)
	if r.Direction == pixel.Dematerializing {
		frames += int64(r.Warmup)
	}
	return cells * frames
}

// CheckPNG reports whether a width x height cell render fits in a PNG at
// scale.
func CheckPNG(width, height, scale int) error {
	if scale < 1 || scale > config.MaxPNGScale {
		return fmt.Errorf("%w: scale %d (want 1..%d)", ErrInvalidSize, scale, config.MaxPNGScale)
	}
	pixels := int64(width) * int64(height*2) * int64(scale) * int64(scale)
	if pixels > config.MaxPNGPixels {
		return fmt.Errorf("%w: %d image pixels (max %d)", ErrTooLarge, pixels, config.MaxPNGPixels)
	}
	return nil
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// Card renders req. It stops with ctx's error when ctx is done first.
func Card(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Logger == nil {
		req.Logger = log.Default()
	}
	seed := req.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	raster := surface.NewRaster(req.Width, req.Height)
	raster.Background = theme.Background()
	sched := pixel.NewManualScheduler()
	clock := pixel.NewManualClock(epoch)
	engine := pixel.NewEngine(raster, pixel.Options{
		Scheduler:     sched,
		Clock:         clock,
		Rand:          rand.New(rand.NewPCG(seed, seed>>1|1)),
		ReducedMotion: req.ReducedMotion,
		Logger:        req.Logger.With("card", req.Card.Label),
	})
	defer engine.Teardown()

	w, h := raster.Size()
	engine.Rebuild(w, h, pixel.Config{
		Gap:     req.Card.Gap,
		Speed:   req.Card.Speed,
		Palette: theme.ParsePalette(req.Card.Colors),
	})

	if req.Direction == pixel.Dematerializing && req.Warmup > 0 {
		engine.Trigger(pixel.Materializing)
		if err := advance(ctx, sched, clock, req.Warmup); err != nil {
			return nil, err
		}
	}
	engine.Trigger(req.Direction)
	before := engine.Frames()
	if err := advance(ctx, sched, clock, req.Frames); err != nil {
		return nil, err
	}

	res := &Result{
		Card:    req.Card,
		Raster:  raster,
		Frames:  engine.Frames() - before,
		Settled: !sched.Pending(),
	}
	req.Logger.Debug("rendered card", "variant", req.Card.Variant, "frames", res.Frames, "settled", res.Settled)
	return res, nil
}

// advance fires up to n frames, stopping early once the engine stops
// requesting them.
func advance(ctx context.Context, sched *pixel.ManualScheduler, clock *pixel.ManualClock, n int) error {
	for range n {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !sched.Pending() {
			return nil
		}
		clock.Advance(pixel.FrameInterval)
		sched.Fire(clock.Now())
	}
	return nil
}

// Text returns the bare raster as half-block ANSI text.
func (r *Result) Text() string {
	return r.Raster.Render()
}

// Framed returns the raster inside a card border with its label centered
// on the top edge.
func (r *Result) Framed() string {
	cols, _ := r.Raster.Cells()
	borderColor := theme.CardBorder()
	if accent, ok := theme.ParseColor(r.Card.ActiveColor); ok {
		borderColor = accent
	}
	box := lipgloss.NewStyle().
		Border(config.GetBorderForStyle(config.BorderStyle)).
		BorderForeground(borderColor).
		Render(r.Raster.Render())

	label := ansi.Truncate(r.Card.Label, max(cols-2, 0), "…")
	if label == "" {
		return box
	}
	label = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(theme.LabelFg()).Render(label)
	width := lipgloss.Width(box)
	canvas := lipgloss.NewCanvas(width, lipgloss.Height(box))
	canvas.Compose(lipgloss.NewLayer(box))
	canvas.Compose(lipgloss.NewLayer(label).X(max((width-lipgloss.Width(label))/2, 0)).Z(1))
	return canvas.Render()
}

// PNG encodes the raster with each dot drawn as a scale x scale block.
func (r *Result) PNG(w io.Writer, scale int) error {
	cols, rows := r.Raster.Cells()
	if err := CheckPNG(cols, rows, scale); err != nil {
		return err
	}
	if err := png.Encode(w, r.Raster.Image(scale)); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// ParseDirection parses "in"/"materialize" or "out"/"dematerialize".
func ParseDirection(s string) (pixel.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "in", "materialize":
		return pixel.Materializing, nil
	case "out", "dematerialize":
		return pixel.Dematerializing, nil
	}
	return pixel.Materializing, fmt.Errorf("unknown direction %q (want in or out)", s)
}
