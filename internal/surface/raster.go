// Package surface provides the in-memory dot raster the pixel engine paints on.
//
// A raster maps every terminal cell to two vertically stacked dots, so a
// cols x rows terminal area is a cols x 2*rows dot surface. Rendering packs
// each dot pair into a single upper half block with the top dot as the
// foreground and the bottom dot as the background.
package surface

import (
	"image"
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// MinCoverage is the smallest fraction of a dot a fill must cover to
	// paint it.
	MinCoverage = 0.25

	upperHalf = "▀"
	lowerHalf = "▄"
)

// Raster is a dot surface. The zero value is an empty 0x0 raster.
type Raster struct {
	cols, rows int
	dots       []color.Color

	// Background is the color unpainted dots render with. Nil leaves the
	// terminal's own background showing.
	Background color.Color
}

// NewRaster creates a raster covering cols x rows terminal cells.
func NewRaster(cols, rows int) *Raster {
	cols, rows = max(cols, 0), max(rows, 0)
	return &Raster{
		cols: cols,
		rows: rows,
		dots: make([]color.Color, cols*rows*2),
	}
}

// Size returns the dot dimensions.
func (r *Raster) Size() (width, height int) {
	return r.cols, r.rows * 2
}

// Cells returns the terminal cell dimensions.
func (r *Raster) Cells() (cols, rows int) {
	return r.cols, r.rows
}

// Clear resets every dot to the background.
func (r *Raster) Clear() {
	clear(r.dots)
}

// FillRect paints every dot the rectangle covers by at least MinCoverage.
// Partially covered dots are blended toward the background by coverage.
func (r *Raster) FillRect(x, y, w, h float64, c color.Color) {
	if c == nil || w <= 0 || h <= 0 {
		return
	}
	width, height := r.Size()
	x0, x1 := max(int(math.Floor(x)), 0), min(int(math.Ceil(x+w)), width)
	y0, y1 := max(int(math.Floor(y)), 0), min(int(math.Ceil(y+h)), height)

	for dy := y0; dy < y1; dy++ {
		oy := overlap(y, y+h, float64(dy))
		for dx := x0; dx < x1; dx++ {
			coverage := oy * overlap(x, x+w, float64(dx))
			if coverage < MinCoverage {
				continue
			}
			r.dots[dy*width+dx] = r.shade(c, coverage)
		}
	}
}

// overlap returns how much of the unit span [d, d+1) lies within [lo, hi).
func overlap(lo, hi, d float64) float64 {
	return max(0, min(hi, d+1)-max(lo, d))
}

func (r *Raster) shade(c color.Color, coverage float64) color.Color {
	if coverage >= 1 {
		return c
	}
	fg, ok := colorful.MakeColor(c)
	if !ok {
		return c
	}
	var bg colorful.Color
	if r.Background != nil {
		if b, ok := colorful.MakeColor(r.Background); ok {
			bg = b
		}
	}
	return bg.BlendRgb(fg, coverage).Clamped()
}

// At returns the color of the dot at (x, y), or nil when it shows the
// background or lies outside the raster.
func (r *Raster) At(x, y int) color.Color {
	width, height := r.Size()
	if x < 0 || y < 0 || x >= width || y >= height {
		return nil
	}
	return r.dots[y*width+x]
}

// Painted returns the number of non-background dots.
func (r *Raster) Painted() int {
	n := 0
	for _, d := range r.dots {
		if d != nil {
			n++
		}
	}
	return n
}

type run struct {
	glyph  string
	fg, bg color.Color
}

// Render draws the raster as rows of half blocks, one line per terminal row.
func (r *Raster) Render() string {
	var sb strings.Builder
	for row := range r.rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		var (
			cur   run
			count int
		)
		flush := func() {
			if count > 0 {
				sb.WriteString(cur.style().Render(strings.Repeat(cur.glyph, count)))
			}
		}
		for col := range r.cols {
			next := r.cell(col, row)
			if count > 0 && next == cur {
				count++
				continue
			}
			flush()
			cur, count = next, 1
		}
		flush()
	}
	return sb.String()
}

// CellAt returns the glyph and colors of terminal cell (col, row). Nil
// colors mean the terminal default.
func (r *Raster) CellAt(col, row int) (glyph string, fg, bg color.Color) {
	c := r.cell(col, row)
	return c.glyph, c.fg, c.bg
}

func (r *Raster) cell(col, row int) run {
	top, bottom := r.At(col, row*2), r.At(col, row*2+1)
	switch {
	case top == nil && bottom == nil:
		return run{glyph: " ", bg: r.Background}
	case top == nil:
		return run{glyph: lowerHalf, fg: bottom, bg: r.Background}
	case bottom == nil:
		return run{glyph: upperHalf, fg: top, bg: r.Background}
	default:
		return run{glyph: upperHalf, fg: top, bg: bottom}
	}
}

func (ru run) style() lipgloss.Style {
	s := lipgloss.NewStyle()
	if ru.fg != nil {
		s = s.Foreground(ru.fg)
	}
	if ru.bg != nil {
		s = s.Background(ru.bg)
	}
	return s
}

// Image renders the raster as an RGBA image with each dot drawn as a
// scale x scale block.
func (r *Raster) Image(scale int) *image.RGBA {
	scale = max(scale, 1)
	width, height := r.Size()
	img := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	bg := r.Background
	if bg == nil {
		bg = color.Black
	}
	for y := range height {
		for x := range width {
			c := r.At(x, y)
			if c == nil {
				c = bg
			}
			for py := y * scale; py < (y+1)*scale; py++ {
				for px := x * scale; px < (x+1)*scale; px++ {
					img.Set(px, py, c)
				}
			}
		}
	}
	return img
}
