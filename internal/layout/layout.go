// Package layout computes the pixel geometry of a board poster: the
// auto-fitted title, the centered slot grid and the legend. It is pure
// arithmetic over a canvas size and a text measurer; nothing here draws.
package layout

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateCanvas is returned when the canvas is too small for the
// configured margins and grid to produce positive-sized cells, or too short
// to hold the grid and legend.
var ErrDegenerateCanvas = errors.New("layout: degenerate canvas")

// TextMeasurer reports the rendered width of text at a font size in pixels.
type TextMeasurer interface {
	MeasureText(text string, size float64) float64
}

// EstimateMeasurer approximates text width as rune count times a fixed
// average character width, independent of the font size. It stands in
// for real metrics when no font could be loaded.
type EstimateMeasurer struct {
	CharWidth float64
}

// DefaultCharWidth is the average glyph advance assumed without a font.
const DefaultCharWidth = 24.0

// MeasureText implements TextMeasurer.
func (e EstimateMeasurer) MeasureText(text string, _ float64) float64 {
	w := e.CharWidth
	if w <= 0 {
		w = DefaultCharWidth
	}
	return float64(len([]rune(text))) * w
}

// Point is a position in canvas pixels.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X, Y, W, H float64
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Center returns the midpoint.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Swatch is one legend entry: a small colored square and its caption.
type Swatch struct {
	Box     Rect
	TextPos Point // top-left of the caption
	Caption string
	Sold    bool
}

// Spec holds the inputs of a layout computation. Offsets are in pixels.
type Spec struct {
	CanvasWidth  float64
	CanvasHeight float64
	Margin       float64
	Columns      int
	Rows         int
	Gap          float64

	Title       string
	MinFontSize float64
	MaxFontSize float64
	FontStep    float64

	LogoTop     float64
	LogoHeight  float64 // 0 when there is no logo
	LogoPadding float64
	TitleTop    float64 // title top when there is no logo

	TitleToGrid  float64
	GuidePadding float64
	GridToLegend float64

	SwatchSize       float64
	SwatchTextOffset float64
	LegendSpacing    float64
	LegendTextRaise  float64

	AvailableCaption string
	SoldCaption      string
}

// DefaultSpec returns the 1080x1580 poster layout with a 10x10 grid.
func DefaultSpec(title string) Spec {
	return Spec{
		CanvasWidth:  1080,
		CanvasHeight: 1580,
		Margin:       60,
		Columns:      10,
		Rows:         10,
		Gap:          16,

		Title:       title,
		MinFontSize: 28,
		MaxFontSize: 64,
		FontStep:    2,

		LogoTop:     30,
		LogoPadding: 20,
		TitleTop:    30,

		TitleToGrid:  80,
		GuidePadding: 12,
		GridToLegend: 30,

		SwatchSize:       30,
		SwatchTextOffset: 40,
		LegendSpacing:    260,
		LegendTextRaise:  2,

		AvailableCaption: "Available",
		SoldCaption:      "Sold",
	}
}

// Geometry is the computed poster layout.
type Geometry struct {
	TitleSize  float64
	TitleWidth float64
	TitlePos   Point // top-left of the title text

	GridLeft   float64
	GridTop    float64
	GridWidth  float64
	GridHeight float64
	CellSize   float64

	// Cells is indexed [row][column].
	Cells  [][]Rect
	Guide  Rect
	Legend []Swatch
}

// CellAt returns the rectangle of slot n in row-major order.
func (g Geometry) CellAt(n int) Rect {
	cols := len(g.Cells[0])
	return g.Cells[n/cols][n%cols]
}

// Bottom returns the lowest y coordinate used by the layout.
func (g Geometry) Bottom() float64 {
	bottom := g.Guide.MaxY()
	for _, s := range g.Legend {
		bottom = math.Max(bottom, s.Box.MaxY())
	}
	return bottom
}

// FitTitle finds the largest font size, stepping down from maxSize, at which
// title fits within maxWidth. The search stops at minSize even if the title
// still overflows; it runs at most (maxSize-minSize)/step+1 measurements.
func FitTitle(title string, maxWidth, minSize, maxSize, step float64, m TextMeasurer) (size, width float64) {
	if !(step > 0) {
		step = 2
	}
	if !(minSize > 0) {
		minSize = 1
	}
	if !(maxSize >= minSize) || math.IsInf(maxSize, 1) {
		maxSize = minSize
	}
	size = maxSize
	for {
		width = m.MeasureText(title, size)
		if width <= maxWidth || size <= minSize {
			return size, width
		}
		next := size - step
		// A step below float precision would stall.
		if next < minSize || next >= size {
			next = minSize
		}
		size = next
	}
}

// Compute lays out the poster described by s using m for text widths.
func Compute(s Spec, m TextMeasurer) (Geometry, error) {
	if s.CanvasWidth <= 0 || s.CanvasHeight <= 0 {
		return Geometry{}, fmt.Errorf("%w: canvas %gx%g", ErrDegenerateCanvas, s.CanvasWidth, s.CanvasHeight)
	}
	if s.Columns <= 0 || s.Rows <= 0 {
		return Geometry{}, fmt.Errorf("%w: grid %dx%d", ErrDegenerateCanvas, s.Columns, s.Rows)
	}
	if m == nil {
		m = EstimateMeasurer{CharWidth: DefaultCharWidth}
	}

	available := s.CanvasWidth - 2*s.Margin
	cell := (available - float64(s.Columns-1)*s.Gap) / float64(s.Columns)
	if cell <= 0 || math.IsNaN(cell) {
		return Geometry{}, fmt.Errorf("%w: cell size %.2f from width %g, margin %g, gap %g",
			ErrDegenerateCanvas, cell, s.CanvasWidth, s.Margin, s.Gap)
	}

	var g Geometry
	g.TitleSize, g.TitleWidth = FitTitle(s.Title, available, s.MinFontSize, s.MaxFontSize, s.FontStep, m)

	titleTop := s.TitleTop
	if s.LogoHeight > 0 {
		titleTop = s.LogoTop + s.LogoHeight + s.LogoPadding
	}
	g.TitlePos = Point{X: math.Floor((s.CanvasWidth - g.TitleWidth) / 2), Y: titleTop}

	g.CellSize = cell
	g.GridWidth = float64(s.Columns)*cell + float64(s.Columns-1)*s.Gap
	g.GridHeight = float64(s.Rows)*cell + float64(s.Rows-1)*s.Gap
	// Centered on the canvas, not on the margin box.
	g.GridLeft = (s.CanvasWidth - g.GridWidth) / 2
	g.GridTop = titleTop + s.TitleToGrid

	g.Cells = make([][]Rect, s.Rows)
	for r := range g.Cells {
		g.Cells[r] = make([]Rect, s.Columns)
		for c := range g.Cells[r] {
			g.Cells[r][c] = Rect{
				X: g.GridLeft + float64(c)*(cell+s.Gap),
				Y: g.GridTop + float64(r)*(cell+s.Gap),
				W: cell,
				H: cell,
			}
		}
	}

	p := s.GuidePadding
	g.Guide = Rect{X: g.GridLeft - p, Y: g.GridTop - p, W: g.GridWidth + 2*p, H: g.GridHeight + 2*p}

	legendY := g.GridTop + g.GridHeight + s.GridToLegend
	for i, entry := range []struct {
		caption string
		sold    bool
	}{{s.AvailableCaption, false}, {s.SoldCaption, true}} {
		x := g.GridLeft + float64(i)*s.LegendSpacing
		g.Legend = append(g.Legend, Swatch{
			Box:     Rect{X: x, Y: legendY, W: s.SwatchSize, H: s.SwatchSize},
			TextPos: Point{X: x + s.SwatchTextOffset, Y: legendY - s.LegendTextRaise},
			Caption: entry.caption,
			Sold:    entry.sold,
		})
	}

	if bottom := g.Bottom(); bottom > s.CanvasHeight {
		return Geometry{}, fmt.Errorf("%w: layout needs height %.0f, canvas is %g",
			ErrDegenerateCanvas, bottom, s.CanvasHeight)
	}
	return g, nil
}
