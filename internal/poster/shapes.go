package poster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/piwi3910/RifaBoard/internal/layout"
)

// kappa places cubic control points so a quarter curve approximates a circle.
const kappa = 0.5522847498

// roundedRectPath appends a closed rounded rectangle to z. Coordinates are
// relative to origin. Reverse winding lets a second path cut a hole.
func roundedRectPath(z *vector.Rasterizer, r layout.Rect, origin image.Point, radius float64, reverse bool) {
	radius = math.Max(0, math.Min(radius, math.Min(r.W, r.H)/2))
	x0 := float32(r.X - float64(origin.X))
	y0 := float32(r.Y - float64(origin.Y))
	x1 := x0 + float32(r.W)
	y1 := y0 + float32(r.H)
	rad := float32(radius)
	k := float32(radius * kappa)

	if !reverse {
		z.MoveTo(x0+rad, y0)
		z.LineTo(x1-rad, y0)
		z.CubeTo(x1-rad+k, y0, x1, y0+rad-k, x1, y0+rad)
		z.LineTo(x1, y1-rad)
		z.CubeTo(x1, y1-rad+k, x1-rad+k, y1, x1-rad, y1)
		z.LineTo(x0+rad, y1)
		z.CubeTo(x0+rad-k, y1, x0, y1-rad+k, x0, y1-rad)
		z.LineTo(x0, y0+rad)
		z.CubeTo(x0, y0+rad-k, x0+rad-k, y0, x0+rad, y0)
		z.ClosePath()
		return
	}
	z.MoveTo(x0+rad, y0)
	z.CubeTo(x0+rad-k, y0, x0, y0+rad-k, x0, y0+rad)
	z.LineTo(x0, y1-rad)
	z.CubeTo(x0, y1-rad+k, x0+rad-k, y1, x0+rad, y1)
	z.LineTo(x1-rad, y1)
	z.CubeTo(x1-rad+k, y1, x1, y1-rad+k, x1, y1-rad)
	z.LineTo(x1, y0+rad)
	z.CubeTo(x1, y0+rad-k, x1-rad+k, y0, x1-rad, y0)
	z.ClosePath()
}

// bounds returns the integer pixel box covering r.
func bounds(r layout.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.MaxX())), int(math.Ceil(r.MaxY())),
	)
}

func inset(r layout.Rect, d float64) layout.Rect {
	return layout.Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// fillRoundedRect paints a filled rounded rectangle.
func fillRoundedRect(dst draw.Image, r layout.Rect, radius float64, c color.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	box := bounds(r)
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	roundedRectPath(z, r, box.Min, radius, false)
	drawMasked(dst, z, box, c)
}

// strokeRoundedRect paints only the outline of a rounded rectangle, with
// the stroke lying inside r.
func strokeRoundedRect(dst draw.Image, r layout.Rect, radius, width float64, c color.Color) {
	if r.W <= 0 || r.H <= 0 || width <= 0 {
		return
	}
	box := bounds(r)
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	roundedRectPath(z, r, box.Min, radius, false)
	if hole := inset(r, width); hole.W > 0 && hole.H > 0 {
		roundedRectPath(z, hole, box.Min, radius-width, true)
	}
	drawMasked(dst, z, box, c)
}

// outlinedRoundedRect paints a filled rounded rectangle with an inner outline.
func outlinedRoundedRect(dst draw.Image, r layout.Rect, radius, width float64, fill, outline color.Color) {
	if width <= 0 {
		fillRoundedRect(dst, r, radius, fill)
		return
	}
	fillRoundedRect(dst, r, radius, outline)
	fillRoundedRect(dst, inset(r, width), radius-width, fill)
}

// drawMasked rasterizes z into a coverage mask first so that image/draw
// clips shapes that overhang the canvas.
func drawMasked(dst draw.Image, z *vector.Rasterizer, box image.Rectangle, c color.Color) {
	mask := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(dst, box, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}
