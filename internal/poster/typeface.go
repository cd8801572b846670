package poster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/piwi3910/RifaBoard/internal/layout"
)

// typeface measures and draws text at a pixel size. Positions are the
// top-left corner of the text box.
type typeface interface {
	layout.TextMeasurer
	LineHeight(size float64) float64
	Draw(dst draw.Image, text string, size, x, y float64, c color.Color)
}

// outlineFace draws with a parsed TrueType/OpenType font.
type outlineFace struct {
	font *opentype.Font
}

func (o outlineFace) face(size float64) (font.Face, error) {
	return opentype.NewFace(o.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// MeasureText implements layout.TextMeasurer.
func (o outlineFace) MeasureText(text string, size float64) float64 {
	f, err := o.face(size)
	if err != nil {
		return bitmapFace{}.MeasureText(text, size)
	}
	defer f.Close()
	return fixedToFloat64(font.MeasureString(f, text))
}

func (o outlineFace) LineHeight(size float64) float64 {
	f, err := o.face(size)
	if err != nil {
		return bitmapFace{}.LineHeight(size)
	}
	defer f.Close()
	m := f.Metrics()
	return fixedToFloat64(m.Ascent + m.Descent)
}

func (o outlineFace) Draw(dst draw.Image, text string, size, x, y float64, c color.Color) {
	f, err := o.face(size)
	if err != nil {
		bitmapFace{}.Draw(dst, text, size, x, y, c)
		return
	}
	defer f.Close()
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: f,
		Dot: fixed.Point26_6{
			X: floatToFixed(x),
			Y: floatToFixed(y) + f.Metrics().Ascent,
		},
	}
	d.DrawString(text)
}

// bitmapFace is the no-font fallback. Width follows the fixed per-character
// estimate; glyphs come from the built-in 7x13 face scaled to that width.
type bitmapFace struct {
	charWidth float64
}

const (
	bitmapGlyphWidth  = 7
	bitmapGlyphHeight = 13
	bitmapAscent      = 11
)

func (b bitmapFace) width() float64 {
	if b.charWidth <= 0 {
		return layout.DefaultCharWidth
	}
	return b.charWidth
}

// MeasureText implements layout.TextMeasurer.
func (b bitmapFace) MeasureText(text string, size float64) float64 {
	return layout.EstimateMeasurer{CharWidth: b.width()}.MeasureText(text, size)
}

func (b bitmapFace) LineHeight(float64) float64 {
	return math.Round(bitmapGlyphHeight * b.width() / bitmapGlyphWidth)
}

func (b bitmapFace) Draw(dst draw.Image, text string, size, x, y float64, c color.Color) {
	n := len([]rune(text))
	if n == 0 {
		return
	}
	mask := image.NewAlpha(image.Rect(0, 0, n*bitmapGlyphWidth, bitmapGlyphHeight))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(0, bitmapAscent),
	}
	d.DrawString(text)

	w := int(math.Round(b.MeasureText(text, size)))
	h := int(b.LineHeight(size))
	scaled := image.NewAlpha(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), mask, mask.Bounds(), xdraw.Src, nil)

	at := image.Pt(int(math.Round(x)), int(math.Round(y)))
	draw.DrawMask(dst, scaled.Bounds().Add(at), image.NewUniform(c), image.Point{}, scaled, image.Point{}, draw.Over)
}

func fixedToFloat64(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
