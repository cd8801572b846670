// Package poster renders a board as a fixed-size PNG poster: background,
// optional logo, auto-fitted title, the 10x10 slot grid and a legend.
//
// Rendering is a pure function of the board, the title and the renderer's
// configuration and assets. Missing fonts or logo degrade the output, they
// never fail it.
package poster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/piwi3910/RifaBoard/internal/layout"
	"github.com/piwi3910/RifaBoard/internal/model"
)

// Palette holds the poster colors.
type Palette struct {
	Available color.NRGBA
	Sold      color.NRGBA
	Outline   color.NRGBA
	TextDark  color.NRGBA
	TextLight color.NRGBA
}

// Config controls the poster geometry and styling.
type Config struct {
	// Layout is the base layout; Title and LogoHeight are set per render.
	Layout layout.Spec
	Colors Palette

	LogoMaxWidth int

	CellRadius     float64
	CellOutline    float64
	GuideRadius    float64
	GuideWidth     float64
	SwatchRadius   float64
	SwatchOutline  float64
	LabelFontSize  float64
	LegendFontSize float64
}

var black = color.NRGBA{A: 0xff}

// DefaultConfig returns the 1080x1580 parakeet-blue poster.
func DefaultConfig() Config {
	return Config{
		Layout: layout.DefaultSpec(""),
		Colors: Palette{
			Available: color.NRGBA{R: 107, G: 182, B: 224, A: 0xff},
			Sold:      color.NRGBA{R: 230, G: 57, B: 70, A: 0xff},
			Outline:   black,
			TextDark:  black,
			TextLight: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		},
		LogoMaxWidth:   240,
		CellRadius:     20,
		CellOutline:    2,
		GuideRadius:    18,
		GuideWidth:     4,
		SwatchRadius:   6,
		SwatchOutline:  2,
		LabelFontSize:  48,
		LegendFontSize: 34,
	}
}

// ConfigFromApp builds a renderer config from the application settings.
func ConfigFromApp(app model.AppConfig) (Config, error) {
	cfg := DefaultConfig()
	if app.CanvasWidth > 0 {
		cfg.Layout.CanvasWidth = float64(app.CanvasWidth)
	}
	if app.CanvasHeight > 0 {
		cfg.Layout.CanvasHeight = float64(app.CanvasHeight)
	}
	for _, c := range []struct {
		hex string
		dst *color.NRGBA
	}{
		{app.AvailableColor, &cfg.Colors.Available},
		{app.SoldColor, &cfg.Colors.Sold},
		{app.TextDarkColor, &cfg.Colors.TextDark},
		{app.TextLightColor, &cfg.Colors.TextLight},
	} {
		if c.hex == "" {
			continue
		}
		v, err := model.ParseHexColor(c.hex)
		if err != nil {
			return Config{}, err
		}
		*c.dst = v
	}
	return cfg, nil
}

// Renderer draws posters. It holds only immutable data after New, so one
// Renderer may serve concurrent Render calls.
type Renderer struct {
	cfg     Config
	logo    image.Image // pre-scaled, nil when absent
	regular typeface
	bold    typeface
}

// New validates cfg and prepares the assets. The logo is scaled once here.
func New(cfg Config, assets Assets) (*Renderer, error) {
	if cfg.Layout.CanvasWidth != math.Trunc(cfg.Layout.CanvasWidth) || cfg.Layout.CanvasHeight != math.Trunc(cfg.Layout.CanvasHeight) {
		return nil, fmt.Errorf("%w: canvas size must be whole pixels", layout.ErrDegenerateCanvas)
	}
	r := &Renderer{cfg: cfg}
	r.regular, r.bold = assets.typefaces()
	if assets.Logo != nil {
		r.logo = scaleLogo(assets.Logo, cfg.LogoMaxWidth)
	}
	if _, err := layout.Compute(r.spec(""), r.bold); err != nil {
		return nil, err
	}
	return r, nil
}

// Size returns the canvas size in pixels.
func (r *Renderer) Size() (width, height int) {
	return int(r.cfg.Layout.CanvasWidth), int(r.cfg.Layout.CanvasHeight)
}

// Layout returns the geometry a render of title would use.
func (r *Renderer) Layout(title string) (layout.Geometry, error) {
	return layout.Compute(r.spec(title), r.bold)
}

func (r *Renderer) spec(title string) layout.Spec {
	s := r.cfg.Layout
	s.Title = title
	s.LogoHeight = 0
	if r.logo != nil {
		s.LogoHeight = float64(r.logo.Bounds().Dy())
	}
	return s
}

// Render draws the board and returns PNG bytes. A nil board renders as
// all available.
func (r *Renderer) Render(b *model.Board, title string) ([]byte, error) {
	img, err := r.RenderImage(b, title)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode poster png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderImage draws the board onto a fresh canvas.
func (r *Renderer) RenderImage(b *model.Board, title string) (*image.RGBA, error) {
	if b == nil {
		b = model.NewBoard(title)
	}
	geo, err := r.Layout(title)
	if err != nil {
		return nil, err
	}
	w, h := r.Size()
	c := r.cfg.Colors
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	draw.Draw(img, img.Bounds(), image.NewUniform(c.Available), image.Point{}, draw.Src)

	if r.logo != nil {
		lb := r.logo.Bounds()
		at := image.Pt((w-lb.Dx())/2, int(r.cfg.Layout.LogoTop))
		draw.Draw(img, lb.Sub(lb.Min).Add(at), r.logo, lb.Min, draw.Over)
	}

	Logger().Debug("poster layout", "title_size", geo.TitleSize, "title_width", geo.TitleWidth, "cell", geo.CellSize)
	r.bold.Draw(img, title, geo.TitleSize, geo.TitlePos.X, geo.TitlePos.Y, c.TextDark)

	strokeRoundedRect(img, geo.Guide, r.cfg.GuideRadius, r.cfg.GuideWidth, c.Outline)

	for _, slot := range b.Slots() {
		cell := pixelRect(geo.CellAt(slot.Number))
		fill, text := c.Available, c.TextDark
		if slot.State == model.Sold {
			fill, text = c.Sold, c.TextLight
		}
		outlinedRoundedRect(img, cell, r.cfg.CellRadius, r.cfg.CellOutline, fill, c.Outline)
		r.drawCentered(img, r.bold, slot.Label, r.cfg.LabelFontSize, cell, text)
	}

	for _, sw := range geo.Legend {
		fill := c.Available
		if sw.Sold {
			fill = c.Sold
		}
		outlinedRoundedRect(img, pixelRect(sw.Box), r.cfg.SwatchRadius, r.cfg.SwatchOutline, fill, c.Outline)
		r.regular.Draw(img, sw.Caption, r.cfg.LegendFontSize, sw.TextPos.X, sw.TextPos.Y, c.TextDark)
	}

	return img, nil
}

func (r *Renderer) drawCentered(dst draw.Image, tf typeface, text string, size float64, box layout.Rect, c color.Color) {
	tw := tf.MeasureText(text, size)
	th := tf.LineHeight(size)
	x := math.Floor(box.X + (box.W-tw)/2)
	y := math.Floor(box.Y + (box.H-th)/2)
	tf.Draw(dst, text, size, x, y, c)
}

// pixelRect snaps a layout rectangle to whole pixels the way the cells are
// addressed: truncated origin, truncated far edge.
func pixelRect(r layout.Rect) layout.Rect {
	x0, y0 := math.Trunc(r.X), math.Trunc(r.Y)
	x1, y1 := math.Trunc(r.X+r.W), math.Trunc(r.Y+r.H)
	return layout.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// scaleLogo resizes the logo to maxWidth keeping its aspect ratio.
func scaleLogo(src image.Image, maxWidth int) image.Image {
	sb := src.Bounds()
	if maxWidth <= 0 || sb.Dx() == 0 || sb.Dy() == 0 {
		return nil
	}
	ratio := float64(maxWidth) / float64(sb.Dx())
	w := int(float64(sb.Dx()) * ratio)
	h := int(float64(sb.Dy()) * ratio)
	if w <= 0 || h <= 0 {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)
	Logger().Debug("logo scaled", "width", w, "height", h)
	return dst
}
