package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/RifaBoard/internal/layout"
	"github.com/piwi3910/RifaBoard/internal/model"
)

// DXF layer names. Cells go on the layer of their state so a plotter or
// cutter can handle sold and available numbers separately.
const (
	LayerGuide     = "GUIDE"
	LayerAvailable = "AVAILABLE"
	LayerSold      = "SOLD"
	LayerLabels    = "LABELS"
)

// ExportDXF writes the board grid as a DXF drawing in poster pixel units.
// DXF's Y axis points up, so y is flipped against canvasHeight.
func ExportDXF(path string, b *model.Board, geo layout.Geometry, canvasHeight float64) error {
	if b == nil {
		return fmt.Errorf("no board to export")
	}
	if len(geo.Cells) == 0 {
		return fmt.Errorf("no grid geometry to export")
	}

	d := dxf.NewDrawing()
	for _, l := range []struct {
		name string
		cl   color.ColorNumber
	}{
		{LayerGuide, color.White},
		{LayerAvailable, color.Cyan},
		{LayerSold, color.Red},
		{LayerLabels, color.White},
	} {
		if _, err := d.AddLayer(l.name, l.cl, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	flip := func(y float64) float64 { return canvasHeight - y }

	if err := d.ChangeLayer(LayerGuide); err != nil {
		return err
	}
	if err := rectLines(d, geo.Guide, flip); err != nil {
		return err
	}

	for _, slot := range b.Slots() {
		layer := LayerAvailable
		if slot.State == model.Sold {
			layer = LayerSold
		}
		if err := d.ChangeLayer(layer); err != nil {
			return err
		}
		cell := geo.CellAt(slot.Number)
		if err := rectLines(d, cell, flip); err != nil {
			return fmt.Errorf("failed to draw slot %s: %w", slot.Label, err)
		}
	}

	if err := d.ChangeLayer(LayerLabels); err != nil {
		return err
	}
	for _, slot := range b.Slots() {
		cell := geo.CellAt(slot.Number)
		height := cell.H / 3
		c := cell.Center()
		if _, err := d.Text(slot.Label, c.X-height/2, flip(c.Y)-height/2, 0, height); err != nil {
			return fmt.Errorf("failed to label slot %s: %w", slot.Label, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save dxf: %w", err)
	}
	return nil
}

// rectLines draws r as four LINE entities.
func rectLines(d *drawing.Drawing, r layout.Rect, flip func(float64) float64) error {
	x0, x1 := r.X, r.MaxX()
	y0, y1 := flip(r.Y), flip(r.MaxY())
	edges := [4][4]float64{
		{x0, y0, x1, y0},
		{x1, y0, x1, y1},
		{x1, y1, x0, y1},
		{x0, y1, x0, y0},
	}
	for _, e := range edges {
		if _, err := d.Line(e[0], e[1], 0, e[2], e[3], 0); err != nil {
			return err
		}
	}
	return nil
}
