// Package export writes a board to printable and shareable formats:
// a PDF poster with a sales summary, QR-coded ticket stubs, an XLSX sales
// sheet and a DXF drawing of the grid.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/RifaBoard/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
)

// PosterDocument is everything the PDF export prints.
type PosterDocument struct {
	Title    string
	Brand    string
	PNG      []byte // rendered poster
	Board    *model.Board
	Summary  model.SalesSummary
	Currency string
	ShareURL string
}

// ExportPDF writes the poster document to path.
func ExportPDF(path string, doc PosterDocument) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create pdf: %w", err)
	}
	if err := WritePDF(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WritePDF renders the poster image on the first page and a sales summary
// with the sold number list on the second.
func WritePDF(w io.Writer, doc PosterDocument) error {
	if len(doc.PNG) == 0 {
		return fmt.Errorf("no poster image to export")
	}
	if doc.Board == nil {
		return fmt.Errorf("no board to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(doc.Title, true)

	pdf.AddPage()
	renderPosterPage(pdf, doc)

	pdf.AddPage()
	renderSummaryPage(pdf, doc)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// renderPosterPage scales the poster to fit the printable area, centered.
func renderPosterPage(pdf *fpdf.Fpdf, doc PosterDocument) {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	info := pdf.RegisterImageOptionsReader("poster", opts, bytes.NewReader(doc.PNG))
	if info == nil || pdf.Err() {
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - marginTop - marginBottom
	imgW, imgH := info.Width(), info.Height()

	scale := drawWidth / imgW
	if imgH*scale > drawHeight {
		scale = drawHeight / imgH
	}
	w, h := imgW*scale, imgH*scale
	x := marginLeft + (drawWidth-w)/2
	pdf.ImageOptions("poster", x, marginTop, w, h, false, opts, 0, "")
}

type summaryItem struct {
	label string
	value string
}

func renderSummaryPage(pdf *fpdf.Fpdf, doc PosterDocument) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, pdf.UnicodeTranslatorFromDescriptor("")(doc.Title), "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sales", "", 0, "L", false, 0, "")
	y += 9

	s := doc.Summary
	summaryItems := []summaryItem{
		{"Sold", fmt.Sprintf("%d of %d", s.Sold, model.SlotCount)},
		{"Available", fmt.Sprintf("%d", s.Available)},
		{"Progress", fmt.Sprintf("%.0f%%", s.PercentSold)},
	}
	if s.TicketPrice > 0 {
		summaryItems = append(summaryItems,
			summaryItem{"Ticket price", formatMoney(doc.Currency, s.TicketPrice)},
			summaryItem{"Collected", formatMoney(doc.Currency, s.Collected)},
			summaryItem{"Outstanding", formatMoney(doc.Currency, s.Outstanding)},
		)
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Number table", "", 0, "L", false, 0, "")
	y += 9

	renderNumberTable(pdf, doc.Board, marginLeft, y)
	y += float64(model.SlotCount/model.GridColumns)*tableCell + 8

	sold := doc.Board.SoldLabels().Sorted()
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 6, fmt.Sprintf("Sold numbers (%d)", len(sold)), "", 0, "L", false, 0, "")
	y += 7
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, y)
	list := strings.Join(sold, ", ")
	if list == "" {
		list = "None sold yet"
	}
	pdf.MultiCell(pageWidth-marginLeft-marginRight, 5, list, "", "L", false)

	if doc.ShareURL != "" {
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 200)
		pdf.SetXY(marginLeft, pageHeight-marginBottom-10)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, doc.ShareURL, "", 0, "L", false, 0, doc.ShareURL)
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	footer := "Generated by RifaBoard"
	if doc.Brand != "" {
		footer = doc.Brand + " - " + footer
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, pdf.UnicodeTranslatorFromDescriptor("")(footer), "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

const tableCell = 9.0 // mm per number cell in the summary table

// renderNumberTable draws the 10x10 grid as a compact table, sold cells shaded.
func renderNumberTable(pdf *fpdf.Fpdf, b *model.Board, x, y float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.2)
	for _, slot := range b.Slots() {
		cx := x + float64(slot.Column())*tableCell
		cy := y + float64(slot.Row())*tableCell
		if slot.State == model.Sold {
			pdf.SetFillColor(230, 57, 70)
			pdf.SetTextColor(255, 255, 255)
		} else {
			pdf.SetFillColor(245, 245, 245)
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.SetXY(cx, cy)
		pdf.CellFormat(tableCell, tableCell, slot.Label, "1", 0, "C", true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

func formatMoney(currency string, v float64) string {
	return fmt.Sprintf("%s%.2f", currency, v)
}
