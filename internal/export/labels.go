package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/RifaBoard/internal/model"
)

// TicketInfo holds the data encoded into each ticket stub's QR code.
type TicketInfo struct {
	Raffle string `json:"raffle"`
	Number string `json:"number"`
	Sold   bool   `json:"sold"`
	Link   string `json:"link,omitempty"`
}

// Ticket layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// TicketFilter selects which slots get a ticket stub.
type TicketFilter int

const (
	TicketsAll TicketFilter = iota
	TicketsAvailable
	TicketsSold
)

// CollectTickets lists the ticket stubs for a board in slot order.
func CollectTickets(b *model.Board, shareURL string, filter TicketFilter) []TicketInfo {
	if b == nil {
		return nil
	}
	var tickets []TicketInfo
	for _, slot := range b.Slots() {
		sold := slot.State == model.Sold
		if (filter == TicketsAvailable && sold) || (filter == TicketsSold && !sold) {
			continue
		}
		tickets = append(tickets, TicketInfo{
			Raffle: b.Title,
			Number: slot.Label,
			Sold:   sold,
			Link:   shareURL,
		})
	}
	return tickets
}

// ExportTickets generates a PDF of QR-coded ticket stubs, one per selected
// slot, laid out on a standard label sheet (Avery 5160 / 3 columns x 10 rows
// on US Letter). Each QR code carries the ticket as JSON.
func ExportTickets(path string, b *model.Board, shareURL string, filter TicketFilter) error {
	tickets := CollectTickets(b, shareURL, filter)
	if len(tickets) == 0 {
		return fmt.Errorf("no tickets to generate")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, ticket := range tickets {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderTicket(pdf, x, y, ticket); err != nil {
			return fmt.Errorf("failed to render ticket %s: %w", ticket.Number, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderTicket draws a single ticket stub at the given position.
func renderTicket(pdf *fpdf.Fpdf, x, y float64, info TicketInfo) error {
	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := "qr_" + info.Number
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Ticket number, large
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 9, info.Number, "", 1, "L", false, 0, "")

	// Raffle title, truncated to fit
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+10)
	title := pdf.UnicodeTranslatorFromDescriptor("")(info.Raffle)
	if pdf.GetStringWidth(title) > textW {
		for len(title) > 0 && pdf.GetStringWidth(title+"...") > textW {
			title = title[:len(title)-1]
		}
		title += "..."
	}
	pdf.CellFormat(textW, 3.5, title, "", 1, "L", false, 0, "")

	if info.Sold {
		pdf.SetXY(textX, y+labelPadding+15)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(230, 57, 70)
		pdf.CellFormat(textW, 3, "SOLD", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// ShareQR returns a PNG QR code for a share link.
func ShareQR(link string, size int) ([]byte, error) {
	if link == "" {
		return nil, fmt.Errorf("empty share link")
	}
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// WriteShareQR writes the share link QR code to path.
func WriteShareQR(path, link string, size int) error {
	if link == "" {
		return fmt.Errorf("empty share link")
	}
	if size <= 0 {
		size = 256
	}
	if err := qrcode.WriteFile(link, qrcode.Medium, size, path); err != nil {
		return fmt.Errorf("failed to write QR code: %w", err)
	}
	return nil
}
