package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RifaBoard/internal/model"
)

// Sheet names used by ExportXLSX. The numbers sheet comes first so the
// importer reads it back.
const (
	NumbersSheet = "Numbers"
	SummarySheet = "Summary"
)

// ExportXLSX writes a workbook with one row per slot (number and status)
// and a summary sheet with the sales figures.
func ExportXLSX(path string, b *model.Board, summary model.SalesSummary, currency string) error {
	if b == nil {
		return fmt.Errorf("no board to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), NumbersSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := writeNumbersSheet(f, b); err != nil {
		return err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, b, summary, currency); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeNumbersSheet(f *excelize.File, b *model.Board) error {
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	sold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E63946"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := f.SetSheetRow(NumbersSheet, "A1", &[]interface{}{"Number", "Status"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(NumbersSheet, "A1", "B1", header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for _, slot := range b.Slots() {
		row := slot.Number + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		// Numbers are written as text so "07" keeps its leading zero.
		if err := f.SetSheetRow(NumbersSheet, cell, &[]interface{}{slot.Label, slot.State.String()}); err != nil {
			return fmt.Errorf("failed to write slot %s: %w", slot.Label, err)
		}
		if slot.State == model.Sold {
			end, err := excelize.CoordinatesToCellName(2, row)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(NumbersSheet, cell, end, sold); err != nil {
				return fmt.Errorf("failed to style slot %s: %w", slot.Label, err)
			}
		}
	}
	return f.SetColWidth(NumbersSheet, "A", "B", 14)
}

func writeSummarySheet(f *excelize.File, b *model.Board, s model.SalesSummary, currency string) error {
	rows := [][]interface{}{
		{"Raffle", b.Title},
		{"Sold", s.Sold},
		{"Available", s.Available},
		{"Percent sold", s.PercentSold},
		{"Ticket price", s.TicketPrice},
		{"Collected", s.Collected},
		{"Outstanding", s.Outstanding},
		{"Potential total", s.PotentialTotal},
		{"Currency", currency},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return f.SetColWidth(SummarySheet, "A", "A", 18)
}
