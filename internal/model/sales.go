package model

import "math"

// SalesSummary holds the totals shown next to the board.
type SalesSummary struct {
	Sold           int     `json:"sold"`
	Available      int     `json:"available"`
	PercentSold    float64 `json:"percent_sold"`
	TicketPrice    float64 `json:"ticket_price"`
	Collected      float64 `json:"collected"`       // Sold * TicketPrice
	Outstanding    float64 `json:"outstanding"`     // Available * TicketPrice
	PotentialTotal float64 `json:"potential_total"` // SlotCount * TicketPrice
}

// Summarize computes sale totals for a board at the given ticket price.
// Negative or NaN prices are treated as zero.
func Summarize(b *Board, ticketPrice float64) SalesSummary {
	if ticketPrice < 0 || math.IsNaN(ticketPrice) {
		ticketPrice = 0
	}
	sold := b.SoldCount()
	available := SlotCount - sold
	return SalesSummary{
		Sold:           sold,
		Available:      available,
		PercentSold:    float64(sold) / SlotCount * 100.0,
		TicketPrice:    ticketPrice,
		Collected:      float64(sold) * ticketPrice,
		Outstanding:    float64(available) * ticketPrice,
		PotentialTotal: SlotCount * ticketPrice,
	}
}
