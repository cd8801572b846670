package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	b := NewBoard("")
	b.MarkRange(0, 24, Sold)

	s := Summarize(b, 2.5)
	assert.Equal(t, 25, s.Sold)
	assert.Equal(t, 75, s.Available)
	assert.InDelta(t, 25.0, s.PercentSold, 0.0001)
	assert.InDelta(t, 62.5, s.Collected, 0.0001)
	assert.InDelta(t, 187.5, s.Outstanding, 0.0001)
	assert.InDelta(t, 250.0, s.PotentialTotal, 0.0001)
}

func TestSummarizeInvalidPrice(t *testing.T) {
	b := NewBoard("")
	b.MarkRange(0, 9, Sold)

	for _, price := range []float64{-3, math.NaN()} {
		s := Summarize(b, price)
		assert.Equal(t, 0.0, s.TicketPrice)
		assert.Equal(t, 0.0, s.Collected)
		assert.Equal(t, 10, s.Sold)
	}
}
