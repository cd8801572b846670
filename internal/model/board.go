package model

import (
	"errors"
	"fmt"
	"strconv"
)

// SlotCount is the fixed number of slots on a board.
const SlotCount = 100

// GridColumns is the number of slots per board row.
const GridColumns = 10

// ErrInvalidLabel is returned when a mutation names a label outside "00".."99".
var ErrInvalidLabel = errors.New("invalid slot label")

// SlotState is the sale state of a single slot.
type SlotState int

const (
	Available SlotState = iota // Not yet sold
	Sold                       // Sold to a buyer
)

func (s SlotState) String() string {
	switch s {
	case Sold:
		return "Sold"
	default:
		return "Available"
	}
}

// Slot is a read-only view of one board position.
type Slot struct {
	Number int       `json:"number"`
	Label  string    `json:"label"`
	State  SlotState `json:"state"`
}

// Row returns the grid row of the slot (number div 10).
func (s Slot) Row() int { return s.Number / GridColumns }

// Column returns the grid column of the slot (number mod 10).
func (s Slot) Column() int { return s.Number % GridColumns }

// Label formats a slot number as its canonical 2-digit label.
func Label(n int) string {
	return fmt.Sprintf("%02d", n)
}

// ParseLabel returns the slot number of a canonical label.
// Only the exact forms "00".."99" are accepted.
func ParseLabel(label string) (int, bool) {
	if len(label) != 2 || !isDigits(label) {
		return 0, false
	}
	n, err := strconv.Atoi(label)
	if err != nil {
		return 0, false
	}
	return n, true
}

// AllLabels returns the 100 canonical labels in ascending order.
func AllLabels() []string {
	labels := make([]string, SlotCount)
	for i := range labels {
		labels[i] = Label(i)
	}
	return labels
}

// Board holds the sale state of all 100 slots plus the raffle title.
// The slot array is fixed size, so no operation can add or drop a slot.
// A Board is owned by a single caller and is not safe for concurrent mutation.
type Board struct {
	Title string
	slots [SlotCount]SlotState
}

// NewBoard creates a board with every slot available.
func NewBoard(title string) *Board {
	return &Board{Title: title}
}

// Mark sets the state of a single slot.
func (b *Board) Mark(label string, state SlotState) error {
	n, ok := ParseLabel(label)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	b.slots[n] = normalizeState(state)
	return nil
}

// MarkRange sets every slot numbered first..last (inclusive) to state.
// Bounds are clamped to 0..99; an empty range after clamping is a no-op.
func (b *Board) MarkRange(first, last int, state SlotState) {
	if first < 0 {
		first = 0
	}
	if last > SlotCount-1 {
		last = SlotCount - 1
	}
	state = normalizeState(state)
	for n := first; n <= last; n++ {
		b.slots[n] = state
	}
}

// MarkLabels sets every canonical label in the set to state.
// Non-canonical entries are skipped.
func (b *Board) MarkLabels(labels LabelSet, state SlotState) int {
	state = normalizeState(state)
	changed := 0
	for label := range labels {
		n, ok := ParseLabel(label)
		if !ok {
			continue
		}
		if b.slots[n] != state {
			changed++
		}
		b.slots[n] = state
	}
	return changed
}

// Toggle flips a slot between Available and Sold.
func (b *Board) Toggle(label string) error {
	n, ok := ParseLabel(label)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLabel, label)
	}
	if b.slots[n] == Sold {
		b.slots[n] = Available
	} else {
		b.slots[n] = Sold
	}
	return nil
}

// Reset marks every slot available. The title is kept.
func (b *Board) Reset() {
	b.slots = [SlotCount]SlotState{}
}

// State returns the state of a slot and whether the label is valid.
func (b *Board) State(label string) (SlotState, bool) {
	n, ok := ParseLabel(label)
	if !ok {
		return Available, false
	}
	return b.slots[n], true
}

// IsSold reports whether slot n is sold. Out-of-range numbers are never sold.
func (b *Board) IsSold(n int) bool {
	if n < 0 || n >= SlotCount {
		return false
	}
	return b.slots[n] == Sold
}

// SoldCount returns the number of sold slots.
func (b *Board) SoldCount() int {
	count := 0
	for _, s := range b.slots {
		if s == Sold {
			count++
		}
	}
	return count
}

// SoldLabels returns the canonical labels of all sold slots.
func (b *Board) SoldLabels() LabelSet {
	return b.labelsIn(Sold)
}

// AvailableLabels returns the canonical labels of all unsold slots.
func (b *Board) AvailableLabels() LabelSet {
	return b.labelsIn(Available)
}

func (b *Board) labelsIn(state SlotState) LabelSet {
	set := LabelSet{}
	for n, s := range b.slots {
		if s == state {
			set[Label(n)] = struct{}{}
		}
	}
	return set
}

// Slots returns a row-major snapshot of all 100 slots.
func (b *Board) Slots() []Slot {
	out := make([]Slot, SlotCount)
	for n, s := range b.slots {
		out[n] = Slot{Number: n, Label: Label(n), State: s}
	}
	return out
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// Encode returns the persisted form of the board.
func (b *Board) Encode() EncodedState {
	return EncodedState{
		Title: b.Title,
		Sold:  EncodeSold(b.SoldLabels()),
	}
}

// normalizeState maps unknown states to Available so the board only ever
// holds the two defined values.
func normalizeState(s SlotState) SlotState {
	if s == Sold {
		return Sold
	}
	return Available
}
