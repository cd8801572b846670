package model

import (
	"errors"
	"math/rand"
	"testing"
)

func assertBoardInvariant(t *testing.T, b *Board) {
	t.Helper()
	slots := b.Slots()
	if len(slots) != SlotCount {
		t.Fatalf("expected %d slots, got %d", SlotCount, len(slots))
	}
	for i, s := range slots {
		if s.Label != Label(i) {
			t.Fatalf("slot %d has label %q", i, s.Label)
		}
		if s.State != Available && s.State != Sold {
			t.Fatalf("slot %s has unknown state %d", s.Label, s.State)
		}
	}
	if got := len(b.SoldLabels()) + len(b.AvailableLabels()); got != SlotCount {
		t.Fatalf("sold+available = %d, want %d", got, SlotCount)
	}
}

func TestNewBoardAllAvailable(t *testing.T) {
	b := NewBoard("Test")
	if b.SoldCount() != 0 {
		t.Errorf("expected 0 sold, got %d", b.SoldCount())
	}
	if b.Title != "Test" {
		t.Errorf("expected title Test, got %q", b.Title)
	}
	assertBoardInvariant(t, b)
}

func TestLabelAndParseLabel(t *testing.T) {
	if Label(7) != "07" || Label(42) != "42" {
		t.Errorf("unexpected labels %q %q", Label(7), Label(42))
	}
	for _, bad := range []string{"", "7", "100", "-1", "+1", " 1", "ab", "1a"} {
		if _, ok := ParseLabel(bad); ok {
			t.Errorf("ParseLabel(%q) should fail", bad)
		}
	}
	if n, ok := ParseLabel("09"); !ok || n != 9 {
		t.Errorf("ParseLabel(09) = %d, %v", n, ok)
	}
	if len(AllLabels()) != SlotCount {
		t.Errorf("expected %d labels", SlotCount)
	}
}

func TestMarkAndToggle(t *testing.T) {
	b := NewBoard("")
	if err := b.Mark("17", Sold); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, _ := b.State("17"); s != Sold {
		t.Errorf("expected 17 sold, got %v", s)
	}

	if err := b.Toggle("17"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.IsSold(17) {
		t.Error("expected 17 available after toggle")
	}

	if err := b.Toggle("03"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.IsSold(3) {
		t.Error("expected 03 sold after toggle")
	}
}

func TestMarkRejectsInvalidLabel(t *testing.T) {
	b := NewBoard("")
	for _, label := range []string{"100", "3", "x1", ""} {
		if err := b.Mark(label, Sold); !errors.Is(err, ErrInvalidLabel) {
			t.Errorf("Mark(%q) error = %v, want ErrInvalidLabel", label, err)
		}
		if err := b.Toggle(label); !errors.Is(err, ErrInvalidLabel) {
			t.Errorf("Toggle(%q) error = %v, want ErrInvalidLabel", label, err)
		}
	}
	if b.SoldCount() != 0 {
		t.Errorf("invalid marks must not change the board, sold=%d", b.SoldCount())
	}
	assertBoardInvariant(t, b)
}

func TestMarkRangeDecade(t *testing.T) {
	b := NewBoard("")
	b.MarkRange(10, 19, Sold)

	want := NewLabelSet("10", "11", "12", "13", "14", "15", "16", "17", "18", "19")
	got := b.SoldLabels()
	if len(got) != len(want) {
		t.Fatalf("expected %d sold, got %d", len(want), len(got))
	}
	for l := range want {
		if !got.Has(l) {
			t.Errorf("missing %s", l)
		}
	}
}

func TestMarkRangeClamps(t *testing.T) {
	b := NewBoard("")
	b.MarkRange(-20, 2, Sold)
	b.MarkRange(97, 400, Sold)
	if got := EncodeSold(b.SoldLabels()); got != "00,01,02,97,98,99" {
		t.Errorf("unexpected sold set %q", got)
	}

	b.MarkRange(50, 40, Sold)
	b.MarkRange(150, 200, Sold)
	b.MarkRange(-9, -1, Sold)
	if b.SoldCount() != 6 {
		t.Errorf("empty ranges must be no-ops, sold=%d", b.SoldCount())
	}

	b.MarkRange(0, 99, Available)
	if b.SoldCount() != 0 {
		t.Errorf("expected all available, sold=%d", b.SoldCount())
	}
}

func TestMarkLabelsSkipsNonCanonical(t *testing.T) {
	b := NewBoard("")
	changed := b.MarkLabels(NewLabelSet("01", "1", "100", "55"), Sold)
	if changed != 2 {
		t.Errorf("expected 2 changed, got %d", changed)
	}
	if got := EncodeSold(b.SoldLabels()); got != "01,55" {
		t.Errorf("unexpected sold set %q", got)
	}
}

func TestUnknownStateNormalized(t *testing.T) {
	b := NewBoard("")
	if err := b.Mark("05", SlotState(7)); err != nil {
		t.Fatal(err)
	}
	if s, _ := b.State("05"); s != Available {
		t.Errorf("expected unknown state to map to Available, got %v", s)
	}
	assertBoardInvariant(t, b)
}

func TestResetIdempotent(t *testing.T) {
	b := NewBoard("Keep me")
	b.MarkRange(0, 49, Sold)
	b.Reset()
	if b.SoldCount() != 0 {
		t.Errorf("expected 0 sold after reset, got %d", b.SoldCount())
	}
	once := b.Encode()
	b.Reset()
	if b.Encode() != once {
		t.Error("second reset changed the board")
	}
	if b.Title != "Keep me" {
		t.Errorf("reset must keep the title, got %q", b.Title)
	}
}

func TestRandomOperationsKeepInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := NewBoard("")
	for i := 0; i < 2000; i++ {
		switch rng.Intn(4) {
		case 0:
			_ = b.Mark(Label(rng.Intn(120)), SlotState(rng.Intn(3)))
		case 1:
			_ = b.Toggle(Label(rng.Intn(120)))
		case 2:
			b.MarkRange(rng.Intn(140)-20, rng.Intn(140)-20, SlotState(rng.Intn(2)))
		case 3:
			if rng.Intn(20) == 0 {
				b.Reset()
			}
		}
		assertBoardInvariant(t, b)
	}
}

func TestSlotsRowMajor(t *testing.T) {
	b := NewBoard("")
	_ = b.Mark("37", Sold)
	s := b.Slots()[37]
	if s.Row() != 3 || s.Column() != 7 {
		t.Errorf("expected row 3 col 7, got %d %d", s.Row(), s.Column())
	}
	if s.State != Sold {
		t.Errorf("expected sold, got %v", s.State)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard("A")
	_ = b.Mark("01", Sold)
	cp := b.Clone()
	_ = cp.Mark("02", Sold)
	cp.Title = "B"
	if b.SoldCount() != 1 || b.Title != "A" {
		t.Error("clone mutation leaked into original")
	}
}

func TestEncodeDecodeBoard(t *testing.T) {
	b := NewBoard("Fiesta")
	b.MarkRange(90, 99, Sold)
	_ = b.Mark("05", Sold)

	st := b.Encode()
	if st.Sold != "05,90,91,92,93,94,95,96,97,98,99" {
		t.Errorf("unexpected encoding %q", st.Sold)
	}
	restored := st.Board("unused")
	if restored.Title != "Fiesta" || restored.SoldCount() != 11 {
		t.Errorf("unexpected restore: %q %d", restored.Title, restored.SoldCount())
	}

	empty := EncodedState{}.Board("Raffle 2025-05-01")
	if empty.Title != "Raffle 2025-05-01" {
		t.Errorf("expected default title, got %q", empty.Title)
	}
}
