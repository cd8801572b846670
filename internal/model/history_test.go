package model

import "testing"

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestUndoRedoBoardEdits(t *testing.T) {
	h := NewHistory()
	b := NewBoard("Fiesta")

	h.Push(MakeSnapshot(b, "before mark 17"))
	_ = b.Mark("17", Sold)

	h.Push(MakeSnapshot(b, "before decade"))
	b.MarkRange(20, 29, Sold)

	snap, ok := h.Undo(MakeSnapshot(b, "current"))
	if !ok {
		t.Fatal("undo should succeed")
	}
	b = snap.Restore()
	if b.SoldCount() != 1 || !b.IsSold(17) {
		t.Errorf("expected only 17 sold after undo, got %q", EncodeSold(b.SoldLabels()))
	}
	if snap.Label != "before decade" {
		t.Errorf("expected label 'before decade', got %q", snap.Label)
	}

	snap, ok = h.Redo(MakeSnapshot(b, "current"))
	if !ok {
		t.Fatal("redo should succeed")
	}
	b = snap.Restore()
	if b.SoldCount() != 11 {
		t.Errorf("expected 11 sold after redo, got %d", b.SoldCount())
	}
	if b.Title != "Fiesta" {
		t.Errorf("title lost through history: %q", b.Title)
	}
}

func TestUndoEmpty(t *testing.T) {
	h := NewHistory()
	if _, ok := h.Undo(Snapshot{}); ok {
		t.Error("undo on empty history should fail")
	}
	if _, ok := h.Redo(Snapshot{}); ok {
		t.Error("redo on empty history should fail")
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()
	b := NewBoard("")
	h.Push(MakeSnapshot(b, "a"))
	h.Undo(MakeSnapshot(b, "b"))
	if !h.CanRedo() {
		t.Fatal("expected redo to be available")
	}
	h.Push(MakeSnapshot(b, "c"))
	if h.CanRedo() {
		t.Error("push should clear the redo stack")
	}
}

func TestHistoryMaxDepth(t *testing.T) {
	h := NewHistory()
	b := NewBoard("")
	for i := 0; i < defaultMaxDepth+10; i++ {
		h.Push(MakeSnapshot(b, Label(i)))
	}
	if len(h.undoStack) != defaultMaxDepth {
		t.Errorf("expected %d snapshots, got %d", defaultMaxDepth, len(h.undoStack))
	}
	if h.undoStack[0].Label != Label(10) {
		t.Errorf("expected oldest snapshot %q, got %q", Label(10), h.undoStack[0].Label)
	}
	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("clear should empty both stacks")
	}
}

func TestHistoryStacksRoundTrip(t *testing.T) {
	h := NewHistory()
	b := NewBoard("Fiesta")
	h.Push(MakeSnapshot(b, "mark 01"))
	_ = b.Mark("01", Sold)
	h.Push(MakeSnapshot(b, "mark 02"))
	_ = b.Mark("02", Sold)
	if _, ok := h.Undo(MakeSnapshot(b, "current")); !ok {
		t.Fatal("undo should succeed")
	}

	undo, redo := h.Stacks()
	if len(undo) != 1 || len(redo) != 1 {
		t.Fatalf("expected 1 undo and 1 redo entry, got %d and %d", len(undo), len(redo))
	}

	restored := RestoreHistory(undo, redo)
	if !restored.CanUndo() || !restored.CanRedo() {
		t.Error("restored history should be undoable and redoable")
	}
	snap, _ := restored.Undo(MakeSnapshot(b, "current"))
	if snap.Label != "mark 01" {
		t.Errorf("expected label 'mark 01', got %q", snap.Label)
	}

	// Mutating the restored history leaves the exported stacks alone.
	if len(undo) != 1 {
		t.Error("Stacks must return copies")
	}
}

func TestRestoreHistoryTrimsDepth(t *testing.T) {
	var undo []Snapshot
	for i := 0; i < defaultMaxDepth+10; i++ {
		undo = append(undo, Snapshot{Label: Label(i)})
	}
	h := RestoreHistory(undo, nil)
	got, _ := h.Stacks()
	if len(got) != defaultMaxDepth {
		t.Fatalf("expected %d entries, got %d", defaultMaxDepth, len(got))
	}
	if got[0].Label != "10" {
		t.Errorf("oldest entries should be dropped, first is %q", got[0].Label)
	}
}
