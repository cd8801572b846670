package model

const defaultMaxDepth = 50

// Snapshot captures the board state at a point in time.
type Snapshot struct {
	State EncodedState `json:"state"`
	Label string       `json:"label"` // Human-readable description (e.g. "Mark 17")
}

// MakeSnapshot records the current state of b with a label.
func MakeSnapshot(b *Board, label string) Snapshot {
	return Snapshot{State: b.Encode(), Label: label}
}

// Restore returns a fresh board holding the snapshot's state.
func (s Snapshot) Restore() *Board {
	return s.State.Board("")
}

// History manages undo/redo stacks of board snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory() *History {
	return &History{
		maxDepth: defaultMaxDepth,
	}
}

// RestoreHistory rebuilds a History from saved stacks, oldest first.
// Stacks deeper than the default max depth keep their newest entries.
func RestoreHistory(undo, redo []Snapshot) *History {
	h := NewHistory()
	h.undoStack = trimStack(undo, h.maxDepth)
	h.redoStack = trimStack(redo, h.maxDepth)
	return h
}

// Stacks returns copies of the undo and redo stacks, oldest first.
func (h *History) Stacks() (undo, redo []Snapshot) {
	return append([]Snapshot(nil), h.undoStack...), append([]Snapshot(nil), h.redoStack...)
}

func trimStack(s []Snapshot, depth int) []Snapshot {
	if len(s) > depth {
		s = s[len(s)-depth:]
	}
	return append([]Snapshot(nil), s...)
}

// Push saves a snapshot onto the undo stack and clears the redo stack.
// This should be called before the modification is applied.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the most recent snapshot from the undo stack and pushes
// the current state onto the redo stack. Returns the snapshot to restore
// and true, or an empty snapshot and false if nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo is the inverse of Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current)
	return last, true
}

// CanUndo returns true if there is at least one snapshot to undo.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if there is at least one snapshot to redo.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}
