package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/RifaBoard/internal/model"
)

// StateFile is the on-disk form of a board: the same title and sold list a
// share link carries, so a file and a link are interchangeable. The undo
// and redo stacks ride along so edits can be reverted across runs.
type StateFile struct {
	Version string `json:"version"`
	model.EncodedState
	Undo []model.Snapshot `json:"undo,omitempty"`
	Redo []model.Snapshot `json:"redo,omitempty"`
}

const stateVersion = "1"

// SaveState writes the board's encoded state and, when h is non-nil, its
// edit history to path.
func SaveState(path string, b *model.Board, h *model.History) error {
	if b == nil {
		return fmt.Errorf("no board to save")
	}
	sf := StateFile{Version: stateVersion, EncodedState: b.Encode()}
	if h != nil {
		sf.Undo, sf.Redo = h.Stacks()
	}
	if err := writeJSON(path, sf); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// LoadState reads a state file. The sold list goes through the share-link
// decoder, so hand-edited files get the same tolerance as links.
func LoadState(path, defaultTitle string) (*model.Board, *model.History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read state: %w", err)
	}
	var sf StateFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, nil, fmt.Errorf("failed to parse state %s: %w", path, err)
	}
	return sf.EncodedState.Board(defaultTitle), model.RestoreHistory(sf.Undo, sf.Redo), nil
}
