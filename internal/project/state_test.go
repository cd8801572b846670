package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/RifaBoard/internal/model"
)

func TestSaveAndLoadState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fiesta.json")

	b := model.NewBoard("Fiesta")
	b.MarkRange(3, 5, model.Sold)
	_ = b.Mark("99", model.Sold)

	h := model.NewHistory()
	h.Push(model.MakeSnapshot(model.NewBoard("Fiesta"), "range 03-05"))

	if err := SaveState(path, b, h); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"sold": "03,04,05,99"`) {
		t.Errorf("state file should hold the encoded sold list, got:\n%s", data)
	}

	loaded, history, err := LoadState(path, "Default")
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if !history.CanUndo() || history.CanRedo() {
		t.Error("expected one undo entry and no redo entries")
	}
	if loaded.Title != "Fiesta" {
		t.Errorf("expected title Fiesta, got %q", loaded.Title)
	}
	if loaded.Encode() != b.Encode() {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded.Encode(), b.Encode())
	}
}

func TestLoadState_TolerantSoldList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hand.json")
	data := `{"version":"1","title":"","sold":"7, 07 x 100 12"}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	b, history, err := LoadState(path, "Raffle 2026-10-18")
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if history.CanUndo() {
		t.Error("a file without stacks has nothing to undo")
	}
	if b.Title != "Raffle 2026-10-18" {
		t.Errorf("empty title should fall back, got %q", b.Title)
	}
	if got := model.EncodeSold(b.SoldLabels()); got != "07,12" {
		t.Errorf("expected 07,12, got %q", got)
	}
}

func TestLoadState_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := LoadState(filepath.Join(dir, "missing.json"), ""); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadState(bad, ""); err == nil {
		t.Error("expected error for invalid JSON")
	}

	if err := SaveState(filepath.Join(dir, "x.json"), nil, nil); err == nil {
		t.Error("expected error saving a nil board")
	}
}
