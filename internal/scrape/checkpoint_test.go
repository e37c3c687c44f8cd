package scrape

import (
	"path/filepath"
	"testing"
)

func TestCheckpointRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	store := NewCheckpointStore(path, true)

	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected no checkpoint before first save")
	}

	book := "0x1111111111111111111111111111111111111111"
	if err := store.Save(56, book, 12345); err != nil {
		t.Fatalf("save: %v", err)
	}

	cp, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatalf("expected checkpoint after save")
	}
	if cp.LastProcessedBlock != 12345 {
		t.Fatalf("last processed mismatch: %d", cp.LastProcessedBlock)
	}
	if !cp.Matches(56, book) {
		t.Fatalf("checkpoint identity mismatch: %+v", cp)
	}
	if cp.Matches(1, book) || cp.Matches(56, "0x2222222222222222222222222222222222222222") {
		t.Fatalf("checkpoint matched a foreign target: %+v", cp)
	}
	if cp.UpdatedAt == "" {
		t.Fatalf("updated at not set")
	}
}

func TestCheckpointDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	store := NewCheckpointStore(path, false)

	if err := store.Save(56, "0x1111111111111111111111111111111111111111", 99); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("disabled store must not persist checkpoints")
	}
}
