package storage

import (
	"path/filepath"
	"testing"

	"github.com/studiowebux/doccli/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)

	doc := types.NewDocument("Persisted")
	payload, _ := doc.Encode()

	if err := store.Save(AutosaveKey, payload); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(AutosaveKey)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected a document")
	}
	if loaded.Metadata.Title != "Persisted" {
		t.Errorf("Title = %q", loaded.Metadata.Title)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := openTestStore(t)

	first, _ := types.NewDocument("First").Encode()
	second, _ := types.NewDocument("Second").Encode()
	store.Save(AutosaveKey, first)
	store.Save(AutosaveKey, second)

	loaded, err := store.Load(AutosaveKey)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Metadata.Title != "Second" {
		t.Errorf("Save must overwrite, got title %q", loaded.Metadata.Title)
	}
}

func TestLoadMissingKey(t *testing.T) {
	store := openTestStore(t)

	doc, err := store.Load(AutosaveKey)
	if err != nil {
		t.Fatalf("Missing key must not error: %v", err)
	}
	if doc != nil {
		t.Error("Missing key should load as no saved document")
	}
}

func TestLoadCorruptPayloadFailsClosed(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name    string
		payload []byte
	}{
		{"garbage bytes", []byte("\x00\x01not json")},
		{"wrong shape", []byte(`{"pages": 42}`)},
		{"empty document", []byte(`{"pages": []}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Save(AutosaveKey, tt.payload); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			doc, err := store.Load(AutosaveKey)
			if err != nil {
				t.Errorf("Corrupt payload must not crash the load: %v", err)
			}
			if doc != nil {
				t.Error("Corrupt payload should load as no saved document")
			}
		})
	}
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)

	payload, _ := types.NewDocument("Gone").Encode()
	store.Save(AutosaveKey, payload)

	if err := store.Delete(AutosaveKey); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	doc, _ := store.Load(AutosaveKey)
	if doc != nil {
		t.Error("Deleted key should load as no saved document")
	}
}
