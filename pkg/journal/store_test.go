package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	return store
}

func mustDate(t *testing.T, s string) Date {
	t.Helper()

	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) failed: %v", s, err)
	}
	return d
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	date := mustDate(t, "2024-01-01")

	texts := []string{
		"a plain entry",
		"",
		"unicode: héllo wörld — 日記 ✍️",
		"punctuation tokens . , ! ? kept verbatim",
		"embedded\nnewlines\r\nand\ttabs",
		`quotes "double" and 'single' and \backslashes\`,
	}

	for _, text := range texts {
		if err := store.Save(ctx, date, text); err != nil {
			t.Fatalf("Save failed for %q: %v", text, err)
		}
		loaded, err := store.Load(ctx, date)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if loaded != text {
			t.Errorf("Round trip mismatch: saved %q, loaded %q", text, loaded)
		}
	}
}

func TestLoadMissingEntry(t *testing.T) {
	store := setupTestStore(t)

	text, err := store.Load(context.Background(), mustDate(t, "2030-06-15"))
	if err != nil {
		t.Fatalf("Load of missing entry should not fail, got: %v", err)
	}
	if text != "" {
		t.Errorf("Expected empty text for missing entry, got %q", text)
	}
}

func TestLoadCorruptEntry(t *testing.T) {
	store := setupTestStore(t)
	date := mustDate(t, "2024-05-05")

	path := filepath.Join(store.Dir(), date.String()+".json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to plant corrupt entry: %v", err)
	}

	text, err := store.Load(context.Background(), date)
	if err != nil {
		t.Fatalf("Load of corrupt entry should not fail, got: %v", err)
	}
	if text != "" {
		t.Errorf("Expected corrupt entry to read as empty, got %q", text)
	}
}

func TestSaveReplacesPriorContent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	date := mustDate(t, "2024-02-02")

	if err := store.Save(ctx, date, "first version"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, date, "second version"); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	loaded, err := store.Load(ctx, date)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != "second version" {
		t.Errorf("Expected overwrite, got %q", loaded)
	}

	// The temp file from the atomic save must not linger.
	dirEntries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, de := range dirEntries {
		if filepath.Ext(de.Name()) == ".tmp" {
			t.Errorf("Leftover temp file after save: %s", de.Name())
		}
	}
}

func TestListAll(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	want := map[string]string{
		"2024-01-01": "hello world",
		"2024-01-02": "goodbye world",
		"2024-03-03": "",
	}
	for s, text := range want {
		if err := store.Save(ctx, mustDate(t, s), text); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	entries, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(entries) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(entries))
	}
	for _, entry := range entries {
		text, ok := want[entry.Date.String()]
		if !ok {
			t.Errorf("Unexpected entry for %s", entry.Date)
			continue
		}
		if entry.Text != text {
			t.Errorf("Entry for %s: expected %q, got %q", entry.Date, text, entry.Text)
		}
	}
}

func TestListAllSkipsBadFiles(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, mustDate(t, "2024-01-01"), "good entry"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// A corrupt entry file, a non-date json file, and a stray text file
	// should all be skipped without aborting the enumeration.
	plants := map[string]string{
		"2024-01-02.json": "{definitely not json",
		"notes.json":      `{"text": "not keyed by a date"}`,
		"readme.txt":      "not an entry at all",
	}
	for name, content := range plants {
		if err := os.WriteFile(filepath.Join(store.Dir(), name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to plant file %s: %v", name, err)
		}
	}

	entries, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d: %+v", len(entries), entries)
	}
	if entries[0].Text != "good entry" {
		t.Errorf("Expected the good entry to survive, got %q", entries[0].Text)
	}
}

func TestListAllCancelled(t *testing.T) {
	store := setupTestStore(t)

	if err := store.Save(context.Background(), mustDate(t, "2024-01-01"), "x"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.ListAll(ctx); err == nil {
		t.Errorf("Expected error from cancelled ListAll")
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "entries")

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, err := os.Stat(store.Dir()); err != nil {
		t.Errorf("Expected entries directory to exist: %v", err)
	}
}
