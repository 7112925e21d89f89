package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/unowned-ai/daybook/pkg/journal"
)

func setupTestIndex(t *testing.T, corpus map[string]string) (*journal.Store, *Index) {
	t.Helper()

	store, err := journal.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}

	ctx := context.Background()
	for s, text := range corpus {
		date, err := journal.ParseDate(s)
		if err != nil {
			t.Fatalf("ParseDate(%q) failed: %v", s, err)
		}
		if err := store.Save(ctx, date, text); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	return store, New(store, DefaultMaxAge)
}

func resultDates(results []Result) []string {
	dates := make([]string, 0, len(results))
	for _, r := range results {
		dates = append(dates, r.Date.String())
	}
	return dates
}

func TestSearchBasicCorpus(t *testing.T) {
	_, index := setupTestIndex(t, map[string]string{
		"2024-01-01": "hello world",
		"2024-01-02": "goodbye world",
	})
	ctx := context.Background()

	t.Run("TokenInBothEntries", func(t *testing.T) {
		results, err := index.Search(ctx, "world")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		got := resultDates(results)
		if len(got) != 2 || got[0] != "2024-01-01" || got[1] != "2024-01-02" {
			t.Errorf("Expected both dates ascending, got %v", got)
		}
	})

	t.Run("TokenInOneEntry", func(t *testing.T) {
		results, err := index.Search(ctx, "hello")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		got := resultDates(results)
		if len(got) != 1 || got[0] != "2024-01-01" {
			t.Errorf("Expected only 2024-01-01, got %v", got)
		}
	})

	t.Run("ResultCarriesTextAndQuery", func(t *testing.T) {
		results, err := index.Search(ctx, "HELLO")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("Expected 1 result, got %d", len(results))
		}
		if results[0].Text != "hello world" {
			t.Errorf("Expected full entry text, got %q", results[0].Text)
		}
		if results[0].Query != "HELLO" {
			t.Errorf("Expected the original query string, got %q", results[0].Query)
		}
	})

	t.Run("NoMatch", func(t *testing.T) {
		results, err := index.Search(ctx, "zebra")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("Expected no results, got %v", resultDates(results))
		}
	})
}

func TestSearchEmptyQuery(t *testing.T) {
	_, index := setupTestIndex(t, map[string]string{
		"2024-01-01": "hello world",
	})
	ctx := context.Background()

	for _, query := range []string{"", "   ", "\t\n"} {
		results, err := index.Search(ctx, query)
		if err != nil {
			t.Fatalf("Search(%q) should not fail, got: %v", query, err)
		}
		if len(results) != 0 {
			t.Errorf("Expected empty result set for query %q, got %v", query, resultDates(results))
		}
	}
}

func TestSearchSubstringQuirk(t *testing.T) {
	_, index := setupTestIndex(t, map[string]string{
		"2024-01-01": "testing",
	})
	ctx := context.Background()

	t.Run("QueryIsSubstringOfToken", func(t *testing.T) {
		results, err := index.Search(ctx, "test")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 {
			t.Errorf("Expected 'test' to match indexed token 'testing', got %v", resultDates(results))
		}
	})

	t.Run("TokenIsSubstringOfQuery", func(t *testing.T) {
		// The reverse direction: the query contains the indexed token.
		results, err := index.Search(ctx, "testing123")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 1 {
			t.Errorf("Expected 'testing123' to match via the reverse substring rule, got %v", resultDates(results))
		}
	})

	t.Run("NeitherDirectionMatches", func(t *testing.T) {
		results, err := index.Search(ctx, "tasting")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("Expected no match for 'tasting', got %v", resultDates(results))
		}
	})
}

func TestSearchDeduplicatesDates(t *testing.T) {
	_, index := setupTestIndex(t, map[string]string{
		"2024-01-01": "cat catalog concatenate",
	})

	// Three distinct tokens all contain "cat"; the date must appear once.
	results, err := index.Search(context.Background(), "cat")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected one deduplicated result, got %v", resultDates(results))
	}
}

func TestRefreshIdempotentWithinWindow(t *testing.T) {
	store, index := setupTestIndex(t, map[string]string{
		"2024-01-01": "hello world",
	})
	ctx := context.Background()

	first, err := index.Search(ctx, "hello")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	// Write a new entry behind the index's back. Inside the staleness
	// window the snapshot must not be rebuilt, so the new entry stays
	// invisible until MarkStale forces a re-scan.
	date, _ := journal.ParseDate("2024-01-02")
	if err := store.Save(ctx, date, "hello again"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second, err := index.Search(ctx, "hello")
	if err != nil {
		t.Fatalf("Second search failed: %v", err)
	}
	if len(second) != len(first) {
		t.Errorf("Expected identical results within staleness window, got %v then %v",
			resultDates(first), resultDates(second))
	}

	index.MarkStale()
	third, err := index.Search(ctx, "hello")
	if err != nil {
		t.Fatalf("Third search failed: %v", err)
	}
	if len(third) != 2 {
		t.Errorf("Expected rebuild after MarkStale to pick up the new entry, got %v", resultDates(third))
	}
}

func TestRebuildAfterWindowExpires(t *testing.T) {
	store, err := journal.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	index := New(store, 50*time.Millisecond)
	ctx := context.Background()

	date, _ := journal.ParseDate("2024-01-01")
	if err := store.Save(ctx, date, "first"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := index.Search(ctx, "first"); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if index.State() != StateReady {
		t.Errorf("Expected ready state after first search, got %s", index.State())
	}

	if err := store.Save(ctx, date, "second"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	time.Sleep(80 * time.Millisecond)

	results, err := index.Search(ctx, "second")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected expired window to trigger rebuild, got %v", resultDates(results))
	}
}

func TestSearchSurvivesCorruptEntry(t *testing.T) {
	store, index := setupTestIndex(t, map[string]string{
		"2024-01-01": "hello world",
		"2024-01-03": "hello again",
	})

	corrupt := filepath.Join(store.Dir(), "2024-01-02.json")
	if err := os.WriteFile(corrupt, []byte("{broken"), 0644); err != nil {
		t.Fatalf("Failed to plant corrupt entry: %v", err)
	}

	results, err := index.Search(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	got := resultDates(results)
	if len(got) != 2 || got[0] != "2024-01-01" || got[1] != "2024-01-03" {
		t.Errorf("Expected the two good entries, got %v", got)
	}
}

func TestSearchCancelledContext(t *testing.T) {
	_, index := setupTestIndex(t, map[string]string{
		"2024-01-01": "hello",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := index.Search(ctx, "hello"); err == nil {
		t.Errorf("Expected error when the initial build is cancelled")
	}
	if index.State() == StateReady {
		t.Errorf("Expected index not to reach ready after a cancelled build")
	}
}

func TestIndexStateLifecycle(t *testing.T) {
	_, index := setupTestIndex(t, map[string]string{
		"2024-01-01": "hello",
	})

	if index.State() != StateEmpty {
		t.Errorf("Expected empty state before first refresh, got %s", index.State())
	}

	if err := index.RefreshIfStale(context.Background()); err != nil {
		t.Fatalf("RefreshIfStale failed: %v", err)
	}
	if index.State() != StateReady {
		t.Errorf("Expected ready state after refresh, got %s", index.State())
	}
}
