package tui

import (
	"context"
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unowned-ai/daybook/pkg/journal"
	"github.com/unowned-ai/daybook/pkg/links"
	"github.com/unowned-ai/daybook/pkg/search"
)

type datesLoadedMsg []journal.Date

type entryLoadedMsg struct {
	date journal.Date
	text string
}

type entrySavedMsg struct {
	date journal.Date
}

type searchResultsMsg []search.Result

type linkOpenedMsg struct {
	url string
}

// Load every persisted date (plus today, so there is always a line to write
// under), most recent first, and return tea data.
func loadDates(store *journal.Store) tea.Cmd {
	return func() tea.Msg {
		entries, err := store.ListAll(context.Background())
		if err != nil {
			return err
		}

		dates := make([]journal.Date, 0, len(entries)+1)
		today := journal.Today()
		haveToday := false
		for _, entry := range entries {
			if entry.Date == today {
				haveToday = true
			}
			dates = append(dates, entry.Date)
		}
		if !haveToday {
			dates = append(dates, today)
		}

		sort.Slice(dates, func(i, j int) bool {
			return dates[j].Before(dates[i])
		})
		return datesLoadedMsg(dates)
	}
}

// Load the entry text for a date and return tea data.
func loadEntry(store *journal.Store, date journal.Date) tea.Cmd {
	return func() tea.Msg {
		text, err := store.Load(context.Background(), date)
		if err != nil {
			return err
		}
		return entryLoadedMsg{date: date, text: text}
	}
}

// Persist the entry text for a date and mark the search index stale.
func saveEntry(store *journal.Store, index *search.Index, date journal.Date, text string) tea.Cmd {
	return func() tea.Msg {
		if err := store.Save(context.Background(), date, text); err != nil {
			return err
		}
		index.MarkStale()
		return entrySavedMsg{date: date}
	}
}

// Run a search over the whole corpus and return tea data.
func runSearch(index *search.Index, query string) tea.Cmd {
	return func() tea.Msg {
		results, err := index.Search(context.Background(), query)
		if err != nil {
			return err
		}
		return searchResultsMsg(results)
	}
}

// Hand the first URL in text to the OS default opener.
func openFirstLink(text string) tea.Cmd {
	return func() tea.Msg {
		urls := links.Detect(text)
		if len(urls) == 0 {
			return nil
		}
		if err := links.Open(urls[0]); err != nil {
			return err
		}
		return linkOpenedMsg{url: urls[0]}
	}
}
