package tui

import (
	"fmt"
	"strings"

	textarea "github.com/charmbracelet/bubbles/textarea"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unowned-ai/daybook/pkg/journal"
	"github.com/unowned-ai/daybook/pkg/search"
)

const (
	columnDates = iota
	columnEntry
	columnSearch
)

type model struct {
	store *journal.Store
	index *search.Index

	dates      []journal.Date
	dateCursor int

	currentDate journal.Date
	entryText   string
	editing     bool
	editor      textarea.Model

	searchInput  textinput.Model
	results      []search.Result
	resultCursor int
	lastQuery    string

	columnFocus int
	width       int
	height      int
	err         error
	status      string

	quitting bool
}

// Initialize TUI model
func initModel(store *journal.Store, index *search.Index) model {
	editor := textarea.New()
	editor.Placeholder = "Write about your day..."
	editor.CharLimit = 0

	searchField := textinput.New()
	searchField.Placeholder = "Search all entries"
	searchField.CharLimit = 256

	return model{
		store: store,
		index: index,

		currentDate: journal.Today(),
		editor:      editor,
		searchInput: searchField,

		columnFocus: columnDates,
	}
}

// Execute commands concurrently with no ordering guarantees during initialization
func (m model) Init() tea.Cmd {
	return tea.Batch(
		loadDates(m.store),
		loadEntry(m.store, m.currentDate),
	)
}

// Processes events like window resize, errors, loaded data, and key presses
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Save the new window size in the model for responsive layout
		m.width = msg.Width
		m.height = msg.Height
		_, middleWidth, _ := m.dynamicColumnWidth()
		m.editor.SetWidth(middleWidth - 4)
		m.editor.SetHeight(m.height - 8)
		return m, nil

	case error:
		m.err = msg
		return m, nil

	case datesLoadedMsg:
		m.dates = msg
		if m.dateCursor >= len(m.dates) {
			m.dateCursor = 0
		}
		return m, nil

	case entryLoadedMsg:
		m.currentDate = msg.date
		m.entryText = msg.text
		if m.editing {
			m.editor.SetValue(msg.text)
		}
		return m, nil

	case entrySavedMsg:
		m.status = fmt.Sprintf("Saved %s", msg.date)
		// Reload the date list so a first save shows up immediately.
		return m, loadDates(m.store)

	case searchResultsMsg:
		m.results = msg
		m.resultCursor = 0
		return m, nil

	case linkOpenedMsg:
		m.status = fmt.Sprintf("Opened %s", msg.url)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Editing mode captures every key except save/quit chords.
	if m.editing {
		switch msg.Type {
		case tea.KeyEsc:
			// Leaving the editor is the "focus lost" save point.
			m.editing = false
			m.entryText = m.editor.Value()
			return m, saveEntry(m.store, m.index, m.currentDate, m.entryText)
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Sequence(
				saveEntry(m.store, m.index, m.currentDate, m.editor.Value()),
				tea.Quit,
			)
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}

	// Search input captures printable keys while focused.
	if m.columnFocus == columnSearch && m.searchInput.Focused() {
		switch msg.Type {
		case tea.KeyEnter:
			m.lastQuery = m.searchInput.Value()
			m.searchInput.Blur()
			return m, runSearch(m.index, m.lastQuery)
		case tea.KeyEsc:
			m.searchInput.Blur()
			return m, nil
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.columnFocus = (m.columnFocus + 1) % 3
		return m, nil

	case "up", "k":
		switch m.columnFocus {
		case columnDates:
			if m.dateCursor > 0 {
				m.dateCursor--
				return m, loadEntry(m.store, m.dates[m.dateCursor])
			}
		case columnSearch:
			if m.resultCursor > 0 {
				m.resultCursor--
			}
		}
		return m, nil

	case "down", "j":
		switch m.columnFocus {
		case columnDates:
			if m.dateCursor < len(m.dates)-1 {
				m.dateCursor++
				return m, loadEntry(m.store, m.dates[m.dateCursor])
			}
		case columnSearch:
			if m.resultCursor < len(m.results)-1 {
				m.resultCursor++
			}
		}
		return m, nil

	case "enter":
		switch m.columnFocus {
		case columnDates:
			if len(m.dates) > 0 {
				return m, loadEntry(m.store, m.dates[m.dateCursor])
			}
		case columnEntry:
			return m.startEditing()
		case columnSearch:
			// Jump to the selected result's date.
			if len(m.results) > 0 {
				r := m.results[m.resultCursor]
				m.columnFocus = columnEntry
				return m, loadEntry(m.store, r.Date)
			}
		}
		return m, nil

	case "e":
		if m.columnFocus == columnEntry || m.columnFocus == columnDates {
			return m.startEditing()
		}
		return m, nil

	case "/":
		m.columnFocus = columnSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case "o":
		if m.columnFocus == columnEntry {
			return m, openFirstLink(m.entryText)
		}
		return m, nil
	}

	return m, nil
}

func (m model) startEditing() (tea.Model, tea.Cmd) {
	m.editing = true
	m.columnFocus = columnEntry
	m.editor.SetValue(m.entryText)
	m.editor.Focus()
	return m, textarea.Blink
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading daybook..."
	}

	leftWidth, middleWidth, rightWidth := m.dynamicColumnWidth()

	left := m.viewDates(leftWidth)
	middle := m.viewEntry(middleWidth)
	right := m.viewSearch(rightWidth)

	columns := lipgloss.JoinHorizontal(lipgloss.Top, left, middle, right)

	footer := footerStyle.Render("tab: switch column  e: edit  esc: save  /: search  o: open link  q: quit")
	if m.status != "" {
		footer = footerStyle.Render(m.status) + "\n" + footer
	}
	if m.err != nil {
		footer = textRedStyle.Render("error: "+m.err.Error()) + "\n" + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left, columns, footer)
}

func (m model) viewDates(width int) string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render("Dates") + "\n\n")

	for i, d := range m.dates {
		line := generateLinePointer(i == m.dateCursor && m.columnFocus == columnDates, 2) + d.String()
		if i == m.dateCursor {
			line = selectedStyle.Render(line)
		} else {
			line = textStyle.Render(line)
		}
		b.WriteString(clampLine(line, width) + "\n")
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (m model) viewEntry(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.currentDate.String()) + "\n\n")

	if m.editing {
		b.WriteString(m.editor.View())
	} else if m.entryText == "" {
		b.WriteString(footerStyle.Render("(no entry — press e to write)"))
	} else if m.lastQuery != "" {
		b.WriteString(renderHighlighted(m.entryText, m.lastQuery))
	} else {
		b.WriteString(textStyle.Render(m.entryText))
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (m model) viewSearch(width int) string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render("Search") + "\n")
	b.WriteString(m.searchInput.View() + "\n\n")

	if m.lastQuery != "" && len(m.results) == 0 {
		b.WriteString(footerStyle.Render("no matches"))
	}

	for i, r := range m.results {
		pointer := generateLinePointer(i == m.resultCursor && m.columnFocus == columnSearch, 2)
		line := pointer + r.Date.String() + "  " + firstLine(r.Text)
		line = clampLine(line, width)
		if i == m.resultCursor && m.columnFocus == columnSearch {
			b.WriteString(selectedStyle.Render(line) + "\n")
		} else {
			b.WriteString(renderHighlighted(line, r.Query) + "\n")
		}
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

// renderHighlighted paints every occurrence of query inside text using the
// core's span computation, leaving styling decisions here in the UI.
func renderHighlighted(text, query string) string {
	spans := search.HighlightSpans(text, query)
	if len(spans) == 0 {
		return textStyle.Render(text)
	}

	var b strings.Builder
	pos := 0
	for _, span := range spans {
		if span.Start > len(text) || span.Start+span.Length > len(text) {
			break
		}
		b.WriteString(textStyle.Render(text[pos:span.Start]))
		b.WriteString(matchStyle.Render(text[span.Start : span.Start+span.Length]))
		pos = span.Start + span.Length
	}
	b.WriteString(textStyle.Render(text[pos:]))
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Run starts the TUI over an opened store and index. It blocks until the
// user quits; an in-progress edit is saved on the way out.
func Run(store *journal.Store, index *search.Index) error {
	p := tea.NewProgram(initModel(store, index), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
