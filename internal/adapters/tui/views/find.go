package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pnidkit/internal/adapters/tui/styles"
	"pnidkit/internal/application"
	"pnidkit/internal/application/commands"
)

// FindKeyMap defines key bindings for the find view
type FindKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var FindKeys = FindKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+k"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+j"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "copy tag"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

const maxFindResults = 10

// FindModel searches tagged placements as the user types
type FindModel struct {
	ViewState
	source  *Source
	input   textinput.Model
	results []commands.SearchResult
	cursor  int
}

// NewFindModel creates a new find view model
func NewFindModel(source *Source) *FindModel {
	input := textinput.New()
	input.Placeholder = "Tag or block name..."
	input.Focus()

	return &FindModel{
		source: source,
		input:  input,
	}
}

// Init initializes the find view
func (m *FindModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the query and results
func (m *FindModel) Reset() {
	m.input.SetValue("")
	m.results = nil
	m.cursor = 0
	m.ClearMessage()
	m.input.Focus()
}

type findResultsMsg struct {
	query   string
	results []commands.SearchResult
	err     error
}

// Update handles messages for the find view
func (m *FindModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case findResultsMsg:
		// Results for a query the user has since changed are dropped.
		if msg.query != m.input.Value() {
			return m, nil
		}
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
			return m, nil
		}
		m.results = msg.results
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, FindKeys.Cancel):
			return m, send(SwitchToSheetsMsg{})

		case key.Matches(msg, FindKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, FindKeys.Down):
			if m.cursor < min(len(m.results), maxFindResults)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, FindKeys.Select):
			if m.cursor < len(m.results) {
				tag := m.results[m.cursor].Tag
				if err := copyToClipboard(tag); err != nil {
					m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
				} else {
					m.SetMessage("Copied "+tag, false)
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)

	query := m.input.Value()
	if query == before {
		return m, cmd
	}
	if len(query) >= 2 {
		return m, tea.Batch(cmd, m.search(query))
	}
	m.results = nil
	return m, cmd
}

func (m *FindModel) search(query string) tea.Cmd {
	return func() tea.Msg {
		var results []commands.SearchResult
		err := m.source.With(func(s *application.Session) error {
			var err error
			results, err = commands.NewSearchCommand(s, query).Execute(context.Background())
			return err
		})
		return findResultsMsg{query: query, results: results, err: err}
	}
}

// View renders the find view
func (m *FindModel) View() string {
	v := NewViewBuilder().Title("pnidkit").Tabs("Find")
	v.Line(styles.InputFocused.Render(m.input.View()))
	v.BlankLine()

	switch {
	case len(m.results) > 0:
		v.Muted(fmt.Sprintf("%d results", len(m.results)))
		v.BlankLine()
		for i, r := range m.results[:min(len(m.results), maxFindResults)] {
			v.Line(renderFindResult(r, i == m.cursor))
		}
		if len(m.results) > maxFindResults {
			v.Muted(fmt.Sprintf("... and %d more", len(m.results)-maxFindResults))
		}
	case len(m.input.Value()) >= 2:
		v.Muted("No results found")
	default:
		v.Muted("Type at least 2 characters to search")
	}

	return v.Message(m.Message, m.MessageErr).
		Help(FindKeys.Up, FindKeys.Down, FindKeys.Select, FindKeys.Cancel).
		String()
}

func renderFindResult(r commands.SearchResult, selected bool) string {
	sheet := r.Sheet
	if sheet == "" {
		sheet = "-"
	}
	text := fmt.Sprintf("%-18s %-6s %-20s %s", r.Tag, sheet, r.Name, r.Handle)
	if selected {
		return styles.RowSelected.Render(text)
	}
	return text
}
