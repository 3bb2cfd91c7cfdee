package views

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pnidkit/internal/adapters/tui/styles"
	"pnidkit/internal/application"
	"pnidkit/internal/application/commands"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// SheetsModel lists the laid out sheets of the drawing
type SheetsModel struct {
	ViewState
	source    *Source
	drawing   string
	paginator *Paginator

	result *commands.SheetsResult
}

// NewSheetsModel creates a new sheets view model
func NewSheetsModel(source *Source, drawing string) *SheetsModel {
	return &SheetsModel{
		source:    source,
		drawing:   drawing,
		paginator: NewPaginator(15),
	}
}

// Init loads the sheet list
func (m *SheetsModel) Init() tea.Cmd {
	return m.load
}

type sheetsLoadedMsg struct {
	result *commands.SheetsResult
	err    error
}

func (m *SheetsModel) load() tea.Msg {
	var result *commands.SheetsResult
	err := m.source.With(func(s *application.Session) error {
		var err error
		result, err = commands.NewListSheetsCommand(s).Execute(context.Background())
		return err
	})
	return sheetsLoadedMsg{result: result, err: err}
}

// Reload re-reads the sheet list from the session
func (m *SheetsModel) Reload() tea.Cmd {
	return m.load
}

// Update handles messages for the sheets view
func (m *SheetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.paginator.SetPageSize(m.pageSize())
		return m, nil

	case sheetsLoadedMsg:
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
			return m, nil
		}
		m.result = msg.result
		m.paginator.SetTotal(len(msg.result.Sheets))
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		if cmd, ok := sharedKey(msg, m.paginator, SwitchToProblemsMsg{}, m.drawing); ok {
			return m, cmd
		}
		if key.Matches(msg, ListKeys.Copy) {
			m.copySelected()
		}
	}
	return m, nil
}

// Selected returns the sheet under the cursor
func (m *SheetsModel) Selected() (commands.SheetRow, bool) {
	if m.result == nil || len(m.result.Sheets) == 0 {
		return commands.SheetRow{}, false
	}
	return m.result.Sheets[m.paginator.Cursor()], true
}

// copySelected copies the sheet's drawing number, or its border handle when
// the sheet has no title block.
func (m *SheetsModel) copySelected() {
	row, ok := m.Selected()
	if !ok {
		return
	}
	text := row.Handle
	if row.HasTitle && row.Title != "" {
		text = row.Title
	}
	if err := copyToClipboard(text); err != nil {
		m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	m.SetMessage("Copied "+text, false)
}

// View renders the sheets view
func (m *SheetsModel) View() string {
	v := NewViewBuilder().Title("pnidkit").Tabs("Sheets")

	if m.result == nil {
		return v.Muted("Loading...").Message(m.Message, m.MessageErr).String()
	}

	v.Muted(fmt.Sprintf("%s · %d sheets · page %d/%d",
		m.drawing, len(m.result.Sheets), m.paginator.CurrentPage(), m.paginator.TotalPages()))
	v.BlankLine()

	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		v.Line(m.renderRow(m.result.Sheets[i], i == m.paginator.Cursor()))
	}
	if n := len(m.result.DroppedTitles); n > 0 {
		v.BlankLine()
		v.Line(styles.RowUntitled.Render(fmt.Sprintf("%d title blocks dropped", n)))
	}

	return v.Message(m.Message, m.MessageErr).
		Help(ListKeys.Up, ListKeys.Down, ListKeys.Copy, ListKeys.Edit, ListKeys.Reload, ListKeys.Tab, ListKeys.Help, ListKeys.Quit).
		String()
}

func (m *SheetsModel) renderRow(row commands.SheetRow, selected bool) string {
	title := row.Title
	if !row.HasTitle {
		title = "untitled"
	}
	text := fmt.Sprintf("%-6s row %-3d %-16s %s", row.Number, row.Row, title, row.Handle)
	if selected {
		return styles.RowSelected.Render(text)
	}

	number := styles.RowNumber.Render(fmt.Sprintf("%-6s", row.Number))
	rest := fmt.Sprintf(" row %-3d ", row.Row)
	if row.HasTitle {
		rest += fmt.Sprintf("%-16s ", title)
	} else {
		rest += styles.RowUntitled.Render(fmt.Sprintf("%-16s", title)) + " "
	}
	return number + rest + styles.RowHandle.Render(row.Handle)
}
