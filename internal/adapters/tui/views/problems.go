package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pnidkit/internal/adapters/tui/styles"
	"pnidkit/internal/application"
	"pnidkit/internal/application/commands"
	"pnidkit/internal/domain"
)

// ProblemsModel lists the connector problems of the drawing
type ProblemsModel struct {
	ViewState
	source    *Source
	drawing   string
	paginator *Paginator

	result   *commands.CheckResult
	problems []domain.Problem
}

// NewProblemsModel creates a new problems view model
func NewProblemsModel(source *Source, drawing string) *ProblemsModel {
	return &ProblemsModel{
		source:    source,
		drawing:   drawing,
		paginator: NewPaginator(15),
	}
}

// Init runs the connector checks
func (m *ProblemsModel) Init() tea.Cmd {
	return m.check
}

type problemsLoadedMsg struct {
	result *commands.CheckResult
	err    error
}

func (m *ProblemsModel) check() tea.Msg {
	var result *commands.CheckResult
	err := m.source.With(func(s *application.Session) error {
		var err error
		result, err = commands.NewCheckCommand(s, nil, true, false).Execute(context.Background())
		return err
	})
	return problemsLoadedMsg{result: result, err: err}
}

// Reload re-runs the checks against the session
func (m *ProblemsModel) Reload() tea.Cmd {
	return m.check
}

// Update handles messages for the problems view
func (m *ProblemsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.paginator.SetPageSize(m.pageSize())
		return m, nil

	case problemsLoadedMsg:
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
			return m, nil
		}
		m.result = msg.result
		m.problems = msg.result.Problems()
		m.paginator.SetTotal(len(m.problems))
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		if cmd, ok := sharedKey(msg, m.paginator, SwitchToSheetsMsg{}, m.drawing); ok {
			return m, cmd
		}
		if key.Matches(msg, ListKeys.Copy) {
			m.copySelected()
		}
	}
	return m, nil
}

// Count returns the number of problems found by the last check
func (m *ProblemsModel) Count() int {
	return len(m.problems)
}

// copySelected copies the connector tag, or its handle when the tag is
// missing.
func (m *ProblemsModel) copySelected() {
	if len(m.problems) == 0 {
		return
	}
	p := m.problems[m.paginator.Cursor()]
	text := p.Tag
	if text == "" {
		text = p.Handle
	}
	if err := copyToClipboard(text); err != nil {
		m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	m.SetMessage("Copied "+text, false)
}

// View renders the problems view
func (m *ProblemsModel) View() string {
	v := NewViewBuilder().Title("pnidkit").Tabs("Problems")

	if m.result == nil {
		return v.Muted("Checking connectors...").Message(m.Message, m.MessageErr).String()
	}

	if len(m.problems) == 0 {
		v.Line(styles.Success.Render(fmt.Sprintf("No problems found (%d connectors skipped)", m.result.Skipped)))
	} else {
		v.Muted(fmt.Sprintf("%d problems · %d skipped · page %d/%d",
			len(m.problems), m.result.Skipped, m.paginator.CurrentPage(), m.paginator.TotalPages()))
		v.BlankLine()

		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			v.Line(renderProblem(m.problems[i], i == m.paginator.Cursor()))
		}
	}

	return v.Message(m.Message, m.MessageErr).
		Help(ListKeys.Up, ListKeys.Down, ListKeys.NextPage, ListKeys.Copy, ListKeys.Reload, ListKeys.Tab, ListKeys.Find, ListKeys.Quit).
		String()
}

func renderProblem(p domain.Problem, selected bool) string {
	sheet := p.Sheet
	if sheet == "" {
		sheet = "-"
	}
	tag := p.Tag
	if tag == "" {
		tag = p.Handle
	}
	text := fmt.Sprintf("%-6s %-14s %s", sheet, tag, p.Message)
	if selected {
		return styles.RowSelected.Render(text)
	}
	return styles.RowNumber.Render(fmt.Sprintf("%-6s", sheet)) + " " +
		fmt.Sprintf("%-14s ", tag) +
		lipgloss.NewStyle().Foreground(styles.ProblemColor(p.Message)).Render(p.Message)
}
