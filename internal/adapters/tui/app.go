package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"pnidkit/internal/adapters/tui/views"
	"pnidkit/internal/application"
	"pnidkit/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewSheets ViewState = iota
	ViewProblems
	ViewFind
	ViewHelp
)

// App is the main TUI application model
type App struct {
	source  *views.Source
	drawing string
	editor  ports.EditorOpener

	state    ViewState
	sheets   *views.SheetsModel
	problems *views.ProblemsModel
	find     *views.FindModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application over a loaded session. editor may
// be nil, in which case the edit key does nothing.
func NewApp(session *application.Session, editor ports.EditorOpener) *App {
	source := views.NewSource(session)
	drawing := session.Document().Name()
	return &App{
		source:   source,
		drawing:  drawing,
		editor:   editor,
		state:    ViewSheets,
		sheets:   views.NewSheetsModel(source, drawing),
		problems: views.NewProblemsModel(source, drawing),
		find:     views.NewFindModel(source),
		help:     views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.sheets.Init(), a.problems.Init())
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.sheets.Update(msg)
		a.problems.Update(msg)
		a.find.Update(msg)
		a.help.Update(msg)
		return a, nil

	// View switching messages
	case views.SwitchToSheetsMsg:
		a.state = ViewSheets
		return a, nil

	case views.SwitchToProblemsMsg:
		a.state = ViewProblems
		return a, nil

	case views.SwitchToFindMsg:
		a.state = ViewFind
		a.find.Reset()
		return a, a.find.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.ReloadMsg:
		return a, a.reload

	case views.LoadedMsg:
		if msg.Err != nil {
			a.notify(fmt.Sprintf("Reload failed: %v", msg.Err), true)
			return a, nil
		}
		a.notify("Drawing reloaded", false)
		return a, tea.Batch(a.sheets.Reload(), a.problems.Reload())

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.notify(fmt.Sprintf("Editor failed: %v", msg.err), true)
			return a, nil
		}
		// The export may have changed on disk.
		return a, a.reload
	}

	// Load results go to every view. Keys go to the current one.
	if _, ok := msg.(tea.KeyMsg); !ok {
		_, sc := a.sheets.Update(msg)
		_, pc := a.problems.Update(msg)
		_, fc := a.find.Update(msg)
		return a, tea.Batch(sc, pc, fc)
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewSheets:
		_, cmd = a.sheets.Update(msg)
	case ViewProblems:
		_, cmd = a.problems.Update(msg)
	case ViewFind:
		_, cmd = a.find.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// notify shows msg on the list the user is looking at.
func (a *App) notify(msg string, isErr bool) {
	if a.state == ViewProblems {
		a.problems.SetMessage(msg, isErr)
		return
	}
	a.sheets.SetMessage(msg, isErr)
}

func (a *App) reload() tea.Msg {
	err := a.source.With(func(s *application.Session) error {
		return s.Load(context.Background())
	})
	return views.LoadedMsg{Err: err}
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewProblems:
		return a.problems.View()
	case ViewFind:
		return a.find.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.sheets.View()
	}
}
