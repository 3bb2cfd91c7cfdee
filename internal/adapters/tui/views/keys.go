package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ListKeyMap defines key bindings shared by the sheet and problem lists
type ListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Copy     key.Binding
	Edit     key.Binding
	Reload   key.Binding
	Tab      key.Binding
	Find     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var ListKeys = ListKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "prev page"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit drawing"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch"),
	),
	Find: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "find"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// sharedKey handles the navigation and view switching keys common to both
// lists. other is the view tab switches to. ok is false for any other key.
func sharedKey(msg tea.KeyMsg, p *Paginator, other tea.Msg, drawing string) (cmd tea.Cmd, ok bool) {
	switch {
	case key.Matches(msg, ListKeys.Quit):
		return tea.Quit, true
	case key.Matches(msg, ListKeys.Up):
		p.CursorUp()
	case key.Matches(msg, ListKeys.Down):
		p.CursorDown()
	case key.Matches(msg, ListKeys.NextPage):
		p.NextPage()
	case key.Matches(msg, ListKeys.PrevPage):
		p.PrevPage()
	case key.Matches(msg, ListKeys.Tab):
		return send(other), true
	case key.Matches(msg, ListKeys.Find):
		return send(SwitchToFindMsg{}), true
	case key.Matches(msg, ListKeys.Help):
		return send(SwitchToHelpMsg{}), true
	case key.Matches(msg, ListKeys.Reload):
		return send(ReloadMsg{}), true
	case key.Matches(msg, ListKeys.Edit):
		return send(OpenEditorMsg{Path: drawing}), true
	default:
		return nil, false
	}
	return nil, true
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
