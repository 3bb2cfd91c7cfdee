package views

import (
	"sync"

	"pnidkit/internal/application"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// pageSize returns how many list rows fit below a view's header and
// above its footer.
func (s *ViewState) pageSize() int {
	if s.Height <= 0 {
		return 15
	}
	return max(s.Height-12, 3)
}

// Source hands the session to one tea.Cmd at a time. Bubbletea runs
// commands on their own goroutines and a session is not safe for
// concurrent use.
type Source struct {
	mu      sync.Mutex
	session *application.Session
}

// NewSource wraps a loaded session
func NewSource(session *application.Session) *Source {
	return &Source{session: session}
}

// With runs fn while holding the session
func (s *Source) With(fn func(*application.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.session)
}

// Messages shared between views and the app

// ReloadMsg asks the app to re-read the drawing
type ReloadMsg struct{}

// LoadedMsg is sent after the drawing has been re-read
type LoadedMsg struct {
	Err error
}

// OpenEditorMsg requests opening a file in editor
type OpenEditorMsg struct {
	Path string
}

type SwitchToSheetsMsg struct{}

type SwitchToProblemsMsg struct{}

type SwitchToFindMsg struct{}

type SwitchToHelpMsg struct{}
