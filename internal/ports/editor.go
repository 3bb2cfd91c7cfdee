package ports

import "os/exec"

// EditorOpener opens a drawing export in an external editor
type EditorOpener interface {
	// OpenFile runs the editor on path and waits for it to exit
	OpenFile(path string) error

	// Command builds the editor process without starting it, for tea.ExecProcess
	Command(path string) (*exec.Cmd, error)
}
