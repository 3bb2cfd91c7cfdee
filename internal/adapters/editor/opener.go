package editor

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"pnidkit/internal/ports"
)

// ErrNoEditor is returned when neither an override, $VISUAL, $EDITOR nor a
// known editor on PATH is available.
var ErrNoEditor = errors.New("no editor found: set $EDITOR or pass --editor")

// fallbacks are tried in order when no editor is configured.
var fallbacks = []string{"nvim", "vim", "vi", "nano"}

// Opener implements ports.EditorOpener
type Opener struct {
	override string
	getenv   func(string) string
	lookPath func(string) (string, error)
}

var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates an editor opener. A non-empty override wins over the
// environment. It may carry arguments, e.g. "code --wait".
func NewOpener(override string) *Opener {
	return &Opener{
		override: override,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
	}
}

// OpenFile opens a drawing export in the user's preferred editor
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening path, wired to the terminal so
// bubbletea's ExecProcess can hand it over.
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.argv()
	if len(argv) == 0 {
		return nil, ErrNoEditor
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// argv resolves the editor command line
func (o *Opener) argv() []string {
	for _, candidate := range []string{o.override, o.getenv("VISUAL"), o.getenv("EDITOR")} {
		if fields := strings.Fields(candidate); len(fields) > 0 {
			return fields
		}
	}
	for _, name := range fallbacks {
		if path, err := o.lookPath(name); err == nil {
			return []string{path}
		}
	}
	return nil
}
