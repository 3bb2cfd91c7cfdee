package editor

import (
	"errors"
	"os/exec"
	"slices"
	"testing"
)

func newTestOpener(override string, env map[string]string, onPath ...string) *Opener {
	o := NewOpener(override)
	o.getenv = func(k string) string { return env[k] }
	o.lookPath = func(name string) (string, error) {
		if slices.Contains(onPath, name) {
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	}
	return o
}

func TestCommand_Resolution(t *testing.T) {
	tests := []struct {
		name     string
		override string
		env      map[string]string
		onPath   []string
		want     []string
	}{
		{"override wins", "code --wait", map[string]string{"EDITOR": "vim"}, nil, []string{"code", "--wait", "plant.yaml"}},
		{"visual before editor", "", map[string]string{"VISUAL": "emacs", "EDITOR": "vim"}, nil, []string{"emacs", "plant.yaml"}},
		{"editor", "", map[string]string{"EDITOR": "hx"}, nil, []string{"hx", "plant.yaml"}},
		{"blank env ignored", "  ", map[string]string{"EDITOR": " "}, []string{"nano"}, []string{"/usr/bin/nano", "plant.yaml"}},
		{"first fallback on path", "", nil, []string{"vi", "nano"}, []string{"/usr/bin/vi", "plant.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := newTestOpener(tt.override, tt.env, tt.onPath...).Command("plant.yaml")
			if err != nil {
				t.Fatalf("Command failed: %v", err)
			}
			if !slices.Equal(cmd.Args, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, cmd.Args)
			}
		})
	}
}

func TestCommand_NoEditor(t *testing.T) {
	_, err := newTestOpener("", nil).Command("plant.yaml")
	if !errors.Is(err, ErrNoEditor) {
		t.Errorf("expected ErrNoEditor, got %v", err)
	}
}
