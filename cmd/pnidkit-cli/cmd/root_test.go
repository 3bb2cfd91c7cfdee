package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestRootCommand_PrintsNoErrorItself(t *testing.T) {
	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"tag", "parse"})
	t.Cleanup(func() {
		rootCmd.SetErr(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected an argument error")
	}
	if stderr.Len() != 0 {
		t.Errorf("expected cobra to stay silent, got %q", stderr.String())
	}
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"problems found", errProblemsFound, ""},
		{"wrapped problems found", fmt.Errorf("check: %w", errProblemsFound), ""},
		{"other error", errors.New("no drawing given"), "Error: no drawing given\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reportError(&buf, tt.err)
			if buf.String() != tt.want {
				t.Errorf("reportError() wrote %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
