package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pnidkit.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_OverridesKeepOtherDefaults(t *testing.T) {
	path := writeConfig(t, `
[drawing]
number_digits = 5
start_unit = 2

[blocks]
bubble = "BUBBLE_.*"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Drawing.NumberDigits != 5 {
		t.Errorf("expected number_digits 5, got %d", cfg.Drawing.NumberDigits)
	}
	if cfg.Drawing.UnitDigits != 2 {
		t.Errorf("expected default unit_digits 2, got %d", cfg.Drawing.UnitDigits)
	}
	if cfg.Drawing.StartUnit != 2 {
		t.Errorf("expected start_unit 2, got %d", cfg.Drawing.StartUnit)
	}
	if cfg.Blocks.Bubble != "BUBBLE_.*" {
		t.Errorf("expected bubble pattern override, got %s", cfg.Blocks.Bubble)
	}
	if cfg.Blocks.Border != Default().Blocks.Border {
		t.Errorf("expected default border pattern, got %s", cfg.Blocks.Border)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Log.Level)
	}

	check := cfg.Check()
	if check.NumberDigits != 5 || check.UnitDigits != 2 || check.StartUnit != 2 {
		t.Errorf("unexpected check config: %+v", check)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"bad toml", "[drawing\n", "failed to parse TOML"},
		{"zero digits", "[drawing]\nnumber_digits = 0\n", "number_digits"},
		{"unit wider than number", "[drawing]\nunit_digits = 4\n", "unit_digits"},
		{"bad pattern", "[blocks]\nborder = \"Border(\"\n", "[blocks].border"},
		{"empty pattern", "[blocks]\nline = \"\"\n", "missing [blocks].line"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv(envConfig, "")
	if got := Path(""); got != DefaultConfigFile {
		t.Errorf("expected %s, got %s", DefaultConfigFile, got)
	}

	t.Setenv(envConfig, "/etc/pnidkit.toml")
	if got := Path(""); got != "/etc/pnidkit.toml" {
		t.Errorf("expected env path, got %s", got)
	}
	if got := Path("local.toml"); got != "local.toml" {
		t.Errorf("expected flag path, got %s", got)
	}
}

func TestDrawingPath(t *testing.T) {
	t.Setenv(envDrawing, "plant.yaml")
	if got := DrawingPath(""); got != "plant.yaml" {
		t.Errorf("expected env drawing, got %s", got)
	}
	if got := DrawingPath("other.json"); got != "other.json" {
		t.Errorf("expected flag drawing, got %s", got)
	}
}
