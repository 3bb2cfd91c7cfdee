package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"pnidkit/internal/domain"
)

const (
	DefaultConfigFile = "pnidkit.toml"

	envConfig  = "PNIDKIT_CONFIG"
	envDrawing = "PNIDKIT_DRAWING"
)

// Drawing holds the sheet numbering convention.
type Drawing struct {
	NumberDigits  int `toml:"number_digits"`
	UnitDigits    int `toml:"unit_digits"`
	StartUnit     int `toml:"start_unit"`
	StartSequence int `toml:"start_sequence"`
}

// Blocks holds full-match template name patterns for each symbol kind.
type Blocks struct {
	Border           string `toml:"border"`
	Title            string `toml:"title"`
	MainConnector    string `toml:"main_connector"`
	UtilityConnector string `toml:"utility_connector"`
	Bubble           string `toml:"bubble"`
	Line             string `toml:"line"`
}

type Log struct {
	Level   string `toml:"level"`
	Console bool   `toml:"console"`
}

type Store struct {
	// Path overrides the history database location.
	Path string `toml:"path"`
}

type Config struct {
	Drawing Drawing `toml:"drawing"`
	Blocks  Blocks  `toml:"blocks"`
	Log     Log     `toml:"log"`
	Store   Store   `toml:"store"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Drawing: Drawing{
			NumberDigits:  4,
			UnitDigits:    2,
			StartUnit:     1,
			StartSequence: 1,
		},
		Blocks: Blocks{
			Border:           `Border.*`,
			Title:            `TitleBlock.*`,
			MainConnector:    `Connector_Main`,
			UtilityConnector: `Connector_Utility`,
			Bubble:           `DI_LOCAL|SH_PRI_FRONT|SC_LOCAL`,
			Line:             `pipe_tag`,
		},
		Log: Log{Level: "info", Console: true},
	}
}

// Path resolves the config file: explicit flag, then PNIDKIT_CONFIG, then
// ./pnidkit.toml.
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(envConfig); env != "" {
		return env
	}
	return DefaultConfigFile
}

// DrawingPath returns the drawing from PNIDKIT_DRAWING when no flag is given.
func DrawingPath(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(envDrawing)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects digit widths and block patterns the checks cannot use.
func (c Config) Validate() error {
	d := c.Drawing
	if d.NumberDigits <= 0 {
		return fmt.Errorf("[drawing].number_digits must be positive, got %d", d.NumberDigits)
	}
	if d.UnitDigits <= 0 || d.UnitDigits >= d.NumberDigits {
		return fmt.Errorf("[drawing].unit_digits must be between 1 and %d, got %d", d.NumberDigits-1, d.UnitDigits)
	}
	if d.StartSequence < 0 {
		return fmt.Errorf("[drawing].start_sequence must not be negative, got %d", d.StartSequence)
	}

	patterns := map[string]string{
		"border":            c.Blocks.Border,
		"title":             c.Blocks.Title,
		"main_connector":    c.Blocks.MainConnector,
		"utility_connector": c.Blocks.UtilityConnector,
		"bubble":            c.Blocks.Bubble,
		"line":              c.Blocks.Line,
	}
	for key, expr := range patterns {
		if strings.TrimSpace(expr) == "" {
			return fmt.Errorf("missing [blocks].%s", key)
		}
		if _, err := domain.CompileFullMatch(expr); err != nil {
			return fmt.Errorf("[blocks].%s: %w", key, err)
		}
	}
	return nil
}

// Check returns the numbering settings the connector checks need.
func (c Config) Check() domain.CheckConfig {
	return domain.CheckConfig{
		NumberDigits: c.Drawing.NumberDigits,
		UnitDigits:   c.Drawing.UnitDigits,
		StartUnit:    c.Drawing.StartUnit,
	}
}
