package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pnidkit/internal/adapters/filesystem"
	"pnidkit/internal/adapters/sqlite"
	"pnidkit/internal/application"
	"pnidkit/internal/config"
	"pnidkit/internal/logger"
)

// Annotation keys telling the root command how much setup a command needs.
const (
	needs        = "needs"
	needsNothing = "nothing"
	needsPath    = "path"
)

// errProblemsFound makes the process exit 1 without printing anything more.
var errProblemsFound = errors.New("problems found")

var (
	drawingPath string
	configPath  string
	logLevel    string

	cfg     config.Config
	log     zerolog.Logger
	session *application.Session
)

var rootCmd = &cobra.Command{
	Use:   "pnidkit-cli",
	Short: "Index and check P&ID drawing exports",
	Long: `pnidkit-cli indexes the symbol placements of a P&ID drawing export,
lays out and numbers its sheets, and checks the off-page connectors
against the sheet numbering.

The drawing is given with --drawing or PNIDKIT_DRAWING. Settings are read
from pnidkit.toml, PNIDKIT_CONFIG or --config.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Annotations[needs] == needsNothing {
			return nil
		}

		var err error
		cfg, err = config.Load(config.Path(configPath))
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		log = logger.Build(logger.Config{
			Level:     cfg.Log.Level,
			Console:   cfg.Log.Console,
			Component: "cli",
		}, nil)

		drawingPath = config.DrawingPath(drawingPath)
		if drawingPath == "" {
			return fmt.Errorf("no drawing given: use --drawing or set PNIDKIT_DRAWING")
		}
		if cmd.Annotations[needs] == needsPath {
			return nil
		}
		return loadSession(cmd.Context())
	},
}

func loadSession(ctx context.Context) error {
	doc, err := filesystem.Open(drawingPath)
	if err != nil {
		return err
	}
	session, err = application.NewSession(doc, cfg, log)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return session.Load(ctx)
}

// openStore opens the check history of the current drawing
func openStore() (*sqlite.Store, error) {
	store := sqlite.NewStore(cfg.Store.Path)
	if err := store.Open(drawingPath); err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// reportError is the only place command errors are printed; cobra's own
// error output is silenced.
func reportError(w io.Writer, err error) {
	if errors.Is(err, errProblemsFound) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&drawingPath, "drawing", "d", "", "drawing export (.yaml, .json, .msgpack)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default pnidkit.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error, off")
}

// GetSession returns the loaded session
func GetSession() *application.Session {
	return session
}
