package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"pnidkit/internal/adapters/editor"
	"pnidkit/internal/adapters/filesystem"
	"pnidkit/internal/adapters/tui"
	"pnidkit/internal/application"
	"pnidkit/internal/config"
	"pnidkit/internal/logger"
)

func main() {
	drawingFlag := flag.String("drawing", "", "drawing export (default $PNIDKIT_DRAWING)")
	configFlag := flag.String("config", "", "config file (default pnidkit.toml)")
	editorFlag := flag.String("editor", "", "editor command (default $VISUAL, then $EDITOR)")
	logFlag := flag.String("log", "", "write logs to this file; the terminal belongs to the UI")
	flag.Parse()

	if err := run(*drawingFlag, *configFlag, *editorFlag, *logFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(drawingFlag, configFlag, editorFlag, logFlag string) error {
	cfg, err := config.Load(config.Path(configFlag))
	if err != nil {
		return err
	}

	log := logger.Nop()
	if logFlag != "" {
		f, err := os.OpenFile(logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log = logger.Build(logger.Config{Level: cfg.Log.Level, Component: "tui"}, f)
	}

	drawing := config.DrawingPath(drawingFlag)
	if drawing == "" {
		return fmt.Errorf("no drawing given: use -drawing or set PNIDKIT_DRAWING")
	}
	session, err := openSession(drawing, cfg, log)
	if err != nil {
		return err
	}

	app := tui.NewApp(session, editor.NewOpener(editorFlag))
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func openSession(drawing string, cfg config.Config, log zerolog.Logger) (*application.Session, error) {
	doc, err := filesystem.Open(drawing)
	if err != nil {
		return nil, err
	}
	session, err := application.NewSession(doc, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := session.Load(context.Background()); err != nil {
		return nil, err
	}
	return session, nil
}
