package main

import (
	"context"
	"flag"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"pnidkit/internal/adapters/filesystem"
	mcpadapter "pnidkit/internal/adapters/mcp"
	"pnidkit/internal/adapters/sqlite"
	"pnidkit/internal/application"
	"pnidkit/internal/config"
	"pnidkit/internal/logger"
)

func main() {
	drawingFlag := flag.String("drawing", "", "drawing export (default $PNIDKIT_DRAWING)")
	configFlag := flag.String("config", "", "config file (default pnidkit.toml)")
	flag.Parse()

	cfg, err := config.Load(config.Path(*configFlag))
	// stdout carries the protocol, so logs go to stderr without colour.
	log := logger.Build(logger.Config{Level: cfg.Log.Level, Component: "mcp"}, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	drawing := config.DrawingPath(*drawingFlag)
	if drawing == "" {
		log.Fatal().Msg("no drawing given: use -drawing or set PNIDKIT_DRAWING")
	}
	doc, err := filesystem.Open(drawing)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open drawing")
	}
	session, err := application.NewSession(doc, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := session.Load(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to load drawing")
	}

	store := sqlite.NewStore(cfg.Store.Path)
	if err := store.Open(drawing); err != nil {
		log.Fatal().Err(err).Msg("failed to open history")
	}
	defer store.Close()

	mcpServer := server.NewMCPServer(
		"pnidkit-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	workspace := mcpadapter.NewWorkspace(session, store)
	mcpadapter.RegisterReadTools(mcpServer, workspace)
	mcpadapter.RegisterWriteTools(mcpServer, workspace)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatal().Err(err).Msg("pnidkit-mcp stopped")
	}
}
