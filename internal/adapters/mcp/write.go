package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"pnidkit/internal/application"
	"pnidkit/internal/application/commands"
)

// RegisterWriteTools adds the tools that edit or reload the drawing.
func RegisterWriteTools(s *server.MCPServer, w *Workspace) {
	s.AddTool(reloadTool(), w.locked(reloadHandler))
	s.AddTool(renumberTool(), w.locked(renumberHandler))
	s.AddTool(syncLinesTool(), w.locked(syncLinesHandler))
	s.AddTool(replaceTextTool(), w.locked(replaceTextHandler))
	s.AddTool(replaceBlockTool(), w.locked(replaceBlockHandler))
}

// --- reload ---

func reloadTool() mcp.Tool {
	return mcp.NewTool("reload",
		mcp.WithDescription("Rebuild the symbol index and sheets from the drawing."),
	)
}

func reloadHandler(ctx context.Context, s *application.Session, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.Load(ctx); err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Loaded %d placements on %d sheets.", s.Index().Len(), len(s.Sheets()))), nil
}

// --- renumber_sheets ---

func renumberTool() mcp.Tool {
	return mcp.NewTool("renumber_sheets",
		mcp.WithDescription("Compare title block numbers with the layout numbers. With write, save the new numbers."),
		mcp.WithBoolean("write",
			mcp.Description("Write the new numbers and save the drawing"),
		),
	)
}

func renumberHandler(ctx context.Context, s *application.Session, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := commands.NewRenumberCommand(s, req.GetBool("write", false)).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return formatEntities(result.Sheets, func(r commands.Renumbering) string {
		if !r.Changed {
			return fmt.Sprintf("%s  %s  unchanged", r.Handle, r.Old)
		}
		return fmt.Sprintf("%s  %s -> %s", r.Handle, r.Old, r.New)
	})
}

// --- sync_lines ---

func syncLinesTool() mcp.Tool {
	return mcp.NewTool("sync_lines",
		mcp.WithDescription("Rewrite parseable pipe line tags in canonical form and save the drawing."),
	)
}

func syncLinesHandler(ctx context.Context, s *application.Session, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := commands.NewLinesCommand(s, true).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Synced %d of %d line tags.", result.Synced, len(result.Lines))), nil
}

// --- replace_text ---

func replaceTextTool() mcp.Tool {
	return mcp.NewTool("replace_text",
		mcp.WithDescription("Substitute a regular expression in every attribute text and save the drawing. Use $1 for groups."),
		mcp.WithString("pattern",
			mcp.Description("Regular expression"),
			mcp.Required(),
		),
		mcp.WithString("replacement",
			mcp.Description("Replacement text"),
		),
	)
}

func replaceTextHandler(ctx context.Context, s *application.Session, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cmd := commands.NewReplaceTextCommand(s, req.GetString("pattern", ""), req.GetString("replacement", ""))
	result, err := cmd.Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("Replaced %d texts.", result.Replaced)), nil
}

// --- replace_block ---

func replaceBlockTool() mcp.Tool {
	return mcp.NewTool("replace_block",
		mcp.WithDescription("Replace every placement of one template with another, keeping position, transform and annotations. Reloads the drawing afterwards."),
		mcp.WithString("from",
			mcp.Description("Template name to replace"),
			mcp.Required(),
		),
		mcp.WithString("to",
			mcp.Description("Template name to insert"),
			mcp.Required(),
		),
	)
}

func replaceBlockHandler(ctx context.Context, s *application.Session, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cmd := commands.NewReplaceBlockCommand(s, req.GetString("from", ""), req.GetString("to", ""))
	result, err := cmd.Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	if err := s.Load(ctx); err != nil {
		return toolError(fmt.Errorf("replaced %d blocks but reload failed: %w", len(result.Replaced), err))
	}
	return mcp.NewToolResultText(fmt.Sprintf("Replaced %d blocks.", len(result.Replaced))), nil
}
