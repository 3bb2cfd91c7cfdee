package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"pnidkit/internal/application"
	"pnidkit/internal/application/commands"
	"pnidkit/internal/domain"
)

// RegisterReadTools adds all read-only drawing tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, w *Workspace) {
	s.AddTool(pingTool(), w.locked(pingHandler))
	s.AddTool(listSheetsTool(), w.locked(listSheetsHandler))
	s.AddTool(checkTool(), w.locked(w.checkHandler))
	s.AddTool(linksTool(), w.locked(linksHandler))
	s.AddTool(findTool(), w.locked(findHandler))
	s.AddTool(searchTool(), w.locked(searchHandler))
	s.AddTool(loopsTool(), w.locked(loopsHandler))
	s.AddTool(parseLineTagTool(), parseLineTagHandler)
	s.AddTool(genLineTagTool(), genLineTagHandler)
}

// --- ping ---

func pingTool() mcp.Tool {
	return mcp.NewTool("ping",
		mcp.WithDescription("Report which drawing is loaded, how many placements were indexed and how many sheets were found."),
	)
}

func pingHandler(_ context.Context, s *application.Session, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.Loaded() {
		return toolError(application.ErrNotLoaded)
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s: %d placements, %d sheets",
		s.Document().Name(), s.Index().Len(), len(s.Sheets()))), nil
}

// --- list_sheets ---

func listSheetsTool() mcp.Tool {
	return mcp.NewTool("list_sheets",
		mcp.WithDescription("List the drawing's sheets in layout order (top row first, left to right) with assigned and title block numbers."),
	)
}

func listSheetsHandler(ctx context.Context, s *application.Session, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := commands.NewListSheetsCommand(s).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return formatEntities(result.Sheets, func(r commands.SheetRow) string {
		if !r.HasTitle {
			return fmt.Sprintf("row %d  %s  (untitled)", r.Row, r.Handle)
		}
		return fmt.Sprintf("row %d  %s  %s  title %s", r.Row, r.Handle, r.Number, r.Title)
	})
}

// --- check_connectors ---

func checkTool() mcp.Tool {
	return mcp.NewTool("check_connectors",
		mcp.WithDescription("Check off-page connectors against the sheet numbering. Returns one line per problem."),
		mcp.WithBoolean("utility",
			mcp.Description("Also check utility connectors"),
		),
		mcp.WithBoolean("record",
			mcp.Description("Store the run in the check history"),
		),
	)
}

func (w *Workspace) checkHandler(ctx context.Context, s *application.Session, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cmd := commands.NewCheckCommand(s, w.store, req.GetBool("utility", false), req.GetBool("record", false))
	result, err := cmd.Execute(ctx)
	if err != nil {
		return toolError(err)
	}

	problems := result.Problems()
	if len(problems) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No problems in %d connectors.", result.Run.Connectors)), nil
	}
	return formatEntities(problems, formatProblem)
}

// --- connector_links ---

func linksTool() mcp.Tool {
	return mcp.NewTool("connector_links",
		mcp.WithDescription("Pair exiting and entering connectors by tag and list duplicate tags."),
	)
}

func linksHandler(ctx context.Context, s *application.Session, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := commands.NewLinksCommand(s).Execute(ctx)
	if err != nil {
		return toolError(err)
	}

	var sb strings.Builder
	for _, l := range result.Links {
		sb.WriteString(l.String())
		sb.WriteByte('\n')
	}
	if len(result.Duplicates) > 0 {
		fmt.Fprintf(&sb, "duplicate tags: %s\n", strings.Join(result.Duplicates, ", "))
	}
	if sb.Len() == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- find_blocks ---

func findTool() mcp.Tool {
	return mcp.NewTool("find_blocks",
		mcp.WithDescription("List placements whose template name fully matches a regular expression."),
		mcp.WithString("pattern",
			mcp.Description("Template name pattern, e.g. Connector_.* or Valve_(Gate|Ball)"),
			mcp.Required(),
		),
	)
}

func findHandler(ctx context.Context, s *application.Session, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := commands.NewFindCommand(s, req.GetString("pattern", "")).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return formatEntities(rows, formatRow)
}

// --- search_tags ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search_tags",
		mcp.WithDescription("Fuzzy search placement tags and template names."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
	)
}

func searchHandler(ctx context.Context, s *application.Session, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return toolError(fmt.Errorf("query is required"))
	}

	results, err := commands.NewSearchCommand(s, query).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No results found."), nil
	}
	return formatEntities(results, func(r commands.SearchResult) string {
		return formatRow(r.FindRow)
	})
}

// --- instrument_loops ---

func loopsTool() mcp.Tool {
	return mcp.NewTool("instrument_loops",
		mcp.WithDescription("Group instrument bubbles by control loop."),
	)
}

func loopsHandler(ctx context.Context, s *application.Session, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	loops, err := commands.NewLoopsCommand(s).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return formatEntities(loops, func(l domain.Loop) string {
		return fmt.Sprintf("%s  %s", l.Name, strings.Join(l.Tags, " "))
	})
}

// --- parse_line_tag / gen_line_tag ---

func parseLineTagTool() mcp.Tool {
	return mcp.NewTool("parse_line_tag",
		mcp.WithDescription("Split a pipe line tag such as CW101-100-A1-H into service, number, size, spec and insulation."),
		mcp.WithString("tag",
			mcp.Description("Line tag text"),
			mcp.Required(),
		),
	)
}

func parseLineTagHandler(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("tag", "")
	t := application.ParseLineTag(text)
	if t.IsZero() {
		return toolError(fmt.Errorf("not a line tag: %q", text))
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"service: %s\nnumber: %s\nsize: %s\nspec: %s\ninsulation: %s\n",
		t.Service, t.Number, t.Size, t.Spec, t.Insulation)), nil
}

func genLineTagTool() mcp.Tool {
	return mcp.NewTool("gen_line_tag",
		mcp.WithDescription("Generate a pipe line tag from its fields. Missing fields are written as ?; insulation is omitted when empty."),
		mcp.WithString("service", mcp.Description("Service code, e.g. CW")),
		mcp.WithString("number", mcp.Description("Line number")),
		mcp.WithString("size", mcp.Description("Nominal size")),
		mcp.WithString("spec", mcp.Description("Piping spec")),
		mcp.WithString("insulation", mcp.Description("Insulation code")),
	)
}

func genLineTagHandler(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(application.GenLineTag(
		req.GetString("service", ""),
		req.GetString("number", ""),
		req.GetString("size", ""),
		req.GetString("spec", ""),
		req.GetString("insulation", ""),
	)), nil
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatProblem(p domain.Problem) string {
	return fmt.Sprintf("[%s]  %s  %s  (%.2f, %.2f)  %s", p.Sheet, p.Tag, p.Message, p.X, p.Y, p.Handle)
}

func formatRow(r commands.FindRow) string {
	return fmt.Sprintf("%s  %s  [%s]  %s", r.Handle, r.Name, r.Sheet, r.Tag)
}
