package mcp

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"pnidkit/internal/application"
	"pnidkit/internal/ports"
)

// Workspace serializes tool calls against one loaded drawing.
type Workspace struct {
	mu      sync.Mutex
	session *application.Session
	store   ports.ReportStore
}

// NewWorkspace wraps a loaded session. store may be nil, in which case
// check runs cannot be recorded.
func NewWorkspace(session *application.Session, store ports.ReportStore) *Workspace {
	return &Workspace{session: session, store: store}
}

type sessionHandler func(ctx context.Context, s *application.Session, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

// locked runs h while holding the workspace lock.
func (w *Workspace) locked(h sessionHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		w.mu.Lock()
		defer w.mu.Unlock()
		return h(ctx, w.session, req)
	}
}
