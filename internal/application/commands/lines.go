package commands

import (
	"context"
	"fmt"

	"pnidkit/internal/application"
	"pnidkit/internal/domain"
)

// LineRow describes one pipe tag
type LineRow struct {
	Handle    string
	Sheet     string
	Raw       string
	Canonical string
	Valid     bool
	// Changed is set when the stored text differs from the canonical form.
	Changed bool
}

// LinesResult contains every pipe tag and how many were rewritten
type LinesResult struct {
	Lines  []LineRow
	Synced int
}

// LinesCommand lists pipe tags and optionally rewrites them canonically
type LinesCommand struct {
	session *application.Session
	Sync    bool
}

// NewLinesCommand creates a new LinesCommand
func NewLinesCommand(session *application.Session, sync bool) *LinesCommand {
	return &LinesCommand{session: session, Sync: sync}
}

// Execute runs the lines command
func (c *LinesCommand) Execute(ctx context.Context) (*LinesResult, error) {
	if err := requireLoaded(c.session); err != nil {
		return nil, err
	}

	result := &LinesResult{}
	var stale []*domain.Line
	for _, l := range c.session.Lines() {
		raw, err := l.RawTag()
		if err != nil {
			return nil, err
		}
		row := LineRow{
			Handle: l.Handle(),
			Raw:    raw,
			Valid:  l.Valid(),
		}
		if s := l.Sheet(); s != nil {
			row.Sheet = s.Number
		}
		if row.Valid {
			row.Canonical = l.Tag()
			row.Changed = row.Canonical != raw
			if row.Changed {
				stale = append(stale, l)
			}
		}
		result.Lines = append(result.Lines, row)
	}

	if !c.Sync || len(stale) == 0 {
		return result, nil
	}
	for _, l := range stale {
		if err := l.Sync(); err != nil {
			return nil, fmt.Errorf("failed to sync line %s: %w", l.Handle(), err)
		}
		result.Synced++
	}
	if err := c.session.Document().Save(ctx); err != nil {
		return nil, fmt.Errorf("failed to save drawing: %w", err)
	}
	return result, nil
}
