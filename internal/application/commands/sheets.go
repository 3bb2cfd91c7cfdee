package commands

import (
	"context"

	"pnidkit/internal/application"
	"pnidkit/internal/domain"
)

func requireLoaded(s *application.Session) error {
	if s == nil || !s.Loaded() {
		return application.ErrNotLoaded
	}
	return nil
}

// SheetRow is one sheet in layout order
type SheetRow struct {
	Handle   string
	Row      int
	Number   string
	Title    string // drawing number in the title block, "" when untitled
	HasTitle bool
	Bounds   domain.Rect
}

// SheetsResult contains the laid out sheets
type SheetsResult struct {
	Sheets        []SheetRow
	DroppedTitles []string
}

// ListSheetsCommand lists the sheets of the loaded drawing
type ListSheetsCommand struct {
	session *application.Session
}

// NewListSheetsCommand creates a new ListSheetsCommand
func NewListSheetsCommand(session *application.Session) *ListSheetsCommand {
	return &ListSheetsCommand{session: session}
}

// Execute runs the list sheets command
func (c *ListSheetsCommand) Execute(ctx context.Context) (*SheetsResult, error) {
	if err := requireLoaded(c.session); err != nil {
		return nil, err
	}

	result := &SheetsResult{}
	for _, s := range c.session.Sheets() {
		title, err := s.Tag()
		if err != nil {
			return nil, err
		}
		result.Sheets = append(result.Sheets, SheetRow{
			Handle:   s.Handle,
			Row:      s.Row,
			Number:   s.Number,
			Title:    title,
			HasTitle: s.HasTitle(),
			Bounds:   s.Bounds,
		})
	}
	for _, t := range c.session.DroppedTitles() {
		result.DroppedTitles = append(result.DroppedTitles, t.Handle())
	}
	return result, nil
}

// IndexEntry is one bucket of the symbol index
type IndexEntry struct {
	Name  string
	Count int
}

// IndexCommand summarizes the symbol index
type IndexCommand struct {
	session *application.Session
}

// NewIndexCommand creates a new IndexCommand
func NewIndexCommand(session *application.Session) *IndexCommand {
	return &IndexCommand{session: session}
}

// Execute returns bucket names and sizes in index order
func (c *IndexCommand) Execute(ctx context.Context) ([]IndexEntry, error) {
	if err := requireLoaded(c.session); err != nil {
		return nil, err
	}

	idx := c.session.Index()
	entries := make([]IndexEntry, 0, len(idx.Names()))
	for _, name := range idx.Names() {
		entries = append(entries, IndexEntry{Name: name, Count: idx.Count(name)})
	}
	return entries, nil
}
