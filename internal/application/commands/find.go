package commands

import (
	"context"

	"pnidkit/internal/application"
	"pnidkit/internal/domain"
)

// FindRow is one placement matching a find pattern
type FindRow struct {
	Handle string
	Name   string
	Sheet  string
	Tag    string
	At     domain.Point
}

// FindCommand lists placements whose template name matches a pattern
type FindCommand struct {
	session *application.Session
	Pattern string
}

// NewFindCommand creates a new FindCommand
func NewFindCommand(session *application.Session, pattern string) *FindCommand {
	return &FindCommand{session: session, Pattern: pattern}
}

// Validate checks the pattern compiles
func (c *FindCommand) Validate() error {
	_, err := application.ValidatePattern("pattern", c.Pattern)
	return err
}

// Execute runs the find command
func (c *FindCommand) Execute(ctx context.Context) ([]FindRow, error) {
	re, err := application.ValidatePattern("pattern", c.Pattern)
	if err != nil {
		return nil, err
	}
	if err := requireLoaded(c.session); err != nil {
		return nil, err
	}

	matches := c.session.Index().Search(re)
	rows := make([]FindRow, 0, len(matches))
	for _, p := range matches {
		rows = append(rows, describe(c.session, p))
	}
	return rows, nil
}

func describe(s *application.Session, p domain.Placement) FindRow {
	row := FindRow{Handle: p.Handle(), Name: p.Name(), At: p.InsertionPoint()}
	if sheet := s.Locate(row.At); sheet != nil {
		row.Sheet = sheet.Number
	}
	// Placements without a TAG attribute list with an empty tag.
	row.Tag, _ = p.AttributeText(domain.AttrTag)
	return row
}
