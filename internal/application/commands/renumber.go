package commands

import (
	"context"
	"fmt"

	"pnidkit/internal/application"
	"pnidkit/internal/domain"
)

// Renumbering compares a sheet's title number with its assigned number
type Renumbering struct {
	Handle  string
	Row     int
	Old     string
	New     string
	Changed bool
}

// RenumberResult contains the result of renumbering sheets
type RenumberResult struct {
	Sheets  []Renumbering
	Changed int
	Written bool
}

// RenumberCommand writes the layout numbers into the title blocks
type RenumberCommand struct {
	session *application.Session
	Write   bool
}

// NewRenumberCommand creates a new RenumberCommand
func NewRenumberCommand(session *application.Session, write bool) *RenumberCommand {
	return &RenumberCommand{session: session, Write: write}
}

// Execute compares every titled sheet and, with Write, saves the new numbers
func (c *RenumberCommand) Execute(ctx context.Context) (*RenumberResult, error) {
	if err := requireLoaded(c.session); err != nil {
		return nil, err
	}

	digits := c.session.Config().Drawing.NumberDigits
	result := &RenumberResult{}
	var pending []*domain.Sheet
	for _, s := range c.session.Sheets() {
		if !s.HasTitle() {
			continue
		}
		old, err := s.Tag()
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", s.Handle, err)
		}
		next := RenumberedTag(old, s.Number, digits)
		r := Renumbering{Handle: s.Handle, Row: s.Row, Old: old, New: next, Changed: old != next}
		if r.Changed {
			result.Changed++
			pending = append(pending, s)
		}
		result.Sheets = append(result.Sheets, r)
	}

	if !c.Write || len(pending) == 0 {
		return result, nil
	}
	for _, s := range pending {
		old, _ := s.Tag()
		if err := s.SetTag(RenumberedTag(old, s.Number, digits)); err != nil {
			return nil, fmt.Errorf("failed to renumber sheet %s: %w", s.Handle, err)
		}
	}
	if err := c.session.Document().Save(ctx); err != nil {
		return nil, fmt.Errorf("failed to save drawing: %w", err)
	}
	result.Written = true
	c.session.Logger().Info().Int("sheets", result.Changed).Msg("sheets renumbered")
	return result, nil
}

// RenumberedTag replaces the trailing digits characters of old with number,
// keeping any project prefix. A tag shorter than that is replaced whole.
func RenumberedTag(old, number string, digits int) string {
	if len(old) <= digits {
		return number
	}
	return old[:len(old)-digits] + number
}
