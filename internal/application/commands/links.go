package commands

import (
	"context"

	"pnidkit/internal/application"
	"pnidkit/internal/domain"
)

// LinksResult contains connector pairs and tags used too often
type LinksResult struct {
	Links      []domain.Link
	Duplicates []string
}

// LinksCommand pairs exiting and entering main connectors by tag
type LinksCommand struct {
	session *application.Session
}

// NewLinksCommand creates a new LinksCommand
func NewLinksCommand(session *application.Session) *LinksCommand {
	return &LinksCommand{session: session}
}

// Execute runs the links command
func (c *LinksCommand) Execute(ctx context.Context) (*LinksResult, error) {
	if err := requireLoaded(c.session); err != nil {
		return nil, err
	}
	links, dups := domain.LinkConnectors(c.session.MainConnectors(), c.session.Config().Check())
	return &LinksResult{Links: links, Duplicates: dups}, nil
}

// LoopsCommand groups instrument bubbles into control loops
type LoopsCommand struct {
	session *application.Session
}

// NewLoopsCommand creates a new LoopsCommand
func NewLoopsCommand(session *application.Session) *LoopsCommand {
	return &LoopsCommand{session: session}
}

// Execute runs the loops command
func (c *LoopsCommand) Execute(ctx context.Context) ([]domain.Loop, error) {
	if err := requireLoaded(c.session); err != nil {
		return nil, err
	}
	return domain.GroupLoops(c.session.Bubbles())
}
