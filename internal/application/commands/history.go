package commands

import (
	"context"
	"errors"
	"fmt"

	"pnidkit/internal/application"
	"pnidkit/internal/domain"
	"pnidkit/internal/ports"
)

// HistoryCommand lists recorded check runs, most recent first
type HistoryCommand struct {
	store ports.ReportStore
	Limit int
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(store ports.ReportStore, limit int) *HistoryCommand {
	return &HistoryCommand{store: store, Limit: limit}
}

// Validate checks the limit
func (c *HistoryCommand) Validate() error {
	if c.Limit < 0 {
		return &application.ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("limit must not be negative, got %d", c.Limit),
		}
	}
	return nil
}

// Execute runs the history command
func (c *HistoryCommand) Execute(ctx context.Context) ([]domain.CheckRun, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.store.Runs(c.Limit)
}

// ShowRunCommand returns one recorded run with its problems
type ShowRunCommand struct {
	store ports.ReportStore
	RunID string
}

// NewShowRunCommand creates a new ShowRunCommand
func NewShowRunCommand(store ports.ReportStore, runID string) *ShowRunCommand {
	return &ShowRunCommand{store: store, RunID: runID}
}

// Execute runs the show run command
func (c *ShowRunCommand) Execute(ctx context.Context) (*domain.CheckRun, error) {
	if err := application.ValidateRequired("runID", c.RunID); err != nil {
		return nil, err
	}
	run, err := c.store.Run(c.RunID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("run %s: %w", c.RunID, application.ErrNotFound)
		}
		return nil, err
	}
	return run, nil
}
