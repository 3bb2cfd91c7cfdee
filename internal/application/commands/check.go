package commands

import (
	"context"
	"fmt"

	"pnidkit/internal/application"
	"pnidkit/internal/domain"
	"pnidkit/internal/ports"
)

// CheckResult contains the problems found by one validation pass
type CheckResult struct {
	Main    []domain.Problem
	Utility []domain.Problem
	// Skipped counts connectors exempt from the checks.
	Skipped int
	Run     *domain.CheckRun
}

// Problems returns main then utility problems
func (r *CheckResult) Problems() []domain.Problem {
	out := make([]domain.Problem, 0, len(r.Main)+len(r.Utility))
	out = append(out, r.Main...)
	return append(out, r.Utility...)
}

// CheckCommand validates the connectors of the loaded drawing
type CheckCommand struct {
	session *application.Session
	store   ports.ReportStore
	Utility bool
	Record  bool
}

// NewCheckCommand creates a new CheckCommand. store may be nil when the
// run is not recorded.
func NewCheckCommand(session *application.Session, store ports.ReportStore, utility, record bool) *CheckCommand {
	return &CheckCommand{
		session: session,
		store:   store,
		Utility: utility,
		Record:  record,
	}
}

// Validate checks the command can run
func (c *CheckCommand) Validate() error {
	if c.Record && c.store == nil {
		return &application.ValidationError{
			Field:   "record",
			Message: "a report store is required to record a run",
		}
	}
	return nil
}

// Execute runs the checks and optionally records the run
func (c *CheckCommand) Execute(ctx context.Context) (*CheckResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := requireLoaded(c.session); err != nil {
		return nil, err
	}

	cfg := c.session.Config().Check()
	log := c.session.Logger()
	result := &CheckResult{}

	mains := c.session.MainConnectors()
	for _, m := range mains {
		if domain.Excluded(m.Connector, cfg) {
			result.Skipped++
			log.Debug().Str("handle", m.Handle()).Msg("connector skipped")
		}
	}
	result.Main = domain.CheckMainConnectors(mains, cfg)
	connectors := len(mains)

	if c.Utility {
		utils := c.session.UtilityConnectors()
		for _, u := range utils {
			if domain.Excluded(u, cfg) {
				result.Skipped++
			}
		}
		result.Utility = domain.CheckUtilityConnectors(utils, cfg)
		connectors += len(utils)
	}

	result.Run = &domain.CheckRun{
		SessionID:  c.session.ID,
		Source:     c.session.Document().Name(),
		Sheets:     len(c.session.Sheets()),
		Connectors: connectors,
		Problems:   result.Problems(),
	}
	result.Run.ProblemCount = len(result.Run.Problems)

	log.Info().
		Int("connectors", connectors).
		Int("skipped", result.Skipped).
		Int("problems", result.Run.ProblemCount).
		Msg("connectors checked")

	if c.Record {
		if err := c.store.Record(result.Run); err != nil {
			return nil, fmt.Errorf("failed to record check run: %w", err)
		}
	}
	return result, nil
}
