package ports

import "pnidkit/internal/domain"

// ReportStore keeps the history of connector check runs for one drawing.
type ReportStore interface {
	// Lifecycle
	Open(source string) error
	Close() error

	// Record stores a run and its problems atomically. An empty run ID is
	// filled in.
	Record(run *domain.CheckRun) error

	// Runs returns the most recent runs first, without their problems.
	Runs(limit int) ([]domain.CheckRun, error)

	// Run returns one run with its problems.
	Run(id string) (*domain.CheckRun, error)
}
