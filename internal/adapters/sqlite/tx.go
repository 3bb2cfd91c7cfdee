package sqlite

import (
	"database/sql"

	"pnidkit/internal/domain"
)

// runTx groups the inserts of one recorded run
type runTx struct {
	tx *sql.Tx
}

func (s *Store) beginTx() (*runTx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	return &runTx{tx: tx}, nil
}

// insertRun adds the run header
func (t *runTx) insertRun(run *domain.CheckRun) error {
	_, err := t.tx.Exec(`
		INSERT INTO runs (id, session_id, source, at, sheets, connectors, problem_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SessionID, run.Source, run.At.UnixNano(), run.Sheets, run.Connectors, len(run.Problems))
	return err
}

// insertProblem adds one problem row in report order
func (t *runTx) insertProblem(runID string, seq int, p domain.Problem) error {
	_, err := t.tx.Exec(`
		INSERT INTO problems (run_id, seq, message, tag, sheet, handle, x, y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, seq, p.Message, p.Tag, p.Sheet, p.Handle, p.X, p.Y)
	return err
}

// Commit commits the transaction
func (t *runTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *runTx) Rollback() error {
	return t.tx.Rollback()
}
