package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"pnidkit/internal/domain"
	"pnidkit/internal/ports"
)

const schemaVersion = "1"

// ErrRunNotFound is returned by Run for an unknown ID.
var ErrRunNotFound = fmt.Errorf("check run %w", domain.ErrNotFound)

// Store implements ports.ReportStore using SQLite
type Store struct {
	db     *sql.DB
	source string
	dbPath string
}

// Ensure Store implements ReportStore
var _ ports.ReportStore = (*Store)(nil)

// NewStore creates a store. An empty dbPath places the database under
// $XDG_DATA_HOME/pnidkit, named after the drawing path.
func NewStore(dbPath string) *Store {
	return &Store{dbPath: dbPath}
}

// Open initializes the history database for the given drawing
func (s *Store) Open(source string) error {
	if abs, err := filepath.Abs(source); err == nil {
		source = abs
	}
	s.source = source
	if s.dbPath == "" {
		s.dbPath = databasePath(source)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(s.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", s.dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Pragmas + schema in single batch
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			source TEXT NOT NULL,
			at INTEGER NOT NULL,
			sheets INTEGER NOT NULL,
			connectors INTEGER NOT NULL,
			problem_count INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS problems (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			message TEXT NOT NULL,
			tag TEXT NOT NULL,
			sheet TEXT NOT NULL,
			handle TEXT NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			PRIMARY KEY (run_id, seq)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_at ON runs(at);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := s.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.dbPath
}

// databasePath returns the path for the SQLite database
func databasePath(source string) string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "pnidkit", hashSource(source)+".db")
}

// hashSource returns a short hash of the drawing path
func hashSource(source string) string {
	return strconv.FormatUint(xxhash.Sum64String(source), 16)
}

func (s *Store) updateMeta() error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('source', ?);
	`, schemaVersion, s.source)
	return err
}

// Record stores a run and its problems in one transaction
func (s *Store) Record(run *domain.CheckRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.At.IsZero() {
		run.At = time.Now()
	}
	if run.Source == "" {
		run.Source = s.source
	}
	run.ProblemCount = len(run.Problems)

	tx, err := s.beginTx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.insertRun(run); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	for i, p := range run.Problems {
		if err := tx.insertProblem(run.ID, i, p); err != nil {
			return fmt.Errorf("failed to insert problem: %w", err)
		}
	}
	return tx.Commit()
}

// Runs returns recorded runs, most recent first
func (s *Store) Runs(limit int) ([]domain.CheckRun, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`
		SELECT id, session_id, source, at, sheets, connectors, problem_count
		FROM runs ORDER BY at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.CheckRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Run returns one run with its problems
func (s *Store) Run(id string) (*domain.CheckRun, error) {
	row := s.db.QueryRow(`
		SELECT id, session_id, source, at, sheets, connectors, problem_count
		FROM runs WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT message, tag, sheet, handle, x, y
		FROM problems WHERE run_id = ? ORDER BY seq
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Problem
		if err := rows.Scan(&p.Message, &p.Tag, &p.Sheet, &p.Handle, &p.X, &p.Y); err != nil {
			return nil, err
		}
		run.Problems = append(run.Problems, p)
	}
	return &run, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (domain.CheckRun, error) {
	var run domain.CheckRun
	var at int64
	err := row.Scan(&run.ID, &run.SessionID, &run.Source, &at, &run.Sheets, &run.Connectors, &run.ProblemCount)
	if err != nil {
		return domain.CheckRun{}, err
	}
	run.At = time.Unix(0, at)
	return run, nil
}
