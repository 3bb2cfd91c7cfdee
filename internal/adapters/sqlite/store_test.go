package sqlite

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pnidkit/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	s := NewStore("")
	if err := s.Open("/plants/unit3/cooling.yaml"); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return s
}

func TestOpen_UsesXDGDataHome(t *testing.T) {
	s := openTestStore(t)

	dir := filepath.Dir(s.Path())
	if filepath.Base(dir) != "pnidkit" {
		t.Errorf("expected database under pnidkit dir, got %s", s.Path())
	}
	if !strings.HasSuffix(s.Path(), hashSource("/plants/unit3/cooling.yaml")+".db") {
		t.Errorf("expected database named after source hash, got %s", s.Path())
	}
}

func TestHashSource_Stable(t *testing.T) {
	a := hashSource("/plants/a.yaml")
	if a != hashSource("/plants/a.yaml") {
		t.Error("expected stable hash")
	}
	if a == hashSource("/plants/b.yaml") {
		t.Error("expected distinct hashes for distinct sources")
	}
}

func TestRecordAndRun(t *testing.T) {
	s := openTestStore(t)

	run := &domain.CheckRun{
		SessionID:  "session-1",
		Sheets:     4,
		Connectors: 12,
		Problems: []domain.Problem{
			{Message: domain.MsgMissingNumber, Tag: "", Sheet: "0101", Handle: "2F", X: 10.5, Y: 20},
			{Message: domain.MsgWrongDirection, Tag: "0101-02", Sheet: "0101", Handle: "30", X: 600, Y: 300.25},
		},
	}
	if err := s.Record(run); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if run.ID == "" {
		t.Fatal("expected Record to assign an ID")
	}
	if run.Source != "/plants/unit3/cooling.yaml" {
		t.Errorf("expected source filled in, got %s", run.Source)
	}

	got, err := s.Run(run.ID)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got.SessionID != "session-1" || got.Sheets != 4 || got.Connectors != 12 {
		t.Errorf("unexpected run header: %+v", got)
	}
	if got.ProblemCount != 2 || len(got.Problems) != 2 {
		t.Fatalf("expected 2 problems, got count %d and %d rows", got.ProblemCount, len(got.Problems))
	}
	if got.Problems[1] != run.Problems[1] {
		t.Errorf("expected %+v, got %+v", run.Problems[1], got.Problems[1])
	}
	if !got.At.Equal(run.At) {
		t.Errorf("expected time %v, got %v", run.At, got.At)
	}
}

func TestRuns_MostRecentFirst(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, problems := range []int{3, 1, 0} {
		run := &domain.CheckRun{SessionID: "s", At: base.Add(time.Duration(i) * time.Hour)}
		for range problems {
			run.Problems = append(run.Problems, domain.Problem{Message: domain.MsgMissingRoute})
		}
		if err := s.Record(run); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	runs, err := s.Runs(2)
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ProblemCount != 0 || runs[1].ProblemCount != 1 {
		t.Errorf("expected newest runs first, got counts %d, %d", runs[0].ProblemCount, runs[1].ProblemCount)
	}
	if len(runs[0].Problems) != 0 {
		t.Error("expected listings without problem rows")
	}

	all, err := s.Runs(0)
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected all 3 runs, got %d", len(all))
	}
}

func TestRun_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Run("missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestNewStore_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s := NewStore(path)
	if err := s.Open("drawing.yaml"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if s.Path() != path {
		t.Errorf("expected %s, got %s", path, s.Path())
	}
}
