package commands

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"pnidkit/internal/application"
	"pnidkit/internal/config"
	"pnidkit/internal/domain"
	"pnidkit/internal/testutil"
)

// plantDrawing is two sheets side by side: 0101 at x 0..800 and 0102 at
// x 900..1700. Connector 0101-01 leaves the first sheet and enters the
// second. Two connectors on the first sheet are faulty.
func plantDrawing() *testutil.Document {
	return testutil.NewDocument(
		testutil.NewBorder("Border_A1", 0, 0, 800, 600).WithHandle("B1"),
		testutil.NewBorder("Border_A1", 900, 0, 800, 600).WithHandle("B2"),
		testutil.Title(700, 50, "PRJ-0101").WithHandle("T1"),
		testutil.Title(1600, 50, "PRJ-0102").WithHandle("T2"),

		testutil.MainConnector(700, 300, "0101-01", "TO 0102 E-101", false, domain.OffDrawing, "0102").WithHandle("C1"),
		testutil.MainConnector(1000, 300, "0101-01", "FROM 0101 P-201", false, domain.OffDrawing, "0101").WithHandle("C2"),
		testutil.MainConnector(150, 300, "", "TO 0102", false, domain.OffDrawing, "0102").WithHandle("C3"),
		testutil.MainConnector(150, 400, "0101-03", "TO 0102", false, domain.OffDrawing, "0102").WithHandle("C4"),

		testutil.NewPlacement("Connector_Utility", 200, 200).WithHandle("U1").WithAttr(domain.AttrTag, ""),

		bubble("PT", "101").WithHandle("I1"),
		bubble("PI", "101").WithHandle("I2"),
		bubble("PSV", "102").WithHandle("I3"),
		bubble("TE", "105").WithHandle("I4"),

		testutil.NewPlacement("pipe_tag", 300, 100).WithHandle("L1").WithAttr(domain.AttrTag, "CW101-100-A1"),
		testutil.NewPlacement("pipe_tag", 300, 150).WithHandle("L2").WithAttr(domain.AttrTag, "CW102--A1-H"),
		testutil.NewPlacement("pipe_tag", 300, 200).WithHandle("L3").WithAttr(domain.AttrTag, "not a tag"),
	)
}

func bubble(code, number string) *testutil.Placement {
	return testutil.NewPlacement("SC_LOCAL", 400, 500).
		WithAttr(domain.AttrFunction, code).
		WithAttr(domain.AttrTag, number)
}

func loadSession(t *testing.T, doc *testutil.Document) *application.Session {
	t.Helper()
	s, err := application.NewSession(doc, config.Default(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s
}

// memoryStore is an in-memory ports.ReportStore
type memoryStore struct {
	runs []domain.CheckRun
}

func (m *memoryStore) Open(source string) error { return nil }
func (m *memoryStore) Close() error             { return nil }

func (m *memoryStore) Record(run *domain.CheckRun) error {
	if run.ID == "" {
		run.ID = "run-" + string(rune('a'+len(m.runs)))
	}
	m.runs = append(m.runs, *run)
	return nil
}

func (m *memoryStore) Runs(limit int) ([]domain.CheckRun, error) {
	var out []domain.CheckRun
	for i := len(m.runs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		r := m.runs[i]
		r.Problems = nil
		out = append(out, r)
	}
	return out, nil
}

func (m *memoryStore) Run(id string) (*domain.CheckRun, error) {
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}
