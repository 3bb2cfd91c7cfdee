package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"pnidkit/internal/application"
	"pnidkit/internal/config"
	"pnidkit/internal/domain"
)

const secondSheetYAML = `  - handle: "3A"
    name: Border_A1
    position: [900, 0, 0]
    bounds:
      min: [900, 0, 0]
      max: [1740, 594, 0]
`

func TestReload_ReadsFileAgain(t *testing.T) {
	ctx := context.Background()
	path := setupDrawing(t, "plant.yaml", sampleYAML)
	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	placements, _ := doc.Placements(ctx)
	if err := placements[1].SetAttributeText(domain.NumberAttribute, "PRJ-0999"); err != nil {
		t.Fatalf("SetAttributeText failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(sampleYAML+secondSheetYAML), 0o644); err != nil {
		t.Fatalf("failed to rewrite drawing: %v", err)
	}

	if err := doc.Reload(ctx); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if doc.Dirty() {
		t.Error("expected unsaved edits to be dropped")
	}
	placements, _ = doc.Placements(ctx)
	if len(placements) != 4 {
		t.Fatalf("expected 4 placements after reload, got %d", len(placements))
	}
	if got, _ := placements[1].AttributeText(domain.NumberAttribute); got != "PRJ-0101" {
		t.Errorf("expected title from disk, got %s", got)
	}
}

func TestReload_Errors(t *testing.T) {
	ctx := context.Background()
	path := setupDrawing(t, "plant.yaml", sampleYAML)
	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("placements: [{handle: \"\"}]"), 0o644); err != nil {
		t.Fatalf("failed to rewrite drawing: %v", err)
	}
	if err := doc.Reload(ctx); err == nil {
		t.Error("expected an invalid drawing to fail")
	}

	unsaved, err := New(filepath.Join(t.TempDir(), "new.yaml"), "generated")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := unsaved.Reload(ctx); err != nil {
		t.Errorf("expected reload of an unsaved document to be a no-op, got %v", err)
	}
}

func TestSessionLoad_SeesChangesOnDisk(t *testing.T) {
	ctx := context.Background()
	path := setupDrawing(t, "plant.yaml", sampleYAML)
	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s, err := application.NewSession(doc, config.Default(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if n := len(s.Sheets()); n != 1 {
		t.Fatalf("expected 1 sheet, got %d", n)
	}

	if err := os.WriteFile(path, []byte(sampleYAML+secondSheetYAML), 0o644); err != nil {
		t.Fatalf("failed to rewrite drawing: %v", err)
	}
	if err := s.Load(ctx); err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if n := len(s.Sheets()); n != 2 {
		t.Errorf("expected 2 sheets after the file changed, got %d", n)
	}
}
