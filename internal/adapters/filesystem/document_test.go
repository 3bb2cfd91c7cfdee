package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pnidkit/internal/domain"
	"pnidkit/internal/ports"
)

const sampleYAML = `name: Cooling water P&ID
placements:
  - handle: "1A"
    name: Border_A1
    position: [0, 0, 0]
    bounds:
      min: [0, 0, 0]
      max: [840, 594, 0]
  - handle: "1B"
    name: TitleBlock
    position: [700, 20]
    attributes:
      - tag: DWG.NO.
        text: PRJ-0101
  - handle: "2F"
    name: Connector_Main
    position: [820.5, 300.25]
    scale: [1, 1, 1]
    rotation: 1.5708
    layer: CONNECTOR
    attributes:
      - tag: TAG
        text: 0101-01
      - tag: OriginOrDestination
        text: TO 0102 E-101
      - tag: PID.No
        text: "0102"
    properties:
      Flip: 0
      TYPE: OFF-DRAWING
`

func setupDrawing(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write drawing: %v", err)
	}
	return path
}

func TestOpen_YAML(t *testing.T) {
	ctx := context.Background()
	doc, err := Open(setupDrawing(t, "plant.yaml", sampleYAML))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if doc.Title() != "Cooling water P&ID" {
		t.Errorf("expected title, got %s", doc.Title())
	}

	placements, err := doc.Placements(ctx)
	if err != nil {
		t.Fatalf("Placements failed: %v", err)
	}
	if len(placements) != 3 {
		t.Fatalf("expected 3 placements, got %d", len(placements))
	}

	border := placements[0]
	bounds, err := border.BoundingBox()
	if err != nil {
		t.Fatalf("BoundingBox failed: %v", err)
	}
	if bounds.Max.X != 840 || bounds.Max.Y != 594 {
		t.Errorf("unexpected bounds %+v", bounds)
	}

	title := placements[1]
	if got := title.InsertionPoint(); got != (domain.Point{X: 700, Y: 20}) {
		t.Errorf("expected two-element position to parse, got %v", got)
	}
	if _, err := title.BoundingBox(); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected missing bounds error, got %v", err)
	}

	conn := placements[2]
	text, err := conn.AttributeText("OriginOrDestination")
	if err != nil {
		t.Fatalf("AttributeText failed: %v", err)
	}
	if text != "TO 0102 E-101" {
		t.Errorf("expected route, got %s", text)
	}
	flip, err := conn.DynamicProperty("Flip")
	if err != nil {
		t.Fatalf("DynamicProperty failed: %v", err)
	}
	if flip != int64(0) {
		t.Errorf("expected Flip int64(0), got %#v", flip)
	}

	block, ok := conn.(ports.Block)
	if !ok {
		t.Fatal("expected placement to implement ports.Block")
	}
	if got := strings.Join(block.AttributeTags(), ","); got != "TAG,OriginOrDestination,PID.No" {
		t.Errorf("expected attribute order kept, got %s", got)
	}
	if got := strings.Join(block.PropertyNames(), ","); got != "Flip,TYPE" {
		t.Errorf("expected sorted property names, got %s", got)
	}
	if block.Rotation() != 1.5708 || block.Layer() != "CONNECTOR" {
		t.Errorf("unexpected transform: rotation %v layer %s", block.Rotation(), block.Layer())
	}
}

func TestPlacement_LookupErrors(t *testing.T) {
	doc, err := Open(setupDrawing(t, "plant.yaml", sampleYAML))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	placements, _ := doc.Placements(context.Background())
	conn := placements[2]

	_, err = conn.AttributeText("DESC")
	key, ok := domain.MissingKey(err)
	if !ok || key != "DESC" {
		t.Errorf("expected lookup error for DESC, got %v", err)
	}
	if err := conn.SetAttributeText("DESC", "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected set on missing attribute to fail, got %v", err)
	}
	if err := conn.SetDynamicProperty("Visibility", "on"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected set on missing property to fail, got %v", err)
	}
	if doc.Dirty() {
		t.Error("failed edits should not mark the document dirty")
	}
}

func TestSave_RoundTripsEdits(t *testing.T) {
	ctx := context.Background()
	path := setupDrawing(t, "plant.yaml", sampleYAML)

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	placements, _ := doc.Placements(ctx)
	if err := placements[1].SetAttributeText("DWG.NO.", "PRJ-0201"); err != nil {
		t.Fatalf("SetAttributeText failed: %v", err)
	}
	if err := placements[2].SetDynamicProperty("Flip", true); err != nil {
		t.Fatalf("SetDynamicProperty failed: %v", err)
	}
	if !doc.Dirty() {
		t.Error("expected document to be dirty")
	}
	if err := doc.Save(ctx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if doc.Dirty() {
		t.Error("expected document to be clean after save")
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	placements, _ = reopened.Placements(ctx)
	text, _ := placements[1].AttributeText("DWG.NO.")
	if text != "PRJ-0201" {
		t.Errorf("expected saved drawing number, got %s", text)
	}
	flip, _ := placements[2].DynamicProperty("Flip")
	if flip != true {
		t.Errorf("expected saved Flip true, got %#v", flip)
	}
}

func TestSave_AllFormats(t *testing.T) {
	for _, ext := range []string{".yaml", ".json", ".msgpack"} {
		t.Run(ext, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "drawing"+ext)

			doc, err := New(path, "generated")
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			p, err := doc.Insert(ctx, ports.InsertSpec{Name: "Connector_Main", At: domain.Point{X: 10, Y: 20}})
			if err != nil {
				t.Fatalf("Insert failed: %v", err)
			}
			if err := doc.AddAttribute(p.Handle(), "TAG", "0101-01"); err != nil {
				t.Fatalf("AddAttribute failed: %v", err)
			}
			if err := doc.AddProperty(p.Handle(), "TYPE", "OFF-DRAWING"); err != nil {
				t.Fatalf("AddProperty failed: %v", err)
			}
			if err := doc.AddProperty(p.Handle(), "Flip", 1); err != nil {
				t.Fatalf("AddProperty failed: %v", err)
			}
			if err := doc.Save(ctx); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			reopened, err := Open(path)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			if reopened.Title() != "generated" {
				t.Errorf("expected title generated, got %s", reopened.Title())
			}
			placements, _ := reopened.Placements(ctx)
			if len(placements) != 1 {
				t.Fatalf("expected 1 placement, got %d", len(placements))
			}
			got := placements[0]
			if got.Name() != "Connector_Main" || got.InsertionPoint() != (domain.Point{X: 10, Y: 20}) {
				t.Errorf("unexpected placement %s at %v", got.Name(), got.InsertionPoint())
			}
			tag, _ := got.AttributeText("TAG")
			if tag != "0101-01" {
				t.Errorf("expected TAG 0101-01, got %s", tag)
			}
			kind, _ := got.DynamicProperty("TYPE")
			if kind != "OFF-DRAWING" {
				t.Errorf("expected TYPE OFF-DRAWING, got %#v", kind)
			}
			flip, _ := got.DynamicProperty("Flip")
			if flip != int64(1) {
				t.Errorf("expected Flip int64(1), got %#v", flip)
			}
			if scale := got.(ports.Block).Scale(); scale != (domain.Point{X: 1, Y: 1, Z: 1}) {
				t.Errorf("expected unit scale, got %v", scale)
			}
		})
	}
}

func TestInsertAndDelete(t *testing.T) {
	ctx := context.Background()
	doc, err := Open(setupDrawing(t, "plant.yaml", sampleYAML))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	p, err := doc.Insert(ctx, ports.InsertSpec{Name: "Valve"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if p.Handle() != "30" {
		t.Errorf("expected handle after 2F to be 30, got %s", p.Handle())
	}

	if err := doc.Delete(ctx, "1B"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	placements, _ := doc.Placements(ctx)
	var names []string
	for _, p := range placements {
		names = append(names, p.Name())
	}
	if got := strings.Join(names, ","); got != "Border_A1,Connector_Main,Valve" {
		t.Errorf("unexpected placements after delete: %s", got)
	}

	if err := doc.Delete(ctx, "1B"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}

func TestOpen_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"unsupported extension", "plant.dwg", "", "unsupported drawing format"},
		{"duplicate handle", "plant.yaml", "placements:\n  - {handle: A, name: X, position: [0, 0]}\n  - {handle: A, name: Y, position: [0, 0]}\n", "duplicate handle A"},
		{"missing name", "plant.yaml", "placements:\n  - {handle: A, position: [0, 0]}\n", "has no name"},
		{"unknown field", "plant.json", `{"placements": [], "extra": 1}`, "failed to decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(setupDrawing(t, tt.file, tt.body))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.yaml", FormatYAML},
		{"a.YML", FormatYAML},
		{"a.json", FormatJSON},
		{"a.msgpack", FormatMsgpack},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if err != nil {
			t.Fatalf("FormatFor(%s) failed: %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("FormatFor(%s): expected %s, got %s", tt.path, tt.want, got)
		}
	}
}
