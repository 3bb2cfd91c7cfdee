package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pnidkit/internal/domain"
	"pnidkit/internal/ports"
)

// Document implements ports.Document over a drawing export file. The whole
// file is held in memory; Save writes it back in the same format.
type Document struct {
	path   string
	format Format
	data   drawingRecord
	dirty  bool
}

var (
	_ ports.Document  = (*Document)(nil)
	_ ports.Annotator = (*Document)(nil)
	_ ports.Reloader  = (*Document)(nil)
	_ ports.Block     = (*placement)(nil)
)

// Open reads a drawing export. The format follows the file extension.
func Open(path string) (*Document, error) {
	path = expandHome(path)
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	doc := &Document{path: path, format: format}
	data, err := doc.read()
	if err != nil {
		return nil, err
	}
	doc.data = data
	return doc, nil
}

// Reload discards in-memory edits and reads the file again. A document
// that has never been saved has nothing to re-read and is left alone.
func (d *Document) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(d.path); os.IsNotExist(err) && d.dirty {
		return nil
	}
	data, err := d.read()
	if err != nil {
		return err
	}
	d.data = data
	d.dirty = false
	return nil
}

func (d *Document) read() (drawingRecord, error) {
	var data drawingRecord
	f, err := os.Open(d.path)
	if err != nil {
		return data, fmt.Errorf("failed to open drawing: %w", err)
	}
	defer f.Close()

	if err := decode(d.format, f, &data); err != nil {
		return data, fmt.Errorf("failed to decode %s drawing %s: %w", d.format, d.path, err)
	}
	if err := normalize(&data); err != nil {
		return data, fmt.Errorf("invalid drawing %s: %w", d.path, err)
	}
	return data, nil
}

// New creates an empty document that Save will write to path.
func New(path, name string) (*Document, error) {
	path = expandHome(path)
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	return &Document{path: path, format: format, data: drawingRecord{Name: name}, dirty: true}, nil
}

// expandHome expands ~ in a path the way the shell would.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return path
}

func normalize(data *drawingRecord) error {
	seen := make(map[string]bool, len(data.Placements))
	for i, rec := range data.Placements {
		if rec == nil {
			return fmt.Errorf("placement %d is empty", i)
		}
		if rec.Handle == "" {
			return fmt.Errorf("placement %d has no handle", i)
		}
		if seen[rec.Handle] {
			return fmt.Errorf("duplicate handle %s", rec.Handle)
		}
		seen[rec.Handle] = true
		if rec.Name == "" {
			return fmt.Errorf("placement %s has no name", rec.Handle)
		}
		if rec.Properties == nil {
			rec.Properties = make(map[string]any)
		}
		for k, v := range rec.Properties {
			rec.Properties[k] = normalizeValue(v)
		}
	}
	return nil
}

func (d *Document) Name() string {
	return d.path
}

// Title is the drawing name stored in the export.
func (d *Document) Title() string {
	return d.data.Name
}

func (d *Document) Format() Format {
	return d.format
}

// Dirty reports unsaved edits.
func (d *Document) Dirty() bool {
	return d.dirty
}

// Placements returns every placement in file order.
func (d *Document) Placements(ctx context.Context) ([]domain.Placement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.Placement, len(d.data.Placements))
	for i, rec := range d.data.Placements {
		out[i] = &placement{doc: d, rec: rec}
	}
	return out, nil
}

// Insert appends a placement with a fresh handle and no annotations.
func (d *Document) Insert(ctx context.Context, spec ports.InsertSpec) (domain.Placement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("insert: template name is required")
	}
	scale := spec.Scale
	if scale == (domain.Point{}) {
		scale = domain.Point{X: 1, Y: 1, Z: 1}
	}
	rec := &placementRecord{
		Handle:     d.nextHandle(),
		Name:       spec.Name,
		Position:   fromPoint(spec.At),
		Scale:      fromPoint(scale),
		Rotation:   spec.Rotation,
		Layer:      spec.Layer,
		Properties: make(map[string]any),
	}
	d.data.Placements = append(d.data.Placements, rec)
	d.dirty = true
	return &placement{doc: d, rec: rec}, nil
}

// AddAttribute defines a new attribute on a placement. Inserted blocks
// start bare; block replacement uses this to carry annotations over.
func (d *Document) AddAttribute(handle, tag, text string) error {
	rec, err := d.find(handle)
	if err != nil {
		return err
	}
	p := &placement{doc: d, rec: rec}
	if p.attributeIndex(tag) >= 0 {
		return p.SetAttributeText(tag, text)
	}
	rec.Attributes = append(rec.Attributes, attributeRecord{Tag: tag, Text: text})
	d.dirty = true
	return nil
}

// AddProperty defines a new dynamic property on a placement.
func (d *Document) AddProperty(handle, name string, value any) error {
	rec, err := d.find(handle)
	if err != nil {
		return err
	}
	rec.Properties[name] = normalizeValue(value)
	d.dirty = true
	return nil
}

// Delete removes a placement by handle.
func (d *Document) Delete(ctx context.Context, handle string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for i, rec := range d.data.Placements {
		if rec.Handle == handle {
			d.data.Placements = append(d.data.Placements[:i], d.data.Placements[i+1:]...)
			d.dirty = true
			return nil
		}
	}
	return fmt.Errorf("placement %s: %w", handle, domain.ErrNotFound)
}

// Save writes the document through a temp file and rename.
func (d *Document) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.CreateTemp(dir, ".pnidkit-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := encode(d.format, f, &d.data); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode drawing: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write drawing: %w", err)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(d.path); err == nil {
		mode = info.Mode()
	}
	if err := os.Chmod(tmp, mode); err != nil {
		return fmt.Errorf("failed to set mode: %w", err)
	}
	if err := os.Rename(tmp, d.path); err != nil {
		return fmt.Errorf("failed to replace drawing: %w", err)
	}
	d.dirty = false
	return nil
}

func (d *Document) find(handle string) (*placementRecord, error) {
	for _, rec := range d.data.Placements {
		if rec.Handle == handle {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("placement %s: %w", handle, domain.ErrNotFound)
}

// nextHandle returns one past the highest hex handle in use.
func (d *Document) nextHandle() string {
	var highest uint64
	for _, rec := range d.data.Placements {
		if n, err := strconv.ParseUint(rec.Handle, 16, 64); err == nil && n > highest {
			highest = n
		}
	}
	return strings.ToUpper(strconv.FormatUint(highest+1, 16))
}
