package testutil

import (
	"context"
	"fmt"
	"slices"

	"pnidkit/internal/domain"
	"pnidkit/internal/ports"
)

var (
	_ ports.Document  = (*Document)(nil)
	_ ports.Annotator = (*Document)(nil)
	_ ports.Block     = (*Placement)(nil)
)

// Document is an in-memory ports.Document over fake placements.
type Document struct {
	DocName string
	Items   []*Placement
	Saves   int

	// Err, when set, is returned by Placements.
	Err error

	// FailDelete maps handles to the error Delete returns for them.
	FailDelete map[string]error
}

func NewDocument(items ...*Placement) *Document {
	return &Document{DocName: "memory.yaml", Items: items}
}

func (d *Document) Name() string { return d.DocName }

func (d *Document) Placements(ctx context.Context) ([]domain.Placement, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	return Placements(d.Items...), nil
}

func (d *Document) Insert(ctx context.Context, spec ports.InsertSpec) (domain.Placement, error) {
	p := NewPlacement(spec.Name, spec.At.X, spec.At.Y)
	p.at = spec.At
	if spec.Scale != (domain.Point{}) {
		p.ScaleFactor = spec.Scale
	}
	p.Angle = spec.Rotation
	p.LayerName = spec.Layer
	d.Items = append(d.Items, p)
	return p, nil
}

func (d *Document) Delete(ctx context.Context, handle string) error {
	if err := d.FailDelete[handle]; err != nil {
		return err
	}
	i := slices.IndexFunc(d.Items, func(p *Placement) bool { return p.handle == handle })
	if i < 0 {
		return fmt.Errorf("placement %s: %w", handle, domain.ErrNotFound)
	}
	d.Items = slices.Delete(d.Items, i, i+1)
	return nil
}

func (d *Document) Save(ctx context.Context) error {
	d.Saves++
	return nil
}

func (d *Document) AddAttribute(handle, tag, text string) error {
	p, err := d.find(handle)
	if err != nil {
		return err
	}
	p.Attributes[tag] = text
	return nil
}

func (d *Document) AddProperty(handle, name string, value any) error {
	p, err := d.find(handle)
	if err != nil {
		return err
	}
	p.Properties[name] = value
	return nil
}

// Find returns the placement with handle, or nil.
func (d *Document) Find(handle string) *Placement {
	p, _ := d.find(handle)
	return p
}

func (d *Document) find(handle string) (*Placement, error) {
	for _, p := range d.Items {
		if p.handle == handle {
			return p, nil
		}
	}
	return nil, fmt.Errorf("placement %s: %w", handle, domain.ErrNotFound)
}
