// Package testutil holds in-memory fakes shared by package tests.
package testutil

import (
	"fmt"
	"slices"
	"sync/atomic"

	"pnidkit/internal/domain"
)

var handleSeq atomic.Int64

// Placement is an in-memory domain.Placement.
type Placement struct {
	handle     string
	name       string
	at         domain.Point
	bounds     *domain.Rect
	Attributes map[string]string
	Properties map[string]any

	ScaleFactor domain.Point
	Angle       float64
	LayerName   string
}

// NewPlacement creates a placement of template name at (x, y) with a fresh handle.
func NewPlacement(name string, x, y float64) *Placement {
	return &Placement{
		handle:     fmt.Sprintf("%X", 0x100+handleSeq.Add(1)),
		name:       name,
		at:         domain.Point{X: x, Y: y},
		Attributes: make(map[string]string),
		Properties: make(map[string]any),

		ScaleFactor: domain.Point{X: 1, Y: 1, Z: 1},
	}
}

// NewBorder creates a border placement inserted at its lower-left corner.
func NewBorder(name string, x, y, width, height float64) *Placement {
	p := NewPlacement(name, x, y)
	return p.WithBounds(domain.Rect{
		Min: domain.Point{X: x, Y: y},
		Max: domain.Point{X: x + width, Y: y + height},
	})
}

func (p *Placement) WithHandle(h string) *Placement {
	p.handle = h
	return p
}

func (p *Placement) WithBounds(r domain.Rect) *Placement {
	p.bounds = &r
	return p
}

func (p *Placement) WithAttr(tag, text string) *Placement {
	p.Attributes[tag] = text
	return p
}

func (p *Placement) WithProp(name string, value any) *Placement {
	p.Properties[name] = value
	return p
}

func (p *Placement) Handle() string               { return p.handle }
func (p *Placement) Name() string                 { return p.name }
func (p *Placement) InsertionPoint() domain.Point { return p.at }

func (p *Placement) BoundingBox() (domain.Rect, error) {
	if p.bounds == nil {
		return domain.Rect{}, &domain.LookupError{Kind: domain.LookupGeometry, Key: "bounds", Handle: p.handle}
	}
	return *p.bounds, nil
}

func (p *Placement) AttributeText(tag string) (string, error) {
	v, ok := p.Attributes[tag]
	if !ok {
		return "", &domain.LookupError{Kind: domain.LookupAttribute, Key: tag, Handle: p.handle}
	}
	return v, nil
}

func (p *Placement) SetAttributeText(tag, text string) error {
	if _, ok := p.Attributes[tag]; !ok {
		return &domain.LookupError{Kind: domain.LookupAttribute, Key: tag, Handle: p.handle}
	}
	p.Attributes[tag] = text
	return nil
}

func (p *Placement) DynamicProperty(name string) (any, error) {
	v, ok := p.Properties[name]
	if !ok {
		return nil, &domain.LookupError{Kind: domain.LookupProperty, Key: name, Handle: p.handle}
	}
	return v, nil
}

func (p *Placement) SetDynamicProperty(name string, value any) error {
	if _, ok := p.Properties[name]; !ok {
		return &domain.LookupError{Kind: domain.LookupProperty, Key: name, Handle: p.handle}
	}
	p.Properties[name] = value
	return nil
}

func (p *Placement) Scale() domain.Point { return p.ScaleFactor }
func (p *Placement) Rotation() float64   { return p.Angle }
func (p *Placement) Layer() string       { return p.LayerName }

// AttributeTags lists attribute tags sorted.
func (p *Placement) AttributeTags() []string {
	return sortedKeys(p.Attributes)
}

// PropertyNames lists dynamic property names sorted.
func (p *Placement) PropertyNames() []string {
	return sortedKeys(p.Properties)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Placements converts fakes to the domain interface.
func Placements(ps ...*Placement) []domain.Placement {
	out := make([]domain.Placement, len(ps))
	for i, p := range ps {
		out[i] = p
	}
	return out
}

// MainConnector builds a fully attributed main connector placement.
func MainConnector(x, y float64, tag, route string, flip bool, kind, link string) *Placement {
	return NewPlacement("Connector_Main", x, y).
		WithAttr(domain.AttrTag, tag).
		WithAttr(domain.AttrRoute, route).
		WithAttr(domain.AttrLink, link).
		WithAttr(domain.AttrService, "").
		WithAttr(domain.AttrDescription, "").
		WithProp(domain.PropFlip, flip).
		WithProp(domain.PropType, kind)
}

// Title builds a title block carrying a drawing number.
func Title(x, y float64, number string) *Placement {
	return NewPlacement("TitleBlock", x, y).WithAttr(domain.NumberAttribute, number)
}
