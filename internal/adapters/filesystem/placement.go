package filesystem

import (
	"slices"

	"pnidkit/internal/domain"
)

// drawingRecord is the serialized form of a drawing export.
type drawingRecord struct {
	Name       string             `json:"name" yaml:"name" msgpack:"name"`
	Placements []*placementRecord `json:"placements" yaml:"placements" msgpack:"placements"`
}

type placementRecord struct {
	Handle     string            `json:"handle" yaml:"handle" msgpack:"handle"`
	Name       string            `json:"name" yaml:"name" msgpack:"name"`
	Position   []float64         `json:"position" yaml:"position,flow" msgpack:"position"`
	Bounds     *boundsRecord     `json:"bounds,omitempty" yaml:"bounds,omitempty" msgpack:"bounds,omitempty"`
	Scale      []float64         `json:"scale,omitempty" yaml:"scale,omitempty,flow" msgpack:"scale,omitempty"`
	Rotation   float64           `json:"rotation,omitempty" yaml:"rotation,omitempty" msgpack:"rotation,omitempty"`
	Layer      string            `json:"layer,omitempty" yaml:"layer,omitempty" msgpack:"layer,omitempty"`
	Attributes []attributeRecord `json:"attributes,omitempty" yaml:"attributes,omitempty" msgpack:"attributes,omitempty"`
	Properties map[string]any    `json:"properties,omitempty" yaml:"properties,omitempty" msgpack:"properties,omitempty"`
}

type boundsRecord struct {
	Min []float64 `json:"min" yaml:"min,flow" msgpack:"min"`
	Max []float64 `json:"max" yaml:"max,flow" msgpack:"max"`
}

type attributeRecord struct {
	Tag  string `json:"tag" yaml:"tag" msgpack:"tag"`
	Text string `json:"text" yaml:"text" msgpack:"text"`
}

func toPoint(v []float64) domain.Point {
	var p domain.Point
	if len(v) > 0 {
		p.X = v[0]
	}
	if len(v) > 1 {
		p.Y = v[1]
	}
	if len(v) > 2 {
		p.Z = v[2]
	}
	return p
}

func fromPoint(p domain.Point) []float64 {
	return []float64{p.X, p.Y, p.Z}
}

// placement adapts a record to ports.Block. Edits go straight to the
// record and mark the document dirty.
type placement struct {
	doc *Document
	rec *placementRecord
}

func (p *placement) Handle() string               { return p.rec.Handle }
func (p *placement) Name() string                 { return p.rec.Name }
func (p *placement) InsertionPoint() domain.Point { return toPoint(p.rec.Position) }
func (p *placement) Rotation() float64            { return p.rec.Rotation }
func (p *placement) Layer() string                { return p.rec.Layer }

func (p *placement) Scale() domain.Point {
	if len(p.rec.Scale) == 0 {
		return domain.Point{X: 1, Y: 1, Z: 1}
	}
	return toPoint(p.rec.Scale)
}

func (p *placement) BoundingBox() (domain.Rect, error) {
	if p.rec.Bounds == nil {
		return domain.Rect{}, p.missing(domain.LookupGeometry, "bounds")
	}
	return domain.Rect{Min: toPoint(p.rec.Bounds.Min), Max: toPoint(p.rec.Bounds.Max)}, nil
}

func (p *placement) AttributeText(tag string) (string, error) {
	i := p.attributeIndex(tag)
	if i < 0 {
		return "", p.missing(domain.LookupAttribute, tag)
	}
	return p.rec.Attributes[i].Text, nil
}

func (p *placement) SetAttributeText(tag, text string) error {
	i := p.attributeIndex(tag)
	if i < 0 {
		return p.missing(domain.LookupAttribute, tag)
	}
	if p.rec.Attributes[i].Text != text {
		p.rec.Attributes[i].Text = text
		p.doc.dirty = true
	}
	return nil
}

func (p *placement) DynamicProperty(name string) (any, error) {
	v, ok := p.rec.Properties[name]
	if !ok {
		return nil, p.missing(domain.LookupProperty, name)
	}
	return v, nil
}

func (p *placement) SetDynamicProperty(name string, value any) error {
	if _, ok := p.rec.Properties[name]; !ok {
		return p.missing(domain.LookupProperty, name)
	}
	p.rec.Properties[name] = normalizeValue(value)
	p.doc.dirty = true
	return nil
}

// AttributeTags lists attribute tags in stored order.
func (p *placement) AttributeTags() []string {
	tags := make([]string, len(p.rec.Attributes))
	for i, a := range p.rec.Attributes {
		tags[i] = a.Tag
	}
	return tags
}

// PropertyNames lists dynamic property names sorted.
func (p *placement) PropertyNames() []string {
	names := make([]string, 0, len(p.rec.Properties))
	for name := range p.rec.Properties {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (p *placement) attributeIndex(tag string) int {
	return slices.IndexFunc(p.rec.Attributes, func(a attributeRecord) bool {
		return a.Tag == tag
	})
}

func (p *placement) missing(kind domain.LookupKind, key string) error {
	return &domain.LookupError{Kind: kind, Key: key, Handle: p.rec.Handle}
}

// normalizeValue narrows decoded numbers to int64 or float64 so property
// values compare the same whatever format they were read from.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case float32:
		return float64(t)
	case float64:
		if t == float64(int64(t)) {
			return int64(t)
		}
		return t
	default:
		return v
	}
}
