package domain

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrNoSheet is returned by geometry checks on a component outside every sheet.
var ErrNoSheet = errors.New("component is not on a sheet")

// Attribute and property names read by the component wrappers.
const (
	AttrTag         = "TAG"
	AttrLink        = "PID.No"
	AttrService     = "Service"
	AttrDescription = "DESC"
	AttrRoute       = "OriginOrDestination"
	AttrFunction    = "FUNCTION"

	PropFlip = "Flip"
	PropType = "TYPE"

	OffDrawing = "OFF-DRAWING"
)

// Kind discriminates component variants.
type Kind int

const (
	KindMainConnector Kind = iota
	KindUtilityConnector
	KindBubble
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindMainConnector:
		return "main connector"
	case KindUtilityConnector:
		return "utility connector"
	case KindBubble:
		return "bubble"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// Component wraps one placement and remembers the sheet it sits on.
type Component struct {
	Placement
	Kind  Kind
	sheet *Sheet
}

// Sheet returns the owning sheet, or nil when the component lies outside
// every sheet.
func (c *Component) Sheet() *Sheet {
	return c.sheet
}

// Locate finds the owning sheet among sheets and returns it.
func (c *Component) Locate(sheets []*Sheet) *Sheet {
	c.sheet = Locate(sheets, c.InsertionPoint())
	return c.sheet
}

func (c *Component) Position() Point {
	return c.InsertionPoint()
}

// Connector marks a line crossing between sheets. Main connectors carry
// routing data, utility connectors only a tag.
type Connector struct {
	Component
}

func NewConnector(p Placement, kind Kind) *Connector {
	return &Connector{Component: Component{Placement: p, Kind: kind}}
}

func (c *Connector) Tag() (string, error)         { return c.AttributeText(AttrTag) }
func (c *Connector) LinkDrawing() (string, error) { return c.AttributeText(AttrLink) }
func (c *Connector) Service() (string, error)     { return c.AttributeText(AttrService) }
func (c *Connector) Description() (string, error) { return c.AttributeText(AttrDescription) }

// AsMain returns the main-connector view, if this is one.
func (c *Connector) AsMain() (*MainConnector, bool) {
	if c.Kind != KindMainConnector {
		return nil, false
	}
	return &MainConnector{Connector: c}, true
}

// Direction is the routing direction encoded in a connector's route text.
type Direction int

const (
	DirectionUnknown Direction = iota
	DirectionTo
	DirectionFrom
)

func (d Direction) String() string {
	switch d {
	case DirectionTo:
		return "to"
	case DirectionFrom:
		return "from"
	default:
		return "unknown"
	}
}

var (
	toKeywords   = []string{"TO", "至"}
	fromKeywords = []string{"FROM", "自"}
)

// ParseRoute classifies route text and strips its direction keyword.
func ParseRoute(route string) (Direction, string) {
	route = norm.NFC.String(route)
	for _, kw := range toKeywords {
		if rest, ok := strings.CutPrefix(route, kw); ok {
			return DirectionTo, strings.TrimSpace(rest)
		}
	}
	for _, kw := range fromKeywords {
		if rest, ok := strings.CutPrefix(route, kw); ok {
			return DirectionFrom, strings.TrimSpace(rest)
		}
	}
	return DirectionUnknown, ""
}

// MainConnector adds routing to a connector.
type MainConnector struct {
	*Connector
}

func NewMainConnector(p Placement) *MainConnector {
	return &MainConnector{Connector: NewConnector(p, KindMainConnector)}
}

func (m *MainConnector) Route() (string, error) {
	return m.AttributeText(AttrRoute)
}

func (m *MainConnector) SetRoute(v string) error {
	return m.SetAttributeText(AttrRoute, v)
}

func (m *MainConnector) Direction() (Direction, error) {
	route, err := m.Route()
	if err != nil {
		return DirectionUnknown, err
	}
	d, _ := ParseRoute(route)
	return d, nil
}

func (m *MainConnector) IsTo() (bool, error) {
	d, err := m.Direction()
	return d == DirectionTo, err
}

func (m *MainConnector) IsFrom() (bool, error) {
	d, err := m.Direction()
	return d == DirectionFrom, err
}

// Endpoint is the route with its keyword removed, or "" when unclassified.
func (m *MainConnector) Endpoint() (string, error) {
	route, err := m.Route()
	if err != nil {
		return "", err
	}
	_, rest := ParseRoute(route)
	return rest, nil
}

func (m *MainConnector) IsFlipped() (bool, error) {
	v, err := m.DynamicProperty(PropFlip)
	if err != nil {
		return false, err
	}
	return truthy(v), nil
}

// IsEntering reports whether the connector faces into its sheet. A
// connector in the left half faces inward unless flipped.
func (m *MainConnector) IsEntering() (bool, error) {
	if m.sheet == nil {
		return false, fmt.Errorf("%w: %s", ErrNoSheet, m.Handle())
	}
	flipped, err := m.IsFlipped()
	if err != nil {
		return false, err
	}
	x := m.InsertionPoint().X
	bounds := m.sheet.Bounds
	leftHalf := bounds.Min.X < x && x < bounds.MidX()
	return leftHalf == !flipped, nil
}

func (m *MainConnector) IsExiting() (bool, error) {
	entering, err := m.IsEntering()
	return !entering, err
}

func (m *MainConnector) IsOffDrawing() (bool, error) {
	v, err := m.DynamicProperty(PropType)
	if err != nil {
		return false, err
	}
	s, _ := v.(string)
	return s == OffDrawing, nil
}

func (m *MainConnector) IsOffBoundary() (bool, error) {
	off, err := m.IsOffDrawing()
	return !off, err
}

// truthy interprets a dynamic property value as a toggle.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "", "0", "false", "no", "not flipped":
			return false
		}
		return true
	default:
		return false
	}
}

// Bubble is an instrument symbol.
type Bubble struct {
	Component
}

func NewBubble(p Placement) *Bubble {
	return &Bubble{Component: Component{Placement: p, Kind: KindBubble}}
}

func (b *Bubble) Code() (FunctionCode, error) {
	v, err := b.AttributeText(AttrFunction)
	return FunctionCode(v), err
}

func (b *Bubble) Number() (string, error) {
	return b.AttributeText(AttrTag)
}

// Tag returns "{code}-{number}".
func (b *Bubble) Tag() (string, error) {
	code, err := b.Code()
	if err != nil {
		return "", err
	}
	number, err := b.Number()
	if err != nil {
		return "", err
	}
	return GenBubbleTag(string(code), number), nil
}

// LoopName returns "{loop code}-{number}", the key instruments of one
// control loop share.
func (b *Bubble) LoopName() (string, error) {
	code, err := b.Code()
	if err != nil {
		return "", err
	}
	number, err := b.Number()
	if err != nil {
		return "", err
	}
	return code.LoopCode() + "-" + number, nil
}

// FunctionCode is an instrument function-letter code such as "PDT".
type FunctionCode string

var nonInstruments = map[FunctionCode]bool{
	"PSV": true, "PRV": true, "FO": true, "YL": true, "HS": true, "SC": true,
}

func (c FunctionCode) IsGauge() bool       { return strings.HasSuffix(string(c), "G") }
func (c FunctionCode) IsTransmitter() bool { return strings.HasSuffix(string(c), "T") }
func (c FunctionCode) IsSensor() bool      { return strings.HasSuffix(string(c), "E") }
func (c FunctionCode) IsValve() bool       { return strings.HasSuffix(string(c), "V") }

func (c FunctionCode) IsInstrument() bool {
	return !nonInstruments[c]
}

// LoopCode groups instruments of one loop:
//
//	non-instrument  -> code
//	second letter D -> first two letters (PDT -> PD)
//	gauge           -> code (PG -> PG)
//	otherwise       -> first letter (FT -> F)
func (c FunctionCode) LoopCode() string {
	s := string(c)
	switch {
	case !c.IsInstrument():
		return s
	case len(s) >= 2 && s[1] == 'D':
		return s[:2]
	case c.IsGauge():
		return s
	case s == "":
		return ""
	default:
		return s[:1]
	}
}

// Line is a pipe tag symbol. The structured tag is parsed once and every
// setter writes the regenerated text back to the placement.
type Line struct {
	Component
	fields LineTag
}

// NewLine parses the TAG attribute of p.
func NewLine(p Placement) (*Line, error) {
	raw, err := p.AttributeText(AttrTag)
	if err != nil {
		return nil, err
	}
	return &Line{
		Component: Component{Placement: p, Kind: KindLine},
		fields:    ParseLineTag(raw),
	}, nil
}

// RawTag returns the TAG attribute as currently stored.
func (l *Line) RawTag() (string, error) {
	return l.AttributeText(AttrTag)
}

// Tag returns the tag generated from the cached fields.
func (l *Line) Tag() string {
	return l.fields.String()
}

func (l *Line) Fields() LineTag { return l.fields }

// Valid reports whether the TAG attribute parsed.
func (l *Line) Valid() bool { return !l.fields.IsZero() }

func (l *Line) IsInsulated() bool { return l.fields.Insulation != "" }

func (l *Line) Service() string    { return l.fields.Service }
func (l *Line) Number() string     { return l.fields.Number }
func (l *Line) Size() string       { return l.fields.Size }
func (l *Line) Spec() string       { return l.fields.Spec }
func (l *Line) Insulation() string { return l.fields.Insulation }

func (l *Line) SetService(v string) error    { l.fields.Service = v; return l.Sync() }
func (l *Line) SetNumber(v string) error     { l.fields.Number = v; return l.Sync() }
func (l *Line) SetSize(v string) error       { l.fields.Size = v; return l.Sync() }
func (l *Line) SetSpec(v string) error       { l.fields.Spec = v; return l.Sync() }
func (l *Line) SetInsulation(v string) error { l.fields.Insulation = v; return l.Sync() }

// Sync writes the generated tag to the TAG attribute.
func (l *Line) Sync() error {
	return l.SetAttributeText(AttrTag, l.Tag())
}
