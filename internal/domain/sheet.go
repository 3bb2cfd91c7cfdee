package domain

import (
	"errors"
	"fmt"
	"math"
)

// NumberAttribute is the title block attribute holding the drawing number.
const NumberAttribute = "DWG.NO."

var (
	ErrInvalidSheet  = errors.New("invalid sheet bounds")
	ErrTitleOutside  = errors.New("title outside sheet")
	ErrTitleConflict = errors.New("sheet already has a title")
	ErrNoTitle       = errors.New("sheet has no title")
)

// Sheet is one drawing page, derived from a border placement. Geometry is
// read once at construction.
type Sheet struct {
	Handle   string
	Bounds   Rect
	Position Point
	Width    int
	Height   int

	// Row is the 1-based layout row, zero until SortSheets runs.
	Row int
	// Number is the assigned sheet number, empty until NumberSheets runs.
	Number string

	title Placement
}

// NewSheet reads the border's bounding box and insertion point.
func NewSheet(border Placement) (*Sheet, error) {
	bounds, err := border.BoundingBox()
	if err != nil {
		return nil, fmt.Errorf("failed to read border %s: %w", border.Handle(), err)
	}
	if !bounds.Valid() {
		return nil, fmt.Errorf("%w: border %s", ErrInvalidSheet, border.Handle())
	}
	return &Sheet{
		Handle:   border.Handle(),
		Bounds:   bounds,
		Position: border.InsertionPoint(),
		Width:    int(math.RoundToEven(bounds.Width())),
		Height:   int(math.RoundToEven(bounds.Height())),
	}, nil
}

func (s *Sheet) Contains(p Point) bool {
	return s.Bounds.Contains(p)
}

// AttachTitle assigns t as the sheet's title block. The first title wins.
func (s *Sheet) AttachTitle(t Placement) error {
	if !s.Contains(t.InsertionPoint()) {
		return ErrTitleOutside
	}
	if s.title != nil {
		return fmt.Errorf("%w: %s kept, %s rejected", ErrTitleConflict, s.title.Handle(), t.Handle())
	}
	s.title = t
	return nil
}

func (s *Sheet) HasTitle() bool {
	return s.title != nil
}

func (s *Sheet) Title() Placement {
	return s.title
}

// Tag returns the drawing number written in the title block, or "" for an
// untitled sheet.
func (s *Sheet) Tag() (string, error) {
	if s.title == nil {
		return "", nil
	}
	return s.title.AttributeText(NumberAttribute)
}

// SetTag writes v into the title block.
func (s *Sheet) SetTag(v string) error {
	if s.title == nil {
		return fmt.Errorf("%w: %s", ErrNoTitle, s.Handle)
	}
	return s.title.SetAttributeText(NumberAttribute, v)
}

// DrawingNumber returns the last digits characters of the title's drawing
// number. When the title carries no number the assigned Number is used.
func (s *Sheet) DrawingNumber(digits int) string {
	if s == nil || s.title == nil {
		return ""
	}
	tag, err := s.Tag()
	if err != nil || tag == "" {
		tag = s.Number
	}
	return lastN(tag, digits)
}

func (s *Sheet) String() string {
	if s.Number != "" {
		return fmt.Sprintf("Sheet(%s)", s.Number)
	}
	return fmt.Sprintf("Sheet(%s)", s.Handle)
}

func lastN(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func firstN(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
