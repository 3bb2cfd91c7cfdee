package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every LookupError.
var ErrNotFound = errors.New("not found")

// LookupKind identifies which map of a placement a lookup went to.
type LookupKind string

const (
	LookupAttribute LookupKind = "attribute"
	LookupProperty  LookupKind = "property"
	LookupGeometry  LookupKind = "geometry"
)

// LookupError reports a required attribute or dynamic property that is
// absent on a placement.
type LookupError struct {
	Kind   LookupKind
	Key    string
	Handle string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found on %s", e.Kind, e.Key, e.Handle)
}

func (e *LookupError) Is(target error) bool {
	return target == ErrNotFound
}

// Placement is one symbol instance in a drawing as seen by the core.
// Implementations adapt a host document object; all access goes through
// these methods.
type Placement interface {
	Handle() string
	// Name is the effective template name. Matching is case-sensitive.
	Name() string
	InsertionPoint() Point
	// BoundingBox is only meaningful for border placements.
	BoundingBox() (Rect, error)

	AttributeText(tag string) (string, error)
	SetAttributeText(tag, text string) error
	DynamicProperty(name string) (any, error)
	SetDynamicProperty(name string, value any) error
}

// MissingKey returns the key of a LookupError in err's chain.
func MissingKey(err error) (string, bool) {
	var lookup *LookupError
	if errors.As(err, &lookup) {
		return lookup.Key, true
	}
	return "", false
}
