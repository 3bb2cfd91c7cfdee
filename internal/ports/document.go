package ports

import (
	"context"

	"pnidkit/internal/domain"
)

// Document is the host drawing the core reads placements from and writes
// annotations back to. Access is not reentrant; callers serialize.
type Document interface {
	// Name identifies the document, usually its path.
	Name() string

	// Placements enumerates every symbol placement in one pass.
	Placements(ctx context.Context) ([]domain.Placement, error)

	// Insert places a new instance of template name.
	Insert(ctx context.Context, spec InsertSpec) (domain.Placement, error)

	// Delete removes the placement with the given handle.
	Delete(ctx context.Context, handle string) error

	// Save persists attribute and property edits.
	Save(ctx context.Context) error
}

// Reloader is a Document backed by storage that can change underneath it.
// Reload drops unsaved edits and re-reads the source.
type Reloader interface {
	Reload(ctx context.Context) error
}

// InsertSpec describes a placement to create.
type InsertSpec struct {
	Name     string
	At       domain.Point
	Scale    domain.Point
	Rotation float64
	Layer    string
}

// Block is a placement that can also enumerate its annotations and report
// its transform. Block replacement and text replacement need it.
type Block interface {
	domain.Placement
	AttributeTags() []string
	PropertyNames() []string
	Scale() domain.Point
	Rotation() float64
	Layer() string
}

// Annotator defines new attributes and properties on an existing
// placement. Documents whose inserted blocks start without annotations
// implement it so block replacement can carry them over.
type Annotator interface {
	AddAttribute(handle, tag, text string) error
	AddProperty(handle, name string, value any) error
}
