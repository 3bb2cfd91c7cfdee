package commands

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"pnidkit/internal/application"
	"pnidkit/internal/domain"
	"pnidkit/internal/ports"
)

// ReplaceTextResult contains the number of attribute texts changed
type ReplaceTextResult struct {
	Replaced int
}

// ReplaceTextCommand substitutes a regular expression in every attribute
// text of the drawing. Replacement uses regexp expansion syntax ($1).
type ReplaceTextCommand struct {
	session     *application.Session
	Pattern     string
	Replacement string
}

// NewReplaceTextCommand creates a new ReplaceTextCommand
func NewReplaceTextCommand(session *application.Session, pattern, replacement string) *ReplaceTextCommand {
	return &ReplaceTextCommand{
		session:     session,
		Pattern:     pattern,
		Replacement: replacement,
	}
}

// Validate checks the pattern compiles
func (c *ReplaceTextCommand) Validate() (*regexp.Regexp, error) {
	if err := application.ValidateRequired("pattern", c.Pattern); err != nil {
		return nil, err
	}
	re, err := regexp.Compile(c.Pattern)
	if err != nil {
		return nil, &application.ValidationError{
			Field:   "pattern",
			Message: fmt.Sprintf("invalid pattern: %v", err),
		}
	}
	return re, nil
}

// Execute rewrites matching texts and saves the drawing when any changed
func (c *ReplaceTextCommand) Execute(ctx context.Context) (*ReplaceTextResult, error) {
	re, err := c.Validate()
	if err != nil {
		return nil, err
	}
	if err := requireLoaded(c.session); err != nil {
		return nil, err
	}

	result := &ReplaceTextResult{}
	for _, p := range c.session.Index().All() {
		block, ok := p.(ports.Block)
		if !ok {
			continue
		}
		for _, tag := range block.AttributeTags() {
			text, err := block.AttributeText(tag)
			if err != nil {
				return nil, err
			}
			replaced := re.ReplaceAllString(text, c.Replacement)
			if replaced == text {
				continue
			}
			if err := block.SetAttributeText(tag, replaced); err != nil {
				return nil, fmt.Errorf("failed to write %s on %s: %w", tag, block.Handle(), err)
			}
			result.Replaced++
		}
	}

	if result.Replaced > 0 {
		if err := c.session.Document().Save(ctx); err != nil {
			return nil, fmt.Errorf("failed to save drawing: %w", err)
		}
	}
	c.session.Logger().Info().Int("texts", result.Replaced).Msg("texts replaced")
	return result, nil
}

// ReplaceBlockResult contains the handles of the old and new placements
type ReplaceBlockResult struct {
	Replaced []ReplacedBlock
}

// ReplacedBlock maps a deleted placement to its replacement
type ReplacedBlock struct {
	OldHandle string
	NewHandle string
}

// ReplaceBlockCommand replaces every placement of one template with another
// at the same point, scale, rotation and layer, carrying annotations over.
// The session must be reloaded afterwards.
type ReplaceBlockCommand struct {
	session *application.Session
	From    string
	To      string
}

// NewReplaceBlockCommand creates a new ReplaceBlockCommand
func NewReplaceBlockCommand(session *application.Session, from, to string) *ReplaceBlockCommand {
	return &ReplaceBlockCommand{
		session: session,
		From:    from,
		To:      to,
	}
}

// Validate checks if the replacement is valid
func (c *ReplaceBlockCommand) Validate() error {
	if err := application.ValidateRequired("fromBlock", c.From); err != nil {
		return err
	}
	if err := application.ValidateRequired("toBlock", c.To); err != nil {
		return err
	}
	if c.From == c.To {
		return &application.ValidationError{
			Field:   "toBlock",
			Message: "target block must differ from source block",
		}
	}
	return nil
}

// Execute runs the replace block command
func (c *ReplaceBlockCommand) Execute(ctx context.Context) (*ReplaceBlockResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := requireLoaded(c.session); err != nil {
		return nil, err
	}

	doc := c.session.Document()
	annotator, _ := doc.(ports.Annotator)
	result := &ReplaceBlockResult{}
	for _, p := range c.session.Index().Lookup(c.From) {
		block, ok := p.(ports.Block)
		if !ok {
			return nil, &application.ReplaceError{
				Handle: p.Handle(), From: c.From, To: c.To,
				Reason: "placement does not expose its annotations",
			}
		}
		created, err := c.replace(ctx, doc, annotator, block)
		if err != nil {
			return nil, err
		}
		result.Replaced = append(result.Replaced, ReplacedBlock{OldHandle: p.Handle(), NewHandle: created.Handle()})
	}

	if len(result.Replaced) > 0 {
		if err := doc.Save(ctx); err != nil {
			return nil, fmt.Errorf("failed to save drawing: %w", err)
		}
	}
	c.session.Logger().Info().
		Str("from", c.From).
		Str("to", c.To).
		Int("blocks", len(result.Replaced)).
		Msg("blocks replaced")
	return result, nil
}

func (c *ReplaceBlockCommand) replace(ctx context.Context, doc ports.Document, annotator ports.Annotator, old ports.Block) (domain.Placement, error) {
	fail := func(reason string, err error) error {
		return &application.ReplaceError{
			Handle: old.Handle(), From: c.From, To: c.To,
			Reason: fmt.Sprintf("%s: %v", reason, err),
		}
	}

	created, err := doc.Insert(ctx, ports.InsertSpec{
		Name:     c.To,
		At:       old.InsertionPoint(),
		Scale:    old.Scale(),
		Rotation: old.Rotation(),
		Layer:    old.Layer(),
	})
	if err != nil {
		return nil, fail("insert failed", err)
	}
	// A half-built replacement must not survive to the next save.
	abort := func(reason string, err error) (domain.Placement, error) {
		if derr := doc.Delete(context.WithoutCancel(ctx), created.Handle()); derr != nil {
			c.session.Logger().Warn().Err(derr).Str("handle", created.Handle()).Msg("failed to remove partial replacement")
		}
		return nil, fail(reason, err)
	}

	for _, tag := range old.AttributeTags() {
		text, err := old.AttributeText(tag)
		if err != nil {
			return abort("read attribute", err)
		}
		if annotator != nil {
			err = annotator.AddAttribute(created.Handle(), tag, text)
		} else {
			err = created.SetAttributeText(tag, text)
		}
		// Without an annotator only attributes the new template defines
		// are carried over.
		if err != nil && (annotator != nil || !errors.Is(err, domain.ErrNotFound)) {
			return abort("copy attribute "+tag, err)
		}
	}
	for _, name := range old.PropertyNames() {
		value, err := old.DynamicProperty(name)
		if err != nil {
			return abort("read property", err)
		}
		if annotator != nil {
			err = annotator.AddProperty(created.Handle(), name, value)
		} else {
			err = created.SetDynamicProperty(name, value)
		}
		if err != nil && (annotator != nil || !errors.Is(err, domain.ErrNotFound)) {
			return abort("copy property "+name, err)
		}
	}

	if err := doc.Delete(ctx, old.Handle()); err != nil {
		return abort("delete failed", err)
	}
	return created, nil
}
