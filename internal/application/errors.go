package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNotLoaded        = errors.New("drawing not loaded")
	ErrCannotReplace    = errors.New("cannot replace block")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ReplaceError represents a block replacement failure
type ReplaceError struct {
	Handle string
	From   string
	To     string
	Reason string
}

func (e *ReplaceError) Error() string {
	return fmt.Sprintf("cannot replace %s (%s) with %s: %s", e.Handle, e.From, e.To, e.Reason)
}

func (e *ReplaceError) Is(target error) bool {
	return target == ErrCannotReplace
}
